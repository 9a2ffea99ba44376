package users

import (
	"github.com/gorilla/mux"

	"github.com/linkupapp/linkup-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/users").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/location", handler.UpdateLocation).Methods("PUT")
	api.HandleFunc("/profile-stats", handler.GetProfileStats).Methods("GET")
	api.HandleFunc("/{id}/profile-stats", handler.GetProfileStats).Methods("GET")
	api.HandleFunc("/{id}/block", handler.BlockUser).Methods("POST")
	api.HandleFunc("/{id}/block", handler.UnblockUser).Methods("DELETE")
}
