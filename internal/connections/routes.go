package connections

import (
	"github.com/gorilla/mux"

	"github.com/linkupapp/linkup-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/connections").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/{id}/follow", handler.Follow).Methods("POST")
	api.HandleFunc("/{id}/follow", handler.Unfollow).Methods("DELETE")
	api.HandleFunc("/followers", handler.GetFollowers).Methods("GET")
	api.HandleFunc("/followings", handler.GetFollowings).Methods("GET")
}
