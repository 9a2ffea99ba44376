package activity

import (
	"github.com/gorilla/mux"

	"github.com/linkupapp/linkup-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	// Discovery endpoints work without a session; an actor, when present,
	// supplies default origin and radius.
	open := router.PathPrefix("/api/v1/activities").Subrouter()
	open.Use(authMiddleware.OptionalAuthenticate)
	open.HandleFunc("/nearby", handler.Nearby).Methods("GET")
	open.HandleFunc("/{id:[0-9]+}", handler.Detail).Methods("GET")

	api := router.PathPrefix("/api/v1/activities").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.Create).Methods("POST")
	api.HandleFunc("", handler.Edit).Methods("PUT")
	api.HandleFunc("/user", handler.UserActivities).Methods("GET")
	api.HandleFunc("/mine", handler.Mine).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}", handler.Delete).Methods("DELETE")

	api.HandleFunc("/{id:[0-9]+}/join", handler.Join).Methods("POST")
	api.HandleFunc("/{id:[0-9]+}/accept", handler.Accept).Methods("POST")
	api.HandleFunc("/{id:[0-9]+}/reject", handler.Reject).Methods("POST")
	api.HandleFunc("/{id:[0-9]+}/cancel", handler.Cancel).Methods("POST")
	api.HandleFunc("/{id:[0-9]+}/requests", handler.Requests).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}/requests/{userId:[0-9]+}", handler.DeleteRequest).Methods("DELETE")
}
