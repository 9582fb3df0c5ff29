package routes

import (
	"glow_server/controllers"
	"glow_server/middleware"
	"glow_server/services"

	"github.com/gorilla/mux"
)

// RegisterNeynarRoutes sets up user search and cast publishing. Search
// is open (the picker runs before the session exists in some flows);
// publishing a cast requires a session.
func RegisterNeynarRoutes(r *mux.Router, neynarService *services.NeynarService, authService *services.AuthService) {
	controller := controllers.NewNeynarController(neynarService)

	r.HandleFunc("/api/users/search", controller.SearchUsers).Methods("GET")

	castRouter := r.PathPrefix("/api/casts").Subrouter()
	castRouter.Use(middleware.Auth(authService))
	castRouter.HandleFunc("", controller.PublishCast).Methods("POST")
}
