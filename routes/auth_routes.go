package routes

import (
	"glow_server/controllers"
	"glow_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up the session token endpoint under /api/auth
func RegisterAuthRoutes(r *mux.Router, authService *services.AuthService) {
	controller := controllers.NewAuthController(authService)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/token", controller.CreateToken).Methods("POST")
}
