package routes

import (
	"glow_server/controllers"
	"glow_server/middleware"
	"glow_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for user records under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService, authService *services.AuthService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.Use(middleware.Auth(authService))

	profileRouter.HandleFunc("", controller.EnsureProfile).Methods("POST")
}
