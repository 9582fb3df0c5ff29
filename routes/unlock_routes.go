package routes

import (
	"glow_server/controllers"
	"glow_server/middleware"
	"glow_server/services"

	"github.com/gorilla/mux"
)

// RegisterUnlockRoutes sets up the unlock gate under /api/unlocks
func RegisterUnlockRoutes(r *mux.Router, unlockService *services.UnlockService, complimentService *services.ComplimentService, authService *services.AuthService) {
	controller := controllers.NewUnlockController(unlockService, complimentService)

	unlockRouter := r.PathPrefix("/api/unlocks").Subrouter()
	unlockRouter.Use(middleware.Auth(authService))

	unlockRouter.HandleFunc("", controller.RecordUnlock).Methods("POST")
	unlockRouter.HandleFunc("", controller.GetUnlockState).Methods("GET")
}
