package routes

import (
	"glow_server/controllers"
	"glow_server/middleware"
	"glow_server/services"

	"github.com/gorilla/mux"
)

// RegisterComplimentRoutes sets up the compliment workflow under /api/compliments
func RegisterComplimentRoutes(r *mux.Router, complimentService *services.ComplimentService, authService *services.AuthService) {
	controller := controllers.NewComplimentController(complimentService)

	complimentRouter := r.PathPrefix("/api/compliments").Subrouter()
	complimentRouter.Use(middleware.Auth(authService))

	complimentRouter.HandleFunc("", controller.SendCompliment).Methods("POST")
	complimentRouter.HandleFunc("/sent", controller.GetSentCompliments).Methods("GET")
	complimentRouter.HandleFunc("/received", controller.GetReceivedCompliments).Methods("GET")
	complimentRouter.HandleFunc("/quota", controller.GetQuota).Methods("GET")
	complimentRouter.HandleFunc("/{complimentId}/read", controller.MarkComplimentRead).Methods("POST")
	complimentRouter.HandleFunc("/{complimentId}/rating", controller.RateCompliment).Methods("POST")
}
