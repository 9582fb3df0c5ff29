package routes

import (
	"glow_server/config"
	"glow_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterManifestRoutes serves the frame manifest at its well-known path
func RegisterManifestRoutes(r *mux.Router, cfg *config.Config) {
	controller := controllers.NewManifestController(cfg)

	r.HandleFunc("/.well-known/farcaster.json", controller.GetManifest).Methods("GET")
}
