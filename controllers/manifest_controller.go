package controllers

import (
	"encoding/json"
	"net/http"

	"glow_server/config"
	"glow_server/models"
)

// ManifestController serves the Farcaster frame manifest
type ManifestController struct {
	Config *config.Config
}

// NewManifestController creates a new instance of ManifestController
func NewManifestController(cfg *config.Config) *ManifestController {
	return &ManifestController{Config: cfg}
}

// GetManifest handles GET /.well-known/farcaster.json. The account
// association block is a pass-through of the configured attestation.
func (c *ManifestController) GetManifest(w http.ResponseWriter, r *http.Request) {
	appURL := c.Config.App.URL

	manifest := models.FarcasterManifest{
		AccountAssociation: models.AccountAssociation{
			Header:    c.Config.Frame.AccountHeader,
			Payload:   c.Config.Frame.AccountPayload,
			Signature: c.Config.Frame.AccountSignature,
		},
		Frame: models.FrameManifest{
			Version:               "1",
			Name:                  "GLOW",
			HomeURL:               appURL,
			IconURL:               appURL + "/icon.png",
			ImageURL:              appURL + "/frames/compliment/opengraph-image",
			ButtonTitle:           "Start",
			SplashImageURL:        appURL + "/icon.png",
			SplashBackgroundColor: "#f7f7f7",
			WebhookURL:            appURL + "/api/webhook",
		},
		Triggers: []models.FrameTrigger{
			{
				Type: "cast",
				ID:   "send-compliment",
				URL:  appURL + "/frames/compliment",
				Name: "Send Compliment",
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(manifest)
}
