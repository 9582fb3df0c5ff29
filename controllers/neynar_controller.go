package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"glow_server/models"
	"glow_server/services"
)

// NeynarController exposes the Farcaster user search and cast
// publishing endpoints.
type NeynarController struct {
	NeynarService *services.NeynarService
}

// NewNeynarController creates a new instance of NeynarController
func NewNeynarController(neynarService *services.NeynarService) *NeynarController {
	return &NeynarController{NeynarService: neynarService}
}

// SearchUsers handles GET /api/users/search?q=
// An empty query and an upstream failure both answer an empty list;
// the recipient picker does not distinguish them.
func (c *NeynarController) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	users, err := c.NeynarService.SearchUsers(r.Context(), query)
	if err != nil {
		log.Printf("User search failed for %q: %v", query, err)
		users = nil
	}
	if users == nil {
		users = []models.NeynarUser{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"users": users,
	})
}

// PublishCast handles POST /api/casts
func (c *NeynarController) PublishCast(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ReceiverHandle string `json:"receiverHandle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.ReceiverHandle == "" {
		http.Error(w, "receiverHandle is required", http.StatusBadRequest)
		return
	}

	cast, err := c.NeynarService.PublishCast(r.Context(), payload.ReceiverHandle)
	if err != nil {
		log.Printf("Failed to publish cast for %s: %v", payload.ReceiverHandle, err)
		http.Error(w, "Failed to publish cast", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cast)
}
