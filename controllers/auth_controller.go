package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"glow_server/services"
)

// AuthController handles session token requests
type AuthController struct {
	AuthService *services.AuthService
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// CreateToken mints a session token for a Farcaster identity. The
// client obtains fid/username from the frame context or the sign-in
// widget and exchanges them here.
func (c *AuthController) CreateToken(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FID      string `json:"fid"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if payload.FID == "" || payload.Username == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	token, err := c.AuthService.MintToken(payload.FID, payload.Username)
	if err != nil {
		log.Printf("Failed to mint token for fid %s: %v", payload.FID, err)
		http.Error(w, "Failed to create session token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}
