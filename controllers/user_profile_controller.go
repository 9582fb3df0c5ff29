package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"glow_server/middleware"
	"glow_server/services"
)

// UserProfileController handles requests related to user records
type UserProfileController struct {
	UserProfileService *services.UserProfileService
}

// NewUserProfileController creates a new instance of UserProfileController
func NewUserProfileController(userProfileService *services.UserProfileService) *UserProfileController {
	return &UserProfileController{UserProfileService: userProfileService}
}

// EnsureProfile creates the caller's user record on first load. Repeat
// calls return the existing record.
func (c *UserProfileController) EnsureProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, created, err := c.UserProfileService.EnsureUser(r.Context(), identity.FID, identity.Username)
	if err != nil {
		log.Printf("Failed to ensure user record for fid %s: %v", identity.FID, err)
		http.Error(w, "Failed to create user record", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if created {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":    user,
		"created": created,
	})
}
