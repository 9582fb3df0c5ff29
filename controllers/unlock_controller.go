package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"glow_server/middleware"
	"glow_server/services"
)

// UnlockController handles payment entitlements and the unlock gate
type UnlockController struct {
	UnlockService     *services.UnlockService
	ComplimentService *services.ComplimentService
}

// NewUnlockController creates a new instance of UnlockController
func NewUnlockController(unlockService *services.UnlockService, complimentService *services.ComplimentService) *UnlockController {
	return &UnlockController{UnlockService: unlockService, ComplimentService: complimentService}
}

// RecordUnlock handles POST /api/unlocks: the payment-completed
// callback persists an entitlement so the unlock survives reloads.
func (c *UnlockController) RecordUnlock(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		PaymentID string `json:"paymentId"`
		Amount    string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.PaymentID == "" {
		http.Error(w, "paymentId is required", http.StatusBadRequest)
		return
	}

	unlock, err := c.UnlockService.RecordUnlock(r.Context(), identity.FID, payload.PaymentID, payload.Amount)
	if err != nil {
		log.Printf("Failed to record unlock for fid %s: %v", identity.FID, err)
		http.Error(w, "Failed to record unlock", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(unlock)
}

// GetUnlockState handles GET /api/unlocks
func (c *UnlockController) GetUnlockState(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	state, err := c.ComplimentService.GetUnlockState(r.Context(), identity.FID)
	if err != nil {
		log.Printf("Failed to fetch unlock state for fid %s: %v", identity.FID, err)
		http.Error(w, "Failed to fetch unlock state", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}
