package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"glow_server/middleware"
	"glow_server/services"
)

// ComplimentController handles the send/list/read/rate endpoints
type ComplimentController struct {
	ComplimentService *services.ComplimentService
}

// NewComplimentController creates a new instance of ComplimentController
func NewComplimentController(complimentService *services.ComplimentService) *ComplimentController {
	return &ComplimentController{ComplimentService: complimentService}
}

// SendCompliment handles POST /api/compliments
func (c *ComplimentController) SendCompliment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input services.SendInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	compliment, err := c.ComplimentService.Send(r.Context(), identity.FID, identity.Username, input)
	if err != nil {
		writeSendError(w, identity.FID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    "Compliment sent successfully",
		"compliment": compliment,
	})
}

// GetSentCompliments handles GET /api/compliments/sent
func (c *ComplimentController) GetSentCompliments(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	compliments, err := c.ComplimentService.ListSent(r.Context(), identity.Username)
	if err != nil {
		log.Printf("Failed to list sent compliments for %s: %v", identity.Username, err)
		http.Error(w, "Failed to fetch compliments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"compliments": compliments,
	})
}

// GetReceivedCompliments handles GET /api/compliments/received
func (c *ComplimentController) GetReceivedCompliments(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	compliments, state, err := c.ComplimentService.ListReceived(r.Context(), identity.FID, identity.Username)
	if err != nil {
		log.Printf("Failed to list received compliments for %s: %v", identity.Username, err)
		http.Error(w, "Failed to fetch compliments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"compliments": compliments,
		"unlock":      state,
	})
}

// GetQuota handles GET /api/compliments/quota
func (c *ComplimentController) GetQuota(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	quota, err := c.ComplimentService.GetDailyQuota(r.Context(), identity.FID)
	if err != nil {
		log.Printf("Failed to fetch quota for fid %s: %v", identity.FID, err)
		http.Error(w, "Failed to fetch quota", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quota)
}

// MarkComplimentRead handles POST /api/compliments/{complimentId}/read
func (c *ComplimentController) MarkComplimentRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	complimentID := mux.Vars(r)["complimentId"]
	if err := c.ComplimentService.MarkRead(r.Context(), complimentID, identity.Username); err != nil {
		log.Printf("Failed to mark compliment %s read: %v", complimentID, err)
		http.Error(w, "Failed to update compliment", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RateCompliment handles POST /api/compliments/{complimentId}/rating
func (c *ComplimentController) RateCompliment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	complimentID := mux.Vars(r)["complimentId"]
	compliment, err := c.ComplimentService.Rate(r.Context(), complimentID, identity.Username, payload.Rating)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRating) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Failed to rate compliment %s: %v", complimentID, err)
		http.Error(w, "Failed to update compliment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    "Rating saved",
		"compliment": compliment,
	})
}

func writeSendError(w http.ResponseWriter, fid string, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrComplimentTooLong),
		errors.Is(err, services.ErrSelfCompliment),
		errors.Is(err, services.ErrProfanity):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrDailyLimitReached):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	default:
		log.Printf("Failed to send compliment for fid %s: %v", fid, err)
		http.Error(w, "Failed to send compliment", http.StatusInternalServerError)
	}
}
