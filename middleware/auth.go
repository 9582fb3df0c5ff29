package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"glow_server/services"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller, taken from session token
// claims. Handlers downstream of Auth trust this pair and nothing from
// the request body.
type Identity struct {
	FID      string
	Username string
}

// Auth validates the Bearer session token and stores the caller's
// identity on the request context. Requests without a valid token get
// a 401.
func Auth(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Missing bearer token")
				return
			}

			claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w, "Invalid session token")
				return
			}

			identity := Identity{FID: claims.FID, Username: claims.Username}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
		})
	}
}

// IdentityFrom returns the caller identity stored by Auth.
func IdentityFrom(r *http.Request) (Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(Identity)
	return identity, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
