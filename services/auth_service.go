package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"glow_server/config"
)

// SessionClaims are the JWT claims carried by a GLOW session token.
// The fid/username pair is the caller's identity for every
// authenticated route; handlers never trust identity from request
// bodies.
type SessionClaims struct {
	FID      string `json:"fid"`
	Username string `json:"username"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// AuthService mints and validates session tokens for Farcaster users.
type AuthService struct {
	secret []byte
	expiry time.Duration
}

// NewAuthService creates the auth service from JWT config.
func NewAuthService(cfg config.JWTConfig) *AuthService {
	return &AuthService{
		secret: []byte(cfg.Secret),
		expiry: time.Duration(cfg.ExpiryHours) * time.Hour,
	}
}

// MintToken creates a session token for the given Farcaster identity.
func (as *AuthService) MintToken(fid, username string) (string, error) {
	if fid == "" || username == "" {
		return "", errors.New("fid and username are required")
	}

	now := time.Now()
	claims := &SessionClaims{
		FID:      fid,
		Username: username,
		Provider: "farcaster",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(as.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "glow-server",
			Subject:   fid,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a session token and returns its claims.
func (as *AuthService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return as.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	if claims.FID == "" || claims.Username == "" {
		return nil, errors.New("session token missing identity claims")
	}
	return claims, nil
}
