package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"glow_server/config"
	"glow_server/models"
)

// NeynarService talks to the Neynar Farcaster API: user search for the
// recipient picker, and cast publishing for the public "you received a
// compliment" mention.
type NeynarService struct {
	APIKey     string
	SignerUUID string
	BaseURL    string
	AppURL     string
	HTTPClient *http.Client
}

// NewNeynarService builds the client with a bounded request timeout so
// a hung upstream never leaves a handler waiting forever.
func NewNeynarService(cfg config.NeynarConfig, appURL string) *NeynarService {
	return &NeynarService{
		APIKey:     cfg.APIKey,
		SignerUUID: cfg.SignerUUID,
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		AppURL:     appURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchUsers forwards a partial name to the Neynar user search and
// returns candidate profiles. An empty query, or any upstream failure,
// yields an empty list: the picker treats both the same way.
func (ns *NeynarService) SearchUsers(ctx context.Context, query string) ([]models.NeynarUser, error) {
	if strings.TrimSpace(query) == "" {
		return []models.NeynarUser{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/farcaster/user/search?q=%s&limit=10", ns.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("❌ Failed to build user search request: %v", err)
		return []models.NeynarUser{}, nil
	}
	req.Header.Set("x-api-key", ns.APIKey)

	resp, err := ns.HTTPClient.Do(req)
	if err != nil {
		log.Printf("❌ User search request failed: %v", err)
		return []models.NeynarUser{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("❌ User search returned %d: %s", resp.StatusCode, string(body))
		return []models.NeynarUser{}, nil
	}

	var searchResp models.UserSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		log.Printf("❌ Failed to decode user search response: %v", err)
		return []models.NeynarUser{}, nil
	}

	if searchResp.Result.Users == nil {
		return []models.NeynarUser{}, nil
	}
	return searchResp.Result.Users, nil
}

// PublishCast posts the public mention announcing that the recipient
// received a compliment. The cast text names the receiver but never the
// sender.
func (ns *NeynarService) PublishCast(ctx context.Context, recipient string) (*models.CastResponse, error) {
	handle := recipient
	if !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}
	text := fmt.Sprintf("%s you received an anonymous compliment ✨ Check it out in the GLOW app: %s/frames/compliment", handle, ns.AppURL)

	payload, err := json.Marshal(map[string]string{
		"signer_uuid": ns.SignerUUID,
		"text":        text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cast payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ns.BaseURL+"/v2/farcaster/cast", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build cast request: %w", err)
	}
	req.Header.Set("x-api-key", ns.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ns.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("cast publish returned %d: %s", resp.StatusCode, string(body))
	}

	var castResp struct {
		Cast struct {
			Hash string `json:"hash"`
		} `json:"cast"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&castResp); err != nil {
		return nil, fmt.Errorf("failed to decode cast response: %w", err)
	}

	log.Printf("✅ Cast published for %s (hash %s)", handle, castResp.Cast.Hash)
	return &models.CastResponse{Success: true, Hash: castResp.Cast.Hash}, nil
}
