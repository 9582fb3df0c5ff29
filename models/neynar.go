package models

// NeynarUser is a candidate profile returned by the Farcaster user
// search. Field names follow the Neynar API response.
type NeynarUser struct {
	FID         int    `json:"fid"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	PfpURL      string `json:"pfp_url"`
}

// UserSearchResponse mirrors the shape of Neynar's search endpoint.
type UserSearchResponse struct {
	Result struct {
		Users []NeynarUser `json:"users"`
	} `json:"result"`
}

// CastResponse is the reference to a published cast.
type CastResponse struct {
	Success bool   `json:"success"`
	Hash    string `json:"hash,omitempty"`
}

// FarcasterManifest is the frame manifest served at
// /.well-known/farcaster.json, consumed by the host platform.
type FarcasterManifest struct {
	AccountAssociation AccountAssociation `json:"accountAssociation"`
	Frame              FrameManifest      `json:"frame"`
	Triggers           []FrameTrigger     `json:"triggers,omitempty"`
}

type AccountAssociation struct {
	Header    string `json:"header"`
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

type FrameManifest struct {
	Version               string `json:"version"`
	Name                  string `json:"name"`
	HomeURL               string `json:"homeUrl"`
	IconURL               string `json:"iconUrl"`
	ImageURL              string `json:"imageUrl"`
	ButtonTitle           string `json:"buttonTitle"`
	SplashImageURL        string `json:"splashImageUrl"`
	SplashBackgroundColor string `json:"splashBackgroundColor"`
	WebhookURL            string `json:"webhookUrl"`
}

type FrameTrigger struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}
