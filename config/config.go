package config

import (
	"os"
	"strconv"
)

// Config holds all runtime configuration. It is built once in Load and
// passed into constructors; nothing outside this package reads the
// environment directly.
type Config struct {
	Server ServerConfig
	AWS    AWSConfig
	Tables TablesConfig
	JWT    JWTConfig
	Neynar NeynarConfig
	App    AppConfig
	Frame  FrameConfig
}

type ServerConfig struct {
	Port string
}

type AWSConfig struct {
	Region string
}

type TablesConfig struct {
	Compliments string
	Users       string
	Unlocks     string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type NeynarConfig struct {
	APIKey     string
	SignerUUID string
	BaseURL    string
}

type AppConfig struct {
	URL string
	// DailyLimit is the per-user cap on outgoing compliments per
	// calendar day.
	DailyLimit int
	// UnlockThreshold is how many compliments a user must have sent in
	// the trailing 24 hours before received compliments become viewable.
	UnlockThreshold int
}

// FrameConfig carries the domain-ownership attestation served in the
// Farcaster manifest. The values are opaque to this server.
type FrameConfig struct {
	AccountHeader    string
	AccountPayload   string
	AccountSignature string
}

// Load builds the configuration from the process environment.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		AWS: AWSConfig{
			Region: getEnv("AWS_REGION", "us-east-1"),
		},
		Tables: TablesConfig{
			Compliments: getEnv("COMPLIMENTS_TABLE", "Compliments"),
			Users:       getEnv("USERS_TABLE", "Users"),
			Unlocks:     getEnv("UNLOCKS_TABLE", "Unlocks"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", ""),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Neynar: NeynarConfig{
			APIKey:     getEnv("NEYNAR_API_KEY", ""),
			SignerUUID: getEnv("NEYNAR_SIGNER_UUID", ""),
			BaseURL:    getEnv("NEYNAR_BASE_URL", "https://api.neynar.com"),
		},
		App: AppConfig{
			URL:             getEnv("APP_URL", "https://useglow.xyz"),
			DailyLimit:      getEnvAsInt("DAILY_COMPLIMENT_LIMIT", 10),
			UnlockThreshold: getEnvAsInt("UNLOCK_SEND_THRESHOLD", 2),
		},
		Frame: FrameConfig{
			AccountHeader:    getEnv("FRAME_ACCOUNT_HEADER", ""),
			AccountPayload:   getEnv("FRAME_ACCOUNT_PAYLOAD", ""),
			AccountSignature: getEnv("FRAME_ACCOUNT_SIGNATURE", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
