package config

import (
	"os"
	"strings"
)

// DefaultAPIKey is used when no API_KEY is configured.
const DefaultAPIKey = "secret"

// Config holds all service configuration loaded from environment
// variables. Values are fixed for the process lifetime; there is no hot
// reload.
type Config struct {
	ListenAddr string // HTTP listen address
	DataFile   string // Path to the JSON user store
	APIKey     string // Shared secret required on /admin/* requests
	LogLevel   string // debug, info, warn, error
	LogFormat  string // text or json
}

// Load reads configuration from environment variables, falling back to
// defaults. The API key may also come from a file named by API_KEY_FILE;
// the environment variable wins when both are set.
func Load() *Config {
	return &Config{
		ListenAddr: envOrDefault("LISTEN_ADDR", ":8000"),
		DataFile:   envOrDefault("DATA_FILE", "data.json"),
		APIKey:     resolveAPIKey(),
		LogLevel:   envOrDefault("LOG_LEVEL", "info"),
		LogFormat:  envOrDefault("LOG_FORMAT", "text"),
	}
}

func resolveAPIKey() string {
	if v := os.Getenv("API_KEY"); v != "" {
		return v
	}
	if path := os.Getenv("API_KEY_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if key := strings.TrimSpace(string(data)); key != "" {
				return key
			}
		}
	}
	return DefaultAPIKey
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
