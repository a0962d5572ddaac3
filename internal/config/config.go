// ABOUTME: Configuration loader for the admin client
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment does not override them
const (
	DefaultAPIBaseURL  = "http://localhost:5000"
	DefaultTokenPrefix = "folio"
	DefaultAppName     = "Folio Admin"
)

// Config holds process-wide settings, read once at startup
type Config struct {
	APIBaseURL  string // backend base URL, without the /api suffix
	TokenPrefix string // prefix for the stored credential file
	AppName     string // display name for the TUI header
}

// Load reads configuration from a local .env file (if present) and the
// environment. Missing values fall back to defaults, so loading never
// fails.
func Load() *Config {
	// A missing .env is not an error; explicit environment always wins
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:  ensureScheme(getEnv("FOLIO_API_URL", DefaultAPIBaseURL)),
		TokenPrefix: getEnv("FOLIO_TOKEN_PREFIX", DefaultTokenPrefix),
		AppName:     getEnv("FOLIO_APP_NAME", DefaultAppName),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ensureScheme prepends https:// when the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return strings.TrimSuffix(url, "/")
	}
	return "https://" + strings.TrimSuffix(url, "/")
}
