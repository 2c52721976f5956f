package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds client configuration
type Config struct {
	APIBaseURL  string
	SessionFile string
	HTTPTimeout time.Duration
	LogLevel    string
	Env         string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		APIBaseURL:  strings.TrimSuffix(getEnv("CLINIC_API_BASE_URL", "http://localhost:8080/api"), "/"),
		SessionFile: getEnv("CLINIC_SESSION_FILE", defaultSessionFile()),
		HTTPTimeout: getEnvAsDuration("CLINIC_HTTP_TIMEOUT", 20*time.Second),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Env:         getEnv("ENV", "development"),
	}
}

// LoadDotenv loads a local .env file when present, then reads configuration.
// A missing .env is not an error.
func LoadDotenv() *Config {
	_ = godotenv.Load()
	return Load()
}

// defaultSessionFile resolves the persisted session path under the user
// config directory, falling back to the working directory when unavailable.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".clinic_session.json"
	}
	return filepath.Join(dir, "smart-clinic", "session.json")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
