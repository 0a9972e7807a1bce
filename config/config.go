// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the application reads from the environment
type Config struct {
	// APIBaseURL is the backend base path, including /api
	APIBaseURL string
	// RequestTimeout applies uniformly to every backend call
	RequestTimeout time.Duration
	// SessionFile is where credentials persist between runs
	SessionFile string

	Stub StubConfig
}

// StubConfig configures the local stub backend
type StubConfig struct {
	Addr      string
	DBPath    string
	JWTSecret string
}

// Load reads environment variables and returns a Config struct. A .env file
// is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	timeoutSeconds, err := strconv.Atoi(getEnv("MOVIEHUB_TIMEOUT_SECONDS", "10"))
	if err != nil || timeoutSeconds <= 0 {
		return nil, fmt.Errorf("MOVIEHUB_TIMEOUT_SECONDS must be a positive integer")
	}

	sessionFile := os.Getenv("MOVIEHUB_SESSION_FILE")
	if sessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		sessionFile = filepath.Join(home, ".moviehub", "session.json")
	}

	return &Config{
		APIBaseURL:     getEnv("MOVIEHUB_API_URL", "http://localhost:8080/api"),
		RequestTimeout: time.Duration(timeoutSeconds) * time.Second,
		SessionFile:    sessionFile,
		Stub: StubConfig{
			Addr:      getEnv("MOVIEHUB_STUB_ADDR", ":8080"),
			DBPath:    getEnv("MOVIEHUB_STUB_DB", "moviehub.db"),
			JWTSecret: getEnv("MOVIEHUB_STUB_SECRET", "moviehub-stub-dev-secret"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
