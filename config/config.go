package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSpreadsheet is the ID of the shared Harvesting Media spreadsheet
// every process writes to.
const DefaultSpreadsheet = "1qWLg1vQHvJQG2hFHrUpO8y6bC8_xDdkLG2ErY_aGxkw"

type Config struct {
	HTTPHost         string
	HTTPPort         string
	GatePasswordHash string
	SessionSecret    string
	SessionTTL       time.Duration
	Credentials      string
	Spreadsheet      string
	LogLevel         string
	LogFormat        string
}

// Load reads the configuration from a .env file (when present) and the
// environment. The settings only the serve command needs are not required
// here - ValidateServe checks them at startup.
func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	return &Config{
		HTTPHost:         getEnv("HTTP_HOST", ""),
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		GatePasswordHash: os.Getenv("GATE_PASSWORD_HASH"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		SessionTTL:       getDurationEnv("SESSION_TTL", 12*time.Hour),
		Credentials:      getEnv("GOOGLE_CREDENTIALS", "credentials.json"),
		Spreadsheet:      getEnv("SPREADSHEET_ID", DefaultSpreadsheet),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}, nil
}

// ValidateServe checks the settings the HTTP server cannot run without.
func (c *Config) ValidateServe() error {
	if c.GatePasswordHash == "" {
		return errors.New("GATE_PASSWORD_HASH environment variable is required")
	}

	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET environment variable is required")
	}

	return nil
}

// Addr returns the address the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.HTTPHost, c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
