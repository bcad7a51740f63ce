// Package config loads server configuration from the environment.
// A .env file in the working directory is honored when present, so
// local development does not need exported variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads configuration from the environment. JWT_SECRET is the
// only required variable; everything else has a sensible default.
func Load() (*Config, error) {
	// Missing .env is fine; exported variables win either way.
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	port, err := parsePort(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	ttlHours, err := strconv.Atoi(getEnvOrDefault("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL_HOURS must be a positive integer")
	}

	return &Config{
		Port:      port,
		DBPath:    getEnvOrDefault("DB_PATH", "./data/alleytab.db"),
		JWTSecret: secret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}, nil
}

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", raw)
	}
	return port, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
