package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration. It is built once at startup
// and handed to the components that need it; nothing reads the environment
// after Load returns.
type Config struct {
	ServerPort   int
	DatabasePath string
	JWTSecret    string
	CookieName   string
}

// Load reads an optional .env file, then builds the configuration from
// environment variables with development defaults.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "3000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:   port,
		DatabasePath: getEnv("DATABASE_PATH", "./potions.db"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret"),
		CookieName:   getEnv("COOKIE_NAME", "potion_token"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must not be empty")
	}

	return cfg, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
