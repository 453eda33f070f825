package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Env selects the logger encoder ("production" or anything else).
	Env string

	// DBPath is the SQLite database file. ":memory:" works for throwaway runs.
	DBPath string

	// SeedOnInit seeds the sample counties during `mgao init` without
	// needing the --seed flag.
	SeedOnInit bool
}

// Load loads configuration from environment variables, reading an optional
// .env file first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist; plain environment variables win anyway.
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read .env file: %v", err)
		}
	}

	return &Config{
		Env:        getEnv("ENV", "development"),
		DBPath:     getEnv("DB_PATH", "mgao.db"),
		SeedOnInit: getBoolEnv("SEED_ON_INIT", false),
	}, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv retrieves a boolean environment variable or returns a default value.
func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
