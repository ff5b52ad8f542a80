// Package config loads the service configuration from environment
// variables, optionally seeded from a local .env file. The resulting Config
// is passed explicitly to whatever constructs the store and the server; there
// are no hidden globals.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs at startup.
type Config struct {
	Server struct {
		Port int
	}
	Database struct {
		Path string
	}
	JWT struct {
		Secret string
		TTL    time.Duration
	}
	Log struct {
		Level string
	}
}

// Load reads the configuration from the environment. If envFile exists it is
// loaded first; a missing file is fine (production sets real env vars).
func Load(envFile string) *Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			slog.Debug("No env file loaded", "path", envFile, "error", err)
		}
	}

	cfg := &Config{}
	cfg.Server.Port = getEnvAsInt("SERVER_PORT", 8080)
	cfg.Database.Path = getEnv("DB_PATH", "./data/moneyshare.db")
	cfg.JWT.Secret = getEnv("JWT_SECRET", "")
	cfg.JWT.TTL = getEnvAsDuration("JWT_TTL", 24*time.Hour)
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
