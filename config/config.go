// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort      string
	DatabasePath    string
	LogLevel        string
	ShutdownTimeout time.Duration

	// DefaultBaseRate overrides the engine's built-in base hourly rate for
	// shifts priced without a rate card.
	DefaultBaseRate float64
}

// Load reads configuration from the environment. A missing .env file is not
// an error; production deployments set real environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not load .env file")
	}

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DatabasePath:    getEnv("DATABASE_PATH", "timesheets.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: 30 * time.Second,
		DefaultBaseRate: getEnvFloat("DEFAULT_BASE_RATE", 15.0),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Warn("ignoring invalid env value")
		return defaultValue
	}
	return v
}
