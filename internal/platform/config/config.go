// Package config loads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the HTTP server settings. Database and Redis settings are
// loaded by their own packages.
type Config struct {
	Port               string
	LogLevel           slog.Level
	CORSAllowedOrigins []string
	CookieSecure       bool
	SessionCacheTTL    time.Duration
	SignupRatePerSec   float64
	SignupBurst        int
	RunMigrations      bool
}

// LoadDotEnv loads variables from path (normally ".env") without overriding
// ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads Config from the environment, applying defaults.
func Load() Config {
	return Config{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           parseLevel(getEnv("LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		CookieSecure:       getEnvBool("COOKIE_SECURE", false),
		SessionCacheTTL:    getEnvDuration("SESSION_CACHE_TTL", 5*time.Minute),
		SignupRatePerSec:   getEnvFloat("SIGNUP_RATE_PER_SEC", 1),
		SignupBurst:        getEnvInt("SIGNUP_BURST", 5),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", false),
	}
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		slog.Warn("ignoring invalid integer setting", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		slog.Warn("ignoring invalid number setting", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("ignoring invalid duration setting", "key", key, "value", value)
	}
	return defaultValue
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
