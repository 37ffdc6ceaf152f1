// Package config loads runtime configuration from environment variables
// with sensible defaults. Missing or malformed values never fail startup —
// they fall back to the default.
package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults.
const (
	DefaultPort          = "8080"
	DefaultCacheTTL      = 30 * time.Second
	DefaultInningNumber  = 1
	DefaultShutdownGrace = 5 * time.Second
)

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	DatabaseURL string // empty → in-memory store
	RedisURL    string // empty → no cache layer
	CacheTTL    time.Duration

	// DefaultInning is substituted for deliveries that arrive without an
	// inning tag. Explicit and operator-overridable because untagged
	// second-innings deliveries are a known upstream data-quality issue.
	DefaultInning int

	ShutdownGrace time.Duration
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		Port:          envOrDefault("PORT", DefaultPort),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		CacheTTL:      durationEnvOrDefault("CACHE_TTL", DefaultCacheTTL),
		DefaultInning: intEnvOrDefault("DEFAULT_INNING", DefaultInningNumber),
		ShutdownGrace: durationEnvOrDefault("SHUTDOWN_GRACE", DefaultShutdownGrace),
	}
}

func envOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func intEnvOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}
