package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "REDIS_URL", "CACHE_TTL", "DEFAULT_INNING", "SHUTDOWN_GRACE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.DatabaseURL != "" || cfg.RedisURL != "" {
		t.Errorf("expected empty store URLs, got %+v", cfg)
	}
	if cfg.CacheTTL != DefaultCacheTTL {
		t.Errorf("CacheTTL = %v, want %v", cfg.CacheTTL, DefaultCacheTTL)
	}
	if cfg.DefaultInning != DefaultInningNumber {
		t.Errorf("DefaultInning = %d, want %d", cfg.DefaultInning, DefaultInningNumber)
	}
	if cfg.ShutdownGrace != DefaultShutdownGrace {
		t.Errorf("ShutdownGrace = %v, want %v", cfg.ShutdownGrace, DefaultShutdownGrace)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/crickd")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("DEFAULT_INNING", "2")
	t.Setenv("SHUTDOWN_GRACE", "15s")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://localhost/crickd" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Errorf("CacheTTL = %v, want 2m", cfg.CacheTTL)
	}
	if cfg.DefaultInning != 2 {
		t.Errorf("DefaultInning = %d, want 2", cfg.DefaultInning)
	}
	if cfg.ShutdownGrace != 15*time.Second {
		t.Errorf("ShutdownGrace = %v, want 15s", cfg.ShutdownGrace)
	}
}

func TestLoad_MalformedFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("DEFAULT_INNING", "zero")
	t.Setenv("SHUTDOWN_GRACE", "-5s")

	cfg := Load()
	if cfg.CacheTTL != DefaultCacheTTL {
		t.Errorf("CacheTTL = %v, want default", cfg.CacheTTL)
	}
	if cfg.DefaultInning != DefaultInningNumber {
		t.Errorf("DefaultInning = %d, want default", cfg.DefaultInning)
	}
	if cfg.ShutdownGrace != DefaultShutdownGrace {
		t.Errorf("ShutdownGrace = %v, want default", cfg.ShutdownGrace)
	}
}

func TestLoad_NonPositiveIntFallsBack(t *testing.T) {
	t.Setenv("DEFAULT_INNING", "0")
	if cfg := Load(); cfg.DefaultInning != DefaultInningNumber {
		t.Errorf("DefaultInning = %d, want default", cfg.DefaultInning)
	}

	t.Setenv("DEFAULT_INNING", "-1")
	if cfg := Load(); cfg.DefaultInning != DefaultInningNumber {
		t.Errorf("DefaultInning = %d, want default", cfg.DefaultInning)
	}
}
