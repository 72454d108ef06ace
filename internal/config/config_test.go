package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/projecthub?sslmode=disable")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.MaintenanceCacheTTL != 60*time.Second {
		t.Errorf("Expected default maintenance cache TTL 60s, got %s", cfg.MaintenanceCacheTTL)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected rate limiting enabled by default")
	}
	if cfg.RateLimitAttempts != 60 {
		t.Errorf("Expected default rate limit attempts 60, got %d", cfg.RateLimitAttempts)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("Expected default log format json, got %s", cfg.LogFormat)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := Load(); err != ErrMissingDatabaseURL {
		t.Errorf("Expected ErrMissingDatabaseURL, got %v", err)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/projecthub")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err != ErrMissingJWTSecret {
		t.Errorf("Expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoad_DurationFormats(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/projecthub")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MAINTENANCE_CACHE_TTL", "30")
	t.Setenv("RATE_LIMIT_WINDOW", "2m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.MaintenanceCacheTTL != 30*time.Second {
		t.Errorf("Expected numeric TTL interpreted as seconds, got %s", cfg.MaintenanceCacheTTL)
	}
	if cfg.RateLimitWindow != 2*time.Minute {
		t.Errorf("Expected 2m window, got %s", cfg.RateLimitWindow)
	}
}
