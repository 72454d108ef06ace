package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL         string
	RedisURL            string
	JWTSecret           string
	ServerPort          string
	Environment         string
	LogLevel            string
	LogFormat           string
	MaintenanceCacheTTL time.Duration
	RateLimitEnabled    bool
	RateLimitAttempts   int
	RateLimitWindow     time.Duration
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	IdleTimeout         time.Duration
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisURL:            getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		ServerPort:          getEnvOrDefault("SERVER_PORT", "8080"),
		Environment:         getEnvOrDefault("ENV", "development"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		MaintenanceCacheTTL: getEnvOrDefaultDuration("MAINTENANCE_CACHE_TTL", 60*time.Second),
		RateLimitEnabled:    getEnvOrDefaultBool("RATE_LIMIT_ENABLED", true),
		RateLimitAttempts:   getEnvOrDefaultInt("RATE_LIMIT_ATTEMPTS", 60),
		RateLimitWindow:     getEnvOrDefaultDuration("RATE_LIMIT_WINDOW", time.Minute),
		ReadTimeout:         getEnvOrDefaultDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:        getEnvOrDefaultDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:         getEnvOrDefaultDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		// interpret as seconds if numeric, else parse like Go duration
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * time.Second
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return d
	}
	return defaultValue
}
