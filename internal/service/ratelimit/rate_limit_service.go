package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RateLimitService defines the interface for request rate limiting.
type RateLimitService interface {
	// Allow records one attempt for key and reports whether it is still
	// within limit for the window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// rateLimitService implements RateLimitService with Redis.
type rateLimitService struct {
	redisClient *redis.Client
	logger      *logrus.Logger
}

// Config configures the rate limiter.
type Config struct {
	Enabled  bool
	RedisURL string
	Attempts int
	Window   time.Duration
}

// NewRateLimitService creates a Redis-backed rate limiter, or a noop
// implementation when disabled.
func NewRateLimitService(config Config, logger *logrus.Logger) (RateLimitService, error) {
	if !config.Enabled {
		logger.Info("rate limiting disabled")
		return &noopRateLimitService{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisClient := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"attempts": config.Attempts,
		"window":   config.Window,
	}).Info("rate limiting service initialized")

	return &rateLimitService{
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Allow increments the fixed-window counter for key and reports whether
// the attempt is within limit. Redis failures allow the request through;
// a limiter outage must not take the API down with it.
func (s *rateLimitService) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := s.redisClient.Incr(ctx, redisKey).Result()
	if err != nil {
		s.logger.WithError(err).Warn("rate limit increment failed")
		return true, err
	}

	if count == 1 {
		if err := s.redisClient.Expire(ctx, redisKey, window).Err(); err != nil {
			s.logger.WithError(err).Warn("rate limit expire failed")
		}
	}

	return count <= int64(limit), nil
}

// noopRateLimitService allows everything.
type noopRateLimitService struct{}

func (s *noopRateLimitService) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}
