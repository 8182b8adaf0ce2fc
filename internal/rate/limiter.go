package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrRateLimited indicates the attempt budget is exhausted.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnavailable indicates the Redis backend could not be reached.
	ErrUnavailable = errors.New("throttle backend unavailable")
)

// Config holds limiter tuning parameters.
type Config struct {
	// MaxAttempts is the number of failed attempts allowed per key
	// within the cooldown window.
	MaxAttempts int

	// Cooldown is the TTL applied to the failure counter.
	Cooldown time.Duration
}

// Limiter tracks failed login attempts per identifier using Redis
// counters with a cooldown TTL. The counter is reset on successful
// login.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a Limiter backed by the given Redis client.
func New(client redis.UniversalClient, cfg Config) *Limiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 15 * time.Minute
	}
	return &Limiter{redis: client, config: cfg}
}

// Check reports whether the identifier is still within its attempt
// budget. A missing counter means no recorded failures and does not
// reveal whether the identifier exists.
func (l *Limiter) Check(ctx context.Context, key string) error {
	count, err := l.redis.Get(ctx, counterKey(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if count >= int64(l.config.MaxAttempts) {
		return ErrRateLimited
	}
	return nil
}

// RecordFailure increments the failure counter and applies the cooldown
// TTL. Returns ErrRateLimited when the increment crosses the budget.
func (l *Limiter) RecordFailure(ctx context.Context, key string) error {
	full := counterKey(key)

	count, err := l.redis.Incr(ctx, full).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// Counter TTL starts on the first failure in a window.
	if count == 1 {
		if err := l.redis.Expire(ctx, full, l.config.Cooldown).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	if count >= int64(l.config.MaxAttempts) {
		return ErrRateLimited
	}
	return nil
}

// Reset clears the failure counter for the identifier. Called after a
// successful login.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if err := l.redis.Del(ctx, counterKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func counterKey(key string) string {
	return "login:fail:" + key
}
