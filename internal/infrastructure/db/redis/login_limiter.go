package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLoginWindow   = 15 * time.Minute
	defaultLoginAttempts = 10
)

// LoginLimiter throttles login attempts per key with a fixed Redis window.
type LoginLimiter struct {
	client   *redis.Client
	window   time.Duration
	attempts int64
}

func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{
		client:   client,
		window:   defaultLoginWindow,
		attempts: defaultLoginAttempts,
	}
}

// Allow records one attempt for the key and reports whether it is still
// within the window budget. The returned error signals a Redis failure;
// the caller decides whether to fail open.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("login:attempts:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, fmt.Errorf("login limiter incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return true, fmt.Errorf("login limiter expire: %w", err)
		}
	}
	return count <= l.attempts, nil
}
