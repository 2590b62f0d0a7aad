package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed login attempts per account in redis so the
// window survives restarts and is shared across instances.
type LoginLimiter struct {
	rdb         *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

func attemptsKey(email string) string {
	return "login_attempts:" + email
}

// Allow reports whether another login attempt is permitted for the account.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	count, err := l.rdb.Get(ctx, attemptsKey(email)).Int()
	if err != nil && err != redis.Nil {
		return false, fmt.Errorf("LoginLimiter.Allow: %w", err)
	}
	return count < l.maxAttempts, nil
}

// RecordFailure bumps the attempt counter, starting the window on the
// first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := attemptsKey(email)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("LoginLimiter.RecordFailure: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("LoginLimiter.RecordFailure expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.rdb.Del(ctx, attemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("LoginLimiter.Reset: %w", err)
	}
	return nil
}
