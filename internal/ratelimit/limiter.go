package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ipLimit       = 10
	ipWindow      = 15 * time.Minute
	emailCooldown = 2 * time.Minute
)

// Limiter is a Redis-backed fixed-window rate limiter with per-email
// cooldown support. Redis errors are returned to the caller, which is
// expected to log them and fail open.
type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

func ipKey(ip, purpose string) string {
	return fmt.Sprintf("ratelimit:ip:%s:%s", purpose, ip)
}

func emailCooldownKey(email string) string {
	// Hash the email so addresses never appear in Redis keys
	sum := sha256.Sum256([]byte(email))
	return fmt.Sprintf("ratelimit:email_cooldown:%s", hex.EncodeToString(sum[:]))
}

// CheckIPRateLimit reports whether the IP exceeded the general request window
func (l *Limiter) CheckIPRateLimit(ctx context.Context, ip string) (bool, error) {
	return l.CheckIPRateLimitWithPurpose(ctx, ip, "general")
}

// CheckIPRateLimitWithPurpose reports whether the IP exceeded the window for
// a specific purpose (register, login, ...). Purposes are tracked separately.
func (l *Limiter) CheckIPRateLimitWithPurpose(ctx context.Context, ip, purpose string) (bool, error) {
	count, err := l.client.Get(ctx, ipKey(ip, purpose)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get rate limit counter: %w", err)
	}

	return count >= ipLimit, nil
}

// RecordIPRequest counts a request against the IP's general window
func (l *Limiter) RecordIPRequest(ctx context.Context, ip string) error {
	return l.RecordIPRequestWithPurpose(ctx, ip, "general")
}

// RecordIPRequestWithPurpose counts a request against the IP's window for a
// specific purpose. The window TTL is set when the counter is created.
func (l *Limiter) RecordIPRequestWithPurpose(ctx context.Context, ip, purpose string) error {
	key := ipKey(ip, purpose)

	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ipWindow)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}
	if err := incr.Err(); err != nil {
		return fmt.Errorf("failed to increment counter: %w", err)
	}

	return nil
}

// CheckEmailCooldown reports whether the email address is still on cooldown
func (l *Limiter) CheckEmailCooldown(ctx context.Context, email string) (bool, error) {
	exists, err := l.client.Exists(ctx, emailCooldownKey(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check email cooldown: %w", err)
	}

	return exists > 0, nil
}

// SetEmailCooldown starts the cooldown window for an email address
func (l *Limiter) SetEmailCooldown(ctx context.Context, email string) error {
	err := l.client.Set(ctx, emailCooldownKey(email), "1", emailCooldown).Err()
	if err != nil {
		return fmt.Errorf("failed to set email cooldown: %w", err)
	}

	return nil
}
