package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitPrefix = "ratelimit:user:"
	rateLimitWindow = time.Minute
)

// RateLimiter enforces a fixed-window per-user request limit in Redis.
// Keys are scoped to the user id, so a burst from one account never
// throttles the partner sharing the workspace.
type RateLimiter struct {
	client            *Client
	requestsPerMinute int
	burst             int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client:            client,
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
	}
}

// Allow counts a request against the user's current window.
// Returns (allowed, remaining, window reset time, error).
func (r *RateLimiter) Allow(ctx context.Context, userID uuid.UUID) (bool, int, time.Time, error) {
	key := rateLimitPrefix + userID.String()
	windowEnd := time.Now().Truncate(rateLimitWindow).Add(rateLimitWindow)

	pipe := r.client.rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rateLimitWindow)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, 0, time.Time{}, fmt.Errorf("failed to count request: %w", err)
	}

	count := incrCmd.Val()
	limit := int64(r.requestsPerMinute + r.burst)
	remaining := int(limit - count)
	if remaining < 0 {
		remaining = 0
	}

	return count <= limit, remaining, windowEnd, nil
}
