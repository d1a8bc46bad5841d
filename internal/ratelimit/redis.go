package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:signup:"

// Redis is a fixed-window limiter shared across instances. The window is
// fixed by the key's TTL; unlike Memory, denied attempts still increment the
// counter, since INCR is the atomic primitive Redis gives us. The threshold
// and window semantics are otherwise identical.
type Redis struct {
	client *redis.Client
	window time.Duration
	max    int
}

// NewRedis returns a limiter allowing max attempts per window, backed by the
// given client. Non-positive arguments fall back to the defaults.
func NewRedis(client *redis.Client, window time.Duration, max int) *Redis {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMaxAttempts
	}
	return &Redis{client: client, window: window, max: max}
}

// Allow increments the per-key counter and reports whether it is still within
// the threshold. The key expires window after its first increment.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := keyPrefix + key

	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(r.max), nil
}
