// Package redis implements a fixed-window request limiter shared by all
// service replicas.
package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

type RateLimiter struct {
	c      *redis.Client
	limit  int64
	window time.Duration
}

// NewRateLimiter allows limit requests per key within each window.
func NewRateLimiter(addr string, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		c:      redis.NewClient(&redis.Options{Addr: addr}),
		limit:  limit,
		window: window,
	}
}

// Allow counts a request for key. The TTL is set only when the window's
// first request creates the counter, so steady traffic cannot keep a window
// open forever.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := keyPrefix + key

	pipe := rl.c.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, errors.Wrap(err, "redis ratelimit")
	}

	return incr.Val() <= rl.limit, nil
}

func (rl *RateLimiter) Ping(ctx context.Context) error {
	if err := rl.c.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis ping")
	}
	return nil
}

func (rl *RateLimiter) Close() error {
	return rl.c.Close()
}
