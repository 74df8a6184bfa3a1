// Package ratelimit counts attempts per key inside a sliding window.
package ratelimit

import (
	"context"
	"time"
)

// Limiter reports whether one more attempt for key fits in the last
// window. Every call counts as an attempt, allowed or not.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Reset(ctx context.Context, key string) error
}
