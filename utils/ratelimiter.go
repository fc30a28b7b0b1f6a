package utils

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter spaces out page visits made through one browser session
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a RateLimiter allowing one visit per delayMs.
// A delay of zero or less disables pacing.
func NewRateLimiter(delayMs int) *RateLimiter {
	if delayMs <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	every := rate.Every(time.Duration(delayMs) * time.Millisecond)
	return &RateLimiter{limiter: rate.NewLimiter(every, 1)}
}

// Wait blocks until the next visit is allowed or ctx is done
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.limiter.Wait(ctx)
}
