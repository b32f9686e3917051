package processor

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/tenderhub/normalizer/internal/logger"
)

const defaultFetchRPS = 10

// RateLimiter paces database fetches so large runs do not saturate the
// source database. Zero-value configuration means no limiting.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  logger.Logger
}

// NewRateLimiter creates a limiter allowing rps fetches per second with the
// given burst. Non-positive values fall back to defaults.
func NewRateLimiter(rps, burst int, log logger.Logger) *RateLimiter {
	if rps <= 0 {
		rps = defaultFetchRPS
	}
	if burst <= 0 {
		burst = rps
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  log,
	}
}

// Wait blocks until the limiter allows another fetch or the context ends.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	if err := r.limiter.Wait(ctx); err != nil {
		if r.logger != nil {
			r.logger.Warn("rate limiter wait aborted", logger.Error(err))
		}
		return err
	}
	return nil
}

// Allow reports whether a fetch may proceed right now without waiting.
func (r *RateLimiter) Allow() bool {
	if r == nil {
		return true
	}
	return r.limiter.Allow()
}
