package crawl

import (
	"context"
	"time"

	"github.com/asjoberg/confrag"
	"golang.org/x/time/rate"
)

var _ confrag.RequestLimiter = (*DelayLimiter)(nil)

// DelayLimiter enforces a fixed interval between consecutive requests to
// the source system using a token bucket with no bursting. The first
// request passes immediately; later requests are spaced by the delay.
// One limiter is shared between listing and per-page requests.
type DelayLimiter struct {
	limiter *rate.Limiter
}

// NewDelayLimiter creates a limiter with the given inter-request delay.
// A non-positive delay disables limiting.
func NewDelayLimiter(delay time.Duration) *DelayLimiter {
	if delay <= 0 {
		return &DelayLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &DelayLimiter{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next request is allowed.
// Returns an error if the context is canceled before then.
func (l *DelayLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
