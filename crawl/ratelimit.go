package crawl

import (
	"context"
	"time"

	"github.com/repackdb/repackdb"
	"golang.org/x/time/rate"
)

var _ repackdb.RateLimiter = (*Limiter)(nil)

// Limiter enforces a minimum interval between requests using a token
// bucket with a burst of 1. The crawler targets a single site, so one
// bucket is enough; the limit exists to bound the request rate against the
// remote source, not for correctness.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter that allows one request per minInterval.
// A non-positive interval disables limiting.
func NewLimiter(minInterval time.Duration) *Limiter {
	if minInterval <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait blocks until the rate limit allows the next request.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
