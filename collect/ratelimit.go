package collect

import (
	"context"
	"sync"

	"github.com/fwojciec/lunchmenu"
	"golang.org/x/time/rate"
)

var _ lunchmenu.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRequestsPerSecond is the per-host request rate used by the CLI.
const DefaultRequestsPerSecond = 2

// DomainLimiter provides per-host rate limiting using token buckets.
// Requests to different hosts proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host, with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to host.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
