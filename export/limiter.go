package export

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter paces page loads per host using token buckets. Pages on
// different hosts do not wait for each other.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewHostLimiter returns a limiter allowing rps loads per second to each
// host with a burst of 1. A non-positive rps disables pacing.
func NewHostLimiter(rps float64) *HostLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until a load of pageURL is allowed or ctx is done.
// Unparseable URLs share a single bucket.
func (h *HostLimiter) Wait(ctx context.Context, pageURL string) error {
	var host string
	if u, err := url.Parse(pageURL); err == nil {
		host = u.Host
	}

	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(h.limit, 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}
