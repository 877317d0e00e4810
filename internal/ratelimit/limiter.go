// Package ratelimit keeps calls within Liquid's request budget.
package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter applies one global token bucket to every call and, for signed
// calls, a second bucket per API token.
type RateLimiter struct {
	global   *rate.Limiter
	tokens   sync.Map
	requests int
	period   time.Duration
	metrics  *Metrics
}

// Metrics tracks statistics about rate limiter usage.
type Metrics struct {
	totalRequests   atomic.Int64
	allowedRequests atomic.Int64
	deniedRequests  atomic.Int64
	tokenCount      atomic.Int32
}

// New creates a RateLimiter allowing requests per period, with a burst of requests.
func New(requests int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		global:   newLimiter(requests, period),
		requests: requests,
		period:   period,
		metrics:  &Metrics{},
	}
}

func newLimiter(requests int, period time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(requests)/period.Seconds()), requests)
}

// Wait blocks until the global bucket allows a request or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	err := r.global.Wait(ctx)
	r.record(err == nil)
	return err
}

// WaitToken blocks until both the global bucket and the bucket of tokenID
// allow a request or ctx is done.
func (r *RateLimiter) WaitToken(ctx context.Context, tokenID string) error {
	err := r.global.Wait(ctx)
	if err == nil {
		err = r.token(tokenID).Wait(ctx)
	}
	r.record(err == nil)
	return err
}

// Allow returns true if the global bucket permits a request immediately.
func (r *RateLimiter) Allow() bool {
	allowed := r.global.Allow()
	r.record(allowed)
	return allowed
}

// AllowToken returns true if the bucket of tokenID permits a request immediately.
func (r *RateLimiter) AllowToken(tokenID string) bool {
	allowed := r.token(tokenID).Allow()
	r.record(allowed)
	return allowed
}

func (r *RateLimiter) record(allowed bool) {
	r.metrics.totalRequests.Add(1)
	if allowed {
		r.metrics.allowedRequests.Add(1)
	} else {
		r.metrics.deniedRequests.Add(1)
	}
}

func (r *RateLimiter) token(tokenID string) *rate.Limiter {
	if v, ok := r.tokens.Load(tokenID); ok {
		return v.(*rate.Limiter)
	}

	actual, loaded := r.tokens.LoadOrStore(tokenID, newLimiter(r.requests, r.period))
	if !loaded {
		r.metrics.tokenCount.Add(1)
	}
	return actual.(*rate.Limiter)
}

// Metrics returns a snapshot of the current rate limiter statistics.
func (r *RateLimiter) Metrics() MetricsSnapshot {
	return MetricsSnapshot{
		TotalRequests:   r.metrics.totalRequests.Load(),
		AllowedRequests: r.metrics.allowedRequests.Load(),
		DeniedRequests:  r.metrics.deniedRequests.Load(),
		TokenCount:      r.metrics.tokenCount.Load(),
	}
}

// MetricsSnapshot is a point-in-time capture of rate limiter statistics.
type MetricsSnapshot struct {
	TotalRequests   int64
	AllowedRequests int64
	DeniedRequests  int64
	// TokenCount is the number of API tokens with their own bucket.
	TokenCount int32
}
