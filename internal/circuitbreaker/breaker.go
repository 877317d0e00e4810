// Package circuitbreaker stops calling Liquid after repeated failures and
// probes again once a cool-down has passed.
package circuitbreaker

import (
	"sync"
	"time"
)

type State int32

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

type Config struct {
	FailThreshold    int           `json:"fail_threshold"`
	SuccessThreshold int           `json:"success_threshold"`
	Timeout          time.Duration `json:"timeout"`
	// OnStateChange, if set, is called after every transition while the lock is held.
	OnStateChange func(from, to State) `json:"-"`
}

type Breaker struct {
	mu        sync.Mutex
	cfg       Config
	state     State
	failures  int
	successes int
	openedAt  time.Time
	now       func() time.Time
	metrics   MetricsSnapshot
}

func New(config Config) *Breaker {
	return &Breaker{
		cfg:   config,
		state: StateClosed,
		now:   time.Now,
	}
}

// Allow reports whether a call may proceed. An open breaker whose timeout has
// elapsed moves to half-open and lets the probe through.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.metrics.TotalRequests++
	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.Timeout {
			b.metrics.RejectedRequests++
			return false
		}
		b.transitionTo(StateHalfOpen)
	}
	return true
}

// Record reports the outcome of a call that Allow let through.
func (b *Breaker) Record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if success {
		b.metrics.SuccessRequests++
	} else {
		b.metrics.FailedRequests++
	}

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.Timeout {
		b.transitionTo(StateHalfOpen)
	}

	switch b.state {
	case StateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailThreshold {
			b.trip()
		}
	case StateHalfOpen:
		if !success {
			b.trip()
			return
		}
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.transitionTo(StateClosed)
		}
	}
}

func (b *Breaker) trip() {
	b.openedAt = b.now()
	b.transitionTo(StateOpen)
}

func (b *Breaker) transitionTo(to State) {
	from := b.state
	b.state = to
	b.failures = 0
	b.successes = 0
	b.metrics.StateChanges++
	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
}

func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

func (b *Breaker) Successes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.successes
}

func (b *Breaker) Metrics() MetricsSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := b.metrics
	m.CurrentState = b.state.String()
	return m
}

type MetricsSnapshot struct {
	TotalRequests    int64
	SuccessRequests  int64
	FailedRequests   int64
	RejectedRequests int64
	StateChanges     int32
	CurrentState     string
}
