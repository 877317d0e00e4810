package circuitbreaker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(fail, success int, timeout time.Duration) (*Breaker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	b := New(Config{
		FailThreshold:    fail,
		SuccessThreshold: success,
		Timeout:          timeout,
	})
	b.now = clock.now
	return b, clock
}

func TestState_String(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"closed", StateClosed, "CLOSED"},
		{"open", StateOpen, "OPEN"},
		{"half_open", StateHalfOpen, "HALF_OPEN"},
		{"unknown", State(9), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

func TestBreaker_New(t *testing.T) {
	breaker := New(Config{FailThreshold: 5, SuccessThreshold: 2, Timeout: 30 * time.Second})

	assert.Equal(t, StateClosed, breaker.State())
	assert.True(t, breaker.Allow())
}

func TestBreaker_TransitionToOpen(t *testing.T) {
	breaker, _ := newTestBreaker(3, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	assert.Equal(t, StateClosed, breaker.State())

	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())

	assert.False(t, breaker.Allow())
	assert.Equal(t, int64(1), breaker.Metrics().RejectedRequests)
}

func TestBreaker_TransitionToHalfOpen(t *testing.T) {
	breaker, clock := newTestBreaker(2, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())

	clock.advance(time.Second)

	assert.True(t, breaker.Allow())
	assert.Equal(t, StateHalfOpen, breaker.State())

	breaker.Record(true)
	assert.Equal(t, StateHalfOpen, breaker.State())
}

func TestBreaker_TransitionToClosed(t *testing.T) {
	breaker, clock := newTestBreaker(2, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	clock.advance(2 * time.Second)

	breaker.Record(true)
	assert.Equal(t, StateHalfOpen, breaker.State())

	breaker.Record(true)
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	breaker, clock := newTestBreaker(2, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	clock.advance(time.Second)

	assert.True(t, breaker.Allow())
	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())
	assert.False(t, breaker.Allow())
}

func TestBreaker_OnStateChange(t *testing.T) {
	var transitions []string
	breaker := New(Config{
		FailThreshold:    1,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		OnStateChange: func(from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	breaker.Record(false)

	assert.Equal(t, []string{"CLOSED->OPEN"}, transitions)
}

func TestBreaker_Reset(t *testing.T) {
	breaker, _ := newTestBreaker(2, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())

	breaker.Reset()

	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, 0, breaker.Failures())
	assert.Equal(t, 0, breaker.Successes())
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	breaker, _ := newTestBreaker(5, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	breaker.Record(false)
	assert.Equal(t, 3, breaker.Failures())

	breaker.Record(true)
	assert.Equal(t, 0, breaker.Failures())
}

func TestBreaker_Metrics(t *testing.T) {
	breaker, _ := newTestBreaker(1, 1, time.Minute)

	breaker.Allow()
	breaker.Record(true)
	breaker.Allow()
	breaker.Record(false)

	m := breaker.Metrics()
	assert.Equal(t, int64(2), m.TotalRequests)
	assert.Equal(t, int64(1), m.SuccessRequests)
	assert.Equal(t, int64(1), m.FailedRequests)
	assert.Equal(t, int32(1), m.StateChanges)
	assert.Equal(t, "OPEN", m.CurrentState)
}
