package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(threshold int, reset time.Duration) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker(threshold, reset, time.Minute, nil, nil)
	cb.now = clock.now
	return cb, clock
}

func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	cb, _ := newTestBreaker(3, 30*time.Second)

	cb.RecordFailure(0)
	cb.RecordFailure(0)
	assert.True(t, cb.CanExecute())

	cb.RecordFailure(0)
	assert.False(t, cb.CanExecute())

	status := cb.GetStatus()
	assert.Equal(t, CircuitStateOpen, status.State)
	assert.Equal(t, 3, status.FailureCount)
	require.NotNil(t, status.NextRetryTime)
}

func TestCircuitBreakerHalfOpensAfterTimeout(t *testing.T) {
	cb, clock := newTestBreaker(1, 30*time.Second)

	cb.RecordFailure(0)
	require.Equal(t, CircuitStateOpen, cb.GetState())

	clock.advance(29 * time.Second)
	assert.Equal(t, CircuitStateOpen, cb.GetState())

	clock.advance(time.Second)
	assert.Equal(t, CircuitStateHalfOpen, cb.GetState())

	cb.RecordSuccess()
	assert.Equal(t, CircuitStateClosed, cb.GetState())
	assert.Equal(t, 0, cb.GetStatus().FailureCount)
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(2, 10*time.Second)

	cb.RecordFailure(0)
	cb.RecordFailure(0)
	clock.advance(10 * time.Second)
	require.Equal(t, CircuitStateHalfOpen, cb.GetState())

	cb.RecordFailure(0)
	assert.Equal(t, CircuitStateOpen, cb.GetState())
}

func TestCircuitBreakerCustomTimeout(t *testing.T) {
	cb, clock := newTestBreaker(1, 10*time.Second)

	cb.RecordFailure(time.Hour)
	clock.advance(10 * time.Minute)
	assert.Equal(t, CircuitStateOpen, cb.GetState())

	clock.advance(time.Hour)
	assert.Equal(t, CircuitStateHalfOpen, cb.GetState())
}

func TestCircuitBreakerSuccessResetsCount(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Second)

	cb.RecordFailure(0)
	cb.RecordFailure(0)
	cb.RecordSuccess()
	cb.RecordFailure(0)

	assert.Equal(t, CircuitStateClosed, cb.GetState())
	assert.Equal(t, 1, cb.GetStatus().FailureCount)

	cb.Reset()
	assert.Equal(t, 0, cb.GetStatus().FailureCount)
}
