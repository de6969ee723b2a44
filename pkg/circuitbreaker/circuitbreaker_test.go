package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("downstream unavailable")

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(clock *fakeClock, transitions *[]string) *CircuitBreaker {
	cb := New("test", Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
		OnStateChange: func(_ string, from, to State) {
			*transitions = append(*transitions, from.String()+"->"+to.String())
		},
	})
	cb.now = clock.Now
	cb.toNewGeneration(clock.Now())
	return cb
}

func fail(context.Context) error    { return errDown }
func succeed(context.Context) error { return nil }

func TestCircuitBreaker_StaysClosedOnSuccess(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	var transitions []string
	cb := newTestBreaker(clock, &transitions)

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(context.Background(), succeed))
	}

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)
	assert.Empty(t, transitions)
}

func TestCircuitBreaker_TripsAndRecovers(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	var transitions []string
	cb := newTestBreaker(clock, &transitions)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, fail), errDown)
	}
	assert.Equal(t, StateOpen, cb.State())

	// 熔断期间不调用下游
	called := false
	err := cb.Execute(ctx, func(context.Context) error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called)

	// 超时后进入半开，探测成功恢复
	clock.Advance(31 * time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())
	require.NoError(t, cb.Execute(ctx, succeed))
	assert.Equal(t, StateClosed, cb.State())

	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	var transitions []string
	cb := newTestBreaker(clock, &transitions)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, fail)
	}
	clock.Advance(31 * time.Second)

	assert.ErrorIs(t, cb.Execute(ctx, fail), errDown)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_WindowResetsCounts(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	var transitions []string
	cb := newTestBreaker(clock, &transitions)

	_ = cb.Execute(ctx, fail)
	_ = cb.Execute(ctx, fail)
	clock.Advance(11 * time.Second)
	_ = cb.Execute(ctx, fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)
}

func TestCircuitBreaker_CancelledContext(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	var transitions []string
	cb := newTestBreaker(clock, &transitions)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, cb.Execute(ctx, succeed), context.Canceled)
	assert.Zero(t, cb.Counts().Requests)
}

func TestCounts_FailureRate(t *testing.T) {
	assert.Zero(t, Counts{}.FailureRate())
	assert.InDelta(t, 0.25, Counts{Requests: 4, TotalFailures: 1}.FailureRate(), 1e-9)
}
