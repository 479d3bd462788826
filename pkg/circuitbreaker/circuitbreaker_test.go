package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRemote = errors.New("remote failure")

// fakeClock 手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBreaker(settings Settings) (*Breaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := New("test", settings)
	b.now = clock.Now
	b.resetWindow(clock.Now())
	return b, clock
}

func fail() error    { return errRemote }
func succeed() error { return nil }

func TestBreaker_ClosedState(t *testing.T) {
	b, _ := newTestBreaker(Settings{FailureThreshold: 3, Timeout: time.Second})

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Execute(succeed))
	}
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, uint32(10), b.Counts().TotalSuccesses)
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(Settings{FailureThreshold: 3, Timeout: time.Second})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, b.Execute(fail), errRemote)
	}
	assert.Equal(t, StateOpen, b.State())

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "打开状态不应调用远程服务")
}

func TestBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(Settings{FailureThreshold: 3, Timeout: time.Second})

	_ = b.Execute(fail)
	_ = b.Execute(fail)
	_ = b.Execute(succeed)
	_ = b.Execute(fail)

	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenRecovery(t *testing.T) {
	b, clock := newTestBreaker(Settings{FailureThreshold: 1, Timeout: 5 * time.Second})

	_ = b.Execute(fail)
	require.Equal(t, StateOpen, b.State())

	clock.Advance(6 * time.Second)
	assert.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Execute(succeed))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, clock := newTestBreaker(Settings{FailureThreshold: 1, Timeout: 5 * time.Second})

	_ = b.Execute(fail)
	clock.Advance(6 * time.Second)
	require.Equal(t, StateHalfOpen, b.State())

	_ = b.Execute(fail)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_IsSuccessful(t *testing.T) {
	errMissing := errors.New("no such key")
	b, _ := newTestBreaker(Settings{
		FailureThreshold: 1,
		Timeout:          time.Second,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errMissing)
		},
	})

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, b.Execute(func() error { return errMissing }), errMissing)
	}
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_IntervalResetsCounts(t *testing.T) {
	b, clock := newTestBreaker(Settings{FailureThreshold: 3, Interval: time.Minute, Timeout: time.Second})

	_ = b.Execute(fail)
	_ = b.Execute(fail)
	clock.Advance(2 * time.Minute)
	_ = b.Execute(fail)

	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, uint32(1), b.Counts().ConsecutiveFailures)
}

func TestBreaker_OnStateChange(t *testing.T) {
	var transitions []string
	b, clock := newTestBreaker(Settings{
		FailureThreshold: 1,
		Timeout:          time.Second,
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = b.Execute(fail)
	clock.Advance(2 * time.Second)
	_ = b.Execute(succeed)

	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
}
