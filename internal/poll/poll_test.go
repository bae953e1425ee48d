package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/histora/internal/core/domain"
)

// fakeClock advances instantly on Sleep.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	return nil
}

func TestUntil_DoneOnFirstCheck(t *testing.T) {
	clk := &fakeClock{now: time.Unix(0, 0)}
	calls := 0

	err := Until(context.Background(), clk, 10*time.Second, time.Minute,
		func(context.Context) (bool, error) {
			calls++
			return true, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []time.Duration{10 * time.Second}, clk.sleeps)
}

func TestUntil_DoneAfterSeveralChecks(t *testing.T) {
	clk := &fakeClock{now: time.Unix(0, 0)}
	calls := 0

	err := Until(context.Background(), clk, 10*time.Second, time.Minute,
		func(context.Context) (bool, error) {
			calls++
			return calls == 3, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestUntil_CeilingExceeded(t *testing.T) {
	clk := &fakeClock{now: time.Unix(0, 0)}
	calls := 0

	err := Until(context.Background(), clk, 10*time.Second, time.Minute,
		func(context.Context) (bool, error) {
			calls++
			return false, nil
		})

	assert.ErrorIs(t, err, domain.ErrTimeout)
	// 60s ceiling at 10s intervals: checks at 10..60s, timeout detected
	// before the would-be seventh check.
	assert.Equal(t, 6, calls)
}

func TestUntil_CheckErrorPropagates(t *testing.T) {
	clk := &fakeClock{now: time.Unix(0, 0)}
	boom := errors.New("boom")

	err := Until(context.Background(), clk, time.Second, time.Minute,
		func(context.Context) (bool, error) {
			return false, boom
		})

	assert.ErrorIs(t, err, boom)
}

func TestUntil_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	clk := SystemClock{}

	err := Until(ctx, clk, time.Minute, time.Hour,
		func(context.Context) (bool, error) {
			return false, nil
		})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSystemClock_SleepReturnsQuickly(t *testing.T) {
	clk := SystemClock{}
	start := time.Now()
	err := clk.Sleep(context.Background(), time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond)
}
