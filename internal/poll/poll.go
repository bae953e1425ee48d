// Package poll provides synchronous fixed-interval polling with a
// wall-clock ceiling. Both OCR job polling and index sync polling use
// it; injecting a Clock keeps those loops testable without real
// delays.
package poll

import (
	"context"
	"time"

	"github.com/custodia-labs/histora/internal/core/domain"
)

// Clock abstracts time for polling loops and rate delays.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep blocks for d or until ctx is cancelled.
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the real-time Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep blocks for d or until ctx is cancelled.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Until calls check at fixed intervals until it reports done, an error
// occurs, or the wall-clock ceiling is exceeded. The first check runs
// after one interval, matching a job that can never complete
// instantly. Returns domain.ErrTimeout when the ceiling expires.
func Until(ctx context.Context, clk Clock, interval, ceiling time.Duration, check func(context.Context) (bool, error)) error {
	start := clk.Now()
	for {
		if clk.Now().Sub(start) >= ceiling {
			return domain.ErrTimeout
		}
		if err := clk.Sleep(ctx, interval); err != nil {
			return err
		}
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}
