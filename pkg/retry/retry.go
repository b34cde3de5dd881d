// Package retry provides a bounded retry with exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Policy describes how many times an operation is attempted and how long
// to wait between attempts. The wait before attempt n+1 is Base*2^n,
// where n starts from 0.
type Policy struct {
	MaxAttempts int
	Base        time.Duration
	// Name is used in log messages.
	Name string
}

// ErrExhausted is wrapped by the error returned when all attempts failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Delay returns the backoff before the attempt that follows attempt n
// (0-based).
func (p Policy) Delay(n int) time.Duration {
	return p.Base * time.Duration(1<<n)
}

// Do calls fn until it succeeds, the attempts are exhausted, or the
// context is cancelled. Context errors are returned as is, without
// further attempts.
func Do[T any](
	ctx context.Context,
	p Policy,
	fn func(context.Context) (T, error),
) (T, error) {
	var zero T
	attempts := max(p.MaxAttempts, 1)

	var lastErr error
	for n := range attempts {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		res, err := fn(ctx)
		if err == nil {
			return res, nil
		}
		if errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		lastErr = err

		if n == attempts-1 {
			break
		}

		delay := p.Delay(n)
		slog.Warn("Attempt failed, retrying",
			"op", p.Name,
			"attempt", n+1,
			"delay", delay,
			"error", err,
		)
		if err = Sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%w after %d attempts: %w",
		ErrExhausted, attempts, lastErr)
}

// Sleep pauses for d or until the context is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
