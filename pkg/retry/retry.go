// Package retry runs an operation a bounded number of times with a
// fixed backoff between attempts. It always terminates: callers get a
// typed outcome instead of looping on errors themselves.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrExhausted = errors.New("retry_exhausted")

// Config bounds a retryable operation.
type Config struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultConfig suits short repository reads.
func DefaultConfig() Config {
	return Config{MaxAttempts: 3, Backoff: 100 * time.Millisecond}
}

// Do invokes op until it succeeds, the context is done, or attempts
// run out. On exhaustion the returned error wraps ErrExhausted and the
// last failure.
func Do(ctx context.Context, cfg Config, op func(ctx context.Context) error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt < cfg.MaxAttempts && cfg.Backoff > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.Backoff):
			}
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, cfg.MaxAttempts, lastErr)
}
