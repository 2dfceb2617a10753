package llm

import (
	"context"
	"time"
)

// Retry constants, grounded on spec.md §7: 3 attempts, exponential backoff,
// base 3s, cap ~30s.
const (
	MaxAttempts  = 3
	BaseDelay    = 3 * time.Second
	MaxDelay     = 30 * time.Second
)

// Retry runs fn up to MaxAttempts times with exponential backoff (base
// BaseDelay, capped at MaxDelay), returning the first success or the last
// error. It aborts early if ctx is cancelled.
func Retry(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	var lastErr error
	delay := BaseDelay
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			if delay > MaxDelay {
				delay = MaxDelay
			}
		}
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", lastErr
}
