package backoff

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoAttempts is returned by Retry when attempts < 1.
var ErrNoAttempts = errors.New("backoff: attempts must be at least 1")

// Retry calls fn up to attempts times, waiting strategy.NextDelay between
// failures. It stops early when fn succeeds or ctx is done. onRetry, if set,
// is called before each wait with the 1-based attempt that just failed.
func Retry(
	ctx context.Context,
	strategy Strategy,
	attempts int,
	fn func(ctx context.Context) error,
	onRetry func(attempt int, err error),
) error {
	if attempts < 1 {
		return ErrNoAttempts
	}

	strategy.Reset()

	var err error
	for attempt := range attempts {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err = fn(ctx); err == nil {
			return nil
		}

		if attempt == attempts-1 {
			break
		}

		if onRetry != nil {
			onRetry(attempt+1, err)
		}

		if delay := strategy.NextDelay(attempt); delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("backoff: %d attempts failed: %w", attempts, err)
}
