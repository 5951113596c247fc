package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/utkarsh5026/asyncutil/random"
)

func TestRetry(t *testing.T) {
	fast := New(Jittered, time.Millisecond, 5*time.Millisecond, 0.5, random.New())

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		var retried []int

		err := Retry(context.Background(), fast, 5, func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("flaky")
			}
			return nil
		}, func(attempt int, _ error) {
			retried = append(retried, attempt)
		})

		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 calls, got %d", calls)
		}
		if len(retried) != 2 || retried[0] != 1 || retried[1] != 2 {
			t.Errorf("expected retries [1 2], got %v", retried)
		}
	})

	t.Run("returns last error wrapped", func(t *testing.T) {
		last := errors.New("still failing")
		calls := 0

		err := Retry(context.Background(), fast, 3, func(context.Context) error {
			calls++
			return last
		}, nil)

		if !errors.Is(err, last) {
			t.Errorf("expected wrapped %v, got %v", last, err)
		}
		if calls != 3 {
			t.Errorf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		slow := New(Exponential, time.Second, time.Second, 0, nil)

		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		err := Retry(ctx, slow, 5, func(context.Context) error {
			return errors.New("nope")
		}, nil)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("rejects zero attempts", func(t *testing.T) {
		err := Retry(context.Background(), fast, 0, func(context.Context) error { return nil }, nil)
		if !errors.Is(err, ErrNoAttempts) {
			t.Errorf("expected ErrNoAttempts, got %v", err)
		}
	})
}
