package async

import (
	"context"
	"sync"
	"time"
)

var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Awaitable is an asynchronous operation that is already running.
// Done is closed once the operation completes; Err then reports its failure.
type Awaitable interface {
	Done() <-chan struct{}
	Err() error
}

// Future is the handle of an asynchronous operation producing a value of
// type T or an error. A Future resolves exactly once; every reader observes
// the same outcome.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

// NewFuture returns an unresolved Future. The producer completes it with
// Resolve.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Start runs fn on a new goroutine and returns its Future. A panic inside fn
// resolves the Future with a *PanicError.
//
// Example:
//
//	a := async.Start(func() (int, error) { return fetchA() })
//	b := async.Start(func() (int, error) { return fetchB() })
//	results, err := async.CollectAll([]*async.Future[int]{a, b})
func Start[T any](fn func() (T, error)) *Future[T] {
	f := NewFuture[T]()
	go func() {
		f.Resolve(callWithRecovery(fn))
	}()
	return f
}

// Resolve completes the Future. Only the first call has any effect; it
// reports whether this call resolved the Future.
func (f *Future[T]) Resolve(value T, err error) bool {
	resolved := false
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
		resolved = true
	})
	return resolved
}

// Get blocks until the Future resolves and returns its outcome.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// GetWithContext waits for the outcome or for ctx to be done, whichever comes
// first. Giving up on the wait does not cancel the underlying operation.
func (f *Future[T]) GetWithContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// GetWithTimeout is GetWithContext with a relative deadline.
func (f *Future[T]) GetWithTimeout(timeout time.Duration) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return f.GetWithContext(ctx)
}

// TryGet returns the outcome without blocking. ready is false while the
// operation is still running. A nil Future is resolved with the zero value.
func (f *Future[T]) TryGet() (value T, err error, ready bool) {
	if f == nil {
		return value, nil, true
	}
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

// Done returns a channel closed when the Future resolves. A nil Future is
// treated as already resolved.
func (f *Future[T]) Done() <-chan struct{} {
	if f == nil {
		return closedChan
	}
	return f.done
}

// Err blocks until the Future resolves and returns its error.
func (f *Future[T]) Err() error {
	if f == nil {
		return nil
	}
	<-f.done
	return f.err
}

// IsReady reports whether the Future has resolved.
func (f *Future[T]) IsReady() bool {
	if f == nil {
		return true
	}
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
