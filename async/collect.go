package async

import (
	"golang.org/x/sync/errgroup"
)

// CollectAll waits for every Future to resolve and returns their values in
// input order.
//
// The operations must already be running; CollectAll neither starts nor
// cancels them. If any fail, CollectAll still waits for all of them and then
// returns an *AggregateError. Its message is the first failure observed, and
// it unwraps to every failure. Values of the operations that succeeded are
// discarded in that case.
//
// A nil slice returns (nil, nil) immediately. An empty slice returns an empty
// result.
//
// There is no cancellation or timeout. Callers that need a bounded wait can
// use Future.GetWithContext on their own.
func CollectAll[T any](futures []*Future[T]) ([]T, error) {
	if futures == nil {
		return nil, nil
	}

	results := make([]T, len(futures))
	err := join(len(futures), func(i int) error {
		if futures[i] == nil {
			return nil
		}
		v, err := futures[i].Get()
		if err != nil {
			return err
		}
		results[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// AwaitAll is the value-less form of CollectAll. It blocks until every
// operation completes and returns an *AggregateError if any failed.
// A nil slice returns nil immediately.
func AwaitAll[A Awaitable](ops []A) error {
	if ops == nil {
		return nil
	}

	return join(len(ops), func(i int) error {
		op := ops[i]
		if any(op) == nil {
			return nil
		}
		<-op.Done()
		return op.Err()
	})
}

// join waits on n slots concurrently. Every slot runs to completion; slot
// errors are recorded by index and the first one reported by the group is
// kept as the headline failure.
func join(n int, wait func(i int) error) error {
	if n == 0 {
		return nil
	}

	var g errgroup.Group
	errs := make([]error, n)

	for i := range n {
		g.Go(func() error {
			// Each slot owns errs[i]; Wait orders these writes before the reads below.
			errs[i] = wait(i)
			return errs[i]
		})
	}

	// errgroup.Group without a context never cancels siblings; Wait returns
	// once all slots are done, carrying the first error set.
	first := g.Wait()
	if first == nil {
		return nil
	}

	agg := &AggregateError{first: first}
	for i, err := range errs {
		if err != nil {
			agg.Errors = append(agg.Errors, err)
			agg.Indexes = append(agg.Indexes, i)
		}
	}
	return agg
}
