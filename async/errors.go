package async

import (
	"errors"
	"fmt"
)

// ErrDrainTimeout is returned by Launcher.Drain when in-flight work does not
// finish before the deadline.
var ErrDrainTimeout = errors.New("async: drain timeout reached")

// AggregateError reports the failures of a collected set of operations.
//
// Error() describes the first failure observed in completion order. Errors
// holds every failure in input order, with Indexes giving each one's position
// in the input slice, and both errors.Is and errors.As see all of them.
type AggregateError struct {
	Errors  []error
	Indexes []int

	first error
}

func (e *AggregateError) Error() string {
	first := e.First()
	if first == nil {
		return "async: no failures"
	}
	if len(e.Errors) <= 1 {
		return first.Error()
	}
	return fmt.Sprintf("%v (and %d more failures)", first, len(e.Errors)-1)
}

// First returns the failure that was observed first.
func (e *AggregateError) First() error {
	if e.first != nil {
		return e.first
	}
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return nil
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}
