// Package random provides a single, mutex-guarded pseudo-random source meant
// to be constructed once at process start and shared by every component that
// needs randomness (jitter, backoff, sampling).
//
// math/rand generators are not safe for concurrent use; unsynchronized draws
// corrupt the generator state rather than merely biasing the output. Source
// serializes every draw behind one lock.
package random

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// ErrOutOfRange is returned when a bounded draw is called with an invalid range.
var ErrOutOfRange = errors.New("random: argument out of range")

// Source is a thread-safe pseudo-random integer source.
// The zero value is not usable; construct with New or NewWithSource.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Source seeded from the wall clock.
func New() *Source {
	return NewWithSource(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- not used for security
}

// NewWithSource creates a Source backed by src. Useful when a reproducible
// sequence is wanted in tests.
func NewWithSource(src rand.Source) *Source {
	return &Source{
		rng: rand.New(src), // #nosec G404
	}
}

// Next returns a non-negative pseudo-random int.
func (s *Source) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int()
}

// NextN returns a pseudo-random int in [0, maxExclusive).
//
// For maxExclusive <= 1 the range holds at most one value, so maxExclusive
// itself is returned and the generator is not advanced.
func (s *Source) NextN(maxExclusive int) (int, error) {
	if maxExclusive < 0 {
		return 0, fmt.Errorf("%w: maxExclusive %d is negative", ErrOutOfRange, maxExclusive)
	}

	if maxExclusive <= 1 {
		return maxExclusive, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(maxExclusive), nil
}

// NextRange returns a pseudo-random int in [min, maxExclusive).
//
// When the range is empty or holds a single value, min is returned without
// advancing the generator.
func (s *Source) NextRange(min, maxExclusive int) (int, error) {
	if min > maxExclusive {
		return 0, fmt.Errorf("%w: min %d is greater than maxExclusive %d", ErrOutOfRange, min, maxExclusive)
	}

	// maxExclusive-min can overflow int when the bounds straddle zero at the
	// extremes, and maxExclusive-1 wraps at MinInt; the uint64 span does neither.
	span := uint64(maxExclusive) - uint64(min)
	if span <= 1 {
		return min, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if span <= uint64(1<<63-1) {
		return min + int(s.rng.Int63n(int64(span))), nil
	}
	for {
		v := s.rng.Uint64()
		if v < span {
			return int(uint64(min) + v), nil
		}
	}
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Int63n returns a pseudo-random int64 in [0, n). It panics if n <= 0,
// matching math/rand; callers that need validation should use NextN.
func (s *Source) Int63n(n int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int63n(n)
}
