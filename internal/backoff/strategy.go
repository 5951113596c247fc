// Package backoff computes retry delays. The randomized strategies draw from
// a shared *random.Source rather than owning a generator.
package backoff

import (
	"sync"
	"time"

	"github.com/utkarsh5026/asyncutil/random"
)

const (
	maxShift = 62 // 1<<63 overflows time.Duration
)

// Type selects a backoff algorithm.
type Type int

const (
	// Exponential doubles the delay each attempt (default).
	Exponential Type = iota
	// Jittered spreads the exponential delay by ±jitterFactor.
	Jittered
	// Decorrelated uses decorrelated jitter: random(initial, prev*3).
	Decorrelated
)

// Strategy calculates the delay before a retry.
type Strategy interface {
	// NextDelay returns the wait before retry attemptNumber (0 = first retry).
	NextDelay(attemptNumber int) time.Duration

	// Reset clears per-task state for stateful strategies.
	Reset()
}

// New returns the strategy for t. rng is required for Jittered and
// Decorrelated; with a nil rng they fall back to Exponential.
func New(t Type, initialDelay, maxDelay time.Duration, jitterFactor float64, rng *random.Source) Strategy {
	if rng != nil {
		switch t {
		case Jittered:
			return newJittered(initialDelay, maxDelay, jitterFactor, rng)
		case Decorrelated:
			return newDecorrelated(initialDelay, maxDelay, rng)
		}
	}
	return &exponential{initialDelay: initialDelay, maxDelay: maxDelay}
}

// exponential: initialDelay * 2^attempt, capped at maxDelay.
type exponential struct {
	initialDelay time.Duration
	maxDelay     time.Duration
}

func (e *exponential) NextDelay(attemptNumber int) time.Duration {
	return exponentialDelay(attemptNumber, e.initialDelay, e.maxDelay)
}

func (e *exponential) Reset() {}

func exponentialDelay(attemptNumber int, initialDelay, maxDelay time.Duration) time.Duration {
	if attemptNumber < 0 {
		return 0
	}
	if attemptNumber > maxShift {
		return maxDelay
	}

	factor := time.Duration(int64(1) << uint(attemptNumber))
	if initialDelay > 0 && factor > maxDelay/initialDelay {
		return maxDelay
	}
	return min(factor*initialDelay, maxDelay)
}

// jittered multiplies the exponential delay by a factor in
// [1-jitterFactor, 1+jitterFactor] so simultaneous failures do not retry in
// lockstep.
type jittered struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	jitterFactor float64
	rng          *random.Source
}

func newJittered(initialDelay, maxDelay time.Duration, jitterFactor float64, rng *random.Source) *jittered {
	return &jittered{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
		jitterFactor: clamp(jitterFactor, 0, 1),
		rng:          rng,
	}
}

func (j *jittered) NextDelay(attemptNumber int) time.Duration {
	if attemptNumber < 0 {
		return 0
	}

	base := exponentialDelay(attemptNumber, j.initialDelay, j.maxDelay)
	multiplier := 1.0 + (j.rng.Float64()*2-1)*j.jitterFactor

	return clamp(time.Duration(float64(base)*multiplier), 0, j.maxDelay)
}

func (j *jittered) Reset() {}

// decorrelated picks each delay uniformly from [initialDelay, 3*previous],
// capped at maxDelay. It keeps per-task state, so share an instance only
// between retries of the same task.
type decorrelated struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	prevDelay    time.Duration
	rng          *random.Source
	mu           sync.Mutex
}

func newDecorrelated(initialDelay, maxDelay time.Duration, rng *random.Source) *decorrelated {
	return &decorrelated{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
		prevDelay:    initialDelay,
		rng:          rng,
	}
}

func (d *decorrelated) NextDelay(attemptNumber int) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	if attemptNumber == 0 {
		d.prevDelay = d.initialDelay
		return d.initialDelay
	}

	upper := min(time.Duration(float64(d.prevDelay)*3), d.maxDelay)
	span := upper - d.initialDelay
	if span <= 0 {
		d.prevDelay = d.initialDelay
		return d.initialDelay
	}

	delay := d.initialDelay + time.Duration(d.rng.Int63n(int64(span)))
	d.prevDelay = delay
	return delay
}

func (d *decorrelated) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prevDelay = d.initialDelay
}

func clamp[T int | int64 | float64 | time.Duration](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
