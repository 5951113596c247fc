package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/utkarsh5026/asyncutil/async"
	"github.com/utkarsh5026/asyncutil/internal/backoff"
	"github.com/utkarsh5026/asyncutil/internal/config"
	"github.com/utkarsh5026/asyncutil/internal/cpu"
	"github.com/utkarsh5026/asyncutil/random"
)

// benchEnv is the shared state every scenario runs against. One random
// source and one launcher serve the whole run.
type benchEnv struct {
	cfg      config.Config
	logger   logrus.FieldLogger
	rng      *random.Source
	launcher *async.Launcher
}

type scenario struct {
	name string
	run  func(env *benchEnv) (detail string, err error)
}

type scenarioResult struct {
	Name     string
	Detail   string
	Err      error
	Duration time.Duration
}

var errInjected = errors.New("injected failure")

func scenarios() []scenario {
	return []scenario{
		{name: "random-contention", run: randomContention},
		{name: "collect-ordered", run: collectOrdered},
		{name: "collect-failure", run: collectFailure},
		{name: "fire-and-forget", run: fireAndForget},
		{name: "backoff-retry", run: backoffRetry},
	}
}

// randomContention hammers the shared source from one goroutine per core
// and checks every bounded draw lands in range.
func randomContention(env *benchEnv) (string, error) {
	workers := cpu.NumCPU()
	draws := env.cfg.Tasks * 100

	ops := make([]*async.Future[struct{}], workers)
	for w := range ops {
		ops[w] = async.Start(func() (struct{}, error) {
			for i := range draws {
				switch i % 3 {
				case 0:
					if v := env.rng.Next(); v < 0 {
						return struct{}{}, fmt.Errorf("Next returned %d", v)
					}
				case 1:
					v, err := env.rng.NextN(100)
					if err != nil || v < 0 || v >= 100 {
						return struct{}{}, fmt.Errorf("NextN(100) returned %d, %v", v, err)
					}
				case 2:
					v, err := env.rng.NextRange(-50, 50)
					if err != nil || v < -50 || v >= 50 {
						return struct{}{}, fmt.Errorf("NextRange(-50, 50) returned %d, %v", v, err)
					}
				}
			}
			return struct{}{}, nil
		})
	}

	if err := async.AwaitAll(ops); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d workers x %d draws", workers, draws), nil
}

// collectOrdered submits tasks that finish in random order and checks the
// collected values still line up with their submission index.
func collectOrdered(env *benchEnv) (string, error) {
	n := env.cfg.Tasks
	futures := make([]*async.Future[int], n)
	for i := range futures {
		delay := jitter(env.rng, 5*time.Millisecond)
		futures[i] = async.Submit(env.launcher, func() (int, error) {
			time.Sleep(delay)
			return i, nil
		}, async.Named("ordered"))
	}

	values, err := async.CollectAll(futures)
	if err != nil {
		return "", err
	}
	for i, v := range values {
		if v != i {
			return "", fmt.Errorf("values[%d] = %d, submission order lost", i, v)
		}
	}
	return fmt.Sprintf("%d values in submission order", n), nil
}

// collectFailure fails one task early and checks the collector still waits
// for every sibling before reporting it.
func collectFailure(env *benchEnv) (string, error) {
	n := max(env.cfg.Tasks, 2)
	failAt, err := env.rng.NextN(n)
	if err != nil {
		return "", err
	}

	var completed atomic.Int64
	futures := make([]*async.Future[int], n)
	for i := range futures {
		delay := jitter(env.rng, 10*time.Millisecond)
		futures[i] = async.Submit(env.launcher, func() (int, error) {
			if i == failAt {
				return 0, errInjected
			}
			time.Sleep(delay)
			completed.Add(1)
			return i, nil
		}, async.Named("sibling"))
	}

	values, err := async.CollectAll(futures)
	if values != nil {
		return "", errors.New("expected no values on failure")
	}

	var agg *async.AggregateError
	if !errors.As(err, &agg) || !errors.Is(err, errInjected) {
		return "", fmt.Errorf("expected aggregate wrapping the injected failure, got %v", err)
	}
	if !slices.Equal(agg.Indexes, []int{failAt}) {
		return "", fmt.Errorf("expected failure at index %d, got %v", failAt, agg.Indexes)
	}
	if got := completed.Load(); got != int64(n-1) {
		return "", fmt.Errorf("collector returned with %d of %d siblings finished", got, n-1)
	}
	return fmt.Sprintf("failure at %d reported after %d siblings", failAt, n-1), nil
}

// fireAndForget launches pooled, long-running and panicking work without
// observing any of it, then drains the launcher.
func fireAndForget(env *benchEnv) (string, error) {
	var ran atomic.Int64
	for range env.cfg.Tasks {
		env.launcher.Launch(func() { ran.Add(1) })
	}

	env.launcher.Launch(func() {
		time.Sleep(20 * time.Millisecond)
		ran.Add(1)
	}, async.LongRunning(), async.Named("poller"))

	env.launcher.Launch(func() { panic(errInjected) }, async.Named("exploder"))
	async.LaunchFunc(env.launcher, func() error { return errInjected }, async.Named("discarded"))

	if err := env.launcher.Drain(env.cfg.DrainTimeout); err != nil {
		return "", err
	}
	if want := int64(env.cfg.Tasks + 1); ran.Load() != want {
		return "", fmt.Errorf("expected %d completed launches, got %d", want, ran.Load())
	}
	return fmt.Sprintf("%d pooled, 1 long-running, 1 panic swallowed", env.cfg.Tasks), nil
}

// backoffRetry retries a flaky call with the configured strategy, then
// checks that exhausting every attempt surfaces the last error.
func backoffRetry(env *benchEnv) (string, error) {
	typ, err := env.cfg.BackoffType()
	if err != nil {
		return "", err
	}
	b := env.cfg.Backoff
	strategy := backoff.New(typ, b.Initial, b.Max, b.Jitter, env.rng)

	ctx, cancel := context.WithTimeout(context.Background(), env.cfg.DrainTimeout)
	defer cancel()

	onRetry := func(attempt int, err error) {
		env.logger.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err,
		}).Debug("retrying flaky call")
	}

	var calls int
	err = backoff.Retry(ctx, strategy, b.Attempts, func(context.Context) error {
		calls++
		if calls < b.Attempts {
			return errInjected
		}
		return nil
	}, onRetry)
	if err != nil {
		return "", fmt.Errorf("flaky call: %w", err)
	}

	err = backoff.Retry(ctx, strategy, b.Attempts, func(context.Context) error {
		return errInjected
	}, onRetry)
	if !errors.Is(err, errInjected) {
		return "", fmt.Errorf("expected exhausted retries to wrap the last failure, got %v", err)
	}

	return fmt.Sprintf("%s: recovered after %d attempts", b.Strategy, calls), nil
}

func jitter(rng *random.Source, upTo time.Duration) time.Duration {
	return time.Duration(rng.Int63n(int64(upTo)))
}
