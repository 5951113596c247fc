package async

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// LauncherOption is a functional option for configuring a Launcher.
type LauncherOption func(*launcherConfig)

type launcherConfig struct {
	poolSize    int
	rateLimiter *rate.Limiter
	logger      logrus.FieldLogger
	metrics     *Metrics
	pinCores    bool

	beforeStart func(TaskInfo)
	onEnd       func(TaskInfo, error)
	onPanic     func(TaskInfo, *PanicError)
}

// WithPoolSize caps how many pooled (not long-running) units of work execute
// at once. Work beyond the cap waits on its own goroutine; Launch never
// blocks. The default is unbounded.
func WithPoolSize(size int) LauncherOption {
	return func(cfg *launcherConfig) {
		if size > 0 {
			cfg.poolSize = size
		}
	}
}

// WithRateLimit throttles how fast launched work starts running.
// tasksPerSecond is the sustained rate and burst the bucket size.
// If not specified, no rate limiting is applied.
//
// Example:
//
//	WithRateLimit(10, 5) // 10 starts/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) LauncherOption {
	return func(cfg *launcherConfig) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithLogger sets the logger used to report recovered panics and discarded
// errors. Defaults to logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) LauncherOption {
	return func(cfg *launcherConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMetrics records launcher activity into m.
func WithMetrics(m *Metrics) LauncherOption {
	return func(cfg *launcherConfig) {
		cfg.metrics = m
	}
}

// WithCorePinning pins each long-running unit's dedicated thread to a CPU
// core, assigned round-robin. Pinning is best effort; platforms without
// support still get a dedicated thread.
func WithCorePinning(enabled bool) LauncherOption {
	return func(cfg *launcherConfig) {
		cfg.pinCores = enabled
	}
}

// WithBeforeStart registers a hook called on the worker goroutine right
// before a unit of work runs.
func WithBeforeStart(fn func(TaskInfo)) LauncherOption {
	return func(cfg *launcherConfig) {
		cfg.beforeStart = fn
	}
}

// WithOnEnd registers a hook called after a unit of work finishes. err is the
// discarded error or a *PanicError, nil on success.
func WithOnEnd(fn func(TaskInfo, error)) LauncherOption {
	return func(cfg *launcherConfig) {
		cfg.onEnd = fn
	}
}

// WithPanicHandler registers a hook receiving panics recovered from launched
// work. The hook runs on the failed unit's goroutine.
func WithPanicHandler(fn func(TaskInfo, *PanicError)) LauncherOption {
	return func(cfg *launcherConfig) {
		cfg.onPanic = fn
	}
}

func (cfg *launcherConfig) slots() *semaphore.Weighted {
	if cfg.poolSize <= 0 {
		return nil
	}
	return semaphore.NewWeighted(int64(cfg.poolSize))
}

// LaunchOption tunes a single Launch call.
type LaunchOption func(*launchConfig)

type launchConfig struct {
	name        string
	longRunning bool
}

// LongRunning hints that the work runs for an extended period. It skips the
// pooled slots and runs on a dedicated OS thread so it cannot starve shorter
// work. The hint is advisory.
func LongRunning() LaunchOption {
	return func(cfg *launchConfig) {
		cfg.longRunning = true
	}
}

// Named attaches a name used in logs and hooks.
func Named(name string) LaunchOption {
	return func(cfg *launchConfig) {
		cfg.name = name
	}
}
