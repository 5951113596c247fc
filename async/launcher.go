package async

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/utkarsh5026/asyncutil/internal/cpu"
)

// TaskInfo identifies one unit of launched work in hooks and logs.
type TaskInfo struct {
	ID          int64
	Name        string
	LongRunning bool

	// observed is set for Submit, whose caller receives the error.
	observed bool
}

// Launcher starts fire-and-forget background work.
//
// IMPORTANT: failures inside launched work are NOT reported to the caller of
// Launch. Panics are recovered, logged and counted; returned errors are
// logged and counted; then both are dropped. Work that must react to its own
// failure has to handle it inside the function it launches. Use Submit and
// CollectAll when the caller needs the outcome.
//
// A Launcher is safe for concurrent use. Construct one at process start and
// share it.
type Launcher struct {
	slots       *semaphore.Weighted
	rateLimiter *rate.Limiter
	logger      logrus.FieldLogger
	metrics     *Metrics
	pinCores    bool

	beforeStart func(TaskInfo)
	onEnd       func(TaskInfo, error)
	onPanic     func(TaskInfo, *PanicError)

	mu       sync.Mutex
	running  int64
	idle     chan struct{} // closed while running == 0
	taskID   atomic.Int64
	nextCore atomic.Int64
}

// NewLauncher creates a Launcher with the given options.
//
// Default configuration:
//   - pool size: unbounded
//   - rate limit: none
//   - logger: logrus.StandardLogger()
//   - metrics: none
//   - core pinning: off
func NewLauncher(opts ...LauncherOption) *Launcher {
	cfg := &launcherConfig{
		logger: logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Launcher{
		idle:        closedChan,
		slots:       cfg.slots(),
		rateLimiter: cfg.rateLimiter,
		logger:      cfg.logger,
		metrics:     cfg.metrics,
		pinCores:    cfg.pinCores,
		beforeStart: cfg.beforeStart,
		onEnd:       cfg.onEnd,
		onPanic:     cfg.onPanic,
	}
}

// Launch runs work in the background and returns immediately. A nil work is
// a no-op.
//
// The caller gets no completion signal, result or error. See the Launcher
// documentation for what happens to failures.
//
// Example:
//
//	launcher.Launch(func() {
//	    if err := refreshSession(); err != nil {
//	        log.WithError(err).Warn("session refresh failed")
//	    }
//	}, async.Named("session-refresh"))
func (l *Launcher) Launch(work func(), opts ...LaunchOption) {
	if work == nil {
		return
	}

	l.dispatch(opts, false, nil, func() error {
		work()
		return nil
	})
}

// LaunchFunc is Launch for work that produces a value. The value is
// discarded; if it is a non-nil error it is logged and counted first.
func LaunchFunc[T any](l *Launcher, work func() T, opts ...LaunchOption) {
	if work == nil {
		return
	}

	l.dispatch(opts, false, nil, func() error {
		v := work()
		if err, ok := any(v).(error); ok && err != nil {
			return err
		}
		return nil
	})
}

// Submit dispatches fn through the launcher like Launch does, but returns a
// Future carrying its outcome. Panics resolve the Future with a *PanicError.
// A nil fn returns nil.
func Submit[T any](l *Launcher, fn func() (T, error), opts ...LaunchOption) *Future[T] {
	if fn == nil {
		return nil
	}

	f := NewFuture[T]()
	fail := func(err error) {
		var zero T
		f.Resolve(zero, err)
	}
	l.dispatch(opts, true, fail, func() error {
		v, err := callWithRecovery(fn)
		f.Resolve(v, err)
		return err
	})
	return f
}

// Running returns the number of launched units not yet finished.
func (l *Launcher) Running() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Drain blocks until no launched work is running. A non-positive timeout
// waits forever; otherwise ErrDrainTimeout is returned when the deadline
// passes first. Drain does not stop new launches, so work launched while
// draining extends the wait.
func (l *Launcher) Drain(timeout time.Duration) error {
	l.mu.Lock()
	idle := l.idle
	l.mu.Unlock()

	return waitUntil(idle, timeout)
}

func (l *Launcher) track() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running == 0 {
		l.idle = make(chan struct{})
	}
	l.running++
}

func (l *Launcher) untrack() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running--
	if l.running == 0 {
		close(l.idle)
	}
}

// dispatch starts run on its own goroutine. fail, when set, is told about
// failures raised outside run, such as a panicking BeforeStart hook.
func (l *Launcher) dispatch(opts []LaunchOption, observed bool, fail func(error), run func() error) {
	var lc launchConfig
	for _, opt := range opts {
		opt(&lc)
	}

	info := TaskInfo{
		ID:          l.taskID.Add(1),
		Name:        lc.name,
		LongRunning: lc.longRunning,
		observed:    observed,
	}

	l.track()
	l.metrics.recordLaunch(info.LongRunning)

	go l.execute(info, fail, run)
}

// execute is the body of every launched goroutine. The goroutine is detached
// from the submitter: it gets no caller context and nothing the submitter
// waits on, so the submitter and the work have independent lifetimes.
func (l *Launcher) execute(info TaskInfo, fail func(error), run func() error) {
	defer l.untrack()

	log := l.logger.WithFields(logrus.Fields{
		"task_id":      info.ID,
		"task_name":    info.Name,
		"long_running": info.LongRunning,
	})

	if info.LongRunning {
		core := int(l.nextCore.Add(1) - 1)
		if err := cpu.Dedicate(core, l.pinCores); err != nil {
			log.WithError(err).Debug("core pinning unavailable, running on dedicated thread")
		}
	} else if l.slots != nil {
		// Background never cancels, so Acquire only returns once a slot frees up.
		_ = l.slots.Acquire(context.Background(), 1)
		defer l.slots.Release(1)
	}

	if l.rateLimiter != nil {
		if err := l.rateLimiter.Wait(context.Background()); err != nil {
			log.WithError(err).Warn("rate limiter rejected wait, running unthrottled")
		}
	}

	start := time.Now()
	err := l.runIsolated(info, run)
	l.metrics.recordFinish(info, time.Since(start).Seconds(), err)
	if err != nil && fail != nil {
		fail(err)
	}

	switch e := err.(type) {
	case nil:
		if info.LongRunning {
			log.WithField("elapsed", time.Since(start)).Debug("long-running task finished")
		}
	case *PanicError:
		log.WithField("panic", e.Value).Error("background task panicked; recovered and discarded")
		if l.onPanic != nil {
			guardHook(log, "panic handler", func() { l.onPanic(info, e) })
		}
	default:
		if !info.observed {
			log.WithError(err).Warn("background task failed; error discarded")
		}
	}

	if l.onEnd != nil {
		guardHook(log, "end hook", func() { l.onEnd(info, err) })
	}
}

// guardHook keeps a panicking hook from taking the process down with it.
func guardHook(log logrus.FieldLogger, name string, hook func()) {
	if _, err := callWithRecovery(func() (struct{}, error) {
		hook()
		return struct{}{}, nil
	}); err != nil {
		log.WithError(err).Errorf("%s panicked", name)
	}
}

// runIsolated is the recovery boundary: nothing run panics with escapes the
// goroutine.
func (l *Launcher) runIsolated(info TaskInfo, run func() error) error {
	_, err := callWithRecovery(func() (struct{}, error) {
		if l.beforeStart != nil {
			l.beforeStart(info)
		}
		return struct{}{}, run()
	})
	return err
}

func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	select {
	case <-d:
		return nil
	case <-time.After(timeout):
		return ErrDrainTimeout
	}
}
