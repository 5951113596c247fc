// Package async provides the concurrency primitives shared across the
// application: fire-and-forget background launch and parallel wait-and-collect.
//
// # Background launch
//
// A Launcher starts work the caller does not wait for:
//
//	launcher := async.NewLauncher(
//	    async.WithPoolSize(16),
//	    async.WithLogger(logger),
//	)
//	launcher.Launch(func() { refreshInventory() })
//	launcher.Launch(pollNotifications, async.LongRunning(), async.Named("notifications"))
//
// Launch returns immediately. The caller receives no handle and never sees
// the outcome. Panics are recovered at the goroutine boundary and, together
// with any error a LaunchFunc callback returns, are logged, counted and then
// discarded. Launched work is responsible for handling its own failures.
//
// LongRunning work skips the pooled slots and runs on a dedicated OS thread,
// optionally pinned to a core (WithCorePinning). It is a hint, not a promise
// of a fresh thread per call.
//
// # Parallel collection
//
// CollectAll and AwaitAll join operations that are already running:
//
//	futures := []*async.Future[int]{
//	    async.Start(fetchA),
//	    async.Submit(launcher, fetchB),
//	}
//	values, err := async.CollectAll(futures)
//
// Results come back in input order regardless of completion order. When any
// operation fails, the call still waits for every operation and then returns
// an *AggregateError. Its message is the first failure observed, and it
// unwraps to all failures. Nothing is cancelled.
//
// Neither primitive takes a context: there is no cancellation. A caller
// needing a bounded wait can use Future.GetWithContext or GetWithTimeout.
//
// # Configuration Options
//
//   - WithPoolSize(n): cap concurrently running pooled work (default: unbounded)
//   - WithRateLimit(rps, burst): throttle how fast launched work starts
//   - WithLogger(l): logrus logger for recovered failures (default: standard logger)
//   - WithMetrics(m): Prometheus collectors from NewMetrics
//   - WithCorePinning(bool): pin long-running threads to cores
//   - WithBeforeStart / WithOnEnd / WithPanicHandler: lifecycle hooks
package async
