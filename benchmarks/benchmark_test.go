package benchmarks

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/utkarsh5026/asyncutil/async"
	"github.com/utkarsh5026/asyncutil/random"
)

// =============================================================================
// Shared Random Source - Contention
// =============================================================================

func BenchmarkRandom_Contention(b *testing.B) {
	goroutineCounts := []int{1, 2, 4, 8, 16}

	for _, goroutines := range goroutineCounts {
		b.Run(fmt.Sprintf("goroutines_%d", goroutines), func(b *testing.B) {
			src := random.NewWithSource(rand.NewSource(1))
			perGoroutine := max(b.N/goroutines, 1)

			b.ResetTimer()
			var wg sync.WaitGroup
			for range goroutines {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range perGoroutine {
						if _, err := src.NextRange(-i, i+1); err != nil {
							b.Error(err)
							return
						}
					}
				}()
			}
			wg.Wait()
		})
	}
}

func BenchmarkRandom_Parallel(b *testing.B) {
	src := random.New()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := src.NextN(1000); err != nil {
				b.Error(err)
				return
			}
		}
	})
}

// =============================================================================
// Collector Overhead
// =============================================================================

func BenchmarkCollectAll_Scaling(b *testing.B) {
	taskCounts := []int{10, 100, 1000, 10000}

	for _, taskCount := range taskCounts {
		b.Run(fmt.Sprintf("tasks_%d", taskCount), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				futures := make([]*async.Future[int], taskCount)
				for j := range futures {
					futures[j] = async.Start(cpuBoundWork(100, j))
				}

				if _, err := async.CollectAll(futures); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()

			reportThroughput(b, taskCount)
		})
	}
}

func BenchmarkCollectAll_ResolvedFutures(b *testing.B) {
	const taskCount = 1000

	futures := make([]*async.Future[int], taskCount)
	for j := range futures {
		futures[j] = async.NewFuture[int]()
		futures[j].Resolve(j, nil)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := async.CollectAll(futures); err != nil {
			b.Fatal(err)
		}
	}
}

// =============================================================================
// Launcher Throughput and Latency
// =============================================================================

func BenchmarkLauncher_Submit(b *testing.B) {
	const taskCount = 1000

	runLauncherBenchmark(b, getLauncherConfigs(8), func(b *testing.B, c launcherConfig) {
		l := async.NewLauncher(c.opts...)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			futures := make([]*async.Future[int], taskCount)
			for j := range futures {
				futures[j] = async.Submit(l, cpuBoundWork(100, j))
			}
			if _, err := async.CollectAll(futures); err != nil {
				b.Fatal(err)
			}
		}
		b.StopTimer()

		reportThroughput(b, taskCount)
	})
}

func BenchmarkLauncher_Launch(b *testing.B) {
	runLauncherBenchmark(b, getLauncherConfigs(8), func(b *testing.B, c launcherConfig) {
		l := async.NewLauncher(c.opts...)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			l.Launch(func() {})
		}
		if err := l.Drain(10 * time.Second); err != nil {
			b.Fatal(err)
		}
	})
}

func BenchmarkLauncher_IOLatency(b *testing.B) {
	const taskCount = 200

	runLauncherBenchmark(b, getLauncherConfigs(16), func(b *testing.B, c launcherConfig) {
		l := async.NewLauncher(c.opts...)
		latencies := make([]time.Duration, 0, taskCount*b.N)
		var mu sync.Mutex

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			futures := make([]*async.Future[int], taskCount)
			for j := range futures {
				work := ioBoundWork(time.Millisecond, j)
				queued := time.Now()
				futures[j] = async.Submit(l, func() (int, error) {
					v, err := work()
					mu.Lock()
					latencies = append(latencies, time.Since(queued))
					mu.Unlock()
					return v, err
				})
			}
			if err := async.AwaitAll(futures); err != nil {
				b.Fatal(err)
			}
		}
		b.StopTimer()

		b.ReportMetric(float64(percentile(latencies, 0.50).Microseconds()), "p50_µs")
		b.ReportMetric(float64(percentile(latencies, 0.99).Microseconds()), "p99_µs")
	})
}
