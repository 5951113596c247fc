// Package benchmarks measures the shared random source, the launcher and
// the collector under contention.
package benchmarks

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/utkarsh5026/asyncutil/async"
)

// launcherConfig defines a benchmark configuration for a launcher
type launcherConfig struct {
	name string
	opts []async.LauncherOption
}

// getLauncherConfigs returns the launcher shapes worth comparing
func getLauncherConfigs(poolSize int) []launcherConfig {
	quiet := logrus.New()
	quiet.SetLevel(logrus.PanicLevel)

	return []launcherConfig{
		{
			name: "Unbounded",
			opts: []async.LauncherOption{async.WithLogger(quiet)},
		},
		{
			name: "Pooled",
			opts: []async.LauncherOption{
				async.WithLogger(quiet),
				async.WithPoolSize(poolSize),
			},
		},
		{
			name: "Pooled_Metrics",
			opts: []async.LauncherOption{
				async.WithLogger(quiet),
				async.WithPoolSize(poolSize),
				async.WithMetrics(async.NewMetrics(nil)),
			},
		},
	}
}

// runLauncherBenchmark runs a benchmark function for all launcher configs
func runLauncherBenchmark(b *testing.B, configs []launcherConfig, benchFunc func(b *testing.B, c launcherConfig)) {
	for _, c := range configs {
		b.Run(c.name, func(b *testing.B) {
			benchFunc(b, c)
		})
	}
}

// reportThroughput reports tasks/sec for a benchmark that ran taskCount
// tasks per iteration.
func reportThroughput(b *testing.B, taskCount int) {
	nsPerOp := float64(b.Elapsed().Nanoseconds()) / float64(b.N)
	b.ReportMetric(float64(taskCount)/nsPerOp*1e9, "tasks/sec")
}

// =============================================================================
// Benchmark Workload Generators
// =============================================================================

// cpuBoundWork simulates a CPU-intensive operation
func cpuBoundWork(iterations, task int) func() (int, error) {
	return func() (int, error) {
		result := 0
		for i := range iterations {
			result += i * task
		}
		return result, nil
	}
}

// ioBoundWork simulates an I/O operation with a delay
func ioBoundWork(delay time.Duration, task int) func() (int, error) {
	return func() (int, error) {
		time.Sleep(delay)
		return task * 2, nil
	}
}

func percentile(latencies []time.Duration, p float64) time.Duration {
	if len(latencies) == 0 {
		return 0
	}

	sorted := slices.Clone(latencies)
	slices.Sort(sorted)

	// Nearest-rank: p=0.50 over 100 samples is index 49.
	index := max(int(math.Round(p*float64(len(sorted)-1))), 0)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
