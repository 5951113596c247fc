package async

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	t.Run("creates and registers all metrics", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		metrics := NewMetrics(registry)

		if metrics == nil {
			t.Fatal("NewMetrics returned nil")
		}
		if metrics.LaunchedTotal == nil || metrics.PanicsTotal == nil ||
			metrics.DiscardedErrorsTotal == nil || metrics.InFlight == nil ||
			metrics.TaskDuration == nil {
			t.Fatal("expected every collector to be initialized")
		}

		// Registering the same names again must fail.
		if err := registry.Register(metrics.PanicsTotal); err == nil {
			t.Error("expected duplicate registration to fail")
		}
	})

	t.Run("nil registerer leaves metrics unregistered", func(t *testing.T) {
		metrics := NewMetrics(nil)
		registry := prometheus.NewRegistry()
		if err := registry.Register(metrics.InFlight); err != nil {
			t.Errorf("expected InFlight to be registrable, got %v", err)
		}
	})
}

func TestLauncher_RecordsMetrics(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	l, _ := newTestLauncher(t, WithMetrics(metrics))

	l.Launch(func() {})
	l.Launch(func() {}, LongRunning())
	l.Launch(func() { panic("x") })
	LaunchFunc(l, func() error { return errors.New("dropped") })
	_ = Submit(l, func() (int, error) { return 0, errors.New("observed") }).Err()

	if err := l.Drain(time.Second); err != nil {
		t.Fatalf("drain: %v", err)
	}

	if got := testutil.ToFloat64(metrics.LaunchedTotal.WithLabelValues("pooled")); got != 4 {
		t.Errorf("expected 4 pooled launches, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.LaunchedTotal.WithLabelValues("long_running")); got != 1 {
		t.Errorf("expected 1 long-running launch, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.PanicsTotal); got != 1 {
		t.Errorf("expected 1 panic, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.DiscardedErrorsTotal); got != 1 {
		t.Errorf("expected 1 discarded error, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.InFlight); got != 0 {
		t.Errorf("expected nothing in flight, got %v", got)
	}
}
