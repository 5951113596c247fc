package async

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors a Launcher reports into.
type Metrics struct {
	LaunchedTotal        *prometheus.CounterVec
	PanicsTotal          prometheus.Counter
	DiscardedErrorsTotal prometheus.Counter
	InFlight             prometheus.Gauge
	TaskDuration         *prometheus.HistogramVec
}

// NewMetrics creates the launcher metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LaunchedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "async_launched_total",
				Help: "Total number of units of work launched in the background",
			},
			[]string{"mode"},
		),
		PanicsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "async_panics_total",
				Help: "Total number of panics recovered from background work",
			},
		),
		DiscardedErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "async_discarded_errors_total",
				Help: "Total number of errors returned by background work and discarded",
			},
		),
		InFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "async_in_flight",
				Help: "Number of background units of work launched but not yet finished",
			},
		),
		TaskDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "async_task_duration_seconds",
				Help:    "Run time of background work in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.LaunchedTotal,
			m.PanicsTotal,
			m.DiscardedErrorsTotal,
			m.InFlight,
			m.TaskDuration,
		)
	}

	return m
}

func modeLabel(longRunning bool) string {
	if longRunning {
		return "long_running"
	}
	return "pooled"
}

func (m *Metrics) recordLaunch(longRunning bool) {
	if m == nil {
		return
	}
	m.LaunchedTotal.WithLabelValues(modeLabel(longRunning)).Inc()
	m.InFlight.Inc()
}

func (m *Metrics) recordFinish(info TaskInfo, seconds float64, err error) {
	if m == nil {
		return
	}
	m.InFlight.Dec()
	m.TaskDuration.WithLabelValues(modeLabel(info.LongRunning)).Observe(seconds)

	if err == nil {
		return
	}
	if _, ok := err.(*PanicError); ok {
		m.PanicsTotal.Inc()
		return
	}
	if !info.observed {
		m.DiscardedErrorsTotal.Inc()
	}
}
