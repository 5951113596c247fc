package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/utkarsh5026/asyncutil/internal/config"
	"github.com/utkarsh5026/asyncutil/internal/cpu"
)

func printConfiguration(cfg config.Config) {
	bold.Println("Configuration:")
	fmt.Printf("  Pool size:        %d (0 = unbounded)\n", cfg.PoolSize)
	if cfg.RateLimit > 0 {
		fmt.Printf("  Rate limit:       %.0f/s, burst %d\n", cfg.RateLimit, cfg.RateBurst)
	} else {
		fmt.Printf("  Rate limit:       off\n")
	}
	fmt.Printf("  Core pinning:     %v (%d CPUs)\n", cfg.PinCores, cpu.NumCPU())
	fmt.Printf("  Tasks/scenario:   %d\n", cfg.Tasks)
	fmt.Printf("  Backoff:          %s, %v..%v, %d attempts\n",
		cfg.Backoff.Strategy, cfg.Backoff.Initial, cfg.Backoff.Max, cfg.Backoff.Attempts)
	fmt.Println()
}

func printResults(results []scenarioResult) {
	bold.Println("RESULTS")
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Scenario", "Status", "Time", "Detail")

	passed := 0
	for _, r := range results {
		status := green.Sprint("PASS")
		detail := r.Detail
		if r.Err != nil {
			status = red.Sprint("FAIL")
			detail = r.Err.Error()
		} else {
			passed++
		}
		_ = table.Append(r.Name, status, formatDuration(r.Duration), detail)
	}

	if err := table.Render(); err != nil {
		red.Println("Error rendering results table")
	}

	fmt.Println()
	summary := green
	if passed != len(results) {
		summary = red
	}
	summary.Printf("%d/%d scenarios passed\n", passed, len(results))
	fmt.Println()
}

func printMetrics(gatherer prometheus.Gatherer) {
	families, err := gatherer.Gather()
	if err != nil {
		red.Printf("Error gathering metrics: %v\n", err)
		return
	}

	bold.Println("LAUNCHER METRICS")
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Metric", "Labels", "Value")

	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			_ = table.Append(mf.GetName(), formatLabels(m.GetLabel()), formatValue(mf.GetType(), m))
		}
	}

	if err := table.Render(); err != nil {
		red.Println("Error rendering metrics table")
	}
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(pairs))
	for _, lp := range pairs {
		parts = append(parts, lp.GetName()+"="+lp.GetValue())
	}
	return strings.Join(parts, ",")
}

func formatValue(typ dto.MetricType, m *dto.Metric) string {
	switch typ {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%.0f", m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%.0f", m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		if h.GetSampleCount() == 0 {
			return "n=0"
		}
		mean := h.GetSampleSum() / float64(h.GetSampleCount())
		return fmt.Sprintf("n=%d mean=%.2fms", h.GetSampleCount(), mean*1000)
	default:
		return "?"
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	return d.Round(time.Millisecond).String()
}
