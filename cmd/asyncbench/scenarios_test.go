package main

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/utkarsh5026/asyncutil/internal/config"
)

func newTestEnv(t *testing.T) (*benchEnv, *prometheus.Registry) {
	t.Helper()
	cfg := config.Default()
	cfg.Tasks = 8
	cfg.Seed = 42
	cfg.PoolSize = 4
	cfg.Backoff.Initial = time.Millisecond
	cfg.Backoff.Max = 4 * time.Millisecond
	cfg.Backoff.Attempts = 3

	logger, _ := logtest.NewNullLogger()
	registry := prometheus.NewRegistry()
	return newBenchEnv(cfg, logger, registry), registry
}

func TestScenarios_Pass(t *testing.T) {
	env, _ := newTestEnv(t)

	for _, s := range scenarios() {
		t.Run(s.name, func(t *testing.T) {
			detail, err := s.run(env)
			if err != nil {
				t.Fatalf("scenario failed: %v", err)
			}
			if detail == "" {
				t.Error("expected a detail line")
			}
		})
	}

	if err := env.launcher.Drain(time.Second); err != nil {
		t.Fatalf("drain: %v", err)
	}
}

func TestScenarios_FeedMetrics(t *testing.T) {
	env, registry := newTestEnv(t)

	if _, err := fireAndForget(env); err != nil {
		t.Fatalf("fire-and-forget: %v", err)
	}

	count, err := testutil.GatherAndCount(registry, "async_panics_total", "async_discarded_errors_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 series, got %d", count)
	}
}

func TestRunScenarios_ReportsFailures(t *testing.T) {
	env, _ := newTestEnv(t)

	list := []scenario{
		{name: "ok", run: func(*benchEnv) (string, error) { return "fine", nil }},
		{name: "broken", run: func(*benchEnv) (string, error) { return "", errInjected }},
	}

	results := runScenarios(env, list, true)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Err != nil || results[0].Detail != "fine" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].Err != errInjected {
		t.Errorf("expected injected failure, got %v", results[1].Err)
	}
}

func TestIsCIMode(t *testing.T) {
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "JENKINS_HOME"} {
		t.Setenv(name, "")
	}

	if !isCIMode(true) {
		t.Error("flag should force CI mode")
	}
	if isCIMode(false) {
		t.Error("expected interactive mode with no CI variables")
	}

	t.Setenv("GITHUB_ACTIONS", "true")
	if !isCIMode(false) {
		t.Error("expected CI mode from GITHUB_ACTIONS")
	}
}
