// Command asyncbench exercises the random source, launcher and collector
// under load and prints a pass/fail report with the launcher's metrics.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/utkarsh5026/asyncutil/async"
	"github.com/utkarsh5026/asyncutil/internal/config"
	"github.com/utkarsh5026/asyncutil/random"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

func main() {
	configFlag := flag.String("config", "", "Path to a YAML config file (optional)")
	tasksFlag := flag.Int("tasks", 0, "Tasks per scenario (0 = use config)")
	ciModeFlag := flag.Bool("ci", false, "CI mode: disable progress bar")
	plainModeFlag := flag.Bool("plain", false, "Plain mode: disable colors")
	flag.Parse()

	if *plainModeFlag {
		color.NoColor = true
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		red.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if *tasksFlag > 0 {
		cfg.Tasks = *tasksFlag
	}

	logger, err := newLogger(cfg)
	if err != nil {
		red.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}

	registry := prometheus.NewRegistry()
	env := newBenchEnv(cfg, logger, registry)

	printConfiguration(cfg)

	results := runScenarios(env, scenarios(), isCIMode(*ciModeFlag))
	printResults(results)
	printMetrics(registry)

	if err := env.launcher.Drain(cfg.DrainTimeout); err != nil {
		logger.WithError(err).Warn("background work still running at exit")
	}

	for _, r := range results {
		if r.Err != nil {
			os.Exit(1)
		}
	}
}

func newLogger(cfg config.Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(os.Stderr)
	switch cfg.LogFormat {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

func newBenchEnv(cfg config.Config, logger logrus.FieldLogger, reg prometheus.Registerer) *benchEnv {
	rng := random.New()
	if cfg.Seed != 0 {
		rng = random.NewWithSource(rand.NewSource(cfg.Seed))
	}

	opts := []async.LauncherOption{
		async.WithPoolSize(cfg.PoolSize),
		async.WithLogger(logger),
		async.WithMetrics(async.NewMetrics(reg)),
		async.WithCorePinning(cfg.PinCores),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, async.WithRateLimit(cfg.RateLimit, cfg.RateBurst))
	}

	return &benchEnv{
		cfg:      cfg,
		logger:   logger,
		rng:      rng,
		launcher: async.NewLauncher(opts...),
	}
}

func isCIMode(ciFlag bool) bool {
	if ciFlag {
		return true
	}

	ciEnvVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "JENKINS_HOME"}
	for _, env := range ciEnvVars {
		value := os.Getenv(env)
		if value == "true" || value == "1" {
			return true
		}
	}
	return false
}

func makeProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Running scenarios"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionClearOnFinish(),
	)
}

func runScenarios(env *benchEnv, list []scenario, ciMode bool) []scenarioResult {
	bold.Println("Running scenarios...")
	fmt.Println()

	var bar *progressbar.ProgressBar
	if !ciMode {
		bar = makeProgressBar(len(list))
	}

	results := make([]scenarioResult, 0, len(list))
	for i, s := range list {
		if ciMode {
			fmt.Printf("[%d/%d] %s\n", i+1, len(list), s.name)
		}
		if bar != nil {
			bar.Describe(fmt.Sprintf("Running: %s", s.name))
		}

		start := time.Now()
		detail, err := s.run(env)
		results = append(results, scenarioResult{
			Name:     s.name,
			Detail:   detail,
			Err:      err,
			Duration: time.Since(start),
		})

		if err != nil {
			env.logger.WithError(err).WithField("scenario", s.name).Error("scenario failed")
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	fmt.Println()
	return results
}
