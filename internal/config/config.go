// Package config loads asyncbench settings from defaults, an optional YAML
// file and ASYNC_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/utkarsh5026/asyncutil/internal/backoff"
)

// Config holds the tunables for the launcher, random source and retry policy
// exercised by asyncbench.
type Config struct {
	PoolSize     int           `yaml:"pool_size" env:"ASYNC_POOL_SIZE"`
	RateLimit    float64       `yaml:"rate_limit" env:"ASYNC_RATE_LIMIT"`
	RateBurst    int           `yaml:"rate_burst" env:"ASYNC_RATE_BURST"`
	PinCores     bool          `yaml:"pin_cores" env:"ASYNC_PIN_CORES"`
	Tasks        int           `yaml:"tasks" env:"ASYNC_TASKS"`
	Seed         int64         `yaml:"seed" env:"ASYNC_SEED"`
	DrainTimeout time.Duration `yaml:"drain_timeout" env:"ASYNC_DRAIN_TIMEOUT"`
	LogLevel     string        `yaml:"log_level" env:"ASYNC_LOG_LEVEL"`
	LogFormat    string        `yaml:"log_format" env:"ASYNC_LOG_FORMAT"`

	Backoff Backoff `yaml:"backoff" envPrefix:"ASYNC_BACKOFF_"`
}

// Backoff configures the retry scenario.
type Backoff struct {
	Strategy string        `yaml:"strategy" env:"STRATEGY"`
	Initial  time.Duration `yaml:"initial" env:"INITIAL"`
	Max      time.Duration `yaml:"max" env:"MAX"`
	Jitter   float64       `yaml:"jitter" env:"JITTER"`
	Attempts int           `yaml:"attempts" env:"ATTEMPTS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PoolSize:     8,
		RateBurst:    1,
		Tasks:        64,
		DrainTimeout: 5 * time.Second,
		LogLevel:     "info",
		LogFormat:    "text",
		Backoff: Backoff{
			Strategy: "jittered",
			Initial:  2 * time.Millisecond,
			Max:      50 * time.Millisecond,
			Jitter:   0.2,
			Attempts: 5,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		cleanPath := filepath.Clean(path)
		data, err := os.ReadFile(cleanPath) // #nosec G304 - path comes from the operator
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.PoolSize < 0 {
		errs = append(errs, fmt.Errorf("pool_size must be >= 0, got %d", c.PoolSize))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate_limit must be >= 0, got %v", c.RateLimit))
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("rate_burst must be >= 1 when rate_limit is set, got %d", c.RateBurst))
	}
	if c.Tasks < 1 {
		errs = append(errs, fmt.Errorf("tasks must be >= 1, got %d", c.Tasks))
	}
	if c.DrainTimeout <= 0 {
		errs = append(errs, fmt.Errorf("drain_timeout must be positive, got %v", c.DrainTimeout))
	}
	if _, err := c.BackoffType(); err != nil {
		errs = append(errs, err)
	}
	if c.Backoff.Initial <= 0 || c.Backoff.Max < c.Backoff.Initial {
		errs = append(errs, fmt.Errorf("backoff requires 0 < initial <= max, got %v/%v", c.Backoff.Initial, c.Backoff.Max))
	}
	if c.Backoff.Jitter < 0 || c.Backoff.Jitter > 1 {
		errs = append(errs, fmt.Errorf("backoff.jitter must be in [0,1], got %v", c.Backoff.Jitter))
	}
	if c.Backoff.Attempts < 1 {
		errs = append(errs, fmt.Errorf("backoff.attempts must be >= 1, got %d", c.Backoff.Attempts))
	}
	return errors.Join(errs...)
}

// BackoffType maps the configured strategy name to a backoff.Type.
func (c Config) BackoffType() (backoff.Type, error) {
	switch strings.ToLower(c.Backoff.Strategy) {
	case "exponential":
		return backoff.Exponential, nil
	case "jittered", "":
		return backoff.Jittered, nil
	case "decorrelated":
		return backoff.Decorrelated, nil
	default:
		return 0, fmt.Errorf("unknown backoff strategy %q", c.Backoff.Strategy)
	}
}
