// Package config loads handstats settings from defaults, an HCL or YAML
// file, .env files and HANDSTATS_ environment variables.
package config

import (
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/handstats/internal/derive"
	"github.com/lox/handstats/internal/equity"
)

// Config is the complete handstats configuration.
type Config struct {
	Engine  EngineSettings  `koanf:"engine"`
	Batch   BatchSettings   `koanf:"batch"`
	Metrics MetricsSettings `koanf:"metrics"`
	Log     LogSettings     `koanf:"log"`
}

// EngineSettings configures derivation and the built-in evaluator.
type EngineSettings struct {
	// Evaluate enables pot awards, stove rows and all-in EV.
	Evaluate      bool `koanf:"evaluate"`
	RakeRoundDown bool `koanf:"rake_round_down"`
	// EquityIterations maps a street id ("0".."4") to a sample count.
	EquityIterations map[string]int `koanf:"equity_iterations"`
	Seed             int64          `koanf:"seed"`
	EquityWorkers    int            `koanf:"equity_workers"`
	EquityCacheTTL   time.Duration  `koanf:"equity_cache_ttl"`
}

// BatchSettings configures the batch runner.
type BatchSettings struct {
	// Workers is the number of concurrent derivations; zero means one per CPU.
	Workers int `koanf:"workers"`
}

// MetricsSettings configures the Prometheus endpoint.
type MetricsSettings struct {
	Enabled bool   `koanf:"enabled"`
	Address string `koanf:"address"`
}

// LogSettings configures logging.
type LogSettings struct {
	Level string `koanf:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	iterations := make(map[string]int, len(derive.DefaultIterations))
	for street, n := range derive.DefaultIterations {
		iterations[strconv.Itoa(street)] = n
	}
	return &Config{
		Engine: EngineSettings{
			Evaluate:         true,
			RakeRoundDown:    true,
			EquityIterations: iterations,
			EquityWorkers:    min(runtime.NumCPU(), 8),
			EquityCacheTTL:   10 * time.Minute,
		},
		Metrics: MetricsSettings{
			Address: ":9464",
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch workers cannot be negative")
	}
	if c.Engine.EquityWorkers < 0 {
		return fmt.Errorf("equity workers cannot be negative")
	}
	if c.Engine.EquityCacheTTL < 0 {
		return fmt.Errorf("equity cache ttl cannot be negative")
	}

	keys := make([]string, 0, len(c.Engine.EquityIterations))
	for k := range c.Engine.EquityIterations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		street, err := strconv.Atoi(k)
		if err != nil || street < 0 || street > 4 {
			return fmt.Errorf("equity iterations: invalid street id %q", k)
		}
		if c.Engine.EquityIterations[k] < 0 {
			return fmt.Errorf("equity iterations for street %d cannot be negative", street)
		}
	}

	if c.Metrics.Enabled && c.Metrics.Address == "" {
		return fmt.Errorf("metrics address is required when metrics are enabled")
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Iterations returns the equity iteration overrides keyed by street id.
// Invalid keys are skipped; Validate reports them.
func (e EngineSettings) Iterations() map[int]int {
	out := make(map[int]int, len(e.EquityIterations))
	for k, n := range e.EquityIterations {
		street, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[street] = n
	}
	return out
}

// EvaluatorOptions returns the equity evaluator options for these settings.
func (e EngineSettings) EvaluatorOptions(logger *log.Logger) []equity.Option {
	return []equity.Option{
		equity.WithLogger(logger),
		equity.WithSeed(e.Seed),
		equity.WithWorkers(e.EquityWorkers),
		equity.WithCacheTTL(e.EquityCacheTTL),
	}
}

// EngineOptions returns derive engine options. The evaluator is attached
// only when evaluation is enabled and eval is non-nil.
func (e EngineSettings) EngineOptions(logger *log.Logger, eval derive.Evaluator) []derive.Option {
	opts := []derive.Option{
		derive.WithLogger(logger),
		derive.WithRakeRoundDown(e.RakeRoundDown),
		derive.WithIterations(e.Iterations()),
	}
	if e.Evaluate && eval != nil {
		opts = append(opts, derive.WithEvaluator(eval))
	}
	return opts
}
