package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handstats/internal/derive"
	"github.com/lox/handstats/internal/equity"
)

func unsetAfter(t *testing.T, keys ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
	})
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Engine.RakeRoundDown)
	assert.Equal(t, 2000, cfg.Engine.EquityIterations["0"])
	assert.Equal(t, derive.DefaultIterations, cfg.Engine.Iterations())
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadHCL(t *testing.T) {
	cfg, err := Load("testdata/handstats.hcl")
	require.NoError(t, err)

	assert.False(t, cfg.Engine.RakeRoundDown)
	assert.True(t, cfg.Engine.Evaluate, "absent attributes keep their defaults")
	assert.Equal(t, int64(42), cfg.Engine.Seed)
	assert.Equal(t, time.Minute, cfg.Engine.EquityCacheTTL)
	assert.Equal(t, map[int]int{0: 500, 1: 5000, 2: 10000, 3: 0}, cfg.Engine.Iterations())
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9999", cfg.Metrics.Address)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load("testdata/handstats.yaml")
	require.NoError(t, err)

	assert.False(t, cfg.Engine.Evaluate)
	assert.Equal(t, 750, cfg.Engine.Iterations()[1])
	assert.Equal(t, 2000, cfg.Engine.Iterations()[0])
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsUnknownHCLAttributes(t *testing.T) {
	_, err := Load("testdata/bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode HCL")
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handstats.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported config file type")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HANDSTATS_BATCH_WORKERS", "8")
	t.Setenv("HANDSTATS_ENGINE_RAKE_ROUND_DOWN", "true")
	t.Setenv("HANDSTATS_ENGINE_EQUITY_CACHE_TTL", "30s")

	cfg, err := Load("testdata/handstats.hcl")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.True(t, cfg.Engine.RakeRoundDown)
	assert.Equal(t, 30*time.Second, cfg.Engine.EquityCacheTTL)
	assert.Equal(t, int64(42), cfg.Engine.Seed)
}

func TestDotEnvSitsBelowEnvironment(t *testing.T) {
	unsetAfter(t, "HANDSTATS_BATCH_WORKERS")
	t.Setenv("HANDSTATS_LOG_LEVEL", "info")

	cfg, err := Load("", "testdata/test.env", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Batch.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative workers", func(c *Config) { c.Batch.Workers = -1 }, "batch workers"},
		{"negative equity workers", func(c *Config) { c.Engine.EquityWorkers = -2 }, "equity workers"},
		{"bad street id", func(c *Config) { c.Engine.EquityIterations["flop"] = 10 }, `invalid street id "flop"`},
		{"street out of range", func(c *Config) { c.Engine.EquityIterations["5"] = 10 }, `invalid street id "5"`},
		{"negative iterations", func(c *Config) { c.Engine.EquityIterations["1"] = -1 }, "street 1 cannot be negative"},
		{"metrics without address", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Address = "" }, "metrics address"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestEngineOptionsAttachEvaluatorOnlyWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	logger := log.New(os.Stderr)

	eval := equity.New(cfg.Engine.EvaluatorOptions(logger)...)

	assert.Len(t, cfg.Engine.EngineOptions(logger, eval), 4)
	assert.Len(t, cfg.Engine.EngineOptions(logger, nil), 3)

	cfg.Engine.Evaluate = false
	assert.Len(t, cfg.Engine.EngineOptions(logger, eval), 3)
}
