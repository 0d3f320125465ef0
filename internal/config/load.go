package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g.
// HANDSTATS_ENGINE_RAKE_ROUND_DOWN=false.
const EnvPrefix = "HANDSTATS_"

// Load builds a Config by layering, from lowest to highest precedence:
//  1. DefaultConfig
//  2. the file at path (.hcl, .yaml or .yml), if path is set and exists
//  3. envFiles, loaded with godotenv without overriding the environment
//  4. HANDSTATS_ environment variables
//
// Command line flags are applied by the caller on top of the result.
func Load(path string, envFiles ...string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := loadFile(k, path); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	for _, name := range envFiles {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
	}

	// HANDSTATS_ENGINE_RAKE_ROUND_DOWN -> engine.rake_round_down
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(s, "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		err = k.Load(hclProvider(path), nil)
	case ".yaml", ".yml":
		err = k.Load(file.Provider(path), yaml.Parser())
	default:
		return fmt.Errorf("unsupported config file type: %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// hclFile mirrors Config with every block and attribute optional, so that
// only the values present in the file override lower layers.
type hclFile struct {
	Engine  *hclEngine  `hcl:"engine,block"`
	Batch   *hclBatch   `hcl:"batch,block"`
	Metrics *hclMetrics `hcl:"metrics,block"`
	Log     *hclLog     `hcl:"log,block"`
}

type hclEngine struct {
	Evaluate         *bool          `hcl:"evaluate,optional"`
	RakeRoundDown    *bool          `hcl:"rake_round_down,optional"`
	EquityIterations map[string]int `hcl:"equity_iterations,optional"`
	Seed             *int64         `hcl:"seed,optional"`
	EquityWorkers    *int           `hcl:"equity_workers,optional"`
	EquityCacheTTL   *string        `hcl:"equity_cache_ttl,optional"`
}

type hclBatch struct {
	Workers *int `hcl:"workers,optional"`
}

type hclMetrics struct {
	Enabled *bool   `hcl:"enabled,optional"`
	Address *string `hcl:"address,optional"`
}

type hclLog struct {
	Level *string `hcl:"level,optional"`
}

// hclProvider is a koanf.Provider reading an HCL config file.
type hclProvider string

func (p hclProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("hcl provider does not support ReadBytes")
}

func (p hclProvider) Read() (map[string]any, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(string(p))
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return cfg.toMap(), nil
}

func (f *hclFile) toMap() map[string]any {
	out := make(map[string]any)
	section := func(name string) map[string]any {
		m, ok := out[name].(map[string]any)
		if !ok {
			m = make(map[string]any)
			out[name] = m
		}
		return m
	}
	set := func(sec, key string, v any) {
		section(sec)[key] = v
	}

	if e := f.Engine; e != nil {
		if e.Evaluate != nil {
			set("engine", "evaluate", *e.Evaluate)
		}
		if e.RakeRoundDown != nil {
			set("engine", "rake_round_down", *e.RakeRoundDown)
		}
		if len(e.EquityIterations) > 0 {
			iterations := make(map[string]any, len(e.EquityIterations))
			for k, v := range e.EquityIterations {
				iterations[k] = v
			}
			set("engine", "equity_iterations", iterations)
		}
		if e.Seed != nil {
			set("engine", "seed", *e.Seed)
		}
		if e.EquityWorkers != nil {
			set("engine", "equity_workers", *e.EquityWorkers)
		}
		if e.EquityCacheTTL != nil {
			set("engine", "equity_cache_ttl", *e.EquityCacheTTL)
		}
	}
	if b := f.Batch; b != nil && b.Workers != nil {
		set("batch", "workers", *b.Workers)
	}
	if m := f.Metrics; m != nil {
		if m.Enabled != nil {
			set("metrics", "enabled", *m.Enabled)
		}
		if m.Address != nil {
			set("metrics", "address", *m.Address)
		}
	}
	if l := f.Log; l != nil && l.Level != nil {
		set("log", "level", *l.Level)
	}
	return out
}
