package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/handstats/internal/batch"
	"github.com/lox/handstats/internal/config"
	"github.com/lox/handstats/internal/derive"
	"github.com/lox/handstats/internal/equity"
	"github.com/lox/handstats/internal/metrics"
)

// App holds what every subcommand shares: settings, logger, evaluator and
// metrics.
type App struct {
	ctx     context.Context
	cfg     *config.Config
	logger  *log.Logger
	out     io.Writer
	color   bool
	eval    *equity.Evaluator
	metrics *metrics.Manager

	stopMetrics context.CancelFunc
	served      chan error
}

func newApp(ctx context.Context, cli *CLI, out io.Writer) (*App, error) {
	cfg, err := config.Load(cli.Config, cli.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Flags win over file and environment
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.Workers > 0 {
		cfg.Batch.Workers = cli.Workers
	}
	if cli.MetricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Address = cli.MetricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           cfg.LogLevel(),
	})
	logger.Debug("Loaded configuration", "file", cli.Config, "workers", cfg.Batch.Workers, "evaluate", cfg.Engine.Evaluate)

	app := &App{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		out:    out,
		color:  !cli.NoColor,
		eval:   equity.New(cfg.Engine.EvaluatorOptions(logger.WithPrefix("equity"))...),
	}

	if cfg.Metrics.Enabled {
		app.metrics = metrics.NewManager()
		mctx, cancel := context.WithCancel(ctx)
		app.stopMetrics = cancel
		app.served = make(chan error, 1)
		go func() {
			app.served <- app.metrics.Serve(mctx, cfg.Metrics.Address, logger.WithPrefix("metrics"))
		}()
	}
	return app, nil
}

// Runner returns a batch runner with one engine per worker sharing the
// evaluator.
func (a *App) Runner() *batch.Runner {
	engineLogger := a.logger.WithPrefix("derive")
	return batch.New(
		batch.WithLogger(a.logger.WithPrefix("batch")),
		batch.WithWorkers(a.cfg.Batch.Workers),
		batch.WithMetrics(a.metrics),
		batch.WithEngine(func() *derive.Engine {
			return derive.NewEngine(a.cfg.Engine.EngineOptions(engineLogger, a.eval)...)
		}),
	)
}

// Close stops the metrics server if one is running.
func (a *App) Close() {
	if a.stopMetrics == nil {
		return
	}
	a.stopMetrics()
	if err := <-a.served; err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Error("Metrics server failed", "err", err)
	}
}
