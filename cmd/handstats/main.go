package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// CLI is the handstats command line. Global flags override the config file
// and environment.
type CLI struct {
	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Config      string           `short:"c" default:"handstats.hcl" help:"Path to an HCL or YAML config file"`
	EnvFile     string           `name:"env-file" default:".env" help:"Optional dotenv file with HANDSTATS_ variables"`
	LogLevel    string           `short:"l" name:"log-level" help:"Log level (overrides config)"`
	Workers     int              `short:"w" help:"Concurrent derivations (overrides config)"`
	MetricsAddr string           `name:"metrics-addr" help:"Serve /metrics and /healthz on this address while running"`
	NoColor     bool             `name:"no-color" help:"Disable colored output"`

	Derive  DeriveCmd  `cmd:"" help:"Derive statistics from hand files and write JSON Lines"`
	Summary SummaryCmd `cmd:"" help:"Aggregate per-player stats into a table"`
	Equity  EquityCmd  `cmd:"" help:"Evaluate pockets with the built-in evaluator"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("handstats"),
		kong.Description("Derived poker statistics from hand histories"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, &cli, os.Stdout)
	kctx.FatalIfErrorf(err)
	defer app.Close()

	err = kctx.Run(app)
	kctx.FatalIfErrorf(err)
}
