package main

import (
	"fmt"

	"github.com/lox/handstats/internal/report"
)

// SummaryCmd aggregates derived hands per player and prints a table.
type SummaryCmd struct {
	Paths         []string `arg:"" help:"Hand files or directories of .toml hand files"`
	KeepMalformed bool     `name:"keep-malformed" help:"Include partial results for malformed hands"`
	Validate      bool     `help:"Check that winnings and rake balance"`
}

func (c *SummaryCmd) Run(app *App) error {
	paths, err := expandPaths(c.Paths)
	if err != nil {
		return err
	}
	rep, err := app.Runner().RunFiles(app.ctx, paths)
	if err != nil {
		return err
	}

	s := report.New()
	for _, res := range rep.Results(c.KeepMalformed) {
		s.Add(res)
	}
	if c.Validate {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("summary: %w", err)
		}
	}
	if rep.Failed > 0 {
		app.logger.Warn("Some hands were skipped", "failed", rep.Failed)
	}
	return report.NewRenderer(app.out, app.color).Render(app.out, s)
}
