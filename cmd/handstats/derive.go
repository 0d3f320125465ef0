package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lox/handstats/internal/batch"
	"github.com/lox/handstats/internal/derive"
	"github.com/lox/handstats/internal/fileutil"
)

// DeriveCmd derives every hand and writes one JSON object per line.
type DeriveCmd struct {
	Paths         []string `arg:"" help:"Hand files or directories of .toml hand files"`
	Out           string   `short:"o" help:"Write JSON Lines to this file instead of stdout"`
	KeepMalformed bool     `name:"keep-malformed" help:"Include partial results for malformed hands"`
	Strict        bool     `help:"Exit non-zero if any hand fails"`
}

func (c *DeriveCmd) Run(app *App) error {
	paths, err := expandPaths(c.Paths)
	if err != nil {
		return err
	}
	report, err := app.Runner().RunFiles(app.ctx, paths)
	if err != nil {
		return err
	}
	results := report.Results(c.KeepMalformed)

	if c.Out != "" {
		err = fileutil.WriteAtomic(c.Out, 0o644, func(w io.Writer) error {
			return writeJSONL(w, results)
		})
	} else {
		err = writeJSONL(app.out, results)
	}
	if err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	app.logger.Info("Derived hands", "run", report.RunID, "written", len(results), "failed", report.Failed)
	return checkFailures(report, c.Strict)
}

func checkFailures(report *batch.Report, strict bool) error {
	if !strict || report.Failed == 0 {
		return nil
	}
	for _, item := range report.Items {
		if item.Err != nil {
			return fmt.Errorf("%d of %d hands failed, first %s: %w", report.Failed, len(report.Items), item.Source, item.Err)
		}
	}
	return nil
}

func writeJSONL(w io.Writer, results []*derive.Result) error {
	enc := json.NewEncoder(w)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	return nil
}

// expandPaths replaces directories with the .toml files beneath them, in
// lexical order. Files named explicitly are kept whatever their extension.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".toml") {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no hand files found")
	}
	return paths, nil
}
