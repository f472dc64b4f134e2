package main

import (
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"

	"github.com/calvinalkan/matbench"
	"github.com/calvinalkan/matbench/chart"
)

const speedupUsage = `benchplot speedup - speedup vs thread count per matrix size

Usage:
  benchplot speedup [options] [results.csv]

Reads results.csv when no file is given. Speedup is the baseline thread
count's mean time divided by each thread count's mean time at the same size.
Every size must have a baseline run. Writes speedup_plot.png and prints the
speedup table for the largest size.

Options:
  --baseline N      Baseline thread count (default: 1)
  --out DIR         Output directory (default: .)
  --format FORMAT   Input format: csv | gobench (default: csv)
  --title TEXT      Chart title
  -v                Debug logging
  -h, --help        Show this help
`

func runSpeedup(args []string, stdout, stderr io.Writer) error {
	cfg := Config{Schema: matbench.SchemaThreads, Baseline: matbench.DefaultBaseline}
	fs := newFlagSet("speedup", speedupUsage, stderr, &cfg)

	err := parseArgs(fs, speedupUsage, args, &cfg, 1, 1, []string{defaultResults})
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	records, err := load(&cfg, cfg.Inputs[0], logger)
	if err != nil {
		return err
	}

	agg := matbench.AggregateBySize(records, matbench.ByCategory)

	speedups, err := matbench.ComputeSpeedup(agg, cfg.Baseline)
	if err != nil {
		return err
	}

	bySize, err := matbench.ScalingBySize(speedups)
	if err != nil {
		return err
	}

	series, order := chart.FromScaling(bySize)

	title := cfg.Title
	if title == "" {
		title = "Speedup vs Number of Threads"
	}

	out, err := outPath(&cfg, "speedup_plot.png")
	if err != nil {
		return err
	}

	err = chart.Render(out, series, chart.Options{
		Title:      title,
		XLabel:     "Number of Threads",
		YLabel:     "Speedup",
		Order:      order,
		LegendLeft: true,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", out, err)
	}

	logger.Debug("rendered chart", zap.String("path", out), zap.Int("sizes", len(series)))

	largest := slices.Max(agg.Sizes())

	fmt.Fprintf(stdout, "Speedups for %s matrices (baseline: %s thread(s)):\n\n", chart.SizeLabel(largest), cfg.Baseline)

	err = matbench.WriteSpeedupTable(stdout, speedups, largest, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\nWrote: %s\n", out)

	return nil
}
