package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"gonum.org/v1/plot/plotter"

	"github.com/calvinalkan/matbench"
	"github.com/calvinalkan/matbench/chart"
)

const timeUsage = `benchplot time - execution time vs matrix size per thread count

Usage:
  benchplot time [options] [results.csv]

Reads results.csv when no file is given. Writes <name>_execution_time.png,
where <name> is the input's base name without "_results", and prints the
mean time table.

Options:
  --out DIR         Output directory (default: .)
  --format FORMAT   Input format: csv | gobench (default: csv)
  --title TEXT      Chart title
  -v                Debug logging
  -h, --help        Show this help
`

const defaultResults = "results.csv"

func runTime(args []string, stdout, stderr io.Writer) error {
	cfg := Config{Schema: matbench.SchemaThreads, Baseline: matbench.DefaultBaseline}
	fs := newFlagSet("time", timeUsage, stderr, &cfg)

	err := parseArgs(fs, timeUsage, args, &cfg, 1, 1, []string{defaultResults})
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	path := cfg.Inputs[0]

	records, err := load(&cfg, path, logger)
	if err != nil {
		return err
	}

	agg := matbench.AggregateBySize(records, matbench.ByCategory)
	name := datasetName(path)

	title := cfg.Title
	if title == "" {
		title = fmt.Sprintf("Execution Time vs Matrix Size (%s)", name)
	}

	series, order := threadSeries(agg)

	out, err := outPath(&cfg, name+"_execution_time.png")
	if err != nil {
		return err
	}

	err = chart.Render(out, series, chart.Options{
		Title:      title,
		XLabel:     "Matrix Size (N x N)",
		YLabel:     "Execution Time (seconds)",
		Order:      order,
		LegendLeft: true,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", out, err)
	}

	logger.Debug("rendered chart", zap.String("path", out), zap.Int("labels", len(series)))

	err = matbench.WriteTimeTable(stdout, agg, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\nWrote: %s\n", out)

	return nil
}

// threadSeries relabels thread-count groups as "N threads" and returns the
// labels in ascending thread order.
func threadSeries(agg matbench.Aggregated) (map[string]plotter.XYs, []string) {
	raw := chart.FromAggregated(agg)

	series := make(map[string]plotter.XYs, len(raw))
	order := make([]string, 0, len(raw))

	for _, label := range agg.Labels() {
		pretty := label + " threads"
		series[pretty] = raw[label]
		order = append(order, pretty)
	}

	return series, order
}
