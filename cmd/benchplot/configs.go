package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/calvinalkan/matbench"
	"github.com/calvinalkan/matbench/chart"
)

const configsUsage = `benchplot configs - compare sequential configurations

Usage:
  benchplot configs [options] <results.csv>

The input has the columns (dimension, configuration, time). Writes
plots/matrix_multiplication_performance.png with log axes, prints the mean
time per dimension and configuration, and prints each configuration's
speedup over the baseline at the largest dimension.

Options:
  --baseline NAME   Baseline configuration (default: Standard)
  --order LIST      Comma-separated configurations drawn first, in order
                    (default: Standard,Transpose Only,O3 + loop,O3 + transpose)
  --out DIR         Output directory (default: .)
  --format FORMAT   Input format: csv | gobench (default: csv)
  --title TEXT      Chart title
  -v                Debug logging
  -h, --help        Show this help
`

const (
	defaultConfigsBaseline = "Standard"
	defaultConfigsOrder    = "Standard,Transpose Only,O3 + loop,O3 + transpose"
	configsChart           = "plots/matrix_multiplication_performance.png"
	configsDPI             = 300
)

func runConfigs(args []string, stdout, stderr io.Writer) error {
	cfg := Config{Schema: matbench.SchemaConfigurations, Baseline: defaultConfigsBaseline}
	fs := newFlagSet("configs", configsUsage, stderr, &cfg)
	orderFlag := fs.String("order", defaultConfigsOrder, "configurations drawn first")

	err := parseArgs(fs, configsUsage, args, &cfg, 1, 1, nil)
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
	labels := matbench.OrderLabels(agg.Labels(), splitList(*orderFlag))
	dims := agg.Sizes()

	title := cfg.Title
	if title == "" {
		title = "Matrix Multiplication Performance Comparison"
	}

	out, err := outPath(&cfg, configsChart)
	if err != nil {
		return err
	}

	err = chart.Render(out, chart.FromAggregated(agg), chart.Options{
		Title:  title,
		XLabel: "Matrix Dimension (N x N)",
		YLabel: "Average Execution Time (seconds)",
		LogX:   true,
		LogY:   true,
		XTicks: chart.Float64s(dims),
		Order:  labels,
		Width:  12 * vg.Inch,
		Height: 8 * vg.Inch,
		DPI:    configsDPI,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", out, err)
	}

	fmt.Fprintln(stdout, "Average execution times (seconds):")
	fmt.Fprintln(stdout)

	err = matbench.WriteTimeTable(stdout, agg, labels)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\nWrote: %s\n", out)

	largest := slices.Max(dims)

	atLargest := make(matbench.Aggregated, len(agg))
	for label, series := range agg {
		atLargest[label] = series.Restrict([]int{largest})
	}

	speedups, err := matbench.ComputeSpeedup(atLargest, cfg.Baseline)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\nSpeedups for %s matrices (baseline: %s):\n\n", chart.SizeLabel(largest), cfg.Baseline)

	return matbench.WriteSpeedupTable(stdout, speedups, largest, labels)
}

func splitList(s string) []string {
	var out []string

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}

	return out
}
