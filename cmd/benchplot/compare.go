package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/calvinalkan/matbench"
	"github.com/calvinalkan/matbench/chart"
)

const compareUsage = `benchplot compare - one thread count on two machines

Usage:
  benchplot compare [options] [a.csv b.csv]

Reads machine_1_results.csv and machine_2_results.csv when no files are
given. Only sizes both inputs measured at the chosen thread count are
plotted. Writes comparison_<N>_threads.png and prints a table with the
change of b relative to a.

Options:
  --threads N       Thread count to compare (default: 6)
  --out DIR         Output directory (default: .)
  --format FORMAT   Input format: csv | gobench (default: csv)
  --title TEXT      Chart title
  -v                Debug logging
  -h, --help        Show this help

Environment:
  NO_COLOR          Disable colored changes
`

const defaultCompareThreads = 6

var defaultCompareInputs = []string{"machine_1_results.csv", "machine_2_results.csv"}

// comparison is one machine's series at the compared thread count.
type comparison struct {
	name   string
	series matbench.Series
}

func runCompare(args []string, stdout, stderr io.Writer) error {
	cfg := Config{Schema: matbench.SchemaThreads, Baseline: matbench.DefaultBaseline}
	fs := newFlagSet("compare", compareUsage, stderr, &cfg)
	threads := fs.Int("threads", defaultCompareThreads, "thread count to compare")

	err := parseArgs(fs, compareUsage, args, &cfg, 2, 2, defaultCompareInputs)
	if err != nil {
		return err
	}

	if *threads <= 0 {
		return fmt.Errorf("invalid options: --threads must be > 0 (got %d)", *threads)
	}

	logger := newLogger(stderr, cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	category := strconv.Itoa(*threads)

	machines := make([]comparison, 0, len(cfg.Inputs))

	for _, path := range cfg.Inputs {
		records, loadErr := load(&cfg, path, logger)
		if loadErr != nil {
			return loadErr
		}

		agg := matbench.AggregateBySize(matbench.Filter(records, category), matbench.ByCategory)
		if len(agg[category]) == 0 {
			return fmt.Errorf("%s: no results for %d threads", path, *threads)
		}

		machines = append(machines, comparison{name: datasetName(path), series: agg[category]})
	}

	a, b := machines[0], machines[1]
	if a.name == b.name {
		a.name, b.name = a.name+" (a)", b.name+" (b)"
	}

	common := matbench.CommonSizes(a.series, b.series)
	if len(common) == 0 {
		return errors.New("inputs have no matrix size in common")
	}

	a.series = a.series.Restrict(common)
	b.series = b.series.Restrict(common)

	logger.Debug("common sizes", zap.Ints("sizes", common))

	labelA := fmt.Sprintf("%s (%d threads)", a.name, *threads)
	labelB := fmt.Sprintf("%s (%d threads)", b.name, *threads)

	series := chart.FromAggregated(matbench.Aggregated{labelA: a.series, labelB: b.series})

	title := cfg.Title
	if title == "" {
		title = fmt.Sprintf("Comparison: %s vs %s (%d threads)", a.name, b.name, *threads)
	}

	out, err := outPath(&cfg, fmt.Sprintf("comparison_%d_threads.png", *threads))
	if err != nil {
		return err
	}

	err = chart.Render(out, series, chart.Options{
		Title:      title,
		XLabel:     "Matrix Size (N x N)",
		YLabel:     "Execution Time (seconds)",
		XTicks:     chart.Float64s(common),
		Order:      []string{labelA, labelB},
		LegendLeft: true,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", out, err)
	}

	err = printComparison(stdout, a, b, common)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\nWrote: %s\n", out)

	return nil
}

func printComparison(stdout io.Writer, a, b comparison, sizes []int) error {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Size\t%s(s)\t%s(s)\tΔ%%\n", a.name, b.name)
	fmt.Fprint(w, "----\t-------\t-------\t--\n")

	for _, size := range sizes {
		pa, _ := a.series.At(size)
		pb, _ := b.series.At(size)

		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%s\n", size, pa.Mean, pb.Mean, fmtPctColored(pctChange(pb.Mean, pa.Mean)))
	}

	err := w.Flush()
	if err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Legend: Δ%% = mean time change of %s relative to %s (positive = slower)\n", b.name, a.name)
	_, _ = io.WriteString(stdout, "        red >= +1% slower, green <= -1% faster\n")

	return nil
}

func pctChange(newValue, oldValue float64) float64 {
	if oldValue == 0 {
		return 0
	}

	return (newValue - oldValue) / oldValue * 100
}

func fmtPct(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}

	return fmt.Sprintf("%.1f%%", v)
}

func fmtPctColored(v float64) string {
	s := fmtPct(v)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return s
	}

	switch {
	case v >= 1.0:
		return "\x1b[31m" + s + "\x1b[0m"
	case v <= -1.0:
		return "\x1b[32m" + s + "\x1b[0m"
	default:
		return s
	}
}
