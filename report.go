package matbench

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// WriteTimeTable writes mean execution times as a table with one row per
// size and one column per label. Labels without a measurement at a size
// show "N/A". If labels is nil, agg.Labels() is used.
func WriteTimeTable(w io.Writer, agg Aggregated, labels []string) error {
	if labels == nil {
		labels = agg.Labels()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Size\t%s\n", strings.Join(labels, "\t"))
	fmt.Fprintf(tw, "----\t%s\n", strings.Join(dashes(labels), "\t"))

	for _, size := range agg.Sizes() {
		cells := make([]string, len(labels))

		for i, label := range labels {
			p, ok := agg[label].At(size)
			if !ok {
				cells[i] = "N/A"

				continue
			}

			cells[i] = strconv.FormatFloat(p.Mean, 'f', 6, 64)
		}

		fmt.Fprintf(tw, "%d\t%s\n", size, strings.Join(cells, "\t"))
	}

	err := tw.Flush()
	if err != nil {
		return fmt.Errorf("flush time table: %w", err)
	}

	return nil
}

// WriteSpeedupTable writes each label's speedup at size, one row per label.
// If labels is nil, the labels are taken from speedups in [SortLabels] order.
func WriteSpeedupTable(w io.Writer, speedups map[string]SpeedupSeries, size int, labels []string) error {
	if labels == nil {
		labels = make([]string, 0, len(speedups))
		for label := range speedups {
			labels = append(labels, label)
		}

		labels = SortLabels(labels)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "Category\tSpeedup\n")
	fmt.Fprint(tw, "--------\t-------\n")

	for _, label := range labels {
		speedup, ok := speedups[label].At(size)
		if !ok {
			fmt.Fprintf(tw, "%s\tN/A\n", label)

			continue
		}

		fmt.Fprintf(tw, "%s\t%.2fx\n", label, speedup)
	}

	err := tw.Flush()
	if err != nil {
		return fmt.Errorf("flush speedup table: %w", err)
	}

	return nil
}

func dashes(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = strings.Repeat("-", max(len(l), 1))
	}

	return out
}
