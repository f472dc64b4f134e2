package chart

import (
	"fmt"
	"maps"
	"slices"

	"gonum.org/v1/plot/plotter"

	"github.com/calvinalkan/matbench"
)

// FromAggregated converts mean times to plot points: x = size, y = mean seconds.
func FromAggregated(agg matbench.Aggregated) map[string]plotter.XYs {
	out := make(map[string]plotter.XYs, len(agg))

	for label, series := range agg {
		pts := make(plotter.XYs, len(series))
		for i, p := range series {
			pts[i] = plotter.XY{X: float64(p.Size), Y: p.Mean}
		}

		out[label] = pts
	}

	return out
}

// FromSpeedup converts speedups to plot points: x = size, y = speedup.
func FromSpeedup(speedups map[string]matbench.SpeedupSeries) map[string]plotter.XYs {
	out := make(map[string]plotter.XYs, len(speedups))

	for label, series := range speedups {
		pts := make(plotter.XYs, len(series))
		for i, p := range series {
			pts[i] = plotter.XY{X: float64(p.Size), Y: p.Speedup}
		}

		out[label] = pts
	}

	return out
}

// FromScaling converts per-size thread scaling to plot points labeled
// "NxN": x = threads, y = speedup. The returned order lists the labels by
// ascending size, for use as [Options.Order].
func FromScaling(bySize map[int]matbench.ScalingSeries) (map[string]plotter.XYs, []string) {
	out := make(map[string]plotter.XYs, len(bySize))
	order := make([]string, 0, len(bySize))

	for _, size := range slices.Sorted(maps.Keys(bySize)) {
		label := SizeLabel(size)
		series := bySize[size]

		pts := make(plotter.XYs, len(series))
		for i, p := range series {
			pts[i] = plotter.XY{X: float64(p.Threads), Y: p.Speedup}
		}

		out[label] = pts
		order = append(order, label)
	}

	return out, order
}

// SizeLabel formats a matrix size as "NxN".
func SizeLabel(size int) string {
	return fmt.Sprintf("%dx%d", size, size)
}

// Float64s converts integer sizes to tick values.
func Float64s(sizes []int) []float64 {
	out := make([]float64, len(sizes))
	for i, s := range sizes {
		out[i] = float64(s)
	}

	return out
}
