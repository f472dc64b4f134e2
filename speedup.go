package matbench

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// DefaultBaseline is the single-thread category speedups are measured against.
const DefaultBaseline = "1"

// SpeedupPoint is the speedup of one category at one size.
type SpeedupPoint struct {
	Size int
	// Speedup is baseline mean time / category mean time.
	Speedup float64
}

// SpeedupSeries is sorted ascending by Size.
type SpeedupSeries []SpeedupPoint

// At returns the speedup at size.
func (s SpeedupSeries) At(size int) (float64, bool) {
	for _, p := range s {
		if p.Size == size {
			return p.Speedup, true
		}
	}

	return 0, false
}

// ComputeSpeedup divides the baseline group's mean time by every group's
// mean time at the same size.
//
// Every size measured by any group must also be measured by the baseline;
// otherwise a [*MissingBaselineError] naming the smallest such size is
// returned. A group that did not measure some size simply has no point there.
// A group whose mean time is zero yields a [*ZeroTimeError].
// The baseline's own series is all 1.0.
func ComputeSpeedup(agg Aggregated, baseline string) (map[string]SpeedupSeries, error) {
	base, ok := agg[baseline]
	if !ok || len(base) == 0 {
		return nil, &MissingBaselineError{Baseline: baseline}
	}

	for _, size := range agg.Sizes() {
		if _, ok := base.At(size); !ok {
			return nil, &MissingBaselineError{Baseline: baseline, Size: size}
		}
	}

	speedups := make(map[string]SpeedupSeries, len(agg))

	for _, label := range agg.Labels() {
		series := agg[label]
		out := make(SpeedupSeries, 0, len(series))

		for _, p := range series {
			bp, _ := base.At(p.Size)

			ratio := 1.0
			if label != baseline {
				if p.Mean == 0 {
					return nil, &ZeroTimeError{Category: label, Size: p.Size}
				}

				ratio = bp.Mean / p.Mean
			}

			out = append(out, SpeedupPoint{Size: p.Size, Speedup: ratio})
		}

		speedups[label] = out
	}

	return speedups, nil
}

// ScalingPoint is the speedup reached with a given thread count.
type ScalingPoint struct {
	Threads int
	Speedup float64
}

// ScalingSeries is sorted ascending by Threads.
type ScalingSeries []ScalingPoint

// ScalingBySize pivots per-category speedups into one series per size,
// with the thread count on the x axis. Categories must be integers;
// otherwise the error wraps [ErrNonNumericCategory].
func ScalingBySize(speedups map[string]SpeedupSeries) (map[int]ScalingSeries, error) {
	bySize := make(map[int]ScalingSeries)

	for _, label := range SortLabels(slices.Collect(maps.Keys(speedups))) {
		threads, err := strconv.Atoi(label)
		if err != nil {
			return nil, fmt.Errorf("scaling for %q: %w", label, ErrNonNumericCategory)
		}

		for _, p := range speedups[label] {
			bySize[p.Size] = append(bySize[p.Size], ScalingPoint{Threads: threads, Speedup: p.Speedup})
		}
	}

	return bySize, nil
}
