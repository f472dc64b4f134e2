package matbench

import (
	"cmp"
	"maps"
	"math"
	"slices"

	"golang.org/x/perf/benchmath"
	"gonum.org/v1/gonum/stat"
)

// confidence is the confidence level of [Point.Lo] and [Point.Hi].
const confidence = 0.95

// GroupKey extracts the grouping label from a record.
type GroupKey func(ResultRecord) string

// ByCategory groups records by thread count or configuration name.
func ByCategory(r ResultRecord) string { return r.Category }

// BySource groups records by dataset, e.g. to compare two machines.
func BySource(r ResultRecord) string { return r.Source }

// Point is the aggregate of all runs of one group at one size.
type Point struct {
	Size int
	// Mean is the arithmetic mean of the run times in seconds.
	Mean float64
	// StdDev is the sample standard deviation; 0 for a single run.
	StdDev float64
	Min    float64
	Max    float64
	Runs   int
	// Median is the center of the non-parametric summary.
	Median float64
	// Lo and Hi bound the 95% confidence interval of Median. With too few
	// runs for an interval they are Min and Max.
	Lo float64
	Hi float64
}

// Series is a group's points, sorted ascending by Size with at most one
// point per size.
type Series []Point

// At returns the point for size.
func (s Series) At(size int) (Point, bool) {
	idx, found := slices.BinarySearchFunc(s, size, func(p Point, size int) int {
		return cmp.Compare(p.Size, size)
	})
	if !found {
		return Point{}, false
	}

	return s[idx], true
}

// Sizes returns the sizes of the series in ascending order.
func (s Series) Sizes() []int {
	sizes := make([]int, len(s))
	for i, p := range s {
		sizes[i] = p.Size
	}

	return sizes
}

// Restrict returns the points whose size is in sizes.
func (s Series) Restrict(sizes []int) Series {
	keep := make(map[int]bool, len(sizes))
	for _, size := range sizes {
		keep[size] = true
	}

	out := make(Series, 0, len(s))

	for _, p := range s {
		if keep[p.Size] {
			out = append(out, p)
		}
	}

	return out
}

// CommonSizes returns the sizes present in both a and b, ascending.
func CommonSizes(a, b Series) []int {
	var common []int

	for _, p := range a {
		if _, ok := b.At(p.Size); ok {
			common = append(common, p.Size)
		}
	}

	return common
}

// Aggregated maps a group label to its series.
type Aggregated map[string]Series

// Labels returns the group labels in [SortLabels] order.
func (a Aggregated) Labels() []string {
	return SortLabels(slices.Collect(maps.Keys(a)))
}

// Sizes returns every size measured by any group, ascending.
func (a Aggregated) Sizes() []int {
	seen := make(map[int]bool)

	for _, series := range a {
		for _, p := range series {
			seen[p.Size] = true
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Filter returns the records whose category equals category, in input order.
func Filter(records []ResultRecord, category string) []ResultRecord {
	var out []ResultRecord

	for _, r := range records {
		if r.Category == category {
			out = append(out, r)
		}
	}

	return out
}

// AggregateBySize groups records by key and reduces each group to one
// [Point] per distinct size. Every returned series is sorted ascending by size.
func AggregateBySize(records []ResultRecord, key GroupKey) Aggregated {
	if key == nil {
		key = ByCategory
	}

	times := make(map[string]map[int][]float64)

	for _, r := range records {
		label := key(r)

		bySize, ok := times[label]
		if !ok {
			bySize = make(map[int][]float64)
			times[label] = bySize
		}

		bySize[r.Size] = append(bySize[r.Size], r.Time)
	}

	agg := make(Aggregated, len(times))

	for label, bySize := range times {
		series := make(Series, 0, len(bySize))

		for _, size := range slices.Sorted(maps.Keys(bySize)) {
			series = append(series, summarize(size, bySize[size]))
		}

		agg[label] = series
	}

	return agg
}

func summarize(size int, values []float64) Point {
	p := Point{
		Size: size,
		Runs: len(values),
		Mean: stat.Mean(values, nil),
		Min:  slices.Min(values),
		Max:  slices.Max(values),
	}

	if len(values) > 1 {
		p.StdDev = stat.StdDev(values, nil)
	}

	thresholds := benchmath.DefaultThresholds
	sample := benchmath.NewSample(slices.Clone(values), &thresholds)
	summary := benchmath.AssumeNothing.Summary(sample, confidence)

	p.Median = summary.Center
	p.Lo = summary.Lo
	p.Hi = summary.Hi

	if math.IsInf(p.Lo, 0) || math.IsNaN(p.Lo) {
		p.Lo = p.Min
	}

	if math.IsInf(p.Hi, 0) || math.IsNaN(p.Hi) {
		p.Hi = p.Max
	}

	return p
}
