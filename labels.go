package matbench

import (
	"cmp"
	"slices"
	"strconv"
)

// SortLabels returns a sorted copy of labels.
//
// Integer labels come first, ordered by value ("2" before "16"); all other
// labels follow in lexicographic order. Equal labels keep their input order.
func SortLabels(labels []string) []string {
	sorted := slices.Clone(labels)
	slices.SortStableFunc(sorted, compareLabels)

	return sorted
}

// OrderLabels returns labels ordered by preferred first, in preferred's
// order, followed by the remaining labels in [SortLabels] order.
// Entries of preferred that are not in labels are ignored.
func OrderLabels(labels, preferred []string) []string {
	present := make(map[string]bool, len(labels))
	for _, l := range labels {
		present[l] = true
	}

	ordered := make([]string, 0, len(labels))
	used := make(map[string]bool, len(preferred))

	for _, p := range preferred {
		if present[p] && !used[p] {
			ordered = append(ordered, p)
			used[p] = true
		}
	}

	var rest []string

	for _, l := range labels {
		if !used[l] {
			rest = append(rest, l)
		}
	}

	return append(ordered, SortLabels(rest)...)
}

func compareLabels(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)

	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}
