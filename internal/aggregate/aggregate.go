// Package aggregate computes frequency counts over the full sanitized
// dataset. Counts are deliberately filter-independent: the charts give
// all-data context alongside the focused map/table view.
package aggregate

import (
	"sort"

	"github.com/sells-group/poimap/internal/model"
)

// Field selects which label to count.
type Field string

const (
	FieldCategory Field = "category"
	FieldState    Field = "state"
)

// CountBy tallies occurrences of the field's label across ds. Records with
// a missing value are excluded entirely; there is no synthetic "unknown"
// bucket. The returned map carries no ordering guarantee.
func CountBy(ds model.PoiDataset, field Field) map[string]int {
	counts := make(map[string]int)
	for _, rec := range ds {
		var label string
		switch field {
		case FieldState:
			label = rec.State
		default:
			label = rec.Category
		}
		if label == "" {
			continue
		}
		counts[label]++
	}
	return counts
}

// SortedByCountDesc returns the counts as a slice ordered by count
// descending, ties broken by label ascending. This matches the original
// chart ordering (value_counts).
func SortedByCountDesc(counts map[string]int) []model.LabelCount {
	out := toSlice(counts)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// SortedByLabel returns the counts ordered by label ascending.
func SortedByLabel(counts map[string]int) []model.LabelCount {
	out := toSlice(counts)
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func toSlice(counts map[string]int) []model.LabelCount {
	out := make([]model.LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, model.LabelCount{Label: label, Count: n})
	}
	return out
}
