// Package filter implements the cascading category/state/city selection over
// a POI dataset. Option lists derive from the set already narrowed by the
// upstream levels: states from the category-filtered set, cities from the
// category+state-filtered set. A category change therefore invalidates any
// state or city no longer present in the narrowed lists.
package filter

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sells-group/poimap/internal/model"
)

// All is the sentinel meaning "no constraint" at the state and city levels.
// Matches the wording the dashboard front end shows.
const All = "All"

// Categories returns the sorted distinct non-missing category labels.
// An empty result is fatal for the cycle: there is nothing to select.
func Categories(ds model.PoiDataset) ([]string, error) {
	opts := distinctSorted(ds, func(r model.PoiRecord) string { return r.Category })
	if len(opts) == 0 {
		return nil, ErrEmptyCategory
	}
	return opts, nil
}

// States returns the sorted distinct non-missing state labels among records
// matching category. The caller prepends the All sentinel for display.
func States(ds model.PoiDataset, category string) []string {
	return distinctSorted(ds, func(r model.PoiRecord) string {
		if r.Category != category {
			return ""
		}
		return r.State
	})
}

// Cities returns the sorted distinct non-missing city labels among records
// matching category and, unless state is All, state.
func Cities(ds model.PoiDataset, category, state string) []string {
	return distinctSorted(ds, func(r model.PoiRecord) string {
		if r.Category != category {
			return ""
		}
		if state != All && r.State != state {
			return ""
		}
		return r.City
	})
}

// Apply narrows ds to records matching the selection with exact equality.
// The All sentinel short-circuits the state/city comparison entirely.
// Re-applying the same selection is a no-op.
func Apply(ds model.PoiDataset, sel model.FilterSelection) model.PoiDataset {
	out := make(model.PoiDataset, 0, len(ds))
	for _, rec := range ds {
		if rec.Category != sel.Category {
			continue
		}
		if sel.State != All && sel.State != "" && rec.State != sel.State {
			continue
		}
		if sel.City != All && sel.City != "" && rec.City != sel.City {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Limit returns the first n records in dataset order. The caller clamps n
// with ClampLimit and must not call Limit on an empty dataset; it reports
// "no data" instead.
func Limit(ds model.PoiDataset, n int) model.PoiDataset {
	if n > len(ds) {
		n = len(ds)
	}
	return ds[:n]
}

// ClampLimit clamps n to [1, size]. Zero or negative n falls back to the
// original dashboard default of 10 rows (capped at size).
func ClampLimit(n, size int) int {
	if n <= 0 {
		n = 10
	}
	if n > size {
		n = size
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ValidateCategory checks that the dataset has categories at all and that
// category is one of them.
func ValidateCategory(ds model.PoiDataset, category string) error {
	cats, err := Categories(ds)
	if err != nil {
		return err
	}
	if !contains(cats, category) {
		return invalid("category", category)
	}
	return nil
}

// ValidateSelection checks sel against the option lists derived from ds,
// enforcing the cascading dependency contract. State and city accept the
// All sentinel and the empty string (treated as All).
func ValidateSelection(ds model.PoiDataset, sel model.FilterSelection) error {
	if err := ValidateCategory(ds, sel.Category); err != nil {
		return err
	}
	if sel.State == "" {
		sel.State = All
	}
	if sel.State != All {
		if !contains(States(ds, sel.Category), sel.State) {
			return invalid("state", sel.State)
		}
	}
	if sel.City != All && sel.City != "" {
		if !contains(Cities(ds, sel.Category, sel.State), sel.City) {
			return invalid("city", sel.City)
		}
	}
	return nil
}

// distinctSorted collects distinct non-empty values of pick, sorted ascending
// lexicographic. A fresh collator per call: collators are not safe for
// concurrent use and the server filters from multiple goroutines.
func distinctSorted(ds model.PoiDataset, pick func(model.PoiRecord) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 16)
	for _, rec := range ds {
		v := pick(rec)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	collate.New(language.English).SortStrings(out)
	return out
}

func contains(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}
