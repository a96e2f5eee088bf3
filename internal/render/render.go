// Package render assembles the presenter-facing view of one interaction
// cycle. Build is a pure function of the sanitized dataset and the current
// selection; the UI layer only dispatches and displays.
package render

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/sells-group/poimap/internal/aggregate"
	"github.com/sells-group/poimap/internal/filter"
	"github.com/sells-group/poimap/internal/model"
)

// Viewport hints matching the original map view.
const (
	defaultZoom  = 10
	defaultPitch = 40
)

// MapPoint is one marker on the scatter layer, with the tooltip labels.
type MapPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
}

// MapView is the point layer plus an initial viewport centered on the
// centroid of the filtered points.
type MapView struct {
	Points          []MapPoint `json:"points"`
	CenterLatitude  float64    `json:"center_latitude"`
	CenterLongitude float64    `json:"center_longitude"`
	Zoom            float64    `json:"zoom"`
	Pitch           float64    `json:"pitch"`
}

// Model is everything the presenter needs for one cycle. Map is nil and
// Table empty when the selection matches no records; CategoryCounts and
// StateCounts are computed over the full sanitized dataset regardless of
// the selection.
type Model struct {
	Selection model.FilterSelection `json:"selection"`
	Total     int                   `json:"total"`

	Map   *MapView           `json:"map,omitempty"`
	Table model.PoiDataset   `json:"table,omitempty"`

	CategoryCounts []model.LabelCount `json:"category_counts"`
	StateCounts    []model.LabelCount `json:"state_counts"`
}

// Build runs one pipeline cycle: filter, cap the table, and attach the
// filter-independent aggregates. ErrEmptyCategory and an unknown category
// halt the cycle. A stale state or city (valid under an earlier fetch but
// matching nothing now) is not an error: it renders as "no data" while the
// aggregates still display.
func Build(ds model.PoiDataset, sel model.FilterSelection) (*Model, error) {
	if err := filter.ValidateCategory(ds, sel.Category); err != nil {
		return nil, err
	}

	filtered := filter.Apply(ds, sel)
	sel.Limit = filter.ClampLimit(sel.Limit, len(filtered))

	m := &Model{
		Selection:      sel,
		Total:          len(filtered),
		CategoryCounts: aggregate.SortedByCountDesc(aggregate.CountBy(ds, aggregate.FieldCategory)),
		StateCounts:    aggregate.SortedByCountDesc(aggregate.CountBy(ds, aggregate.FieldState)),
	}
	if len(filtered) == 0 {
		return m, nil
	}

	m.Table = filter.Limit(filtered, sel.Limit)
	m.Map = buildMap(filtered)
	return m, nil
}

// buildMap projects the filtered set onto the scatter layer. ds must be
// non-empty and sanitized.
func buildMap(ds model.PoiDataset) *MapView {
	points := make([]MapPoint, len(ds))
	flat := make([]float64, 0, 2*len(ds))
	for i, rec := range ds {
		points[i] = MapPoint{
			Longitude: rec.Longitude,
			Latitude:  rec.Latitude,
			Name:      rec.Name,
			Category:  rec.Category,
			City:      rec.City,
			State:     rec.State,
		}
		flat = append(flat, rec.Longitude, rec.Latitude)
	}

	center := xy.MultiPointCentroid(geom.NewMultiPointFlat(geom.XY, flat))
	return &MapView{
		Points:          points,
		CenterLongitude: center.X(),
		CenterLatitude:  center.Y(),
		Zoom:            defaultZoom,
		Pitch:           defaultPitch,
	}
}
