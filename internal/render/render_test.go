package render

import (
	"errors"
	"math"
	"testing"

	"github.com/sells-group/poimap/internal/filter"
	"github.com/sells-group/poimap/internal/model"
	"github.com/sells-group/poimap/internal/sanitize"
)

func raw(name, category, state, city, lat, lon string) model.PoiRecord {
	return model.PoiRecord{
		Name: name, Category: category, State: state, City: city,
		RawLatitude: lat, RawLongitude: lon,
	}
}

func TestBuild_FullCycle(t *testing.T) {
	// The three-record scenario: one record has an unparsable latitude and
	// must vanish before filtering.
	ds := sanitize.Run(model.PoiDataset{
		raw("one", "A", "TX", "Austin", "1", "1"),
		raw("two", "A", "TX", "Austin", "bad", "2"),
		raw("three", "B", "CA", "Fresno", "3", "3"),
	})
	if len(ds) != 2 {
		t.Fatalf("expected 2 sanitized records, got %d", len(ds))
	}

	m, err := Build(ds, model.FilterSelection{Category: "A", State: filter.All, City: filter.All})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Total != 1 {
		t.Errorf("expected total 1, got %d", m.Total)
	}
	if len(m.Table) != 1 || m.Table[0].Name != "one" {
		t.Errorf("expected table [one], got %v", m.Table)
	}
	if m.Map == nil || len(m.Map.Points) != 1 {
		t.Fatalf("expected a map with 1 point, got %+v", m.Map)
	}
	if m.Map.Zoom != 10 || m.Map.Pitch != 40 {
		t.Errorf("unexpected viewport hints: zoom %f pitch %f", m.Map.Zoom, m.Map.Pitch)
	}

	// Aggregates cover the whole sanitized dataset, not the filtered subset.
	if len(m.CategoryCounts) != 2 {
		t.Errorf("expected both categories in the aggregate, got %v", m.CategoryCounts)
	}
	if len(m.StateCounts) != 2 {
		t.Errorf("expected both states in the aggregate, got %v", m.StateCounts)
	}
}

func TestBuild_CentroidIsMean(t *testing.T) {
	ds := model.PoiDataset{
		{Name: "a", Category: "P", Latitude: 10, Longitude: 20},
		{Name: "b", Category: "P", Latitude: 30, Longitude: 40},
	}

	m, err := Build(ds, model.FilterSelection{Category: "P", State: filter.All, City: filter.All})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(m.Map.CenterLatitude-20) > 1e-9 || math.Abs(m.Map.CenterLongitude-30) > 1e-9 {
		t.Errorf("expected centroid (20, 30), got (%f, %f)",
			m.Map.CenterLatitude, m.Map.CenterLongitude)
	}
}

func TestBuild_EmptyFilterResultIsNonFatal(t *testing.T) {
	// A state selected under an earlier fetch can match nothing after the
	// data changes. The cycle must render "no data" for map and table while
	// the filter-independent aggregates still display.
	ds := model.PoiDataset{
		{Name: "a", Category: "Park", State: "CA", Latitude: 1, Longitude: 1},
		{Name: "b", Category: "Museum", State: "TX", Latitude: 2, Longitude: 2},
	}

	m, err := Build(ds, model.FilterSelection{Category: "Park", State: "TX", City: filter.All})
	if err != nil {
		t.Fatalf("expected non-fatal empty result, got error: %v", err)
	}
	if m.Total != 0 {
		t.Errorf("expected total 0, got %d", m.Total)
	}
	if m.Map != nil {
		t.Error("expected no map for an empty filter result")
	}
	if len(m.Table) != 0 {
		t.Errorf("expected empty table, got %d rows", len(m.Table))
	}
	if len(m.CategoryCounts) != 2 || len(m.StateCounts) != 2 {
		t.Errorf("aggregates must survive an empty filter result: %v / %v",
			m.CategoryCounts, m.StateCounts)
	}
}

func TestBuild_EmptyCategoryHalts(t *testing.T) {
	ds := model.PoiDataset{
		{Name: "a", Category: "", State: "TX", Latitude: 1, Longitude: 1},
	}
	_, err := Build(ds, model.FilterSelection{Category: "Park"})
	if !errors.Is(err, filter.ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
}

func TestBuild_InvalidSelection(t *testing.T) {
	ds := model.PoiDataset{
		{Name: "a", Category: "Park", State: "TX", Latitude: 1, Longitude: 1},
	}
	_, err := Build(ds, model.FilterSelection{Category: "Museum"})
	if !errors.Is(err, filter.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestBuild_LimitCapsTable(t *testing.T) {
	ds := make(model.PoiDataset, 0, 25)
	for i := 0; i < 25; i++ {
		ds = append(ds, model.PoiRecord{
			Name: "p", Category: "Park", State: "TX",
			Latitude: float64(i), Longitude: float64(i),
		})
	}

	m, err := Build(ds, model.FilterSelection{Category: "Park", State: filter.All, City: filter.All})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Total != 25 {
		t.Errorf("expected total 25, got %d", m.Total)
	}
	// Default limit of 10 applies to the table only.
	if len(m.Table) != 10 {
		t.Errorf("expected 10 table rows, got %d", len(m.Table))
	}
	// The map shows the full filtered set.
	if len(m.Map.Points) != 25 {
		t.Errorf("expected 25 map points, got %d", len(m.Map.Points))
	}
}
