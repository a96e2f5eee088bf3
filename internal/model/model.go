// Package model defines the data types shared across the POI pipeline.
package model

// Source table column names. The source executes SELECT * and maps columns
// by upper-cased name; anything outside this set is carried in Extra.
const (
	ColName      = "POI_NAME"
	ColCategory  = "CATEGORY_MAIN"
	ColCity      = "CITY"
	ColState     = "STATE"
	ColLatitude  = "LATITUDE"
	ColLongitude = "LONGITUDE"
)

// PoiRecord is one row of the POI_ADDRESS_US table. Empty string means the
// value is missing. RawLatitude and RawLongitude hold the source text
// verbatim; Latitude and Longitude are only meaningful on records that have
// passed through sanitize.
type PoiRecord struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	State    string `json:"state,omitempty"`
	City     string `json:"city,omitempty"`

	RawLatitude  string `json:"-"`
	RawLongitude string `json:"-"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Extra holds passthrough columns keyed by upper-cased column name.
	Extra map[string]string `json:"extra,omitempty"`
}

// PoiDataset is an ordered sequence of records; order is source query order
// and is preserved by every downstream stage.
type PoiDataset []PoiRecord

// FilterSelection is one user selection. Category is required; State and
// City use the filter.All sentinel to mean "no constraint". Limit is the
// number of table rows to show, clamped to [1, len(filtered)] by the caller.
type FilterSelection struct {
	Category string `json:"category"`
	State    string `json:"state"`
	City     string `json:"city"`
	Limit    int    `json:"limit"`
}

// LabelCount pairs a label with its occurrence count for chart consumers.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
