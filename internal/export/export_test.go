package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/poimap/internal/model"
)

func testDataset() model.PoiDataset {
	return model.PoiDataset{
		{
			Name: "Zilker Park", Category: "Park", City: "Austin", State: "TX",
			Latitude: 30.267, Longitude: -97.773,
		},
		{
			Name: `Joe's "Best" BBQ`, Category: "Restaurant", City: "Lockhart", State: "TX",
			Latitude: 29.885, Longitude: -97.67,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testDataset()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "POI_NAME,CATEGORY_MAIN,CITY,STATE,LATITUDE,LONGITUDE" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "Zilker Park,Park,Austin,TX,30.267,-97.773" {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	// Embedded quotes get standard CSV escaping.
	if !strings.Contains(lines[2], `"Joe's ""Best"" BBQ"`) {
		t.Errorf("expected escaped quotes, got: %s", lines[2])
	}
}

func TestWriteCSV_EmptyDatasetKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != strings.Join(Header, ",") {
		t.Errorf("expected header only, got: %q", buf.String())
	}
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, testDataset()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := xlsx.OpenBinary(buf.Bytes())
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	if len(f.Sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(f.Sheets))
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(sheet.Rows))
	}
	if got := sheet.Rows[0].Cells[0].String(); got != model.ColName {
		t.Errorf("expected header %s, got %s", model.ColName, got)
	}
	if got := sheet.Rows[1].Cells[0].String(); got != "Zilker Park" {
		t.Errorf("expected Zilker Park, got %s", got)
	}
	lat, err := sheet.Rows[1].Cells[4].Float()
	if err != nil {
		t.Fatalf("latitude cell not numeric: %v", err)
	}
	if lat != 30.267 {
		t.Errorf("expected latitude 30.267, got %f", lat)
	}
}

func TestWriteShapefile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pois.shp")
	if err := WriteShapefile(path, testDataset()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, err := shp.Open(path)
	if err != nil {
		t.Fatalf("reopen shapefile: %v", err)
	}
	defer r.Close()

	var shapes int
	for r.Next() {
		_, shape := r.Shape()
		pt, ok := shape.(*shp.Point)
		if !ok {
			t.Fatalf("expected point geometry, got %T", shape)
		}
		if shapes == 0 && (pt.X != -97.773 || pt.Y != 30.267) {
			t.Errorf("unexpected first point: (%f, %f)", pt.X, pt.Y)
		}
		name := strings.TrimRight(r.Attribute(0), "\x00")
		if name == "" {
			t.Error("expected a NAME attribute")
		}
		shapes++
	}
	if shapes != 2 {
		t.Errorf("expected 2 shapes, got %d", shapes)
	}
}
