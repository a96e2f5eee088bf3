package export

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/poimap/internal/model"
)

// DBF string field widths. Values longer than the width are truncated,
// a format restriction of the DBF attribute table.
const (
	nameWidth  = 64
	labelWidth = 32
	stateWidth = 16
)

// WriteShapefile writes ds as a POINT shapefile at path (conventionally
// ending in .shp); the companion .shx and .dbf files are created beside it.
func WriteShapefile(path string, ds model.PoiDataset) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close()

	w.SetFields([]shp.Field{
		shp.StringField("NAME", nameWidth),
		shp.StringField("CATEGORY", labelWidth),
		shp.StringField("CITY", labelWidth),
		shp.StringField("STATE", stateWidth),
	})

	for n, rec := range ds {
		w.Write(&shp.Point{X: rec.Longitude, Y: rec.Latitude})
		attrs := []string{
			truncate(rec.Name, nameWidth),
			truncate(rec.Category, labelWidth),
			truncate(rec.City, labelWidth),
			truncate(rec.State, stateWidth),
		}
		for i, val := range attrs {
			if err := w.WriteAttribute(n, i, val); err != nil {
				return eris.Wrapf(err, "export: write shapefile attribute row %d", n)
			}
		}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
