// Package export writes the filtered POI set in the formats the dashboard
// offers for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/poimap/internal/model"
)

// Header matches the original download column order.
var Header = []string{
	model.ColName,
	model.ColCategory,
	model.ColCity,
	model.ColState,
	model.ColLatitude,
	model.ColLongitude,
}

// WriteCSV writes ds with a header row. Coordinates render as decimal
// degrees; standard CSV escaping applies.
func WriteCSV(w io.Writer, ds model.PoiDataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, rec := range ds {
		row := []string{
			rec.Name,
			rec.Category,
			rec.City,
			rec.State,
			formatCoord(rec.Latitude),
			formatCoord(rec.Longitude),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
