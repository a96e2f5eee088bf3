package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/poimap/internal/model"
)

// WriteXLSX writes ds as a single-sheet workbook with the same columns as
// the CSV export. Coordinates are numeric cells.
func WriteXLSX(w io.Writer, ds model.PoiDataset) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("POIs")
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	hdr := sheet.AddRow()
	for _, col := range Header {
		hdr.AddCell().SetString(col)
	}

	for _, rec := range ds {
		row := sheet.AddRow()
		row.AddCell().SetString(rec.Name)
		row.AddCell().SetString(rec.Category)
		row.AddCell().SetString(rec.City)
		row.AddCell().SetString(rec.State)
		row.AddCell().SetFloat(rec.Latitude)
		row.AddCell().SetFloat(rec.Longitude)
	}

	return eris.Wrap(f.Write(w), "export: write xlsx")
}
