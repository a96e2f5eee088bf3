package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/poimap/internal/export"
	"github.com/sells-group/poimap/internal/filter"
	"github.com/sells-group/poimap/internal/model"
)

var (
	exportCategory string
	exportState    string
	exportCity     string
	exportFormat   string
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered POI set to a file",
	Long:  "Apply the category/state/city filters and write the matching records as CSV, XLSX, or an ESRI point shapefile.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		src, err := initSource()
		if err != nil {
			return err
		}
		defer src.Close()

		ds, err := loadDataset(ctx, src)
		if err != nil {
			return err
		}

		sel := model.FilterSelection{
			Category: exportCategory,
			State:    orAll(exportState),
			City:     orAll(exportCity),
		}
		if err := filter.ValidateSelection(ds, sel); err != nil {
			return err
		}

		filtered := filter.Apply(ds, sel)
		if len(filtered) == 0 {
			return filter.ErrEmptyFilterResult
		}

		out := exportOut
		if out == "" {
			out = "filtered_poi_data." + exportFormat
		}

		switch strings.ToLower(exportFormat) {
		case "csv":
			err = writeFile(out, func(f *os.File) error { return export.WriteCSV(f, filtered) })
		case "xlsx":
			err = writeFile(out, func(f *os.File) error { return export.WriteXLSX(f, filtered) })
		case "shp", "shapefile":
			err = export.WriteShapefile(out, filtered)
		default:
			return eris.Errorf("unsupported format: %s", exportFormat)
		}
		if err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.String("path", out),
			zap.Int("records", len(filtered)),
		)
		fmt.Printf("Wrote %d records to %s\n", len(filtered), out)
		return nil
	},
}

func orAll(s string) string {
	if s == "" {
		return filter.All
	}
	return s
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}

func init() {
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "category filter (required)")
	exportCmd.Flags().StringVar(&exportState, "state", "", "state filter (default All)")
	exportCmd.Flags().StringVar(&exportCity, "city", "", "city filter (default All)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv, xlsx, or shp")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default filtered_poi_data.<format>)")
	exportCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(exportCmd)
}
