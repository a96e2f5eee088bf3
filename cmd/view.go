package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/poimap/internal/filter"
	"github.com/sells-group/poimap/internal/model"
	"github.com/sells-group/poimap/internal/render"
)

var (
	viewCategory string
	viewState    string
	viewCity     string
	viewLimit    int
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Run one dashboard cycle and print the summary",
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

		m, err := render.Build(ds, viewSelection())
		if err != nil {
			return err
		}

		fmt.Printf("Total POIs in selection: %d\n", m.Total)
		if m.Map == nil {
			fmt.Println("No data available for the selected filters.")
		} else {
			fmt.Printf("Map center: %.5f, %.5f (zoom %.0f)\n",
				m.Map.CenterLatitude, m.Map.CenterLongitude, m.Map.Zoom)
			fmt.Printf("\n%-40s %-20s %-20s %-6s\n", "NAME", "CATEGORY", "CITY", "STATE")
			for _, rec := range m.Table {
				fmt.Printf("%-40s %-20s %-20s %-6s\n", rec.Name, rec.Category, rec.City, rec.State)
			}
		}

		fmt.Println("\nPOIs by category (all data):")
		for _, lc := range m.CategoryCounts {
			fmt.Printf("  %-30s %d\n", lc.Label, lc.Count)
		}
		fmt.Println("\nPOIs by state (all data):")
		for _, lc := range m.StateCounts {
			fmt.Printf("  %-30s %d\n", lc.Label, lc.Count)
		}

		return nil
	},
}

func viewSelection() model.FilterSelection {
	sel := model.FilterSelection{
		Category: viewCategory,
		State:    viewState,
		City:     viewCity,
		Limit:    viewLimit,
	}
	if sel.State == "" {
		sel.State = filter.All
	}
	if sel.City == "" {
		sel.City = filter.All
	}
	return sel
}

func init() {
	viewCmd.Flags().StringVar(&viewCategory, "category", "", "category filter (required)")
	viewCmd.Flags().StringVar(&viewState, "state", "", "state filter (default All)")
	viewCmd.Flags().StringVar(&viewCity, "city", "", "city filter (default All)")
	viewCmd.Flags().IntVar(&viewLimit, "limit", 10, "max table rows")
	viewCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(viewCmd)
}
