package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/poimap/internal/filter"
)

var (
	optionsCategory string
	optionsState    string
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Print the cascading filter option lists",
	Long:  "Print category options, plus state options for a category and city options for a category/state pair.",
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

		categories, err := filter.Categories(ds)
		if err != nil {
			return err
		}
		fmt.Println("Categories:")
		for _, c := range categories {
			fmt.Printf("  %s\n", c)
		}

		if optionsCategory == "" {
			return nil
		}
		fmt.Printf("\nStates for %s:\n  %s\n", optionsCategory, filter.All)
		for _, s := range filter.States(ds, optionsCategory) {
			fmt.Printf("  %s\n", s)
		}

		state := optionsState
		if state == "" {
			state = filter.All
		}
		fmt.Printf("\nCities for %s / %s:\n  %s\n", optionsCategory, state, filter.All)
		for _, c := range filter.Cities(ds, optionsCategory, state) {
			fmt.Printf("  %s\n", c)
		}

		return nil
	},
}

func init() {
	optionsCmd.Flags().StringVar(&optionsCategory, "category", "", "category to derive state/city options for")
	optionsCmd.Flags().StringVar(&optionsState, "state", "", "state to narrow city options (default All)")
	rootCmd.AddCommand(optionsCmd)
}
