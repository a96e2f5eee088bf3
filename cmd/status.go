package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/poimap/internal/filter"
	"github.com/sells-group/poimap/internal/sanitize"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check source connectivity and data shape",
	Long:  "Connect to the configured source, fetch the POI table once, and report row and option counts.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		src, err := initSource()
		if err != nil {
			return err
		}
		defer src.Close()

		if err := src.Ping(ctx); err != nil {
			return err
		}
		fmt.Println("Source: reachable")

		raw, err := src.Fetch(ctx)
		if err != nil {
			return err
		}
		ds := sanitize.Run(raw)

		fmt.Printf("Rows fetched:      %d\n", len(raw))
		fmt.Printf("Rows with coords:  %d\n", len(ds))

		categories, err := filter.Categories(ds)
		if err != nil {
			fmt.Println("Categories:        none")
			return err
		}
		fmt.Printf("Categories:        %d\n", len(categories))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
