package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/report"
)

var inspectNoColor bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectNoColor, "no-color", false, "Disable colored output")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <dashboard.json>",
	Short: "List a dashboard's panels, targets, and query dialects",
	Long: `Inspect a Grafana dashboard JSON export without converting it.

Each panel is listed with its visible target count and the query dialects
those targets carry, which previews how the converter will treat them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		src, err := grafana.ParseDashboard(data)
		if err != nil {
			return err
		}

		title := src.Title
		if title == "" {
			title = args[0]
		}

		out := cmd.OutOrStdout()
		report.Header(out, title, inspectNoColor)
		report.WriteInventory(out, src, inspectNoColor)
		return nil
	},
}
