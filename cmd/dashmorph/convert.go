package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dashmorph/dashmorph/internal/config"
	"github.com/dashmorph/dashmorph/internal/convert"
	"github.com/dashmorph/dashmorph/internal/report"
)

var (
	convertOutput  string
	convertReport  string
	convertForce   bool
	convertPerRow  int
	convertQuiet   bool
	convertNoColor bool
	convertVerbose bool
)

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Write the converted dashboard to this file (default: stdout)")
	convertCmd.Flags().StringVar(&convertReport, "report", "", "Write the diagnostics report as JSON to this file")
	convertCmd.Flags().BoolVar(&convertForce, "force-fallback", false, "Chart unsupported panel types as time series instead of skipping them")
	convertCmd.Flags().IntVar(&convertPerRow, "widgets-per-row", 0, "Widgets per layout row")
	convertCmd.Flags().BoolVarP(&convertQuiet, "quiet", "q", false, "Suppress the conversion summary")
	convertCmd.Flags().BoolVar(&convertNoColor, "no-color", false, "Disable colored output")
	convertCmd.Flags().BoolVar(&convertVerbose, "verbose", false, "Show per-panel conversion logs")
}

var convertCmd = &cobra.Command{
	Use:   "convert <dashboard.json>",
	Short: "Convert a Grafana dashboard JSON export",
	Long: `Convert a Grafana dashboard JSON export into a Coralogix dashboard.

The converted dashboard goes to stdout or the --output file; the summary
of per-panel outcomes goes to stderr so the JSON stays pipeable.

Examples:
  # Convert to stdout
  dashmorph convert grafana.json

  # Write the dashboard and a machine-readable report
  dashmorph convert grafana.json -o coralogix.json --report report.json

  # Chart heatmaps and other unsupported types as time series
  dashmorph convert grafana.json --force-fallback
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		opts := convertOptions(cfg)
		if cmd.Flags().Changed("force-fallback") {
			opts.ForceFallback = convertForce
		}
		if cmd.Flags().Changed("widgets-per-row") {
			opts.WidgetsPerRow = convertPerRow
		}
		opts.Logger = newLogger(convertVerbose)

		res, err := convert.ConvertJSON(data, opts)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(res.Dashboard, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode dashboard: %w", err)
		}
		out = append(out, '\n')

		if convertOutput == "" {
			cmd.OutOrStdout().Write(out)
		} else if err := os.WriteFile(convertOutput, out, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", convertOutput, err)
		}

		if convertReport != "" {
			reportJSON, err := res.Report.ToJSON()
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			if err := os.WriteFile(convertReport, []byte(reportJSON+"\n"), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", convertReport, err)
			}
		}

		if !convertQuiet {
			errOut := cmd.ErrOrStderr()
			report.WriteSummary(errOut, &res.Report, convertNoColor)
			report.WritePanels(errOut, &res.Report, convertNoColor)
			report.WriteMetrics(errOut, res.Metrics.List(), convertNoColor)
		}

		return nil
	},
}
