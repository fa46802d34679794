package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dashmorph/dashmorph/internal/config"
	"github.com/dashmorph/dashmorph/internal/convert"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dashmorph",
		Short: "Convert Grafana dashboards to Coralogix dashboards",
		Long: `Dashmorph converts Grafana dashboard JSON exports into Coralogix custom
dashboards. PromQL targets carry over as metric queries, Loki and
Elasticsearch targets are rewritten as Lucene queries, and panels without
a Coralogix counterpart are reported instead of silently dropped.`,
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// convertOptions maps the file configuration onto conversion options.
// Command flags override individual fields afterwards.
func convertOptions(cfg *config.Config) convert.Options {
	return convert.Options{
		ForceFallback: cfg.Convert.ForceFallback,
		WidgetsPerRow: cfg.Convert.WidgetsPerRow,
		FallbackTypes: cfg.Convert.FallbackTypes,
	}
}

// newLogger returns a console logger, or a nop logger unless verbose.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
