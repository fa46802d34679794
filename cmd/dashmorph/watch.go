package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dashmorph/dashmorph/internal/config"
	"github.com/dashmorph/dashmorph/internal/server"
	"github.com/dashmorph/dashmorph/internal/watch"
)

var (
	watchAddr     string
	watchDebounce int
)

func init() {
	watchCmd.Flags().StringVar(&watchAddr, "addr", "", "Preview server address (default from config, localhost:4444)")
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "Milliseconds changes settle before reconverting")
}

var watchCmd = &cobra.Command{
	Use:   "watch <dashboard.json>",
	Short: "Reconvert on change and serve a live preview",
	Long: `Watch a Grafana dashboard JSON export and reconvert it on every save.

The preview server shows the converted dashboard, the per-panel outcomes,
and the referenced metric names, and refreshes open browsers over a
websocket. The latest result can be downloaded at /dashboard.json.

Examples:
  dashmorph watch grafana.json
  dashmorph watch grafana.json --addr localhost:5000 --debounce 500
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		addr := fmt.Sprintf("localhost:%d", cfg.Watch.Port)
		if watchAddr != "" {
			addr = watchAddr
		}
		debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
		if cmd.Flags().Changed("debounce") {
			debounce = time.Duration(watchDebounce) * time.Millisecond
		}

		logger, err := zap.NewDevelopment()
		if err != nil {
			logger = zap.NewNop()
		}
		defer logger.Sync()

		session, err := watch.NewSession(&watch.SessionConfig{
			Path:     args[0],
			Address:  addr,
			Debounce: debounce,
			Convert:  convertOptions(cfg),
			Logger:   logger,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Preview: http://%s\n", addr)
		return server.NewGracefulShutdown(session, logger, 10*time.Second).Run()
	},
}
