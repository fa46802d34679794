package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dashmorph/dashmorph/internal/config"
	"github.com/dashmorph/dashmorph/internal/server"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, localhost:8080)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the conversion API server",
	Long: `Run an HTTP server that converts dashboards on demand.

POST a Grafana dashboard JSON export to /api/v1/convert and receive the
Coralogix dashboard together with the per-panel diagnostics.

Examples:
  dashmorph serve
  dashmorph serve --addr :9090
  curl -s -XPOST --data @grafana.json localhost:8080/api/v1/convert
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		addr := fmt.Sprintf("%s:%d", cfg.Serve.Host, cfg.Serve.Port)
		if serveAddr != "" {
			addr = serveAddr
		}

		logger, err := zap.NewDevelopment()
		if err != nil {
			logger = zap.NewNop()
		}
		defer logger.Sync()

		scfg := server.DefaultConfig(addr)
		scfg.Logger = logger
		scfg.Convert = convertOptions(cfg)

		srv, err := server.New(scfg)
		if err != nil {
			return err
		}

		return server.NewGracefulShutdown(srv, logger, 30*time.Second).Run()
	},
}
