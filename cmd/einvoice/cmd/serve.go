package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rezonia/einvoice/internal/config"
	"github.com/rezonia/einvoice/internal/processor"
	"github.com/rezonia/einvoice/internal/server"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Start the HTTP API exposing import, validation and normalization.

Endpoints:
  GET  /health
  POST /api/v1/import?mode=strict|lenient
  POST /api/v1/validate?profile=<id>
  POST /api/v1/normalize
  GET  /api/v1/profiles

Configuration comes from an optional YAML file plus EINVOICE_* environment
variables.

Examples:
  einvoice serve
  einvoice serve --config einvoice.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file (yaml)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger := newLogger()
	pipeline := processor.NewPipeline(processor.WithLogger(logger))

	srv := server.NewServer(&server.Config{
		Address:        cfg.Server.Address(),
		DefaultProfile: cfg.Validation.DefaultProfile,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		Debug:          cfg.Server.Debug,
		Logger:         logger,
	}, pipeline)

	return srv.Run()
}
