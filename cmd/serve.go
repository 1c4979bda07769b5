package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/gosfrc/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator as a JSON HTTP API",
	Long: `Serve the calculator over HTTP.

Endpoints:
  GET  /health
  GET  /api/v1/limits
  GET  /api/v1/profiles
  POST /api/v1/validate
  POST /api/v1/evaluate?profile=ID

Request body (all fields optional):
  {"vf": 1.0, "vf_unit": "percent", "lf": 50, "df": 0.75,
   "fc": 40, "ffu": 2000, "targets": ["fr1", "fr3"],
   "allow_extrapolation": true}

Examples:
  gosfrc serve
  gosfrc serve --addr 127.0.0.1:9090 --profiles-file lab.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(registry, logger).Run(ctx, serveAddr)
}
