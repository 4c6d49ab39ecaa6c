package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/esenrich/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve enrichment requests over HTTP",
		Long: `Start an HTTP server exposing the enrichment service.

Routes:
  POST /apply    body {"s3Pointer": "<bucket/key.csv>"}, returns the result envelope
  GET  /healthz  liveness probe

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  esenrich serve --addr :9090`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default :8080)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, svc, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:    cfg.Addr,
		Applier: svc,
		Logger:  logger,
	})
	return srv.Serve(ctx)
}
