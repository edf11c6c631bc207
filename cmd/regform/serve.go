package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/server"
)

func serveCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registration form over HTTP",
		Long: `Serve the registration form as an HTML page.

Routes:
  GET  /              form page
  POST /submit        submit posted values
  POST /reset         clear the form
  POST /fields/{name} apply one field edit (JSON)
  GET  /state         current form as JSON
  GET  /ws            live validation events
  GET  /openapi.yaml  payload contract
  GET  /metrics       Prometheus metrics
  GET  /healthz       liveness

Examples:
  regform serve
  regform serve --addr=:9090 --policy=legacy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			logger := cfg.Logger(cmd.ErrOrStderr())
			srv, err := server.New(cfg, server.WithLogger(logger))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config)")

	return cmd
}
