// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tempocycle/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cycle search over HTTP",
		Long: `Start the HTTP API (POST /v1/cycles, GET /healthz).

Search defaults and server limits come from --config; --addr overrides
server.addr.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			srv := server.New(cfg, rootOpts.logger(cmd.ErrOrStderr()))
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.Listen(cfg.Server.Addr) }()

			select {
			case err = <-errc:
				return WrapExitError(ExitCommandError, "listen", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err = srv.Shutdown(shutdownCtx); err != nil {
				return WrapExitError(ExitFailure, "shutdown", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
