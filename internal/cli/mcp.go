package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"leantime-mcp/internal/mcpserver"
)

func newMCPCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tools over MCP on stdin/stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// stdout carries the protocol; logs go to stderr
			a, err := newApp(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			a.logger.Info("mcp stdio server starting", "tools", len(a.dispatcher.Registry().Names()))
			server := mcpserver.New(a.dispatcher, opts.Version, a.logger)
			if err := mcpserver.RunStdio(ctx, server); err != nil && !errors.Is(err, context.Canceled) {
				return exitError(exitFailure, "mcp server: %v", err)
			}
			return nil
		},
	}
}
