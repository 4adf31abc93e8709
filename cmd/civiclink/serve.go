package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/civiclink/internal/mcp"
	"github.com/dshills/civiclink/internal/storage"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Run the Model Context Protocol server on stdin/stdout.

Stdout is reserved for the protocol; logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Info("civiclink MCP server starting",
				zap.String("version", version),
				zap.String("build_mode", storage.BuildMode),
				zap.String("driver", storage.DriverName))

			server, err := mcp.NewServer(a.cfg, a.logger)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			errChan := make(chan error, 1)
			go func() {
				a.logger.Info("MCP server ready, listening on stdio")
				errChan <- server.Serve(ctx)
			}()

			select {
			case sig := <-sigChan:
				a.logger.Info("shutting down", zap.String("signal", sig.String()))
				cancel()
			case err := <-errChan:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
			}

			a.logger.Info("server stopped")
			return nil
		},
	}
}
