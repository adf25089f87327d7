package app

import (
	"context"
	"os/signal"
	"syscall"

	"fabric-mcp/pkg/logging"
)

// runServer serves MCP until the transport ends or the process receives
// SIGINT or SIGTERM, then shuts down gracefully.
func runServer(ctx context.Context, services *Services) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := services.Server.Serve(ctx); err != nil {
		logging.Error("Bootstrap", err, "MCP server stopped with an error")
		return err
	}

	logging.Info("Bootstrap", "MCP server stopped")
	return nil
}
