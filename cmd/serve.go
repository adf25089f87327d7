package cmd

import (
	"context"
	"fmt"

	"fabric-mcp/internal/app"
	"fabric-mcp/internal/config"

	"github.com/spf13/cobra"
)

// serveDebug enables verbose logging across the application.
var serveDebug bool

// serveConfigPath is the directory holding config.yaml.
var serveConfigPath string

// serveTransport and serveAddr override the configured MCP transport.
var (
	serveTransport string
	serveAddr      string
)

// serveCmd starts the MCP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the Equinix Fabric tools over MCP",
	Long: `Starts the MCP server and serves the Equinix Fabric tool catalog.

Transports:
  stdio            (default) JSON-RPC over stdin/stdout, for desktop MCP clients
  streamable-http  MCP Streamable HTTP at http://<addr>/mcp
  sse              Server-Sent Events at http://<addr>/sse

Configuration is resolved from built-in defaults, <config-path>/config.yaml,
environment variables and finally these flags. EQUINIX_CLIENT_ID and
EQUINIX_CLIENT_SECRET are required; the command exits with code 2 when they
are missing. Logs are written to stderr.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(serveDebug, serveConfigPath)
	cfg.Transport = serveTransport
	cfg.Addr = serveAddr
	cfg.Version = GetVersion()

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", config.GetDefaultConfigPath(), "Configuration directory containing config.yaml")
	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "MCP transport: stdio, streamable-http or sse")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address for the HTTP transports, e.g. :8090")
}
