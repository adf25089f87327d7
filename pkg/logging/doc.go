// Package logging provides the subsystem-tagged logging facade used across
// fabric-mcp.
//
// It is a thin layer over log/slog. Every entry carries a "subsystem"
// attribute so output can be filtered by component:
//
//   - Bootstrap: application start-up and shutdown
//   - Config: configuration loading
//   - Auth: OAuth2 client-credential token acquisition
//   - Dispatcher: outbound Equinix Fabric API calls
//   - Router: tool invocation routing
//   - Server: MCP transport
//   - Scenario: the `fabric-mcp test` scenario runner
//
// # Usage
//
//	logging.Init(logging.LevelInfo, os.Stderr)
//	logging.Info("Bootstrap", "Starting fabric-mcp %s", version)
//	logging.Error("Dispatcher", err, "Request to %s failed", path)
//
// Output must never go to stdout when the stdio transport is active, since
// stdout carries MCP protocol frames.
//
// Secrets and bearer tokens are never passed to this package.
package logging
