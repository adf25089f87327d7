// Package app bootstraps fabric-mcp.
//
// NewApplication resolves the configuration (defaults, config.yaml, the
// environment, then command line overrides), initializes logging on stderr
// and wires the components in dependency order:
//
//	Authenticator -> Client -> fabric.Service -> tools.Router -> server.Server
//
// Missing credentials or invalid settings surface as *config.ConfigError
// before any component is built; they are the only fatal errors. Failures
// of individual tool calls are rendered by the router and never stop the
// process.
//
// Run blocks serving the configured MCP transport and returns on context
// cancellation, SIGINT or SIGTERM.
package app
