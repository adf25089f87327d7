// Package config loads and validates the fabric-mcp configuration.
//
// Configuration is resolved in three layers:
//
//  1. Built-in defaults (GetDefaultConfig)
//  2. config.yaml in the configuration directory (default ~/.config/fabric-mcp,
//     overridable with --config-path)
//  3. Environment variables
//
// The Equinix client credentials come from EQUINIX_CLIENT_ID and
// EQUINIX_CLIENT_SECRET. Their absence is reported as a *ConfigError, which the
// application treats as fatal before any tool is served.
//
// Example config.yaml:
//
//	apiBaseURL: https://api.equinix.com/fabric/v4
//	tokenURL: https://api.equinix.com/oauth2/v1/token
//	requestTimeout: 30s
//	logLevel: debug
//	server:
//	  transport: streamable-http
//	  addr: ":8090"
package config
