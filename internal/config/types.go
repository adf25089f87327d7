package config

import (
	"time"

	fstrings "fabric-mcp/pkg/strings"
)

// MCP transport identifiers accepted by Server.Transport.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
	TransportSSE            = "sse"
)

// FabricConfig is the top-level configuration for fabric-mcp.
//
// Values are resolved in order: built-in defaults, config.yaml in the config
// directory, then environment variables. Credentials are normally supplied
// through the environment only.
type FabricConfig struct {
	// APIBaseURL is the Equinix Fabric v4 REST root, e.g. https://api.equinix.com/fabric/v4.
	APIBaseURL string `yaml:"apiBaseURL" env:"EQUINIX_API_BASE_URL"`

	// TokenURL is the OAuth2 client-credentials token endpoint.
	TokenURL string `yaml:"tokenURL" env:"EQUINIX_TOKEN_URL"`

	ClientID     string `yaml:"clientID,omitempty" env:"EQUINIX_CLIENT_ID"`
	ClientSecret string `yaml:"clientSecret,omitempty" env:"EQUINIX_CLIENT_SECRET"`

	// RequestTimeout bounds every outbound HTTP call, token requests included.
	RequestTimeout time.Duration `yaml:"requestTimeout" env:"FABRIC_MCP_REQUEST_TIMEOUT"`

	LogLevel string `yaml:"logLevel" env:"FABRIC_MCP_LOG_LEVEL"`

	Server ServerConfig `yaml:"server"`
}

// ServerConfig controls the MCP transport the tools are served on.
type ServerConfig struct {
	// Transport is one of stdio, streamable-http or sse.
	Transport string `yaml:"transport" env:"FABRIC_MCP_TRANSPORT"`

	// Addr is the listen address for the HTTP based transports.
	Addr string `yaml:"addr" env:"FABRIC_MCP_ADDR"`
}

// Redacted returns a copy safe for display with the client secret masked.
func (c FabricConfig) Redacted() FabricConfig {
	out := c
	out.ClientSecret = fstrings.Mask(c.ClientSecret)
	return out
}
