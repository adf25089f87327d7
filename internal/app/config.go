package app

import (
	"fabric-mcp/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug forces debug logging regardless of the configured level.
	Debug bool

	// ConfigPath is the directory holding config.yaml. Empty skips the file.
	ConfigPath string

	// Transport and Addr override the configured MCP transport when set.
	Transport string
	Addr      string

	// Version is reported to MCP clients during initialization.
	Version string

	// FabricConfig is the resolved configuration. When nil it is loaded
	// during bootstrap.
	FabricConfig *config.FabricConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}

// overrides turns the command line settings into config overrides.
func (c *Config) overrides() []config.Override {
	var out []config.Override
	if c.Debug {
		out = append(out, func(fc *config.FabricConfig) { fc.LogLevel = "debug" })
	}
	if c.Transport != "" {
		out = append(out, func(fc *config.FabricConfig) { fc.Server.Transport = c.Transport })
	}
	if c.Addr != "" {
		out = append(out, func(fc *config.FabricConfig) { fc.Server.Addr = c.Addr })
	}
	return out
}
