package app

import (
	"context"
	"fmt"

	"fabric-mcp/internal/config"
	"fabric-mcp/pkg/logging"
)

// Application wires configuration, the Fabric client stack and the MCP
// server together.
//
// Example usage:
//
//	cfg := app.NewConfig(false, config.GetDefaultConfigPath())
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication loads the configuration (unless cfg.FabricConfig is already
// set), initializes logging on stderr and builds all services.
//
// Configuration problems are returned as *config.ConfigError so callers can
// treat them as fatal start-up errors.
func NewApplication(cfg *Config) (*Application, error) {
	bootLevel := logging.LevelInfo
	if cfg.Debug {
		bootLevel = logging.LevelDebug
	}
	// stdout belongs to the stdio transport.
	logging.Init(bootLevel, nil)

	if cfg.FabricConfig == nil {
		fc, err := config.LoadConfig(cfg.ConfigPath, cfg.overrides()...)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration")
			return nil, err
		}
		cfg.FabricConfig = &fc
	}

	level, err := logging.ParseLevel(cfg.FabricConfig.LogLevel)
	if err != nil {
		return nil, &config.ConfigError{Problems: []string{err.Error()}}
	}
	if cfg.Debug {
		level = logging.LevelDebug
	}
	logging.Init(level, nil)

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Services returns the wired components.
func (a *Application) Services() *Services {
	return a.services
}

// Run serves the tools until ctx is cancelled, a termination signal arrives
// or the transport ends.
func (a *Application) Run(ctx context.Context) error {
	return runServer(ctx, a.services)
}
