package app

import (
	"fmt"
	"net/http"

	"fabric-mcp/internal/config"
	"fabric-mcp/internal/fabric"
	"fabric-mcp/internal/server"
	"fabric-mcp/internal/tools"
	"fabric-mcp/pkg/logging"
)

// Services holds the wired components of a running fabric-mcp instance.
//
// Construction order follows the dependency chain:
//  1. Authenticator (owns the cached bearer token)
//  2. Client (dispatches authenticated requests)
//  3. Fabric service (one method per resource operation)
//  4. Tool router (closed name -> handler table)
//  5. MCP server (transport)
type Services struct {
	Authenticator *fabric.Authenticator
	Client        *fabric.Client
	Fabric        *fabric.Service
	Router        *tools.Router
	Server        *server.Server
}

// InitializeServices builds every component from a validated configuration.
func InitializeServices(cfg *Config) (*Services, error) {
	if cfg.FabricConfig == nil {
		return nil, fmt.Errorf("fabric configuration is not loaded")
	}
	fc := cfg.FabricConfig

	services, err := initializeFabric(fc)
	if err != nil {
		return nil, err
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	services.Server = server.New(services.Router, fc.Server, version)

	logging.Info("Bootstrap", "Initialized %d tools for %s", len(services.Router.Tools()), fc.APIBaseURL)
	return services, nil
}

// InitializeRouter builds the components up to the tool router, without a
// transport. It backs one-shot invocations from the command line.
func InitializeRouter(fc *config.FabricConfig) (*tools.Router, error) {
	services, err := initializeFabric(fc)
	if err != nil {
		return nil, err
	}
	return services.Router, nil
}

func initializeFabric(fc *config.FabricConfig) (*Services, error) {
	// One client for both token and resource calls so the timeout applies to each.
	httpClient := &http.Client{Timeout: fc.RequestTimeout}

	auth := fabric.NewAuthenticator(fc.TokenURL, fc.ClientID, fc.ClientSecret,
		fabric.WithAuthHTTPClient(httpClient))
	client := fabric.NewClient(fc.APIBaseURL, auth, fabric.WithHTTPClient(httpClient))
	svc := fabric.NewService(client)

	router, err := tools.NewRouter(svc)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool router: %w", err)
	}

	return &Services{
		Authenticator: auth,
		Client:        client,
		Fabric:        svc,
		Router:        router,
	}, nil
}
