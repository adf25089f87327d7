package config

import "time"

const (
	// DefaultAPIBaseURL is the Equinix Fabric v4 API root.
	DefaultAPIBaseURL = "https://api.equinix.com/fabric/v4"

	// DefaultTokenURL is the Equinix OAuth2 token endpoint.
	DefaultTokenURL = "https://api.equinix.com/oauth2/v1/token"

	// DefaultRequestTimeout is applied to every outbound HTTP call.
	DefaultRequestTimeout = 30 * time.Second

	DefaultLogLevel = "info"

	DefaultServerAddr = ":8090"
)

// GetDefaultConfig returns the built-in configuration. It carries no credentials.
func GetDefaultConfig() FabricConfig {
	return FabricConfig{
		APIBaseURL:     DefaultAPIBaseURL,
		TokenURL:       DefaultTokenURL,
		RequestTimeout: DefaultRequestTimeout,
		LogLevel:       DefaultLogLevel,
		Server: ServerConfig{
			Transport: TransportStdio,
			Addr:      DefaultServerAddr,
		},
	}
}
