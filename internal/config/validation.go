package config

import (
	"fmt"
	"net/url"

	"fabric-mcp/pkg/logging"
)

// Validate checks that the configuration is complete. All problems are
// reported at once in a single *ConfigError.
func (c FabricConfig) Validate() error {
	var problems []string

	if c.ClientID == "" {
		problems = append(problems, "EQUINIX_CLIENT_ID is required")
	}
	if c.ClientSecret == "" {
		problems = append(problems, "EQUINIX_CLIENT_SECRET is required")
	}
	if msg := validateURL("apiBaseURL", c.APIBaseURL); msg != "" {
		problems = append(problems, msg)
	}
	if msg := validateURL("tokenURL", c.TokenURL); msg != "" {
		problems = append(problems, msg)
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("requestTimeout must be positive, got %s", c.RequestTimeout))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	switch c.Server.Transport {
	case TransportStdio:
	case TransportStreamableHTTP, TransportSSE:
		if c.Server.Addr == "" {
			problems = append(problems, fmt.Sprintf("server.addr is required for transport %s", c.Server.Transport))
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown server.transport %q (expected %s, %s or %s)",
			c.Server.Transport, TransportStdio, TransportStreamableHTTP, TransportSSE))
	}

	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}

func validateURL(field, raw string) string {
	if raw == "" {
		return fmt.Sprintf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Sprintf("%s must be an absolute URL, got %q", field, raw)
	}
	return ""
}
