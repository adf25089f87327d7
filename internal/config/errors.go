package config

import (
	"fmt"
	"strings"
)

// ConfigError is returned when configuration cannot be loaded or is
// incomplete. It is fatal at start-up: no tool is served without valid
// credentials.
type ConfigError struct {
	// FilePath is set when the error came from reading config.yaml.
	FilePath string
	Problems []string
	Err      error
}

// Error implements the error interface
func (ce *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if ce.FilePath != "" {
		fmt.Fprintf(&b, " in %s", ce.FilePath)
	}
	if len(ce.Problems) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(ce.Problems, "; "))
	}
	if ce.Err != nil {
		b.WriteString(": ")
		b.WriteString(ce.Err.Error())
	}
	return b.String()
}

func (ce *ConfigError) Unwrap() error {
	return ce.Err
}
