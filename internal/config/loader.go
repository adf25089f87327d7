package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fabric-mcp/pkg/logging"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/fabric-mcp"
	configFileName = "config.yaml"
)

// GetDefaultConfigPath returns ~/.config/fabric-mcp, or an empty string when
// the home directory cannot be determined.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, userConfigDir)
}

// Override adjusts a loaded configuration before validation, e.g. to apply
// command line flags.
type Override func(*FabricConfig)

// LoadConfig resolves the configuration from configPath (a directory that may
// contain config.yaml) and the environment, applies overrides, then
// validates it. An empty configPath skips the file.
func LoadConfig(configPath string, overrides ...Override) (FabricConfig, error) {
	cfg, err := loadUnvalidated(configPath)
	if err != nil {
		return FabricConfig{}, err
	}
	for _, override := range overrides {
		override(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return FabricConfig{}, err
	}
	return cfg, nil
}

// LoadConfigForDisplay resolves the configuration like LoadConfig but does not
// validate it, so partial configurations can still be inspected.
func LoadConfigForDisplay(configPath string) (FabricConfig, error) {
	return loadUnvalidated(configPath)
}

func loadUnvalidated(configPath string) (FabricConfig, error) {
	cfg := GetDefaultConfig()

	if configPath != "" {
		configFilePath := filepath.Join(configPath, configFileName)
		data, err := os.ReadFile(configFilePath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logging.Debug("Config", "No config.yaml found at %s, using defaults", configFilePath)
		case err != nil:
			return FabricConfig{}, &ConfigError{FilePath: configFilePath, Err: err}
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return FabricConfig{}, &ConfigError{FilePath: configFilePath, Err: fmt.Errorf("malformed YAML: %w", err)}
			}
			logging.Info("Config", "Loaded configuration from %s", configFilePath)
		}
	}

	// Environment variables take precedence over the file.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return FabricConfig{}, &ConfigError{Err: fmt.Errorf("reading environment: %w", err)}
	}

	return cfg, nil
}

// MarshalYAML renders the configuration as YAML.
func MarshalYAML(cfg FabricConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
