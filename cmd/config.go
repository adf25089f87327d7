package cmd

import (
	"fmt"

	"fabric-mcp/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCmd prints the effective configuration with the secret masked.
func newConfigCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Prints the configuration fabric-mcp would run with, after applying defaults,
config.yaml and environment variables. The client secret is masked.
Validation problems are reported on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := config.LoadConfigForDisplay(configPath)
			if err != nil {
				return err
			}

			data, err := config.MarshalYAML(fc.Redacted())
			if err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))

			if err := fc.Validate(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config-path", config.GetDefaultConfigPath(), "Configuration directory containing config.yaml")
	return cmd
}
