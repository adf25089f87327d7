package cmd

import (
	"encoding/json"
	"fmt"

	"fabric-mcp/internal/app"
	"fabric-mcp/internal/config"
	"fabric-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

// newCallCmd invokes a single tool without starting a server.
func newCallCmd() *cobra.Command {
	var (
		argsJSON   string
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke one tool and print its result",
		Long: `Invokes a single tool through the same router the MCP server uses and prints
the result text. Arguments are passed as a JSON object:

  fabric-mcp call get_connection --args '{"connection_id":"<uuid>"}'

The command exits with code 1 when the tool returns an error result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := logging.LevelWarn
			if debug {
				level = logging.LevelDebug
			}
			logging.Init(level, cmd.ErrOrStderr())

			toolArgs := map[string]any{}
			if argsJSON != "" {
				if err := json.Unmarshal([]byte(argsJSON), &toolArgs); err != nil {
					return fmt.Errorf("--args must be a JSON object: %w", err)
				}
			}

			fc, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			router, err := app.InitializeRouter(&fc)
			if err != nil {
				return err
			}

			result := router.Call(cmd.Context(), args[0], toolArgs)
			for _, content := range result.Content {
				if tc, ok := mcp.AsTextContent(content); ok {
					fmt.Fprintln(cmd.OutOrStdout(), tc.Text)
				}
			}
			if result.IsError {
				return &toolError{tool: args[0]}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&argsJSON, "args", "", "Tool arguments as a JSON object")
	cmd.Flags().StringVar(&configPath, "config-path", config.GetDefaultConfigPath(), "Configuration directory containing config.yaml")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	return cmd
}
