package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fabric-mcp/internal/testing"
	"fabric-mcp/pkg/logging"

	"github.com/spf13/cobra"
)

// newTestCmd runs tool scenarios against an in-process fake Fabric API.
func newTestCmd() *cobra.Command {
	var (
		scenarioPath string
		scenarioName string
		tag          string
		output       string
		timeout      time.Duration
		failFast     bool
		verbose      bool
		debug        bool
	)

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run tool scenarios against a simulated Fabric API",
		Long: `Runs YAML scenarios that call tools through the same router the MCP server
uses. Each scenario starts its own fake token endpoint and Fabric API, so no
credentials or network access are needed.

Without --path the scenarios built into the binary are run.

Examples:
  fabric-mcp test
  fabric-mcp test --tag routers --verbose
  fabric-mcp test --path ./scenarios --scenario connection-lifecycle`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("unsupported output format %q (expected %s or %s)", output, outputTable, outputJSON)
			}

			level := logging.LevelWarn
			if debug {
				level = logging.LevelDebug
			}
			logging.Init(level, cmd.ErrOrStderr())

			var (
				scenarios []testing.Scenario
				err       error
			)
			if scenarioPath != "" {
				scenarios, err = testing.LoadScenarios(scenarioPath)
			} else {
				scenarios, err = testing.LoadBuiltinScenarios()
			}
			if err != nil {
				return err
			}

			scenarios = testing.FilterScenarios(scenarios, testing.Filter{Name: scenarioName, Tag: tag})
			if len(scenarios) == 0 {
				return errors.New("no scenarios match the given filters")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			suite := testing.NewRunner(testing.WithFailFast(failFast)).Run(ctx, scenarios)

			if output == outputJSON {
				if err := testing.WriteJSON(cmd.OutOrStdout(), suite); err != nil {
					return err
				}
			} else {
				testing.WriteTable(cmd.OutOrStdout(), suite, verbose)
			}

			if !suite.OK() {
				return fmt.Errorf("%d of %d scenarios did not pass", suite.Failed+suite.Errored, len(suite.Scenarios))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "path", "", "Scenario file or directory (default: built-in scenarios)")
	cmd.Flags().StringVar(&scenarioName, "scenario", "", "Run a single scenario by name")
	cmd.Flags().StringVar(&tag, "tag", "", "Run scenarios carrying this tag")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table or json")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Overall test execution timeout")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop after the first failing scenario")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "List failing steps and their output")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	return cmd
}
