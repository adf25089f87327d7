package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"fabric-mcp/internal/server"

	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version         string `json:"version"`
	ProtocolVersion string `json:"mcpProtocolVersion"`
	GoVersion       string `json:"goVersion"`
	Platform        string `json:"platform"`
}

// newVersionCmd prints the build version, plus runtime details with --output json.
func newVersionCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of fabric-mcp",
		Long: `Prints the fabric-mcp build version. With --output json the MCP protocol
revision, Go version and platform are included.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case outputTable:
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", server.Name, rootCmd.Version)
				return nil
			case outputJSON:
				data, err := json.MarshalIndent(versionInfo{
					Version:         rootCmd.Version,
					ProtocolVersion: server.ProtocolVersion(),
					GoVersion:       runtime.Version(),
					Platform:        runtime.GOOS + "/" + runtime.GOARCH,
				}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			default:
				return fmt.Errorf("unsupported output format %q (expected %s or %s)", output, outputTable, outputJSON)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table (plain text) or json")
	return cmd
}
