package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"fabric-mcp/internal/tools"
	fstrings "fabric-mcp/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// newToolsCmd lists the tool catalog. It needs no credentials.
func newToolsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the MCP tools offered by fabric-mcp",
		Long: `Lists every tool in the catalog with its required arguments.

Use --output json to print the full metadata, including input schemas,
exactly as MCP clients receive it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := tools.Catalog()
			switch output {
			case outputJSON:
				data, err := json.MarshalIndent(catalog, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode tool catalog: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			case outputTable:
				renderToolTable(cmd, catalog)
				return nil
			default:
				return fmt.Errorf("unsupported output format %q (expected %s or %s)", output, outputTable, outputJSON)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table or json")
	return cmd
}

func renderToolTable(cmd *cobra.Command, catalog []mcp.Tool) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("REQUIRED ARGUMENTS"),
		text.FgHiCyan.Sprint("DESCRIPTION"),
	})

	for _, tool := range catalog {
		required := append([]string(nil), tool.InputSchema.Required...)
		sort.Strings(required)
		args := strings.Join(required, ", ")
		if args == "" {
			args = "-"
		}
		t.AppendRow(table.Row{
			tool.Name,
			args,
			fstrings.Truncate(tool.Description, fstrings.DefaultDescriptionMaxLen),
		})
	}

	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d tools", len(catalog))})
	t.Render()
}
