package cmd

import (
	"errors"
	"fmt"
	"os"

	"fabric-mcp/internal/config"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, tool returned an error).
	ExitCodeError = 1
	// ExitCodeConfig indicates missing or invalid configuration, e.g. no credentials.
	ExitCodeConfig = 2
)

// rootCmd represents the base command for the fabric-mcp application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fabric-mcp",
	Short: "MCP server for the Equinix Fabric API",
	Long: `fabric-mcp exposes Equinix Fabric resources (ports, connections, cloud
routers, service profiles and service tokens) as Model Context Protocol tools,
so AI assistants can inspect and provision interconnection.

Credentials are read from EQUINIX_CLIENT_ID and EQUINIX_CLIENT_SECRET.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "fabric-mcp version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return ExitCodeConfig
	}
	return ExitCodeError
}

// toolError reports a tool invocation that produced an error result. The
// result text has already been printed.
type toolError struct {
	tool string
}

func (e *toolError) Error() string {
	return fmt.Sprintf("tool %s returned an error", e.tool)
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newToolsCmd())
	rootCmd.AddCommand(newCallCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTestCmd())
}
