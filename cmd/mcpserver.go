package cmd

import (
	"fmt"
	"os"
	"time"

	"karmaconf/internal/mcpserver"
	"karmaconf/internal/project"
	"karmaconf/pkg/logging"

	"github.com/spf13/cobra"
)

// mcpServerCmd serves the configuration builder to MCP clients
var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Serve karmaconf as an MCP server over stdio",
	Long: `Starts a Model Context Protocol server on stdin/stdout.

Tools:
  karma_config     - Build the Karma configuration for an environment given as arguments
  karma_launchers  - List the Sauce Labs remote launchers

Logs are written to stderr so they never mix with the protocol stream.`,
	Args: cobra.NoArgs,
	RunE: runMCPServer,
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	logging.InitForCLI(cliLogLevel(), os.Stderr)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	version := rootCmd.Version
	if version == "" {
		version = "dev"
	}
	server := mcpserver.New(cfg.Karma, project.NewFileSource(cfg.Project.Manifest), time.Now, version)
	return server.Serve(commandContext(cmd), os.Stdin, os.Stdout)
}

func init() {
	rootCmd.AddCommand(mcpServerCmd)
}
