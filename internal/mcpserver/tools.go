package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"karmaconf/internal/cli"
	"karmaconf/internal/config"
	"karmaconf/internal/environment"
	"karmaconf/internal/karma"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (s *Server) registerTools() {
	for _, t := range s.tools() {
		s.mcpServer.AddTool(t.Tool, t.Handler)
	}
}

func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("karma_config",
				mcp.WithDescription("Build the Karma run configuration for the given CI environment"),
				mcp.WithBoolean("ci",
					mcp.Description("Whether the run happens on a CI server (CI=true)"),
				),
				mcp.WithBoolean("karma",
					mcp.Description("Whether Karma is enabled on this CI job (KARMA=true)"),
				),
				mcp.WithBoolean("sauce",
					mcp.Description("Whether Sauce Labs is requested (SAUCE=true)"),
				),
				mcp.WithString("sauce_username",
					mcp.Description("Sauce Labs user name"),
				),
				mcp.WithString("sauce_access_key",
					mcp.Description("Sauce Labs access key"),
				),
				mcp.WithString("job_number",
					mcp.Description("CI job number used in the Sauce Labs build label"),
				),
				mcp.WithString("platform",
					mcp.Description("Host platform identifier such as linux, darwin or win32"),
				),
				mcp.WithBoolean("coverage",
					mcp.Description("Pass the coverage flag to the run"),
				),
				mcp.WithString("format",
					mcp.Description("Document format: json (default) or yaml"),
					mcp.Enum("json", "yaml"),
				),
			),
			Handler: s.handleConfig,
		},
		{
			Tool: mcp.NewTool("karma_launchers",
				mcp.WithDescription("List the Sauce Labs remote launchers"),
			),
			Handler: s.handleLaunchers,
		},
	}
}

// snapshotFromRequest treats the tool arguments as the environment.
// The server's own process environment is never consulted.
func (s *Server) snapshotFromRequest(request mcp.CallToolRequest) environment.Snapshot {
	vars := map[string]string{
		environment.VarSauceUsername:   request.GetString("sauce_username", ""),
		environment.VarSauceAccessKey:  request.GetString("sauce_access_key", ""),
		environment.VarTravisJobNumber: request.GetString("job_number", ""),
	}
	for name, arg := range map[string]string{
		environment.VarCI:    "ci",
		environment.VarKarma: "karma",
		environment.VarSauce: "sauce",
	} {
		if request.GetBool(arg, false) {
			vars[name] = "true"
		}
	}

	var args []string
	if request.GetBool("coverage", false) && s.defaults.Coverage.Flag != "" {
		args = []string{s.defaults.Coverage.Flag}
	}

	platform := request.GetString("platform", "linux")
	return environment.FromMap(vars, args, platform)
}

func (s *Server) handleConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := config.OutputFormat(request.GetString("format", string(config.OutputFormatJSON)))
	if format != config.OutputFormatJSON && format != config.OutputFormatYAML {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q", format)), nil
	}

	pipeline := &karma.Pipeline{Defaults: s.defaults, Project: s.project, Now: s.now}
	cfg, _, err := pipeline.Build(s.snapshotFromRequest(request))
	if errors.Is(err, karma.ErrRunnerDisabled) {
		return mcp.NewToolResultText("Karma is not enabled on this CI job; no configuration is produced."), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to build configuration: %v", err)), nil
	}

	doc, err := cli.Encode(cfg, format)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format configuration: %v", err)), nil
	}
	return mcp.NewToolResultText(string(doc)), nil
}

func (s *Server) handleLaunchers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	launchers := s.defaults.SauceLabs.Launchers
	if len(launchers) == 0 {
		return mcp.NewToolResultText("No launchers configured"), nil
	}

	var buf bytes.Buffer
	if err := cli.WriteLaunchers(&buf, launchers, config.OutputFormatJSON); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format launchers: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
