package mcpserver

import (
	"context"
	"io"
	"time"

	"karmaconf/internal/karma"
	"karmaconf/internal/project"
	"karmaconf/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
)

const serverName = "karmaconf"

// Server exposes the configuration builder to MCP clients over stdio.
type Server struct {
	defaults karma.Defaults
	project  project.Source
	now      func() time.Time

	mcpServer *server.MCPServer
}

// New creates a server with its tools registered.
func New(defaults karma.Defaults, src project.Source, now func() time.Time, version string) *Server {
	if now == nil {
		now = time.Now
	}
	s := &Server{
		defaults: defaults,
		project:  src,
		now:      now,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
	)
	s.registerTools()

	return s
}

// Serve answers requests on stdin/stdout until ctx is cancelled or the
// client closes the stream.
func (s *Server) Serve(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	logging.Info("MCPServer", "Serving %d tools over stdio", len(s.tools()))
	return server.NewStdioServer(s.mcpServer).Listen(ctx, stdin, stdout)
}
