package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// NewTSCoverageMCPServer creates an MCP server with all tscoverage tools and
// resources registered. Relative directories in tool calls are resolved
// against projectPath.
func NewTSCoverageMCPServer(projectPath, version string, logger zerolog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"ts-file-coverage",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{projectPath: projectPath, logger: logger}
	registerTools(s, h)
	registerResources(s, h)

	return s
}
