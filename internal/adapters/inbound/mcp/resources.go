package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const summaryURI = "tscoverage://summary"

// registerResources registers all tscoverage MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcplib.NewResource(
			summaryURI,
			"Coverage Summary",
			mcplib.WithResourceDescription("TypeScript coverage summary of the project's src directory"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleSummaryResource,
	)
}

func (h *handlers) handleSummaryResource(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	result, err := h.service().Analyze(ctx, h.options(nil))
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	data, err := json.MarshalIndent(result.Summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      summaryURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
