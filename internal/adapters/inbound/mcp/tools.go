package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/tscoverage/tscoverage/internal/adapters/outbound/analyzer"
	"github.com/tscoverage/tscoverage/internal/adapters/outbound/gitinfo"
	"github.com/tscoverage/tscoverage/internal/adapters/outbound/scanner"
	"github.com/tscoverage/tscoverage/internal/adapters/outbound/tui"
	"github.com/tscoverage/tscoverage/internal/application"
)

type handlers struct {
	projectPath string
	logger      zerolog.Logger
}

// registerTools registers all tscoverage MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	analysisArgs := []mcplib.ToolOption{
		mcplib.WithString("dir", mcplib.Description("Directory to analyze, relative to the project root (default: src)")),
		mcplib.WithString("extensions", mcplib.Description("Comma-separated extensions, e.g. .ts,.vue (default: .ts,.tsx,.js,.jsx,.vue)")),
		mcplib.WithString("ignore", mcplib.Description("Comma-separated glob patterns to ignore; replaces the default list")),
		mcplib.WithString("detection", mcplib.Description("TypeScript detection policy: extension (default) or content")),
		mcplib.WithBoolean("gitignore", mcplib.Description("Also skip files matched by the directory's .gitignore")),
	}

	// 1. tscoverage_analyze
	s.AddTool(
		mcplib.NewTool("tscoverage_analyze", append([]mcplib.ToolOption{
			mcplib.WithDescription("Analyzes TypeScript adoption in a directory and returns the summary and per-file records as JSON"),
		}, analysisArgs...)...),
		h.handleAnalyze,
	)

	// 2. tscoverage_report
	s.AddTool(
		mcplib.NewTool("tscoverage_report", append([]mcplib.ToolOption{
			mcplib.WithDescription("Returns the plain-text TypeScript coverage report for a directory"),
		}, analysisArgs...)...),
		h.handleReport,
	)

	// 3. tscoverage_classify_file
	s.AddTool(
		mcplib.NewTool("tscoverage_classify_file",
			mcplib.WithDescription("Classifies a single file as TypeScript or JavaScript and counts its code lines"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the file, relative to the project root"),
			),
			mcplib.WithString("detection", mcplib.Description("TypeScript detection policy: extension (default) or content")),
		),
		h.handleClassifyFile,
	)
}

func (h *handlers) service() *application.CoverageService {
	return application.NewCoverageService(
		scanner.New(),
		analyzer.NewFactory(h.logger),
		application.WithGitInfo(gitinfo.New()),
		application.WithLogger(h.logger),
	)
}

// resolve makes path relative to the project root unless it is absolute.
func (h *handlers) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(h.projectPath, path)
}

// options builds run options from tool arguments. A present but empty
// list argument is an explicit empty override.
func (h *handlers) options(args map[string]any) application.Options {
	opts := application.Options{
		Dir: h.resolve("src"),
	}
	if dir, ok := args["dir"].(string); ok && dir != "" {
		opts.Dir = h.resolve(dir)
	}
	if exts, ok := args["extensions"].(string); ok {
		opts.Extensions = splitAndTrim(exts)
	}
	if ignore, ok := args["ignore"].(string); ok {
		opts.Ignore = splitAndTrim(ignore)
	}
	opts.Detection, _ = args["detection"].(string)
	opts.Gitignore, _ = args["gitignore"].(bool)
	return opts
}

func (h *handlers) handleAnalyze(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	result, err := h.service().Analyze(ctx, h.options(request.GetArguments()))
	if err != nil {
		return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *handlers) handleReport(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	result, err := h.service().Analyze(ctx, h.options(request.GetArguments()))
	if err != nil {
		return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return textResult(tui.RenderResult(result)), nil
}

func (h *handlers) handleClassifyFile(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	args := request.GetArguments()
	file, _ := args["file"].(string)
	if file == "" {
		return errorResult("file parameter is required"), nil
	}
	detection, _ := args["detection"].(string)

	record, err := h.service().ClassifyFile(h.resolve(file), detection)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(record)
}

// splitAndTrim splits a comma-separated list. The result is never nil.
func splitAndTrim(s string) []string {
	result := []string{}
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
