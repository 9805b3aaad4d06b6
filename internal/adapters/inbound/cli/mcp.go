package cli

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	mcpadapter "github.com/tscoverage/tscoverage/internal/adapters/inbound/mcp"
	"github.com/tscoverage/tscoverage/internal/adapters/outbound/logging"
)

func newMCPCmd() *cobra.Command {
	var (
		projectPath string
		verbose     bool
		quiet       bool
		logLevel    string
		logFormat   string
	)

	cmd := &cobra.Command{
		Use:   "ts-file-coverage-mcp",
		Short: "Serve TypeScript coverage analysis over MCP (stdio)",
		Long: "Start the ts-file-coverage MCP server using stdio transport. This allows AI coding " +
			"assistants to analyze TypeScript adoption and classify individual files.",
		Args:          cobra.NoArgs,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, so diagnostics must stay on stderr.
			logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{
				Verbose: verbose,
				Quiet:   quiet,
				Format:  logFormat,
				Level:   logLevel,
			})
			if err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}
			s := mcpadapter.NewTSCoverageMCPServer(projectPath, version, logger)
			return server.ServeStdio(s, server.WithErrorLogger(stdlog.New(logger, "", 0)))
		},
	}
	cmd.SetVersionTemplate("ts-file-coverage-mcp {{.Version}}\n")

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root that tool paths are resolved against")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress diagnostics on stderr")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Diagnostic log level: debug, info, warn or error")
	cmd.Flags().StringVar(&logFormat, "log-format", logging.FormatConsole, "Diagnostic log format on stderr: console or json")

	return cmd
}

// NewMCPCmdForTest returns the MCP server command for testing.
func NewMCPCmdForTest() *cobra.Command {
	return newMCPCmd()
}

// ExecuteMCP runs the MCP server command until stdin closes or the process
// is interrupted.
func ExecuteMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newMCPCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
	}
	return err
}
