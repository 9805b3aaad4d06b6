package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tscoverage/tscoverage/internal/adapters/outbound/logging"
	"github.com/tscoverage/tscoverage/internal/domain"
)

var (
	version = "1.0.0"
	commit  = "none"
)

type flags struct {
	dir         string
	extensions  []string
	ignore      []string
	detection   string
	jsonOutput  bool
	configPath  string
	jobs        int
	verbose     bool
	quiet       bool
	logLevel    string
	logFormat   string
	logFile     string
	gitignore   bool
	minCoverage float64
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "ts-file-coverage",
		Short: "Measure TypeScript adoption in a codebase",
		Long: "Analyze TypeScript adoption in your codebase with framework-specific breakdowns " +
			"and color-coded coverage reports.",
		Args:          cobra.NoArgs,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, f)
		},
	}
	cmd.SetVersionTemplate("ts-file-coverage {{.Version}}\n")

	fs := cmd.Flags()
	fs.StringVarP(&f.dir, "dir", "d", domain.DefaultTargetDirectory, "Target directory to analyze")
	fs.StringSliceVar(&f.extensions, "ext", nil, "File extensions to analyze (default .ts,.tsx,.js,.jsx,.vue)")
	fs.StringSliceVar(&f.ignore, "ignore", nil, "Glob patterns to ignore (replaces the default list)")
	fs.StringVar(&f.detection, "detect", "", "TypeScript detection policy: extension or content")
	fs.BoolVar(&f.jsonOutput, "json", false, "Output the analysis result as JSON")
	fs.StringVar(&f.configPath, "config", "", "Path to a config file (default ./.tscoverage.yaml)")
	fs.IntVarP(&f.jobs, "jobs", "j", 0, "Files analyzed concurrently (default number of CPUs)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "Suppress diagnostics on stderr")
	fs.StringVar(&f.logLevel, "log-level", "", "Diagnostic log level: debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", logging.FormatConsole, "Diagnostic log format on stderr: console or json")
	fs.StringVar(&f.logFile, "log-file", "", "Also write diagnostics as JSON lines to this rotated file")
	fs.BoolVar(&f.gitignore, "gitignore", false, "Skip files matched by the target directory's .gitignore")
	fs.Float64Var(&f.minCoverage, "min-coverage", 0, "Exit 1 if overall lines coverage is below this percentage")

	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the command and prints any failure as "Error: <message>" on
// stderr. The caller decides the exit code.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
	}
	return err
}
