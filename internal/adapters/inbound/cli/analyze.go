package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tscoverage/tscoverage/internal/adapters/outbound/analyzer"
	"github.com/tscoverage/tscoverage/internal/adapters/outbound/config"
	"github.com/tscoverage/tscoverage/internal/adapters/outbound/gitinfo"
	"github.com/tscoverage/tscoverage/internal/adapters/outbound/logging"
	"github.com/tscoverage/tscoverage/internal/adapters/outbound/scanner"
	"github.com/tscoverage/tscoverage/internal/adapters/outbound/tui"
	"github.com/tscoverage/tscoverage/internal/application"
	"github.com/tscoverage/tscoverage/internal/domain"
)

func runAnalyze(cmd *cobra.Command, f flags) error {
	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Verbose: f.verbose,
		Quiet:   f.quiet,
		Format:  f.logFormat,
		Level:   f.logLevel,
		File:    f.logFile,
	})
	if err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	cfg, err := resolveConfig(cmd, f, config.New())
	if err != nil {
		return err
	}

	opts := application.Options{
		Dir:         cfg.Dir,
		Extensions:  cfg.Extensions,
		Ignore:      cfg.Ignore,
		Detection:   cfg.Detection,
		Concurrency: cfg.Concurrency,
		Gitignore:   cfg.Gitignore,
	}

	svc := application.NewCoverageService(
		scanner.New(),
		analyzer.NewFactory(logger),
		application.WithGitInfo(gitinfo.New()),
		application.WithLogger(logger),
	)

	out := cmd.OutOrStdout()
	if !f.jsonOutput {
		fmt.Fprintf(out, "Analyzing directory: %s\n", displayDir(opts.Config().TargetDirectory))
	}

	result, err := svc.Analyze(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if f.jsonOutput {
		if err := renderJSON(cmd, result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Found %d files to analyze...\n", len(result.Files))
		fmt.Fprint(out, tui.RenderResult(result))
	}

	if cfg.MinCoverage != nil {
		return application.CheckMinimum(result.Summary, *cfg.MinCoverage)
	}
	return nil
}

// resolveConfig layers explicitly set flags over the config file. Defaults
// are filled in later by application.Options.
func resolveConfig(cmd *cobra.Command, f flags, loader domain.ConfigLoader) (domain.ProjectConfig, error) {
	var (
		fileCfg domain.ProjectConfig
		err     error
	)
	if f.configPath != "" {
		fileCfg, err = loader.LoadFile(f.configPath)
	} else {
		fileCfg, err = loader.Load(".")
	}
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}

	fs := cmd.Flags()
	var override domain.ProjectConfig
	if fs.Changed("dir") {
		override.Dir = f.dir
	}
	if fs.Changed("ext") {
		override.Extensions = normalizeExtensions(f.extensions)
	}
	if fs.Changed("ignore") {
		override.Ignore = append([]string{}, f.ignore...)
	}
	if fs.Changed("min-coverage") {
		minCov := f.minCoverage
		override.MinCoverage = &minCov
	}
	override.Detection = f.detection
	override.Concurrency = f.jobs
	override.Gitignore = f.gitignore

	merged := config.Merge(fileCfg, override)
	if err := merged.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid options: %w", err)
	}
	return merged, nil
}

// normalizeExtensions accepts "ts" as well as ".ts". The result is never nil.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func renderJSON(cmd *cobra.Command, result *domain.AnalysisResult) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// displayDir shows the target as an absolute path, falling back to the path
// as given.
func displayDir(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
