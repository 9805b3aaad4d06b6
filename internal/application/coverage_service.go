package application

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/tscoverage/tscoverage/internal/domain"
)

// Options are the caller-facing inputs of one run. A nil slice selects the
// default list; an empty, non-nil slice is an explicit empty override.
type Options struct {
	Dir         string
	Extensions  []string
	Ignore      []string
	Detection   string
	Concurrency int
	Gitignore   bool
}

// Config resolves the options against the defaults.
func (o Options) Config() domain.AnalysisConfig {
	cfg := domain.AnalysisConfig{
		TargetDirectory:     o.Dir,
		SupportedExtensions: o.Extensions,
		IgnorePatterns:      o.Ignore,
		Detection:           o.Detection,
		Concurrency:         o.Concurrency,
		RespectGitignore:    o.Gitignore,
	}
	if cfg.TargetDirectory == "" {
		cfg.TargetDirectory = domain.DefaultTargetDirectory
	}
	if cfg.SupportedExtensions == nil {
		cfg.SupportedExtensions = domain.DefaultExtensions()
	}
	if cfg.IgnorePatterns == nil {
		cfg.IgnorePatterns = domain.DefaultIgnorePatterns()
	}
	if cfg.Detection == "" {
		cfg.Detection = domain.DetectionExtension
	}
	return cfg
}

// Validate rejects unknown detection policies, extensions without a leading
// dot and negative concurrency. Ignore globs are checked by discovery.
func (o Options) Validate() error {
	return domain.ProjectConfig{
		Extensions:  o.Extensions,
		Detection:   o.Detection,
		Concurrency: o.Concurrency,
	}.Validate()
}

// AnalyzerFactory builds the file analyzer for a run. Detection policy and
// concurrency vary per run, so analyzers are not shared between runs.
type AnalyzerFactory func(cfg domain.AnalysisConfig) domain.FileAnalyzer

// CoverageService orchestrates the pipeline:
// discover → analyze → summarize → attach commit.
type CoverageService struct {
	discoverer domain.FileDiscoverer
	analyzers  AnalyzerFactory
	git        domain.GitInfo
	logger     zerolog.Logger
}

// ServiceOption configures a CoverageService.
type ServiceOption func(*CoverageService)

// WithGitInfo attaches the commit of the analyzed tree to results.
func WithGitInfo(g domain.GitInfo) ServiceOption {
	return func(s *CoverageService) { s.git = g }
}

func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *CoverageService) { s.logger = l }
}

func NewCoverageService(discoverer domain.FileDiscoverer, analyzers AnalyzerFactory, opts ...ServiceOption) *CoverageService {
	s := &CoverageService{
		discoverer: discoverer,
		analyzers:  analyzers,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the full pipeline. It fails with *domain.NoFilesFoundError
// when discovery matches nothing and with *domain.DiscoveryError when the
// glob engine fails. Unreadable files become warnings. The result echoes the
// target as an absolute path.
func (s *CoverageService) Analyze(ctx context.Context, opts Options) (*domain.AnalysisResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	cfg := opts.Config()
	log := s.logger.With().Str("dir", cfg.TargetDirectory).Logger()

	paths, err := s.discoverer.Discover(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	if len(paths) == 0 {
		return nil, &domain.NoFilesFoundError{Dir: cfg.TargetDirectory}
	}
	log.Debug().Int("files", len(paths)).Msg("discovered files")

	records, warnings := s.analyzers(cfg).AnalyzeAll(ctx, paths)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debug().Int("analyzed", len(records)).Int("skipped", len(warnings)).Msg("analysis complete")

	target, err := filepath.Abs(cfg.TargetDirectory)
	if err != nil {
		target = cfg.TargetDirectory
	}

	result := &domain.AnalysisResult{
		Summary: domain.Summarize(records),
		Files:   records,
		Config: domain.ResultConfig{
			TargetDirectory:     target,
			SupportedExtensions: cfg.SupportedExtensions,
			Detection:           cfg.Detection,
		},
		Warnings: warnings,
	}

	if s.git != nil {
		hash, err := s.git.CommitHash(cfg.TargetDirectory)
		if err != nil {
			log.Debug().Err(err).Msg("no commit for target directory")
		} else {
			result.CommitHash = hash
		}
	}

	return result, nil
}

// ClassifyFile analyzes a single file outside batch context, so read
// failures are returned as *domain.FileAccessError.
func (s *CoverageService) ClassifyFile(path, detection string) (domain.FileRecord, error) {
	opts := Options{Detection: detection}
	if err := opts.Validate(); err != nil {
		return domain.FileRecord{}, fmt.Errorf("invalid options: %w", err)
	}
	return s.analyzers(opts.Config()).AnalyzeFile(path)
}

// CheckMinimum returns *domain.CoverageBelowMinimumError when the overall
// lines coverage of summary, rounded to one decimal, is below minimum.
func CheckMinimum(summary domain.AnalysisSummary, minimum float64) error {
	coverage := domain.ParsePercentage(summary.LinesCoverage())
	if coverage < minimum {
		return &domain.CoverageBelowMinimumError{Coverage: coverage, Minimum: minimum}
	}
	return nil
}
