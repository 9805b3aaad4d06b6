package analyzer

import (
	"github.com/rs/zerolog"
	"github.com/tscoverage/tscoverage/internal/domain"
	"github.com/tscoverage/tscoverage/internal/domain/detection"
)

// NewFactory returns a constructor that builds a FileAnalyzer for each run,
// honoring the run's detection policy and concurrency.
func NewFactory(logger zerolog.Logger) func(domain.AnalysisConfig) domain.FileAnalyzer {
	return func(cfg domain.AnalysisConfig) domain.FileAnalyzer {
		return New(
			detection.New(cfg.Detection),
			WithConcurrency(cfg.Concurrency),
			WithLogger(logger),
		)
	}
}
