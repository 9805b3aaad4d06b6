package analyzer

import (
	"context"
	"errors"
	"os"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tscoverage/tscoverage/internal/domain"
)

// FileAnalyzer implements domain.FileAnalyzer by reading files from disk
// and classifying them with a domain.TypeScriptDetector.
type FileAnalyzer struct {
	detector    domain.TypeScriptDetector
	concurrency int
	logger      zerolog.Logger
}

// Option configures a FileAnalyzer.
type Option func(*FileAnalyzer)

// WithConcurrency bounds the number of files read at once. Values <= 0 use
// runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(a *FileAnalyzer) { a.concurrency = n }
}

// WithLogger sets the logger that receives skipped-file warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(a *FileAnalyzer) { a.logger = l }
}

func New(detector domain.TypeScriptDetector, opts ...Option) *FileAnalyzer {
	a := &FileAnalyzer{
		detector: detector,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.concurrency <= 0 {
		a.concurrency = runtime.NumCPU()
	}
	return a
}

// AnalyzeFile reads and classifies a single file. Read and stat failures
// are returned as *domain.FileAccessError.
func (a *FileAnalyzer) AnalyzeFile(path string) (domain.FileRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileRecord{}, &domain.FileAccessError{Path: path, Err: err}
	}
	if info.IsDir() {
		return domain.FileRecord{}, &domain.FileAccessError{Path: path, Err: errors.New("is a directory")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.FileRecord{}, &domain.FileAccessError{Path: path, Err: err}
	}
	content := string(data)

	return domain.NewFileRecord(
		path,
		domain.CountLines(content),
		a.detector.IsTypeScript(path, content),
		info.Size(),
	), nil
}

// AnalyzeAll analyzes paths with a bounded worker pool. Files that fail are
// left out of the records and reported as warnings. Records keep the order
// of paths. Once ctx is done no new files are started and the remaining
// paths are reported as warnings.
func (a *FileAnalyzer) AnalyzeAll(ctx context.Context, paths []string) ([]domain.FileRecord, []domain.Warning) {
	type outcome struct {
		record domain.FileRecord
		err    error
	}

	outcomes := make([]outcome, len(paths))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := min(a.concurrency, len(paths))
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec, err := a.AnalyzeFile(paths[i])
				outcomes[i] = outcome{record: rec, err: err}
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(paths); next++ {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(paths); i++ {
		outcomes[i].err = ctx.Err()
	}

	records := make([]domain.FileRecord, 0, len(paths))
	var warnings []domain.Warning
	for i, o := range outcomes {
		if o.err != nil {
			a.logger.Warn().Str("path", paths[i]).Err(o.err).Msg("could not analyze file")
			warnings = append(warnings, domain.Warning{Path: paths[i], Message: o.err.Error()})
			continue
		}
		records = append(records, o.record)
	}
	return records, warnings
}
