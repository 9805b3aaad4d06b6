package domain

import "context"

// FileDiscoverer returns the sorted absolute paths a run should analyze.
type FileDiscoverer interface {
	Discover(ctx context.Context, cfg AnalysisConfig) ([]string, error)
}

// FileAnalyzer turns paths into records. AnalyzeAll never fails on a single
// file; it reports skipped files as warnings instead.
type FileAnalyzer interface {
	AnalyzeFile(path string) (FileRecord, error)
	AnalyzeAll(ctx context.Context, paths []string) ([]FileRecord, []Warning)
}

// TypeScriptDetector decides whether a file counts as TypeScript.
type TypeScriptDetector interface {
	IsTypeScript(path, content string) bool
}

// ConfigLoader reads project-level configuration. Load looks for the
// default file in dir and treats its absence as an empty config; LoadFile
// reads an explicitly named file.
type ConfigLoader interface {
	Load(dir string) (ProjectConfig, error)
	LoadFile(path string) (ProjectConfig, error)
}

// GitInfo resolves version-control metadata for a directory.
type GitInfo interface {
	CommitHash(path string) (string, error)
}
