package domain

import (
	"path/filepath"
	"strings"
)

// Framework tags a file with the UI framework its extension implies.
type Framework string

const (
	FrameworkNone  Framework = "none"
	FrameworkVue   Framework = "vue"
	FrameworkReact Framework = "react"
)

// FrameworkFor derives the framework bucket from a lowercase extension.
func FrameworkFor(ext string) Framework {
	switch ext {
	case ".vue":
		return FrameworkVue
	case ".jsx", ".tsx":
		return FrameworkReact
	default:
		return FrameworkNone
	}
}

// Extension returns the lowercase extension of path, including the dot.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// FileRecord is the per-file outcome of one analysis run.
// A file is counted wholly as TypeScript or wholly as JavaScript.
type FileRecord struct {
	Path             string    `json:"path"`
	Extension        string    `json:"extension"`
	TotalLines       int       `json:"total_lines"`
	TypeScriptLines  int       `json:"typescript_lines"`
	JavaScriptLines  int       `json:"javascript_lines"`
	IsTypeScriptFile bool      `json:"is_typescript_file"`
	SizeBytes        int64     `json:"size_bytes"`
	Framework        Framework `json:"framework"`
}

// NewFileRecord builds a record and splits totalLines according to the
// TypeScript classification.
func NewFileRecord(path string, totalLines int, isTypeScript bool, size int64) FileRecord {
	ext := Extension(path)
	r := FileRecord{
		Path:             path,
		Extension:        ext,
		TotalLines:       totalLines,
		IsTypeScriptFile: isTypeScript,
		SizeBytes:        size,
		Framework:        FrameworkFor(ext),
	}
	if isTypeScript {
		r.TypeScriptLines = totalLines
	} else {
		r.JavaScriptLines = totalLines
	}
	return r
}

// FrameworkStats aggregates files and lines for a subset of records.
type FrameworkStats struct {
	TotalFiles      int `json:"total_files"`
	TotalLines      int `json:"total_lines"`
	TypeScriptFiles int `json:"typescript_files"`
	JavaScriptFiles int `json:"javascript_files"`
	TypeScriptLines int `json:"typescript_lines"`
	JavaScriptLines int `json:"javascript_lines"`
}

// AnalysisSummary holds overall totals plus the three framework buckets,
// which partition the analyzed files.
type AnalysisSummary struct {
	FrameworkStats
	Vue       FrameworkStats `json:"vue"`
	React     FrameworkStats `json:"react"`
	PlainJSTS FrameworkStats `json:"plain_js_ts"`
}

// Warning reports a file that was skipped during batch analysis.
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ResultConfig echoes the effective inputs of a run.
type ResultConfig struct {
	TargetDirectory     string   `json:"target_directory"`
	SupportedExtensions []string `json:"supported_extensions"`
	Detection           string   `json:"detection"`
}

// AnalysisResult is everything a single run produces.
type AnalysisResult struct {
	Summary    AnalysisSummary `json:"summary"`
	Files      []FileRecord    `json:"files"`
	Config     ResultConfig    `json:"config"`
	Warnings   []Warning       `json:"warnings,omitempty"`
	CommitHash string          `json:"commit_hash,omitempty"`
}
