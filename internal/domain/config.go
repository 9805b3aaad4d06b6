package domain

import (
	"fmt"
	"strings"
)

// DefaultTargetDirectory is analyzed when no directory is given.
const DefaultTargetDirectory = "src"

// Detection policy names accepted in config files and flags.
const (
	DetectionExtension = "extension"
	DetectionContent   = "content"
)

var validDetectionPolicies = []string{DetectionExtension, DetectionContent}

// DefaultExtensions returns a fresh copy of the default extension list.
func DefaultExtensions() []string {
	return []string{".ts", ".tsx", ".js", ".jsx", ".vue"}
}

// DefaultIgnorePatterns returns a fresh copy of the default ignore globs.
// Test and spec files are analyzed like any other source file.
func DefaultIgnorePatterns() []string {
	return []string{
		"**/node_modules/**",
		"**/dist/**",
		"**/build/**",
		"**/.git/**",
		"**/coverage/**",
	}
}

// AnalysisConfig is the immutable input of one analysis run.
type AnalysisConfig struct {
	TargetDirectory     string
	SupportedExtensions []string
	IgnorePatterns      []string
	Detection           string
	Concurrency         int
	// RespectGitignore also skips paths matched by the target directory's
	// own .gitignore file.
	RespectGitignore bool
}

// ProjectConfig holds settings read from .tscoverage.yaml.
// A nil slice means "not specified"; an empty list is an explicit override.
type ProjectConfig struct {
	Dir         string   `yaml:"dir"          json:"dir,omitempty"`
	Extensions  []string `yaml:"extensions"   json:"extensions,omitempty"`
	Ignore      []string `yaml:"ignore"       json:"ignore,omitempty"`
	Detection   string   `yaml:"detection"    json:"detection,omitempty"`
	Concurrency int      `yaml:"concurrency"  json:"concurrency,omitempty"`
	MinCoverage *float64 `yaml:"min_coverage" json:"min_coverage,omitempty"`
	Gitignore   bool     `yaml:"gitignore"    json:"gitignore,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.Detection != "" && !isValidDetection(c.Detection) {
		return fmt.Errorf("unknown detection %q (valid: %s)", c.Detection, strings.Join(validDetectionPolicies, ", "))
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0 (got %d)", c.Concurrency)
	}

	if c.MinCoverage != nil && (*c.MinCoverage < 0 || *c.MinCoverage > 100) {
		return fmt.Errorf("min_coverage must be between 0 and 100 (got %.1f)", *c.MinCoverage)
	}

	return nil
}

func isValidDetection(name string) bool {
	for _, v := range validDetectionPolicies {
		if v == name {
			return true
		}
	}
	return false
}
