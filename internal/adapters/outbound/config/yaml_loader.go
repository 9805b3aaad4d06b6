package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tscoverage/tscoverage/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".tscoverage.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .tscoverage.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .tscoverage.yaml from dir.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.ProjectConfig, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return domain.DefaultConfig(), nil
	}
	return l.LoadFile(path)
}

// LoadFile reads an explicitly named config file. Unlike Load, a missing
// file is an error.
func (l *YAMLLoader) LoadFile(path string) (domain.ProjectConfig, error) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("reading %s: %w", name, err)
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	for _, p := range cfg.Ignore {
		if !doublestar.ValidatePattern(p) {
			return domain.ProjectConfig{}, fmt.Errorf("invalid %s: bad ignore pattern %q", name, p)
		}
	}

	return cfg, nil
}

// Merge overlays explicit overrides on top of base.
// Non-nil slices and non-zero values in override always win, so an empty
// list in override replaces the base list.
func Merge(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := base

	if override.Dir != "" {
		result.Dir = override.Dir
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Detection != "" {
		result.Detection = override.Detection
	}
	if override.Concurrency != 0 {
		result.Concurrency = override.Concurrency
	}
	if override.MinCoverage != nil {
		result.MinCoverage = override.MinCoverage
	}
	if override.Gitignore {
		result.Gitignore = true
	}

	return result
}
