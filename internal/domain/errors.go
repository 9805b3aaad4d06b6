package domain

import (
	"errors"
	"fmt"
)

// ErrNoFilesFound is matched by NoFilesFoundError via errors.Is.
var ErrNoFilesFound = errors.New("No TypeScript/JavaScript files found in the specified directory.")

// NoFilesFoundError aborts a run whose discovery step matched nothing.
type NoFilesFoundError struct {
	Dir string
}

func (e *NoFilesFoundError) Error() string { return ErrNoFilesFound.Error() }

func (e *NoFilesFoundError) Is(target error) bool { return target == ErrNoFilesFound }

// FileAccessError reports a file that could not be read or stat'd.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("failed to analyze file %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// DiscoveryError reports a failure of the glob engine itself. A missing
// target directory is not a DiscoveryError.
type DiscoveryError struct {
	Pattern string
	Err     error
}

func (e *DiscoveryError) Error() string {
	if e.Pattern == "" {
		return fmt.Sprintf("failed to discover files: %v", e.Err)
	}
	return fmt.Sprintf("failed to discover files (pattern %q): %v", e.Pattern, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// CoverageBelowMinimumError is returned when a coverage gate is not met.
type CoverageBelowMinimumError struct {
	Coverage float64
	Minimum  float64
}

func (e *CoverageBelowMinimumError) Error() string {
	return fmt.Sprintf("lines coverage %.1f%% is below minimum %.1f%%", e.Coverage, e.Minimum)
}
