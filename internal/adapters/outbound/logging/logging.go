// Package logging builds the zerolog logger used for diagnostics. The report
// itself is written to stdout by the CLI; diagnostics go to stderr.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log output formats for the stderr writer.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options selects the verbosity and destinations of the diagnostic logger.
type Options struct {
	Verbose bool
	Quiet   bool
	// Format is FormatConsole (the default) or FormatJSON.
	Format string
	Level  string
	// File additionally writes JSON lines to a size-rotated log file.
	File string
}

// Log file rotation limits.
const (
	maxFileSizeMB = 10
	maxBackups    = 3
	maxAgeDays    = 28
)

// New returns a logger writing to w. Quiet silences w but not File; Verbose
// wins over Level. The default level is warn so that only skipped files and
// other problems are shown. Unknown levels and formats are errors.
func New(w io.Writer, opts Options) (zerolog.Logger, error) {
	level := zerolog.WarnLevel
	if opts.Level != "" {
		parsed, err := parseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), err
		}
		level = parsed
	}
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	format := strings.ToLower(opts.Format)
	if format != "" && format != FormatConsole && format != FormatJSON {
		return zerolog.Nop(), fmt.Errorf("unknown log format %q (valid: %s, %s)", opts.Format, FormatConsole, FormatJSON)
	}

	if opts.Quiet && opts.File == "" {
		return zerolog.Nop(), nil
	}

	var writers []io.Writer
	if !opts.Quiet {
		if format == FormatJSON {
			writers = append(writers, w)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        w,
				NoColor:    true,
				TimeFormat: "15:04:05",
			})
		}
	}
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxFileSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		})
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger(), nil
}

// parseLevel accepts zerolog's level names plus "warning".
func parseLevel(level string) (zerolog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		return zerolog.WarnLevel, nil
	}
	parsed, err := zerolog.ParseLevel(name)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q (valid: trace, debug, info, warn, error)", level)
	}
	return parsed, nil
}
