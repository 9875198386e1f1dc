// Package logging builds the zerolog logger used by the CLI and the registry.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level is a configured log level name.
type Level string

// Supported levels.
const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level written. Unknown or empty values mean warn.
	Level Level
	// Pretty switches to zerolog's human-readable console writer.
	Pretty bool
	// Output is the destination (defaults to os.Stderr).
	Output io.Writer
}

// ParseLevel maps a level name to its zerolog level. Unknown names map to
// warn so that the CLI stays quiet by default.
func ParseLevel(name string) zerolog.Level {
	switch Level(strings.ToLower(strings.TrimSpace(name))) {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// New returns a logger for cfg. It does not touch zerolog's global state.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		Level(ParseLevel(string(cfg.Level))).
		With().Timestamp().Logger()
}
