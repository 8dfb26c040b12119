package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel parses a level name. Unknown names give Info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum level written.
	Level string
	// Format is "text" or "json".
	Format string
	// File is the log file. Empty discards output; the terminal owns
	// stdout and stderr while the editor runs.
	File string
	// Output overrides File when set.
	Output io.Writer
}

// Logger owns the process log handler and hands out component loggers.
type Logger struct {
	level  *slog.LevelVar
	base   *slog.Logger
	closer io.Closer
}

// NewLogger creates a logger from cfg, opening the log file if one is
// named.
func NewLogger(cfg LoggerConfig) (*Logger, error) {
	l := &Logger{level: new(slog.LevelVar)}
	l.level.Set(ParseLogLevel(cfg.Level))

	out := cfg.Output
	if out == nil && cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, &FileError{Op: "open log", Path: cfg.File, Err: err}
		}
		out, l.closer = f, f
	}
	if out == nil {
		out = io.Discard
	}

	opts := &slog.HandlerOptions{Level: l.level}
	var h slog.Handler
	switch cfg.Format {
	case "json":
		h = slog.NewJSONHandler(out, opts)
	case "", "text":
		h = slog.NewTextHandler(out, opts)
	default:
		if l.closer != nil {
			_ = l.closer.Close()
		}
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	l.base = slog.New(h)
	return l, nil
}

// NullLogger discards everything.
func NullLogger() *Logger {
	l, _ := NewLogger(LoggerConfig{Output: io.Discard})
	return l
}

// Component returns a logger tagged with the component name.
func (l *Logger) Component(name string) *slog.Logger {
	return l.base.With("component", name)
}

// Level returns the current minimum level.
func (l *Logger) Level() slog.Level { return l.level.Level() }

// SetLevel changes the minimum level of every component logger.
func (l *Logger) SetLevel(level slog.Level) { l.level.Set(level) }

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}
