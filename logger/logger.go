// Package logger provides the leveled, tagged logger used by the generator.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel defines the logging verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelNone  LogLevel = "none"
)

// Logger is the logging interface shared by the scanner and generator.
// Arguments are slog key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// WithTag returns a logger that prefixes messages with [TAG].
	WithTag(tag string) Logger
}

type slogLogger struct {
	l   *slog.Logger
	tag string
}

// New returns a Logger writing text records at or above level to w.
func New(w io.Writer, level LogLevel) Logger {
	if level == LogLevelNone {
		w = io.Discard
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
	return &slogLogger{l: slog.New(h)}
}

// NewDefaultLogger returns an info level Logger writing to stderr.
func NewDefaultLogger() Logger {
	return New(os.Stderr, LogLevelInfo)
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return New(io.Discard, LogLevelNone)
}

func (s *slogLogger) Debug(msg string, args ...any) { s.log(slog.LevelDebug, msg, args) }
func (s *slogLogger) Info(msg string, args ...any)  { s.log(slog.LevelInfo, msg, args) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.log(slog.LevelWarn, msg, args) }
func (s *slogLogger) Error(msg string, args ...any) { s.log(slog.LevelError, msg, args) }

func (s *slogLogger) WithTag(tag string) Logger {
	return &slogLogger{l: s.l, tag: strings.ToUpper(tag)}
}

func (s *slogLogger) log(level slog.Level, msg string, args []any) {
	if s.tag != "" {
		msg = "[" + s.tag + "] " + msg
	}
	s.l.Log(context.Background(), level, msg, args...)
}

// ParseLevel converts a level name, ignoring case and surrounding space.
// Unknown names are returned lowercased so Valid can reject them.
func ParseLevel(s string) LogLevel {
	return LogLevel(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether l is one of the known levels.
func (l LogLevel) Valid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelNone:
		return true
	}
	return false
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError, LogLevelNone:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
