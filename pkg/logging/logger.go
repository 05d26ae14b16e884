// Package logging provides structured logging for the runner
// with console, JSON lines, zap-backed and multi-destination
// output.
package logging

import "strings"

// Logger defines the interface for structured logging.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning message.
	Warn(msg string, fields ...Field)

	// Error logs an error message.
	Error(msg string, fields ...Field)

	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// WithFields returns a Logger with additional default
	// fields attached to every subsequent log entry.
	WithFields(fields ...Field) Logger

	// Close flushes any buffers and releases resources.
	Close() error
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// LogLevel represents logging severity levels.
type LogLevel int

const (
	// LevelDebug is the most verbose level.
	LevelDebug LogLevel = iota
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarn indicates potential issues.
	LevelWarn
	// LevelError indicates failures.
	LevelError
)

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a case-insensitive level name to a LogLevel.
// Unrecognized names yield LevelInfo.
func ParseLevel(name string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// NullLogger discards all log output. It is the default for
// components constructed without a logger.
type NullLogger struct{}

func (NullLogger) Info(string, ...Field)  {}
func (NullLogger) Warn(string, ...Field)  {}
func (NullLogger) Error(string, ...Field) {}
func (NullLogger) Debug(string, ...Field) {}

// WithFields returns the NullLogger itself.
func (NullLogger) WithFields(...Field) Logger { return NullLogger{} }

// Close is a no-op.
func (NullLogger) Close() error { return nil }
