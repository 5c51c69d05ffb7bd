// Package logx provides a structured logging implementation based on slog.
//
// Overview:
//   - Responsibility: Timestamped logfmt records written to a log file and echoed to the console
//   - Key Types: Logger implementation, Options for configuration
//   - Concurrency Model: All loggers are safe for concurrent use
//   - Error Semantics: No errors returned from log calls; write failures are dropped
//   - Performance Notes: Fields are sorted once per record and shared by both sinks
//
// Usage:
//
//	file, err := logx.OpenFile("project_builder_log.txt")
//	logger := logx.New(logx.WithWriter(file), logx.WithConsole(os.Stderr))
//	logger.Info("created directory", log.Str("path", "lib/models"))
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.eggybyte.com/mobilestructure/internal/log"
	"go.eggybyte.com/mobilestructure/internal/logx/internal"
)

// DefaultFile is the log file written in the working directory.
const DefaultFile = "project_builder_log.txt"

// Options configures the logger behavior.
type Options struct {
	Level            slog.Level // Minimum log level
	Color            bool       // Colorize the level field on the console
	Writer           io.Writer  // Primary sink, usually the log file
	Console          io.Writer  // Console sink (nil disables echo)
	ConsoleLevel     slog.Level // Minimum level echoed to the console
	DisableTimestamp bool       // Disable timestamp in output
}

// Logger implements the log.Logger interface using slog.
type Logger struct {
	handler *internal.Handler
	attrs   []slog.Attr
}

// New creates a new Logger with the given options.
func New(opts ...Option) log.Logger {
	options := Options{
		Level:        slog.LevelInfo,
		ConsoleLevel: slog.LevelInfo,
	}

	for _, opt := range opts {
		opt(&options)
	}

	if options.Writer == nil && options.Console == nil {
		options.Console = os.Stderr
	}

	handler := internal.NewHandler(internal.Options{
		Level:            options.Level,
		Color:            options.Color,
		DisableTimestamp: options.DisableTimestamp,
		ConsoleLevel:     options.ConsoleLevel,
	}, options.Writer, options.Console)

	return &Logger{
		handler: handler,
	}
}

// Option configures logger behavior.
type Option func(*Options)

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(o *Options) {
		o.Level = level
	}
}

// WithColor enables colorization for the level field on the console.
func WithColor(enabled bool) Option {
	return func(o *Options) {
		o.Color = enabled
	}
}

// WithWriter sets the primary output writer.
func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.Writer = w
	}
}

// WithConsole sets the console writer that echoes records.
func WithConsole(w io.Writer) Option {
	return func(o *Options) {
		o.Console = w
	}
}

// WithConsoleLevel sets the minimum level echoed to the console.
func WithConsoleLevel(level slog.Level) Option {
	return func(o *Options) {
		o.ConsoleLevel = level
	}
}

// WithoutTimestamp drops the time field, mostly useful in tests.
func WithoutTimestamp() Option {
	return func(o *Options) {
		o.DisableTimestamp = true
	}
}

// ParseLevel parses "debug", "info", "warn" or "error" (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// OpenFile opens path for appending, creating it when missing.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

// With returns a new Logger with the given key-value pairs attached.
func (l *Logger) With(kv ...any) log.Logger {
	newAttrs := append([]slog.Attr{}, l.attrs...)
	newAttrs = append(newAttrs, internal.KVToAttrs(kv)...)

	return &Logger{
		handler: l.handler,
		attrs:   newAttrs,
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, kv ...any) {
	l.log(slog.LevelDebug, msg, kv...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, kv ...any) {
	l.log(slog.LevelInfo, msg, kv...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, kv ...any) {
	l.log(slog.LevelWarn, msg, kv...)
}

// Error logs an error message.
func (l *Logger) Error(err error, msg string, kv ...any) {
	attrs := internal.KVToAttrs(kv)
	if err != nil {
		attrs = append([]slog.Attr{slog.Any("error", err)}, attrs...)
	}
	l.logWithAttrs(slog.LevelError, msg, attrs)
}

func (l *Logger) log(level slog.Level, msg string, kv ...any) {
	l.logWithAttrs(level, msg, internal.KVToAttrs(kv))
}

func (l *Logger) logWithAttrs(level slog.Level, msg string, attrs []slog.Attr) {
	allAttrs := append([]slog.Attr{}, l.attrs...)
	allAttrs = append(allAttrs, attrs...)

	l.handler.LogRecord(level, msg, allAttrs)
}
