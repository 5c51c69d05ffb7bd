// Package ui provides unified console output for the mobilestructure CLI.
//
// Overview:
//   - Responsibility: Leveled user-facing messages with an optional JSON mode
//   - Key Types: Message, OutputLevel
//   - Concurrency Model: Thread-safe output operations guarded by a package mutex
//   - Error Semantics: Output failures are reported on stderr and otherwise ignored
//   - Performance Notes: Styles are built once, one write per message
//
// Usage:
//
//	ui.Success("Created %s project at %s", kind, path)
//	ui.Error("Failed to create project: %v", err)
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	verbose        bool
	nonInteractive bool
	jsonOutput     bool
	colorEnabled             = true
	stdout         io.Writer = os.Stdout
	stderr         io.Writer = os.Stderr
	now                      = time.Now
	mu             sync.RWMutex
)

// OutputLevel represents the severity level of a message.
type OutputLevel string

const (
	LevelDebug   OutputLevel = "debug"
	LevelInfo    OutputLevel = "info"
	LevelWarning OutputLevel = "warning"
	LevelError   OutputLevel = "error"
	LevelSuccess OutputLevel = "success"
)

var (
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Message represents a structured output message.
type Message struct {
	Level     OutputLevel `json:"level"`
	Text      string      `json:"text"`
	Data      any         `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SetVerbose enables or disables debug messages.
//
// Parameters:
//   - enabled: Whether to show debug messages
//
// Returns:
//   - None
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - O(1) operation
func SetVerbose(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enabled
}

// SetNonInteractive disables interactive prompts.
//
// Parameters:
//   - enabled: Whether to disable interactive prompts
//
// Returns:
//   - None
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - O(1) operation
func SetNonInteractive(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	nonInteractive = enabled
}

// NonInteractive reports whether prompts are disabled.
func NonInteractive() bool {
	mu.RLock()
	defer mu.RUnlock()
	return nonInteractive
}

// SetJSONOutput enables JSON-formatted output.
//
// Parameters:
//   - enabled: Whether to output in JSON format
//
// Returns:
//   - None
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - O(1) operation
func SetJSONOutput(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonOutput = enabled
}

// JSONOutput reports whether JSON output is enabled.
func JSONOutput() bool {
	mu.RLock()
	defer mu.RUnlock()
	return jsonOutput
}

// SetColor enables or disables styled output.
//
// Parameters:
//   - enabled: Whether prefixes and headings are styled
//
// Returns:
//   - None
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - O(1) operation
func SetColor(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	colorEnabled = enabled
}

// SetOutput redirects messages. Nil writers keep the current destination.
//
// Parameters:
//   - out: Destination for regular messages
//   - errOut: Destination for errors in text mode
//
// Returns:
//   - None
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - O(1) operation
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// Reset restores the defaults. Tests call it in cleanup.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	verbose, nonInteractive, jsonOutput = false, false, false
	colorEnabled = true
	stdout, stderr = os.Stdout, os.Stderr
	now = time.Now
}

// output writes one message in the configured format.
//
// Parameters:
//   - level: Message severity level
//   - data: Structured payload, JSON mode only
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - None
//
// Concurrency:
//   - Thread-safe, settings are read under the package lock
//
// Performance:
//   - One formatted write per message
func output(level OutputLevel, data any, format string, args ...any) {
	mu.RLock()
	useJSON := jsonOutput
	useVerbose := verbose
	useColor := colorEnabled
	out, errOut := stdout, stderr
	mu.RUnlock()

	// Skip debug messages if not verbose
	if level == LevelDebug && !useVerbose {
		return
	}

	text := fmt.Sprintf(format, args...)

	if useJSON {
		message := Message{
			Level:     level,
			Text:      text,
			Data:      data,
			Timestamp: now().UTC(),
		}
		if err := json.NewEncoder(out).Encode(message); err != nil {
			fmt.Fprintf(errOut, "Failed to encode JSON output: %v\n", err)
		}
		return
	}

	writer := out
	if level == LevelError {
		writer = errOut
	}

	prefix, style := prefixFor(level)
	if useColor {
		prefix = style.Render(prefix)
	}
	fmt.Fprintf(writer, "%s %s\n", prefix, text)
}

func prefixFor(level OutputLevel) (string, lipgloss.Style) {
	switch level {
	case LevelDebug:
		return "🔍 DEBUG:", debugStyle
	case LevelWarning:
		return "⚠️  WARN:", warningStyle
	case LevelError:
		return "❌ ERROR:", errorStyle
	case LevelSuccess:
		return "✅ SUCCESS:", successStyle
	default:
		return "ℹ️  INFO:", infoStyle
	}
}

// Debug outputs a debug message. Only shown in verbose mode.
func Debug(format string, args ...any) {
	output(LevelDebug, nil, format, args...)
}

// Info outputs an informational message.
func Info(format string, args ...any) {
	output(LevelInfo, nil, format, args...)
}

// Warning outputs a warning message.
func Warning(format string, args ...any) {
	output(LevelWarning, nil, format, args...)
}

// Error outputs an error message to stderr.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - None
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - Single formatted write
func Error(format string, args ...any) {
	output(LevelError, nil, format, args...)
}

// Success outputs a success message.
func Success(format string, args ...any) {
	output(LevelSuccess, nil, format, args...)
}

// Result outputs a success message carrying structured data. In text mode
// the data is dropped; callers print their own rendering with List.
//
// Parameters:
//   - data: Payload encoded in JSON mode
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - None
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - Single write, JSON encoding when enabled
func Result(data any, format string, args ...any) {
	output(LevelSuccess, data, format, args...)
}

// List prints a titled bullet list. Suppressed in JSON mode.
//
// Parameters:
//   - title: Heading printed above the items
//   - items: Bullet entries, nothing is printed when empty
//
// Returns:
//   - None
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - One write per item
func List(title string, items []string) {
	if JSONOutput() || len(items) == 0 {
		return
	}

	mu.RLock()
	out := stdout
	useColor := colorEnabled
	mu.RUnlock()

	if useColor {
		title = headingStyle.Render(title)
	}
	fmt.Fprintf(out, "\n%s\n", title)
	for _, item := range items {
		fmt.Fprintf(out, "  • %s\n", item)
	}
}
