// Package testingx provides testing utilities for mobilestructure.
//
// Overview:
//   - Responsibility: Testing helpers, mock loggers, and filesystem fixtures
//   - Key Types: MockLogger, FailingFS
//   - Concurrency Model: Thread-safe where needed
//   - Error Semantics: Test failures via testing.T
//   - Performance Notes: Optimized for test execution
//
// Usage:
//
//	logger := testingx.NewMockLogger(t)
//	fs := testingx.NewFailingFS(memfs.New()).FailMkdir("lib/models")
package testingx

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	errx "go.eggybyte.com/mobilestructure/internal/errors"
	"go.eggybyte.com/mobilestructure/internal/log"
)

// MockLogger is a mock logger for testing.
type MockLogger struct {
	t       *testing.T
	mu      *sync.Mutex
	entries *[]LogEntry
	fields  []any
}

// LogEntry represents a single log entry.
type LogEntry struct {
	Level   string
	Message string
	Fields  []any
	Error   error
}

// NewMockLogger creates a new mock logger.
func NewMockLogger(t *testing.T) *MockLogger {
	return &MockLogger{
		t:       t,
		mu:      &sync.Mutex{},
		entries: &[]LogEntry{},
	}
}

// With returns a logger sharing the same entry list with extra fields attached.
func (m *MockLogger) With(kv ...any) log.Logger {
	return &MockLogger{
		t:       m.t,
		mu:      m.mu,
		entries: m.entries,
		fields:  append(append([]any{}, m.fields...), kv...),
	}
}

// Debug logs a debug message.
func (m *MockLogger) Debug(msg string, kv ...any) {
	m.log("DEBUG", msg, nil, kv)
}

// Info logs an info message.
func (m *MockLogger) Info(msg string, kv ...any) {
	m.log("INFO", msg, nil, kv)
}

// Warn logs a warning message.
func (m *MockLogger) Warn(msg string, kv ...any) {
	m.log("WARN", msg, nil, kv)
}

// Error logs an error message.
func (m *MockLogger) Error(err error, msg string, kv ...any) {
	m.log("ERROR", msg, err, kv)
}

func (m *MockLogger) log(level, msg string, err error, kv []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.entries = append(*m.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  append(append([]any{}, m.fields...), kv...),
		Error:   err,
	})
}

// Entries returns all log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]LogEntry, len(*m.entries))
	copy(entries, *m.entries)
	return entries
}

// Count returns how many entries were logged with level and msg.
func (m *MockLogger) Count(level, msg string) int {
	n := 0
	for _, entry := range m.Entries() {
		if entry.Level == level && entry.Message == msg {
			n++
		}
	}
	return n
}

// AssertLogged asserts that a message was logged.
func (m *MockLogger) AssertLogged(level, msg string) {
	m.t.Helper()
	if m.Count(level, msg) == 0 {
		m.t.Errorf("Expected log message not found: level=%s msg=%q", level, msg)
	}
}

// AssertNotLogged asserts that a message was never logged.
func (m *MockLogger) AssertNotLogged(level, msg string) {
	m.t.Helper()
	if n := m.Count(level, msg); n != 0 {
		m.t.Errorf("Unexpected log message found %d times: level=%s msg=%q", n, level, msg)
	}
}

// Clear clears all log entries.
func (m *MockLogger) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.entries = nil
}

// AssertError asserts that an error has the expected code.
func AssertError(t *testing.T, err error, expectedCode errx.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error with code %s, got nil", expectedCode)
	}

	if code := errx.CodeOf(err); code != expectedCode {
		t.Errorf("Expected error code %s, got %s (%v)", expectedCode, code, err)
	}
}

// ErrInjected is returned by FailingFS for every injected failure.
var ErrInjected = errors.New("injected failure: permission denied")

// FailingFS wraps a billy.Filesystem and fails selected mutations.
// Paths are matched by suffix so tests can name them relative to the project root.
type FailingFS struct {
	billy.Filesystem
	mkdirSuffixes []string
	writeSuffixes []string
}

// NewFailingFS wraps fs without any failure configured.
func NewFailingFS(fs billy.Filesystem) *FailingFS {
	return &FailingFS{Filesystem: fs}
}

// FailMkdir makes MkdirAll fail for paths ending in suffix.
func (f *FailingFS) FailMkdir(suffix string) *FailingFS {
	f.mkdirSuffixes = append(f.mkdirSuffixes, filepath.ToSlash(suffix))
	return f
}

// FailWrite makes opening a file for writing fail for paths ending in suffix.
func (f *FailingFS) FailWrite(suffix string) *FailingFS {
	f.writeSuffixes = append(f.writeSuffixes, filepath.ToSlash(suffix))
	return f
}

// MkdirAll implements billy.Dir.
func (f *FailingFS) MkdirAll(filename string, perm os.FileMode) error {
	if matchSuffix(filename, f.mkdirSuffixes) {
		return &fs.PathError{Op: "mkdir", Path: filename, Err: ErrInjected}
	}
	return f.Filesystem.MkdirAll(filename, perm)
}

// OpenFile implements billy.Basic.
func (f *FailingFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR) != 0 && matchSuffix(filename, f.writeSuffixes) {
		return nil, &fs.PathError{Op: "open", Path: filename, Err: ErrInjected}
	}
	return f.Filesystem.OpenFile(filename, flag, perm)
}

// Create implements billy.Basic.
func (f *FailingFS) Create(filename string) (billy.File, error) {
	return f.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
}

func matchSuffix(name string, suffixes []string) bool {
	name = filepath.ToSlash(name)
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// ListDirs returns every directory below root as sorted slash-separated relative paths.
func ListDirs(t *testing.T, fs billy.Filesystem, root string) []string {
	t.Helper()
	return walk(t, fs, root, true)
}

// ListFiles returns every regular file below root as sorted slash-separated relative paths.
func ListFiles(t *testing.T, fs billy.Filesystem, root string) []string {
	t.Helper()
	return walk(t, fs, root, false)
}

func walk(t *testing.T, fs billy.Filesystem, root string, dirs bool) []string {
	t.Helper()
	var out []string
	err := util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." || info.IsDir() != dirs {
			return nil
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	sort.Strings(out)
	return out
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, fs billy.Filesystem, path string) string {
	t.Helper()
	data, err := util.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
