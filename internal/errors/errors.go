// Package errors provides structured error handling compatible with standard library.
//
// Overview:
//   - Responsibility: Classify scaffolding failures and wrap them with operation and path context
//   - Key Types: Code type for error classification, E struct for structured errors
//   - Concurrency Model: All functions are safe for concurrent use
//   - Error Semantics: Compatible with standard library error wrapping
//   - Performance Notes: Minimal allocations
//
// Usage:
//
//	err := errors.New(errors.CodeValidation, "project name cannot be empty")
//	wrapped := errors.Wrapf(errors.CodeFileWrite, "write file", cause, "%s", path)
//	code := errors.CodeOf(err)
package errors

import (
	"errors"
	"fmt"
)

// Code represents an error classification code.
type Code string

// Scaffolding error codes.
const (
	// CodeValidation marks bad or missing user input, caught before any mutation.
	CodeValidation Code = "VALIDATION"
	// CodeUnsupportedKind marks a project kind outside the layout table.
	CodeUnsupportedKind Code = "UNSUPPORTED_KIND"
	// CodeDirectoryCreation marks an OS failure while creating the root or a subfolder.
	CodeDirectoryCreation Code = "DIRECTORY_CREATION"
	// CodeFileWrite marks an OS failure while writing a generated file.
	CodeFileWrite Code = "FILE_WRITE"
	// CodeUserCancelled marks an interrupt during the interactive prompt.
	CodeUserCancelled Code = "USER_CANCELLED"
	// CodeTemplate marks a broken embedded layout or template.
	CodeTemplate Code = "TEMPLATE"
	// CodeConfig marks an unreadable or invalid configuration.
	CodeConfig Code = "CONFIG"
	// CodeInternal is used for anything unclassified.
	CodeInternal Code = "INTERNAL"
)

// E represents a structured error with code, operation and message.
type E struct {
	Code Code   // Error classification code
	Op   string // Operation that failed (e.g. "create directory")
	Err  error  // Underlying error (may be nil)
	Msg  string // Human-readable message, usually the path involved
}

// Error implements the error interface.
func (e *E) Error() string {
	prefix := string(e.Code)
	if e.Op != "" {
		prefix = fmt.Sprintf("%s: %s", e.Code, e.Op)
	}

	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", prefix, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", prefix, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	default:
		return prefix
	}
}

// Unwrap returns the underlying error for error unwrapping.
func (e *E) Unwrap() error {
	return e.Err
}

// New creates a new structured error with the given code and message.
func New(code Code, msg string) error {
	return &E{
		Code: code,
		Msg:  msg,
	}
}

// Newf creates a new structured error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &E{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new structured error wrapping an existing error.
// The operation name helps identify where the error occurred.
func Wrap(code Code, op string, err error) error {
	return &E{
		Code: code,
		Op:   op,
		Err:  err,
	}
}

// Wrapf creates a new structured error wrapping an existing error with formatted message.
func Wrapf(code Code, op string, err error, format string, args ...any) error {
	return &E{
		Code: code,
		Op:   op,
		Err:  err,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// CodeOf extracts the error code from an error.
// Returns empty string if the error doesn't have a code.
func CodeOf(err error) Code {
	var e *E
	if err != nil && errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// As is a convenience wrapper around the standard library's errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsCode checks if an error has a specific code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Is is a convenience wrapper around the standard library's errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// ExitCode maps an error to the process exit status.
// User cancellation exits with 130, the conventional SIGINT status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if IsCode(err, CodeUserCancelled) {
		return 130
	}
	return 1
}

// Builder provides a fluent interface for constructing errors.
type Builder struct {
	code Code
	op   string
	err  error
	msg  string
}

// Build constructs a new error with the builder's configuration.
func Build(code Code) *Builder {
	return &Builder{code: code}
}

// WithOp sets the operation that failed.
func (b *Builder) WithOp(op string) *Builder {
	b.op = op
	return b
}

// WithErr wraps an underlying error.
func (b *Builder) WithErr(err error) *Builder {
	b.err = err
	return b
}

// WithMsg sets a human-readable message.
func (b *Builder) WithMsg(msg string) *Builder {
	b.msg = msg
	return b
}

// WithMsgf sets a formatted human-readable message.
func (b *Builder) WithMsgf(format string, args ...any) *Builder {
	b.msg = fmt.Sprintf(format, args...)
	return b
}

// Err builds and returns the error.
func (b *Builder) Err() error {
	return &E{
		Code: b.code,
		Op:   b.op,
		Err:  b.err,
		Msg:  b.msg,
	}
}
