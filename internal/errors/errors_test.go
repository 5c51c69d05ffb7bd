package errors

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "project name cannot be empty")
	if err == nil {
		t.Fatal("New should return non-nil error")
	}

	var customErr *E
	if !errors.As(err, &customErr) {
		t.Fatal("Error should be of type *E")
	}

	if customErr.Code != CodeValidation {
		t.Errorf("Expected code %s, got %s", CodeValidation, customErr.Code)
	}

	if got := err.Error(); got != "VALIDATION: project name cannot be empty" {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestWrapf(t *testing.T) {
	wrappedErr := Wrapf(CodeFileWrite, "write file", fs.ErrPermission, "%s", "/tmp/out/app/pubspec.yaml")

	var customErr *E
	if !errors.As(wrappedErr, &customErr) {
		t.Fatal("Wrapped error should be of type *E")
	}

	if customErr.Op != "write file" {
		t.Errorf("Expected operation %q, got %q", "write file", customErr.Op)
	}

	if !errors.Is(wrappedErr, fs.ErrPermission) {
		t.Error("Wrapped error should unwrap to the OS cause")
	}

	msg := wrappedErr.Error()
	for _, want := range []string{"FILE_WRITE", "write file", "/tmp/out/app/pubspec.yaml", "permission denied"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected %q in %q", want, msg)
		}
	}
}

func TestWrapWithoutMessage(t *testing.T) {
	err := Wrap(CodeUserCancelled, "prompt", errors.New("user aborted"))
	if got := err.Error(); got != "USER_CANCELLED: prompt: user aborted" {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "custom error with code",
			err:      New(CodeUnsupportedKind, "ios-native"),
			expected: CodeUnsupportedKind,
		},
		{
			name:     "wrapped error with code",
			err:      Wrap(CodeDirectoryCreation, "create directory", errors.New("boom")),
			expected: CodeDirectoryCreation,
		},
		{
			name:     "coded error wrapped by fmt",
			err:      wrapStd(New(CodeTemplate, "bad")),
			expected: CodeTemplate,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: "",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := CodeOf(tt.err); code != tt.expected {
				t.Errorf("Expected code %q, got %q", tt.expected, code)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"validation", New(CodeValidation, "empty"), 1},
		{"filesystem", Wrap(CodeFileWrite, "write file", fs.ErrPermission), 1},
		{"plain error", errors.New("x"), 1},
		{"cancelled", New(CodeUserCancelled, "cancelled"), 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("read-only file system")
	err := Build(CodeDirectoryCreation).
		WithOp("create directory").
		WithErr(cause).
		WithMsgf("%s", "/out/app/lib").
		Err()

	var customErr *E
	if !As(err, &customErr) {
		t.Fatal("Builder should produce *E")
	}
	if customErr.Msg != "/out/app/lib" {
		t.Errorf("Expected path message, got %q", customErr.Msg)
	}
	if !Is(err, cause) {
		t.Error("Builder error should unwrap to cause")
	}
	if !IsCode(err, CodeDirectoryCreation) {
		t.Error("IsCode should match builder code")
	}
}

func wrapStd(err error) error {
	return &wrapper{err: err}
}

type wrapper struct{ err error }

func (w *wrapper) Error() string { return "outer: " + w.err.Error() }
func (w *wrapper) Unwrap() error { return w.err }
