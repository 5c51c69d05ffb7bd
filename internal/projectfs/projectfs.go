// Package projectfs provides project file system operations and scaffolding.
//
// Overview:
//   - Responsibility: Create project directories and write generated files below one root
//   - Key Types: ProjectFS, DirStatus, FileStatus
//   - Concurrency Model: Sequential file operations, one writer per project root
//   - Error Semantics: Coded errors (DIRECTORY_CREATION, FILE_WRITE) carrying the full path and OS cause
//   - Performance Notes: Idempotent directory creation, whole-file writes
//
// Usage:
//
//	pfs := projectfs.New(osfs.New("/"), "/tmp/out/weather_app", logger)
//	status, err := pfs.CreateDirectory("lib/models")
//	status, err := pfs.WriteFile("pubspec.yaml", content, 0o644, projectfs.Overwrite)
package projectfs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"go.eggybyte.com/mobilestructure/internal/errors"
	"go.eggybyte.com/mobilestructure/internal/log"
)

// DirStatus reports what CreateDirectory did.
type DirStatus int

const (
	// DirCreated means the directory did not exist and was created.
	DirCreated DirStatus = iota
	// DirExisted means the directory was already present and left untouched.
	DirExisted
)

// String implements fmt.Stringer.
func (s DirStatus) String() string {
	switch s {
	case DirCreated:
		return "created"
	case DirExisted:
		return "existed"
	default:
		return fmt.Sprintf("DirStatus(%d)", int(s))
	}
}

// FileStatus reports what WriteFile did.
type FileStatus int

const (
	// FileWritten means the file was new.
	FileWritten FileStatus = iota
	// FileOverwritten means an existing file was replaced.
	FileOverwritten
	// FileSkipped means an existing file was kept because of KeepExisting.
	FileSkipped
)

// String implements fmt.Stringer.
func (s FileStatus) String() string {
	switch s {
	case FileWritten:
		return "written"
	case FileOverwritten:
		return "overwritten"
	case FileSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("FileStatus(%d)", int(s))
	}
}

// WritePolicy selects how WriteFile treats an existing file.
type WritePolicy int

const (
	// Overwrite replaces existing files. This is the default.
	Overwrite WritePolicy = iota
	// KeepExisting leaves existing files untouched.
	KeepExisting
)

// ProjectFS provides file system operations for project scaffolding.
// All relative paths are resolved against rootDir.
type ProjectFS struct {
	fs      billy.Filesystem
	rootDir string
	logger  log.Logger
}

// New creates a new project file system rooted at rootDir on fs.
//
// Parameters:
//   - fs: Filesystem the project is written to
//   - rootDir: Absolute project root
//   - logger: Logger for per-entry records, nil for none
//
// Returns:
//   - *ProjectFS: Project file system
//
// Concurrency:
//   - Safe to share for reads, one writer per tree
//
// Performance:
//   - O(1) operation
func New(fs billy.Filesystem, rootDir string, logger log.Logger) *ProjectFS {
	if logger == nil {
		logger = log.Nop()
	}
	return &ProjectFS{
		fs:      fs,
		rootDir: rootDir,
		logger:  logger,
	}
}

// AbsolutePath returns the full path for a relative path.
func (p *ProjectFS) AbsolutePath(path string) string {
	return filepath.Join(p.rootDir, filepath.FromSlash(path))
}

// CreateDirectory creates a directory if it doesn't exist.
// An empty path refers to the root itself. A path that exists as a
// regular file is an error.
//
// Parameters:
//   - path: Project-relative directory path
//
// Returns:
//   - DirStatus: DirCreated or DirExisted
//   - error: DIRECTORY_CREATION on failure or when a file blocks the path
//
// Concurrency:
//   - Single writer per tree
//
// Performance:
//   - One stat plus at most one mkdir
func (p *ProjectFS) CreateDirectory(path string) (DirStatus, error) {
	fullPath := p.AbsolutePath(path)

	info, err := p.fs.Stat(fullPath)
	switch {
	case err == nil && info.IsDir():
		p.logger.Debug("Directory already exists", log.Str("path", fullPath))
		return DirExisted, nil
	case err == nil:
		return DirCreated, errors.Build(errors.CodeDirectoryCreation).
			WithOp("create directory").
			WithMsg(fullPath).
			WithErr(fmt.Errorf("path exists and is not a directory")).
			Err()
	case !os.IsNotExist(err):
		return DirCreated, errors.Wrapf(errors.CodeDirectoryCreation, "create directory", err, "%s", fullPath)
	}

	if err := p.fs.MkdirAll(fullPath, 0o755); err != nil {
		return DirCreated, errors.Wrapf(errors.CodeDirectoryCreation, "create directory", err, "%s", fullPath)
	}

	p.logger.Info("Created directory", log.Str("path", fullPath))
	return DirCreated, nil
}

// WriteFile writes content to a file, creating parent directories as needed.
//
// Parameters:
//   - path: Project-relative file path
//   - content: File content
//   - mode: Permission bits for a new file
//   - policy: Overwrite or KeepExisting
//
// Returns:
//   - FileStatus: FileWritten, FileOverwritten or FileSkipped
//   - error: FILE_WRITE on failure
//
// Concurrency:
//   - Single writer per tree
//
// Performance:
//   - One stat plus one write
func (p *ProjectFS) WriteFile(path, content string, mode os.FileMode, policy WritePolicy) (FileStatus, error) {
	fullPath := p.AbsolutePath(path)

	exists, err := p.FileExists(path)
	if err != nil {
		return FileWritten, errors.Wrapf(errors.CodeFileWrite, "write file", err, "%s", fullPath)
	}

	if exists && policy == KeepExisting {
		p.logger.Warn("File already exists, skipping", log.Str("path", fullPath))
		return FileSkipped, nil
	}

	if err := p.fs.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return FileWritten, errors.Wrapf(errors.CodeDirectoryCreation, "create parent directory", err, "%s", fullPath)
	}

	if err := util.WriteFile(p.fs, fullPath, []byte(content), mode); err != nil {
		return FileWritten, errors.Wrapf(errors.CodeFileWrite, "write file", err, "%s", fullPath)
	}

	if exists {
		p.logger.Warn("Overwrote existing file", log.Str("path", fullPath))
		return FileOverwritten, nil
	}

	p.logger.Info("Created file", log.Str("path", fullPath))
	return FileWritten, nil
}

// FileExists checks if a regular file exists at path.
func (p *ProjectFS) FileExists(path string) (bool, error) {
	info, err := p.fs.Stat(p.AbsolutePath(path))
	if err == nil {
		return !info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// DirectoryExists checks if a directory exists at path.
func (p *ProjectFS) DirectoryExists(path string) (bool, error) {
	info, err := p.fs.Stat(p.AbsolutePath(path))
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
