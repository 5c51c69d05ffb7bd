// Package scaffold creates mobile-app project skeletons.
//
// Overview:
//   - Responsibility: Validate a Request, then create the kind's directory tree and write its files
//   - Key Types: Request, Result, Scaffolder
//   - Concurrency Model: Synchronous; one Scaffold call is the single writer of its project tree
//   - Error Semantics: VALIDATION and UNSUPPORTED_KIND before any mutation;
//     DIRECTORY_CREATION and FILE_WRITE abort mid-run and leave the partial tree in place
//   - Performance Notes: Templates are rendered before the first filesystem call
//
// Usage:
//
//	s, err := scaffold.New(osfs.New("/"), logger)
//	res, err := s.Scaffold(scaffold.Request{Kind: "flutter", Name: "Weather App", Destination: "/tmp/out"})
package scaffold

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-playground/validator/v10"

	"go.eggybyte.com/mobilestructure/internal/errors"
	"go.eggybyte.com/mobilestructure/internal/log"
	"go.eggybyte.com/mobilestructure/internal/projectfs"
	"go.eggybyte.com/mobilestructure/internal/templates"
)

// Project kinds shipped in the layout table.
const (
	KindFlutter = "flutter"
	KindAndroid = "android"
)

// nameRules rejects empty names and names that would escape the destination.
const nameRules = `required,excludesall=/\`

// Request describes one scaffolding run.
type Request struct {
	Kind         string
	Name         string
	Destination  string
	SkipExisting bool
}

// Result reports what a successful run did.
type Result struct {
	Kind             string
	ProjectPath      string
	SanitizedName    string
	RootExisted      bool
	CreatedDirs      []string
	ExistingDirs     []string
	WrittenFiles     []string
	OverwrittenFiles []string
	SkippedFiles     []string
	NextSteps        []string
}

// Sanitize lowercases name and replaces spaces with underscores.
func Sanitize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// Scaffolder creates project trees on a billy filesystem.
type Scaffolder struct {
	fs       billy.Filesystem
	catalog  *templates.Catalog
	logger   log.Logger
	validate *validator.Validate
	getwd    func() (string, error)
}

// Option configures a Scaffolder.
type Option func(*Scaffolder)

// WithCatalog replaces the embedded layout table.
func WithCatalog(c *templates.Catalog) Option {
	return func(s *Scaffolder) {
		s.catalog = c
	}
}

// WithWorkingDir fixes the directory used when a request has no destination.
func WithWorkingDir(dir string) Option {
	return func(s *Scaffolder) {
		s.getwd = func() (string, error) { return dir, nil }
	}
}

// New creates a Scaffolder writing to fs.
func New(fs billy.Filesystem, logger log.Logger, opts ...Option) (*Scaffolder, error) {
	if logger == nil {
		logger = log.Nop()
	}

	s := &Scaffolder{
		fs:       fs,
		logger:   logger,
		validate: validator.New(),
		getwd:    os.Getwd,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.catalog == nil {
		catalog, err := templates.Load()
		if err != nil {
			return nil, err
		}
		s.catalog = catalog
	}
	return s, nil
}

// Catalog returns the layout table in use.
func (s *Scaffolder) Catalog() *templates.Catalog {
	return s.catalog
}

// LookupKind returns the layout for kind, or an UNSUPPORTED_KIND error
// naming the supported kinds. Callers use it to reject a kind before
// prompting for anything else.
func (s *Scaffolder) LookupKind(kind string) (*templates.Layout, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	layout, ok := s.catalog.Lookup(kind)
	if !ok {
		return nil, errors.Build(errors.CodeUnsupportedKind).
			WithOp("validate request").
			WithMsgf("unsupported project type %q, use one of: %s", kind, strings.Join(s.catalog.Kinds(), ", ")).
			Err()
	}
	return layout, nil
}

// Normalize trims the request, lowercases the kind and fills in the
// destination, then validates it. It never touches the filesystem.
func (s *Scaffolder) Normalize(req Request) (Request, *templates.Layout, error) {
	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	req.Name = strings.TrimSpace(req.Name)
	req.Destination = strings.TrimSpace(req.Destination)

	layout, err := s.LookupKind(req.Kind)
	if err != nil {
		return req, nil, err
	}

	if err := s.ValidateName(req.Name); err != nil {
		return req, nil, err
	}

	if !filepath.IsAbs(req.Destination) {
		wd, err := s.getwd()
		if err != nil {
			return req, nil, errors.Wrap(errors.CodeValidation, "resolve working directory", err)
		}
		req.Destination = filepath.Join(wd, req.Destination)
	}

	return req, layout, nil
}

// Scaffold creates the project described by req.
//
// Directory creation is idempotent. Files are overwritten unless
// req.SkipExisting is set. There is no rollback: on error the tree created
// so far stays on disk and running again resumes safely.
func (s *Scaffolder) Scaffold(req Request) (*Result, error) {
	req, layout, err := s.Normalize(req)
	if err != nil {
		return nil, err
	}

	sanitized := Sanitize(req.Name)
	projectPath := filepath.Join(req.Destination, sanitized)
	logger := s.logger.With("kind", layout.Kind, "project", sanitized)

	files, err := layout.Render(templates.NewData(layout, req.Name, sanitized))
	if err != nil {
		return nil, err
	}

	logger.Info("Initializing builder", log.Str("name", req.Name), log.Str("path", projectPath))

	pfs := projectfs.New(s.fs, projectPath, logger)
	res := &Result{
		Kind:          layout.Kind,
		ProjectPath:   projectPath,
		SanitizedName: sanitized,
		NextSteps:     layout.NextSteps,
	}

	exists, err := pfs.DirectoryExists("")
	if err != nil {
		return res, errors.Wrapf(errors.CodeDirectoryCreation, "create project directory", err, "%s", projectPath)
	}
	if exists {
		res.RootExisted = true
		logger.Warn("Directory already exists. Files may be overwritten.", log.Str("path", projectPath))
	} else if _, err := pfs.CreateDirectory(""); err != nil {
		logger.Error(err, "Failed to create project directory")
		return res, err
	}

	for _, dir := range layout.DirectoryPaths() {
		status, err := pfs.CreateDirectory(dir)
		if err != nil {
			logger.Error(err, "Failed to create directory", log.Str("dir", dir))
			return res, err
		}
		if status == projectfs.DirCreated {
			res.CreatedDirs = append(res.CreatedDirs, dir)
		} else {
			res.ExistingDirs = append(res.ExistingDirs, dir)
		}
	}

	policy := projectfs.Overwrite
	if req.SkipExisting {
		policy = projectfs.KeepExisting
	}

	for _, f := range files {
		status, err := pfs.WriteFile(f.Path, f.Content, 0o644, policy)
		if err != nil {
			logger.Error(err, "Failed to write file", log.Str("file", f.Path))
			return res, err
		}
		switch status {
		case projectfs.FileWritten:
			res.WrittenFiles = append(res.WrittenFiles, f.Path)
		case projectfs.FileOverwritten:
			res.OverwrittenFiles = append(res.OverwrittenFiles, f.Path)
		case projectfs.FileSkipped:
			res.SkippedFiles = append(res.SkippedFiles, f.Path)
		}
	}

	logger.Info("Project creation complete",
		log.Str("path", projectPath),
		log.Int("dirs_created", len(res.CreatedDirs)),
		log.Int("files_written", len(res.WrittenFiles)+len(res.OverwrittenFiles)),
	)
	return res, nil
}

// ValidateName reports whether name, once trimmed, can name a project
// directory. Interactive prompts use it to re-ask before any work starts.
func (s *Scaffolder) ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if err := s.validate.Var(name, nameRules); err != nil {
		return errors.Build(errors.CodeValidation).
			WithOp("validate request").
			WithMsg(describeValidation(err)).
			WithErr(err).
			Err()
	}
	if name == "." || name == ".." {
		return errors.Build(errors.CodeValidation).
			WithOp("validate request").
			WithMsgf("project name %q is not a valid directory name", name).
			Err()
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	switch verrs[0].Tag() {
	case "required":
		return "project name cannot be empty"
	case "excludesall":
		return "project name must not contain path separators"
	default:
		return verrs[0].Error()
	}
}
