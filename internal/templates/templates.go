// Package templates provides the project layout table and template rendering.
//
// Overview:
//   - Responsibility: Load the embedded per-kind layouts and render their file templates
//   - Key Types: Loader for embedded templates, Catalog of layouts, Layout per kind
//   - Concurrency Model: Catalog is immutable after Load and safe for concurrent reads
//   - Error Semantics: Broken layouts or templates surface as TEMPLATE errors
//   - Performance Notes: Templates are parsed on render, the table is parsed once
//
// Usage:
//
//	catalog, err := templates.Load()
//	layout, ok := catalog.Lookup("flutter")
//	files, err := layout.Render(templates.NewData(layout, "Weather App", "weather_app"))
package templates

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"go.eggybyte.com/mobilestructure/internal/errors"
)

//go:embed templates/*
var templateFS embed.FS

// layoutsFile is the layout table inside the embedded filesystem.
const layoutsFile = "layouts.yaml"

// Loader provides template loading and rendering functionality.
type Loader struct {
	templateDir string
}

// NewLoader creates a new template loader over the embedded templates.
func NewLoader() *Loader {
	return &Loader{
		templateDir: "templates",
	}
}

// LoadTemplate loads a template file from the embedded filesystem.
func (l *Loader) LoadTemplate(templatePath string) (string, error) {
	content, err := templateFS.ReadFile(path.Join(l.templateDir, templatePath))
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", templatePath, err)
	}
	return string(content), nil
}

// RenderTemplate renders a template with the provided data.
//
// Parameters:
//   - name: Template name used in errors
//   - templateContent: Template source
//   - data: Render data, missing keys are errors
//
// Returns:
//   - string: Rendered content
//   - error: Parse or execution error
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - Parses the template on every call
func (l *Loader) RenderTemplate(name, templateContent string, data any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return result.String(), nil
}

// LoadAndRender loads a template and renders it with data.
func (l *Loader) LoadAndRender(templatePath string, data any) (string, error) {
	content, err := l.LoadTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return l.RenderTemplate(templatePath, content, data)
}

// ListTemplates lists all embedded .tmpl files, sorted.
//
// Parameters:
//   - None
//
// Returns:
//   - []string: Template paths relative to the template root
//   - error: Read error if any
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - Walks the embedded filesystem
func (l *Loader) ListTemplates() ([]string, error) {
	var templates []string
	err := l.walkTemplates("", func(p string) error {
		if strings.HasSuffix(p, ".tmpl") {
			templates = append(templates, p)
		}
		return nil
	})
	sort.Strings(templates)
	return templates, err
}

func (l *Loader) walkTemplates(dir string, fn func(string) error) error {
	entries, err := templateFS.ReadDir(path.Join(l.templateDir, dir))
	if err != nil {
		return err
	}

	for _, entry := range entries {
		p := path.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := l.walkTemplates(p, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

// Directory is one entry of a layout's directory list.
type Directory struct {
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
}

// File pairs a project-relative output path with an embedded template.
type File struct {
	Path     string `yaml:"path"`
	Template string `yaml:"template"`
}

// Layout is the fixed directory and file set for one project kind.
type Layout struct {
	Kind        string      `yaml:"kind"`
	DisplayName string      `yaml:"display_name"`
	Summary     string      `yaml:"summary"`
	Directories []Directory `yaml:"directories"`
	Files       []File      `yaml:"files"`
	NextSteps   []string    `yaml:"next_steps"`

	loader *Loader
}

// DirectoryPaths returns the layout's directory paths in creation order.
func (l *Layout) DirectoryPaths() []string {
	paths := make([]string, 0, len(l.Directories))
	for _, d := range l.Directories {
		paths = append(paths, d.Path)
	}
	return paths
}

// RenderedFile is a file ready to be written.
type RenderedFile struct {
	Path    string
	Content string
}

// Render renders every file of the layout in table order.
//
// Parameters:
//   - data: Values substituted into every template
//
// Returns:
//   - []RenderedFile: Files in table order
//   - error: TEMPLATE error naming the file
//
// Concurrency:
//   - Thread-safe, the layout is not modified
//
// Performance:
//   - One parse and execute per file
func (l *Layout) Render(data Data) ([]RenderedFile, error) {
	loader := l.loader
	if loader == nil {
		loader = NewLoader()
	}

	files := make([]RenderedFile, 0, len(l.Files))
	for _, f := range l.Files {
		content, err := loader.LoadAndRender(f.Template, data)
		if err != nil {
			return nil, errors.Wrapf(errors.CodeTemplate, "render template", err, "%s", f.Path)
		}
		files = append(files, RenderedFile{Path: f.Path, Content: content})
	}
	return files, nil
}

// Catalog holds all known layouts keyed by kind.
type Catalog struct {
	layouts []*Layout
	byKind  map[string]*Layout
}

type layoutsDocument struct {
	Layouts []*Layout `yaml:"layouts"`
}

// Load parses the embedded layout table. Every embedded template must be
// referenced by some layout.
//
// Parameters:
//   - None
//
// Returns:
//   - *Catalog: Parsed layout table
//   - error: TEMPLATE error for a broken or stale table
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - Parses the embedded table once per call
func Load() (*Catalog, error) {
	loader := NewLoader()
	data, err := loader.LoadTemplate(layoutsFile)
	if err != nil {
		return nil, errors.Wrap(errors.CodeTemplate, "load layouts", err)
	}

	catalog, err := Parse([]byte(data), loader)
	if err != nil {
		return nil, err
	}
	if err := catalog.checkReferenced(loader); err != nil {
		return nil, err
	}
	return catalog, nil
}

// checkReferenced fails on templates no layout writes.
func (c *Catalog) checkReferenced(loader *Loader) error {
	all, err := loader.ListTemplates()
	if err != nil {
		return errors.Wrap(errors.CodeTemplate, "list templates", err)
	}

	used := make(map[string]bool)
	for _, l := range c.layouts {
		for _, f := range l.Files {
			used[path.Clean(f.Template)] = true
		}
	}
	for _, t := range all {
		if !used[t] {
			return errors.Newf(errors.CodeTemplate, "template %s is not referenced by any layout", t)
		}
	}
	return nil
}

// Parse builds a catalog from a YAML layout table and checks it for
// duplicate kinds, unsafe paths and missing templates.
//
// Parameters:
//   - data: YAML layout table
//   - loader: Template source, nil for the embedded one
//
// Returns:
//   - *Catalog: Checked catalog
//   - error: TEMPLATE error describing the first problem
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - Loads each referenced template once
func Parse(data []byte, loader *Loader) (*Catalog, error) {
	if loader == nil {
		loader = NewLoader()
	}

	var doc layoutsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.CodeTemplate, "parse layouts", err)
	}
	if len(doc.Layouts) == 0 {
		return nil, errors.New(errors.CodeTemplate, "layout table is empty")
	}

	catalog := &Catalog{byKind: make(map[string]*Layout, len(doc.Layouts))}
	for i, layout := range doc.Layouts {
		if layout == nil || layout.Kind == "" {
			return nil, errors.Newf(errors.CodeTemplate, "layout %d has no kind", i+1)
		}
		kind := strings.ToLower(layout.Kind)
		if _, dup := catalog.byKind[kind]; dup {
			return nil, errors.Newf(errors.CodeTemplate, "duplicate layout for kind %q", kind)
		}
		for _, d := range layout.Directories {
			if err := checkRelative(d.Path); err != nil {
				return nil, errors.Wrapf(errors.CodeTemplate, "check layout", err, "kind %s", kind)
			}
		}
		for _, f := range layout.Files {
			if err := checkRelative(f.Path); err != nil {
				return nil, errors.Wrapf(errors.CodeTemplate, "check layout", err, "kind %s", kind)
			}
			if _, err := loader.LoadTemplate(f.Template); err != nil {
				return nil, errors.Wrapf(errors.CodeTemplate, "check layout", err, "kind %s", kind)
			}
		}

		layout.Kind = kind
		layout.loader = loader
		catalog.layouts = append(catalog.layouts, layout)
		catalog.byKind[kind] = layout
	}

	return catalog, nil
}

func checkRelative(p string) error {
	if p == "" {
		return fmt.Errorf("empty path")
	}
	clean := path.Clean(p)
	if clean != p || path.IsAbs(p) || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("path %q must be clean and relative", p)
	}
	return nil
}

// Lookup returns the layout for kind (case-insensitive).
func (c *Catalog) Lookup(kind string) (*Layout, bool) {
	layout, ok := c.byKind[strings.ToLower(strings.TrimSpace(kind))]
	return layout, ok
}

// Kinds returns the supported kinds in table order.
func (c *Catalog) Kinds() []string {
	kinds := make([]string, 0, len(c.layouts))
	for _, l := range c.layouts {
		kinds = append(kinds, l.Kind)
	}
	return kinds
}

// Layouts returns the layouts in table order.
func (c *Catalog) Layouts() []*Layout {
	return append([]*Layout(nil), c.layouts...)
}
