package main

import (
	"strings"

	"github.com/spf13/cobra"

	"go.eggybyte.com/mobilestructure/internal/errors"
	"go.eggybyte.com/mobilestructure/internal/scaffold"
	"go.eggybyte.com/mobilestructure/internal/ui"
)

type createOptions struct {
	name         string
	kind         string
	path         string
	skipExisting bool
	prompt       bool // ask even when every value was supplied
}

// createSummary is the data payload of a successful run in JSON mode.
type createSummary struct {
	Kind             string   `json:"kind"`
	Name             string   `json:"name"`
	Path             string   `json:"path"`
	RootExisted      bool     `json:"root_existed"`
	CreatedDirs      []string `json:"created_dirs"`
	WrittenFiles     []string `json:"written_files"`
	OverwrittenFiles []string `json:"overwritten_files,omitempty"`
	SkippedFiles     []string `json:"skipped_files,omitempty"`
	NextSteps        []string `json:"next_steps"`
}

// newCreateCmd creates the create subcommand.
//
// Parameters:
//   - a: Application state shared by every command
//
// Returns:
//   - *cobra.Command: Configured command
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - O(1) operation
func newCreateCmd(a *app) *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project skeleton",
		Long: `Create the directory tree and starter files of a Flutter or Android project.

The project directory is the lowercased name with spaces replaced by
underscores, created inside --path (default: the working directory).
Existing directories are reused and existing files are overwritten unless
--skip-existing is given. Missing values are prompted for on a terminal.

Examples:
  mobilestructure create --type flutter --name "Weather App"
  mobilestructure create --type android --name notes --path /tmp/out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCreate(opts)
		},
	}

	addCreateFlags(cmd, opts)
	return cmd
}

func addCreateFlags(cmd *cobra.Command, opts *createOptions) {
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Project name, e.g. \"Weather App\"")
	cmd.Flags().StringVarP(&opts.kind, "type", "t", "", "Project type: flutter or android")
	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "Directory the project is created in")
	cmd.Flags().BoolVar(&opts.skipExisting, "skip-existing", false, "Keep files that already exist instead of overwriting them")
}

// runCreate executes one project creation.
//
// Parameters:
//   - opts: Flag values of the invoking command
//
// Returns:
//   - error: Coded error on any failure
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - Filesystem writes proportional to the layout size
func (a *app) runCreate(opts *createOptions) error {
	logger, err := a.openLogger()
	if err != nil {
		return err
	}

	wd, err := a.getwd()
	if err != nil {
		return errors.Wrap(errors.CodeValidation, "resolve working directory", err)
	}

	s, err := scaffold.New(a.fs, logger, scaffold.WithWorkingDir(wd))
	if err != nil {
		return err
	}

	req := scaffold.Request{
		Kind:         firstNonEmpty(opts.kind, a.settings.Kind),
		Name:         opts.name,
		Destination:  firstNonEmpty(opts.path, a.settings.Destination),
		SkipExisting: opts.skipExisting,
	}

	req, err = a.complete(s, req, opts.prompt)
	if err != nil {
		return err
	}

	res, err := s.Scaffold(req)
	if err != nil {
		return err
	}

	report(req, res)
	return nil
}

// complete fills in missing request fields. On a terminal it prompts;
// otherwise a missing name or type is a validation error.
func (a *app) complete(s *scaffold.Scaffolder, req scaffold.Request, always bool) (scaffold.Request, error) {
	missingName := strings.TrimSpace(req.Name) == ""
	missingKind := strings.TrimSpace(req.Kind) == ""
	if !always && !missingName && !missingKind {
		return req, nil
	}

	if !a.interactive() {
		if missingKind {
			return req, errors.Newf(errors.CodeValidation,
				"project type is required, use --type with one of: %s", strings.Join(s.Catalog().Kinds(), ", "))
		}
		// Scaffold reports a missing name after checking the kind.
		return req, nil
	}

	// A supplied kind is never replaced by a prompt default.
	if !missingKind {
		if _, err := s.LookupKind(req.Kind); err != nil {
			return req, err
		}
	}

	if p, ok := a.prompter.(*ui.FormPrompter); ok && p.ValidateName == nil {
		p.ValidateName = s.ValidateName
	}

	kinds := make([]ui.KindOption, 0, len(s.Catalog().Layouts()))
	for _, l := range s.Catalog().Layouts() {
		kinds = append(kinds, ui.KindOption{Kind: l.Kind, Label: l.DisplayName})
	}

	ui.Info("Android/Flutter Project Directory Builder")
	answers, err := a.prompter.PromptProject(ui.Answers{
		Name:        req.Name,
		Kind:        strings.ToLower(strings.TrimSpace(req.Kind)),
		Destination: req.Destination,
	}, kinds)
	if err != nil {
		return req, err
	}

	req.Name = answers.Name
	req.Kind = answers.Kind
	req.Destination = answers.Destination
	return req, nil
}

// report prints the outcome of a successful run.
//
// Parameters:
//   - req: Request as completed by flags and prompts
//   - res: Scaffold result
//
// Returns:
//   - None
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - O(n) in the number of entries written
func report(req scaffold.Request, res *scaffold.Result) {
	steps := append([]string{"cd " + res.ProjectPath}, res.NextSteps...)

	summary := createSummary{
		Kind:             res.Kind,
		Name:             strings.TrimSpace(req.Name),
		Path:             res.ProjectPath,
		RootExisted:      res.RootExisted,
		CreatedDirs:      nonNil(res.CreatedDirs),
		WrittenFiles:     nonNil(res.WrittenFiles),
		OverwrittenFiles: res.OverwrittenFiles,
		SkippedFiles:     res.SkippedFiles,
		NextSteps:        steps,
	}

	ui.Result(summary, "Project created successfully at %s", res.ProjectPath)
	if ui.JSONOutput() {
		return
	}

	ui.Info("%d directories created, %d files written", len(res.CreatedDirs), len(res.WrittenFiles)+len(res.OverwrittenFiles))
	if len(res.OverwrittenFiles) > 0 {
		ui.Warning("Overwrote %s", strings.Join(res.OverwrittenFiles, ", "))
	}
	if len(res.SkippedFiles) > 0 {
		ui.Warning("Kept existing %s", strings.Join(res.SkippedFiles, ", "))
	}
	ui.List("Next steps", steps)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
