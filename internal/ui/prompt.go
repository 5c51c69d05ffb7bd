package ui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"go.eggybyte.com/mobilestructure/internal/errors"
)

// Answers is what the interactive prompt collects.
type Answers struct {
	Name        string
	Kind        string
	Destination string
}

// KindOption is one entry of the project type selector.
type KindOption struct {
	Kind  string
	Label string
}

// Prompter asks the user for the project details that were not supplied.
type Prompter interface {
	PromptProject(defaults Answers, kinds []KindOption) (Answers, error)
}

// stdinIsTerminal is swapped in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Interactive reports whether prompts may be shown: they need a terminal
// on stdin and must not be disabled with --non-interactive.
//
// Parameters:
//   - None
//
// Returns:
//   - bool: true when prompts may be shown
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - One terminal check
func Interactive() bool {
	return !NonInteractive() && stdinIsTerminal()
}

// FormPrompter prompts with a huh form.
type FormPrompter struct {
	// ValidateName rejects bad project names so the form re-asks.
	ValidateName func(string) error
	// Input and Output override the terminal, mainly for accessible mode.
	Input  io.Reader
	Output io.Writer
	// Accessible switches to line-based prompts without a TUI.
	Accessible bool
}

// PromptProject asks for the project name, type and destination. Values
// already present in defaults pre-fill the form. Aborting with ctrl+c maps
// to a USER_CANCELLED error.
//
// Parameters:
//   - defaults: Values already supplied, used as field defaults
//   - kinds: Options for the project type selector
//
// Returns:
//   - Answers: Trimmed answers
//   - error: USER_CANCELLED on abort, INTERNAL on terminal failures
//
// Concurrency:
//   - Blocks on user input, single caller
//
// Performance:
//   - Interactive, bounded by the user
func (p *FormPrompter) PromptProject(defaults Answers, kinds []KindOption) (Answers, error) {
	answers := defaults

	options := make([]huh.Option[string], 0, len(kinds))
	for _, k := range kinds {
		options = append(options, huh.NewOption(k.Label, k.Kind))
	}

	validateName := p.ValidateName
	if validateName == nil {
		validateName = requireName
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter the project name").
				Value(&answers.Name).
				Validate(validateName),
			huh.NewSelect[string]().
				Title("Select project type").
				Options(options...).
				Value(&answers.Kind),
			huh.NewInput().
				Title("Destination directory").
				Description("Leave empty for the current directory").
				Value(&answers.Destination),
		),
	).WithTheme(huh.ThemeCharm()).WithAccessible(p.Accessible)

	if p.Input != nil {
		form = form.WithInput(p.Input)
	}
	if p.Output != nil {
		form = form.WithOutput(p.Output)
	}

	if err := form.Run(); err != nil {
		return defaults, PromptError(err)
	}

	answers.Name = strings.TrimSpace(answers.Name)
	answers.Kind = strings.TrimSpace(answers.Kind)
	answers.Destination = strings.TrimSpace(answers.Destination)
	return answers, nil
}

// PromptError classifies a prompt failure.
//
// Parameters:
//   - err: Error returned by the form
//
// Returns:
//   - error: Coded error
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - O(1) operation
func PromptError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.Wrap(errors.CodeUserCancelled, "prompt", err)
	}
	return errors.Wrap(errors.CodeInternal, "prompt", err)
}

func requireName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New(errors.CodeValidation, "project name cannot be empty")
	}
	return nil
}
