package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.eggybyte.com/mobilestructure/internal/configx"
	"go.eggybyte.com/mobilestructure/internal/errors"
	"go.eggybyte.com/mobilestructure/internal/log"
	"go.eggybyte.com/mobilestructure/internal/logx"
	"go.eggybyte.com/mobilestructure/internal/ui"
)

// app carries the parsed flags and the dependencies of one CLI run.
// Tests replace fs, prompter, getwd, interactive and the log sinks.
type app struct {
	verbose        bool
	nonInteractive bool
	jsonOutput     bool
	color          bool
	configFile     string
	logFile        string
	logLevel       string

	fs          billy.Filesystem
	prompter    ui.Prompter
	getwd       func() (string, error)
	interactive func() bool
	logSink     io.Writer // replaces the log file when set
	console     io.Writer

	settings *configx.Settings
	logger   log.Logger
	closers  []io.Closer
}

func newApp() *app {
	return &app{
		fs:          osfs.New("/"),
		prompter:    &ui.FormPrompter{},
		getwd:       os.Getwd,
		interactive: ui.Interactive,
		console:     os.Stderr,
	}
}

func newRootCmd(a *app) *cobra.Command {
	opts := &createOptions{}

	rootCmd := &cobra.Command{
		Use:   "mobilestructure",
		Short: "Android/Flutter project directory builder",
		Long: `Scaffold a standardized Flutter or Android project skeleton.

Run without a subcommand to be prompted for the project name, type and
destination. Every run appends to a log file in the working directory.

Examples:
  mobilestructure
  mobilestructure create --type flutter --name "Weather App"
  mobilestructure create --type android --name notes --path ~/src --skip-existing`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.prompt = true
			return a.runCreate(opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "V", false, "Enable verbose output")
	flags.BoolVar(&a.nonInteractive, "non-interactive", false, "Disable interactive prompts")
	flags.BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")
	flags.BoolVar(&a.color, "color", true, "Colorize console output")
	flags.StringVar(&a.configFile, "config", "", "Config file (default .mobilestructure.yaml in the working or home directory)")
	flags.StringVar(&a.logFile, "log-file", configx.DefaultLogFile, "File the run log is appended to")
	flags.StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	addCreateFlags(rootCmd, opts)
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	rootCmd.AddCommand(newCreateCmd(a))
	rootCmd.AddCommand(newKindsCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	setVersion(rootCmd)

	return rootCmd
}

// setup resolves settings and applies them to the console. The log file is
// opened lazily by commands that write projects.
//
// Parameters:
//   - cmd: Command being executed, its flags are bound
//   - _: Command arguments
//
// Returns:
//   - error: CONFIG error for unreadable or invalid settings
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - Reads at most one config file
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	wd, err := a.getwd()
	if err != nil {
		return errors.Wrap(errors.CodeConfig, "resolve working directory", err)
	}

	search := []string{wd}
	if home, err := os.UserHomeDir(); err == nil {
		search = append(search, home)
	}

	settings, err := configx.Load(configx.LoadOptions{
		ConfigFile:  a.configFile,
		SearchPaths: search,
		Flags:       cmd.Flags(),
	})
	if err != nil {
		return err
	}
	a.settings = settings

	ui.SetVerbose(settings.Verbose)
	ui.SetNonInteractive(settings.NonInteractive)
	ui.SetJSONOutput(settings.JSON)
	ui.SetColor(settings.Color)
	ui.Debug("Settings resolved: log_file=%s log_level=%s", settings.LogFile, settings.LogLevel)
	return nil
}

// openLogger builds the file plus console logger on first use.
func (a *app) openLogger() (log.Logger, error) {
	if a.logger != nil {
		return a.logger, nil
	}

	settings := a.settings
	if settings == nil {
		defaults := configx.Defaults()
		settings = &defaults
	}

	level, err := logx.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.CodeConfig, "parse log level", err)
	}
	consoleLevel := slog.LevelInfo
	if settings.Verbose {
		level = min(level, slog.LevelDebug)
		consoleLevel = slog.LevelDebug
	}

	sink := a.logSink
	if sink == nil {
		f, err := logx.OpenFile(settings.LogFile)
		if err != nil {
			return nil, errors.Wrap(errors.CodeConfig, "open log file", err)
		}
		a.closers = append(a.closers, f)
		sink = f
	}

	console := a.console
	if settings.JSON || console == nil {
		console = io.Discard
	}

	a.logger = logx.New(
		logx.WithLevel(level),
		logx.WithWriter(sink),
		logx.WithConsole(console),
		logx.WithConsoleLevel(consoleLevel),
		logx.WithColor(settings.Color && isTerminal(console)),
	)
	return a.logger, nil
}

// isTerminal reports whether w is a terminal. Buffers and redirected
// files are not.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

// execute runs the CLI and returns the process exit status.
//
// Parameters:
//   - a: Application state
//   - args: Command-line arguments without the program name
//
// Returns:
//   - int: 0 on success, the error code's exit status otherwise
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - Dominated by the executed command
func execute(a *app, args []string) int {
	defer a.close()

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	if a.logger != nil {
		a.logger.Error(err, "An error occurred during project creation")
	}
	if errors.IsCode(err, errors.CodeUserCancelled) {
		ui.Warning("Operation cancelled by user.")
	} else {
		ui.Error("%v", err)
	}
	return errors.ExitCode(err)
}
