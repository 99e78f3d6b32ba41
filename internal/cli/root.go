// Package cli implements the cobra-based entry point for cope.
//
// cope has no flags of its own: every argument belongs to the wrapped
// editor CLI and is forwarded to it, so the root command disables cobra's
// flag parsing entirely. The only knobs are environment variables and the
// optional config file (see internal/config).
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/cope/internal/config"
	"github.com/mmr-tortoise/cope/internal/devcontainer"
	"github.com/mmr-tortoise/cope/internal/dispatch"
	"github.com/mmr-tortoise/cope/internal/model"
	"github.com/mmr-tortoise/cope/internal/rewrite"
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package and shown in verbose output.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Options holds the collaborators of a run. Zero values select the real
// process environment, working directory, filesystem and streams.
type Options struct {
	// LookupEnv reads environment variables; defaults to os.LookupEnv.
	LookupEnv config.LookupEnv

	// Getwd returns the directory relative paths are resolved against.
	Getwd func() (string, error)

	// FileSystem is searched for devcontainer configurations.
	FileSystem devcontainer.FileSystem

	// Dispatcher starts the editor.
	Dispatcher *dispatch.Dispatcher

	// Chooser overrides the configuration chooser.
	Chooser devcontainer.Chooser
}

// NewRootCommand creates the root cobra command wired to the real process.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(Options{})
}

// NewRootCommandWithOptions creates the root cobra command with injected
// collaborators, which is how the tests drive a complete run.
func NewRootCommandWithOptions(opts Options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cope [options] [paths...]",
		Short: "Open paths in their devcontainer with the code CLI",
		Long: `cope accepts exactly the same arguments as the code CLI. Paths that live
in a project with a devcontainer (.devcontainer/devcontainer.json or
.devcontainer.json in the path or any parent directory) are rewritten so
that the editor opens them inside the container. Everything else is passed
to code unchanged, including --help and --version.

Environment:
  COPE_VERBOSE  print the final command line before running it
  COPE_EDITOR   editor binary to run (default: code)
  COPE_CONFIG   config file (default: ~/.config/cope/config.yaml)

Limitations:
  --goto and the chat, serve-web and tunnel subcommands are passed
  through unchanged, so they act on the host rather than the container.`,

		// Every token, including --help, belongs to the editor.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		SilenceErrors: true,

		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCope(cmd.Context(), cmd.ErrOrStderr(), opts, args)
		},
	}

	return rootCmd
}

// runCope performs one invocation: load settings, rewrite, dispatch.
func runCope(ctx context.Context, stderr io.Writer, opts Options, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	// Step 1: Settings are read once here and passed down explicitly.
	settings, err := config.Load(opts.LookupEnv)
	log := newLogger(settings.Verbose, stderr)
	if err != nil {
		log.VerboseLog("ignoring config: %v", err)
	}
	log.VerboseLog("cope %s (commit: %s, built: %s)", Version, Commit, Date)
	if settings.Source != "" {
		log.VerboseLog("loaded config %s", settings.Source)
	}

	// Step 2: Build the path resolver for this run.
	workDir := workingDir(opts.Getwd, log)

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = devcontainer.OSFileSystem{}
	}
	chooser := opts.Chooser
	if chooser == nil {
		chooser = devcontainer.NewChooser(settings.IsInteractive())
	}

	resolver := devcontainer.NewResolver(fsys, devcontainer.Options{
		WorkDir:             workDir,
		ConfigFileNames:     settings.ConfigFileNames,
		RootConfigFileNames: settings.RootConfigFileNames,
		StopAt:              settings.StopAt,
		DockerContext:       settings.DockerContext,
		Chooser:             chooser,
		Logf:                log.VerboseLog,
	})

	// Step 3: Rewrite the command line into exactly one plan.
	plan := rewrite.New(settings.Editor, resolver, log.VerboseLog, log.Warn).Plan(args)
	if !plan.Modified {
		log.VerboseLog("no devcontainer paths, passing arguments through")
	}

	// Step 4: Run the editor and relay its exit status.
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = dispatch.New()
	}

	result, err := dispatcher.Dispatch(ctx, plan, settings.Verbose)
	if err != nil {
		return err
	}
	if result.Signaled {
		log.VerboseLog("%s terminated by signal (exit %d)", plan.Program, result.ExitCode)
	}
	if result.ExitCode != int(model.ExitSuccess) {
		return &model.ChildExitError{Code: result.ExitCode}
	}
	return nil
}

// workingDir returns the directory relative arguments are resolved against.
// If it cannot be determined, "." keeps relative lookups relative to the
// process, which is what the editor will do as well.
func workingDir(getwd func() (string, error), log *logger) string {
	if getwd == nil {
		getwd = os.Getwd
	}
	wd, err := getwd()
	if err != nil {
		log.VerboseLog("cannot determine working directory: %v", err)
		return "."
	}
	return wd
}

// Execute runs the root command and exits the process.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	os.Exit(ExitCode(err, rootCmd.ErrOrStderr()))
}

// ExitCode translates the result of a run into the process exit code.
//
// The editor's own non-zero exit is relayed silently. CLIError types carry
// their own exit codes and are reported on stderr; other errors default to
// exit code 1.
func ExitCode(err error, stderr io.Writer) int {
	if err == nil {
		return int(model.ExitSuccess)
	}

	var childErr *model.ChildExitError
	if errors.As(err, &childErr) {
		return childErr.Code
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(stderr, cliErr.Message, cliErr.Err)
		return int(cliErr.Code)
	}

	printError(stderr, err.Error(), nil)
	return int(model.ExitGeneralError)
}

// printError outputs an error message as "cope: <message>" on stderr.
func printError(w io.Writer, message string, underlying error) {
	if underlying != nil {
		fmt.Fprintf(w, "cope: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "cope: %s\n", message)
	}
}
