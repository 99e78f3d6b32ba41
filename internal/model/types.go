// Package model defines the domain types for the cope CLI.
//
// The types follow the life of a single invocation: the raw arguments are
// captured as an Invocation, each positional path is judged by the path
// resolver (PathVerdict), the rewriter produces exactly one RewritePlan,
// and the dispatcher turns that plan into a RunResult.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// TokenKind classifies a single command-line token. The classifier only
// recognizes the handful of shapes that matter for devcontainer rewriting;
// everything else is an opaque flag copied verbatim.
type TokenKind string

const (
	// KindFlag is any token starting with "-" that is not a terminator.
	KindFlag TokenKind = "flag"

	// KindFlagValue is a token consumed as the value of a preceding flag
	// (e.g. "info" in "--log info"). Flag values are never treated as paths.
	KindFlagValue TokenKind = "flag-value"

	// KindPositional is a token that names a file or folder to open.
	KindPositional TokenKind = "positional"

	// KindSubcommand is one of the editor subcommands (chat, serve-web, tunnel).
	KindSubcommand TokenKind = "subcommand"

	// KindTerminator is the "--" end-of-options marker.
	KindTerminator TokenKind = "terminator"

	// KindVerbatim is any token after a subcommand or terminator.
	KindVerbatim TokenKind = "verbatim"
)

// String returns the string representation of TokenKind.
func (k TokenKind) String() string {
	return string(k)
}

// IsTerminal reports whether no token after this one may be rewritten.
func (k TokenKind) IsTerminal() bool {
	return k == KindSubcommand || k == KindTerminator
}

// Token is one command-line argument together with its classification.
type Token struct {
	// Value is the argument exactly as the user supplied it.
	Value string `json:"value"`

	// Kind is the classification assigned by the rewriter's classifier.
	Kind TokenKind `json:"kind"`
}

// Invocation is the ordered, unmodified sequence of arguments the user
// passed to the wrapper (without argv[0]).
type Invocation struct {
	Tokens []Token `json:"tokens"`
}

// Args returns the raw token values in their original order.
func (inv Invocation) Args() []string {
	args := make([]string, 0, len(inv.Tokens))
	for _, t := range inv.Tokens {
		args = append(args, t.Value)
	}
	return args
}

// Positionals returns the indexes of all tokens classified as positional paths.
func (inv Invocation) Positionals() []int {
	var idx []int
	for i, t := range inv.Tokens {
		if t.Kind == KindPositional {
			idx = append(idx, i)
		}
	}
	return idx
}

// PathVerdict is the path resolver's judgement for a single positional
// argument. The zero value means "no devcontainer".
type PathVerdict struct {
	// HasDevcontainer is true when a devcontainer configuration was found
	// at the path or one of its ancestors.
	HasDevcontainer bool `json:"hasDevcontainer"`

	// AbsPath is the normalized absolute form of the argument.
	AbsPath string `json:"absPath,omitempty"`

	// IsDir is true when AbsPath is a directory.
	IsDir bool `json:"isDir,omitempty"`

	// ProjectRoot is the ancestor directory that declares the devcontainer.
	ProjectRoot string `json:"projectRoot,omitempty"`

	// ConfigPath is the absolute path of the chosen devcontainer.json.
	ConfigPath string `json:"configPath,omitempty"`
}

// NoDevcontainer is the verdict for paths outside any devcontainer project.
var NoDevcontainer = PathVerdict{}

// String returns a short human-readable form used in verbose output.
func (v PathVerdict) String() string {
	if !v.HasDevcontainer {
		return "no devcontainer"
	}
	return fmt.Sprintf("devcontainer %s (root %s)", v.ConfigPath, v.ProjectRoot)
}

// RewritePlan is the final command to execute. Exactly one plan is
// produced per invocation and consumed once by the dispatcher.
type RewritePlan struct {
	// Program is the editor binary to run (e.g. "code").
	Program string `json:"program"`

	// Args are the arguments passed to Program, without argv[0].
	Args []string `json:"args"`

	// Modified is true iff at least one path argument was rewritten.
	Modified bool `json:"modified"`
}

// Argv returns Program followed by Args, i.e. the full vector that is executed.
func (p RewritePlan) Argv() []string {
	argv := make([]string, 0, len(p.Args)+1)
	argv = append(argv, p.Program)
	return append(argv, p.Args...)
}

// String joins the argument vector with single spaces. This is the form
// printed by the verbose trace. Arguments that would not read back as a
// single token (empty, or containing whitespace, quotes or backslashes) are
// printed as Go-quoted strings.
func (p RewritePlan) String() string {
	argv := p.Argv()
	parts := make([]string, len(argv))
	for i, a := range argv {
		parts[i] = quoteArg(a)
	}
	return strings.Join(parts, " ")
}

func quoteArg(a string) string {
	if a == "" || strings.ContainsAny(a, `"'\`) || strings.IndexFunc(a, unicode.IsSpace) >= 0 {
		return strconv.Quote(a)
	}
	return a
}

// RunResult describes how the wrapped editor process ended.
type RunResult struct {
	// ExitCode is the child's exit code, or 128+signal when Signaled.
	ExitCode int `json:"exitCode"`

	// Signaled is true when the child was terminated by a signal.
	Signaled bool `json:"signaled,omitempty"`
}

// ExitCode defines the wrapper's own exit codes. On normal completion the
// wrapper exits with the child's code instead.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error in the wrapper itself.
	ExitGeneralError ExitCode = 1

	// ExitLaunchFailed indicates the editor binary could not be started at
	// all (not found or not executable). It follows the shell convention for
	// "command not found", which the editor never returns for argument errors.
	ExitLaunchFailed ExitCode = 127

	// ExitSignalBase is added to the signal number when the child is killed
	// by a signal.
	ExitSignalBase ExitCode = 128
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ChildExitError reports that the wrapped editor exited non-zero. The CLI
// layer exits with Code and prints nothing, since the editor has already
// reported its own failure.
type ChildExitError struct {
	Code int
}

func (e *ChildExitError) Error() string {
	return fmt.Sprintf("editor exited with status %d", e.Code)
}
