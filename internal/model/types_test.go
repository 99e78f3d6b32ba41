package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTokenKind_IsTerminal verifies that only subcommands and "--" stop rewriting.
func TestTokenKind_IsTerminal(t *testing.T) {
	tests := []struct {
		kind     TokenKind
		expected bool
	}{
		{KindFlag, false},
		{KindFlagValue, false},
		{KindPositional, false},
		{KindSubcommand, true},
		{KindTerminator, true},
		{KindVerbatim, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.IsTerminal())
		})
	}
}

// TestInvocation_Args checks that Args returns the raw values unchanged and in order.
func TestInvocation_Args(t *testing.T) {
	inv := Invocation{Tokens: []Token{
		{Value: "--log", Kind: KindFlag},
		{Value: "info", Kind: KindFlagValue},
		{Value: "src", Kind: KindPositional},
		{Value: "--", Kind: KindTerminator},
		{Value: "x y", Kind: KindVerbatim},
	}}

	assert.Equal(t, []string{"--log", "info", "src", "--", "x y"}, inv.Args())
	assert.Equal(t, []int{2}, inv.Positionals())
}

// TestInvocation_Empty ensures an empty invocation yields an empty, non-nil slice.
func TestInvocation_Empty(t *testing.T) {
	inv := Invocation{}
	assert.NotNil(t, inv.Args())
	assert.Empty(t, inv.Args())
	assert.Nil(t, inv.Positionals())
}

func TestPathVerdict_String(t *testing.T) {
	assert.Equal(t, "no devcontainer", NoDevcontainer.String())

	v := PathVerdict{
		HasDevcontainer: true,
		ProjectRoot:     "/src/app",
		ConfigPath:      "/src/app/.devcontainer/devcontainer.json",
	}
	assert.Contains(t, v.String(), "/src/app/.devcontainer/devcontainer.json")
	assert.Contains(t, v.String(), "root /src/app")
}

// TestRewritePlan_Argv checks that argv[0] is the program and String joins with spaces.
func TestRewritePlan_Argv(t *testing.T) {
	plan := RewritePlan{Program: "code", Args: []string{"--new-window", "."}}

	assert.Equal(t, []string{"code", "--new-window", "."}, plan.Argv())
	assert.Equal(t, "code --new-window .", plan.String())

	empty := RewritePlan{Program: "code"}
	assert.Equal(t, []string{"code"}, empty.Argv())
	assert.Equal(t, "code", empty.String())
}

// TestRewritePlan_StringQuoting checks that the trace reads back as the
// exact vector when arguments contain spaces or quotes.
func TestRewritePlan_StringQuoting(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"space", []string{"my file.txt"}, `code "my file.txt"`},
		{"tab", []string{"a\tb"}, `code "a\tb"`},
		{"empty", []string{""}, `code ""`},
		{"double quote", []string{`say"hi`}, `code "say\"hi"`},
		{"single quote", []string{"it's"}, `code "it's"`},
		{"backslash", []string{`a\b`}, `code "a\\b"`},
		{"plain uri", []string{"--file-uri=vscode-remote://dev-container+2f61/w/a.go"}, "code --file-uri=vscode-remote://dev-container+2f61/w/a.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := RewritePlan{Program: "code", Args: tt.args}
			assert.Equal(t, tt.want, plan.String())
		})
	}
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitLaunchFailed, "failed to launch code")
		assert.Equal(t, ExitLaunchFailed, err.Code)
		assert.Equal(t, "failed to launch code", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("executable file not found in $PATH")
		err := WrapCLIError(ExitLaunchFailed, "failed to launch code", inner)
		assert.Equal(t, ExitLaunchFailed, err.Code)
		assert.Contains(t, err.Error(), "not found")
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitLaunchFailed, "failed to launch code", inner)
		assert.True(t, errors.Is(err, inner))
	})
}

func TestChildExitError(t *testing.T) {
	var err error = &ChildExitError{Code: 3}

	var exitErr *ChildExitError
	assert.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, err.Error(), "3")
}

// TestExitCodes guards the launch-failure code against collisions with
// the codes the editor itself uses.
func TestExitCodes(t *testing.T) {
	assert.NotEqual(t, ExitSuccess, ExitLaunchFailed)
	assert.NotEqual(t, ExitGeneralError, ExitLaunchFailed)
	assert.Equal(t, ExitCode(127), ExitLaunchFailed)
	assert.Equal(t, ExitCode(128), ExitSignalBase)
}
