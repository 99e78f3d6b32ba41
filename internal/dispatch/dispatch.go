// Package dispatch runs the wrapped editor with the planned argument vector.
//
// The editor inherits the wrapper's standard streams directly, so terminal
// behavior (ptys, colors, --wait) is exactly as if the editor had been run
// by hand. Exactly one child process is started per invocation, with no
// retries and no timeout. Signals reach the child through the terminal's
// process group; the wrapper installs no handlers of its own.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/mmr-tortoise/cope/internal/model"
)

// Dispatcher starts the editor process.
type Dispatcher struct {
	// LookPath resolves the program name; defaults to exec.LookPath.
	LookPath func(file string) (string, error)

	Stdin  io.Reader
	Stdout io.Writer

	// Stderr receives the child's error output and the verbose trace.
	Stderr io.Writer
}

// New returns a Dispatcher wired to the current process's streams.
func New() *Dispatcher {
	return &Dispatcher{
		LookPath: exec.LookPath,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Dispatch runs plan and waits for the editor to exit.
//
// When verbose is set, the full argument vector is written to Stderr before
// anything runs, space-separated on one line, so it can be audited.
//
// A non-zero exit of the editor is not an error: it is reported in the
// RunResult. Only a launch failure returns an error, a *model.CLIError with
// ExitLaunchFailed.
func (d *Dispatcher) Dispatch(ctx context.Context, plan model.RewritePlan, verbose bool) (model.RunResult, error) {
	if verbose {
		fmt.Fprintln(d.Stderr, plan.String())
	}

	lookPath := d.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	path, err := lookPath(plan.Program)
	if err != nil {
		return launchFailed(plan.Program, err)
	}

	// #nosec G204 -- forwarding the user's own command line is the purpose of this tool.
	cmd := exec.CommandContext(ctx, path, plan.Args...)
	// Keep argv[0] as the name the user would have typed.
	cmd.Args[0] = plan.Program
	cmd.Stdin = d.Stdin
	cmd.Stdout = d.Stdout
	cmd.Stderr = d.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return resultFromExit(exitErr), nil
		}
		return launchFailed(plan.Program, err)
	}

	return model.RunResult{ExitCode: int(model.ExitSuccess)}, nil
}

// resultFromExit converts an exited child into a RunResult. A child killed
// by a signal reports 128+signal, as shells do.
func resultFromExit(exitErr *exec.ExitError) model.RunResult {
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return model.RunResult{
			ExitCode: int(model.ExitSignalBase) + int(status.Signal()),
			Signaled: true,
		}
	}
	return model.RunResult{ExitCode: exitErr.ExitCode()}
}

func launchFailed(program string, err error) (model.RunResult, error) {
	return model.RunResult{ExitCode: int(model.ExitLaunchFailed)},
		model.WrapCLIError(model.ExitLaunchFailed, fmt.Sprintf("failed to launch %s", program), err)
}
