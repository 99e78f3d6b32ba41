// Package model defines the domain types and value objects for the
// cope CLI.
//
// This package contains pure data structures with no external dependencies.
// Every value (Invocation, PathVerdict, RewritePlan, RunResult) lives for a
// single run of the wrapper and is never persisted.
//
// The package also defines exit codes (ExitCode) and the error types
// (CLIError, ChildExitError) that carry exit codes for proper OS process
// exit handling.
package model
