// Package rewrite is cope's command rewriter. It classifies the editor
// command line into opaque flags, flag values, positional paths and
// terminal tokens, and replaces each positional path that lives in a
// devcontainer project with the editor's remote-container URI flag.
//
// The classifier deliberately knows only what rewriting needs: which flags
// consume following arguments, the "--" terminator, and the subcommands
// (chat, serve-web, tunnel) after which nothing is a file name. Every other
// token is copied verbatim and in its original position.
//
// Invocations using --goto, or starting with one of the subcommands, are
// never rewritten: opening a file at a line inside a container is not
// supported yet, so the command line is handed to the editor untouched.
package rewrite
