package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// logger writes cope's own diagnostics to stderr. It is created once per
// run from the settings and handed to every component that logs.
//
// Prefixes are colored only when w is a terminal; the renderer falls back
// to plain text for pipes and buffers.
type logger struct {
	verbose bool
	w       io.Writer

	verbosePrefix string
	warnPrefix    string
}

func newLogger(verbose bool, w io.Writer) *logger {
	r := lipgloss.NewRenderer(w)
	return &logger{
		verbose:       verbose,
		w:             w,
		verbosePrefix: r.NewStyle().Foreground(lipgloss.Color("240")).Render("[verbose]"),
		warnPrefix:    r.NewStyle().Foreground(lipgloss.Color("208")).Render("cope: warning:"),
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func (l *logger) VerboseLog(format string, args ...interface{}) {
	if l.verbose {
		fmt.Fprintf(l.w, l.verbosePrefix+" "+format+"\n", args...)
	}
}

// Warn always prints a message to stderr.
func (l *logger) Warn(format string, args ...interface{}) {
	fmt.Fprintf(l.w, l.warnPrefix+" "+format+"\n", args...)
}
