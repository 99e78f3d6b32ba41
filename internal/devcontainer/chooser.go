package devcontainer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Option is one configuration a project offers, as shown to the user.
type Option struct {
	// Path is the absolute path of the configuration file.
	Path string

	// Name is the display name from the configuration's "name" field.
	Name string
}

// Label renders the option as "<name> (<path relative to root>)".
func (o Option) Label(root string) string {
	rel, err := filepath.Rel(root, o.Path)
	if err != nil {
		rel = o.Path
	}
	return fmt.Sprintf("%s (%s)", o.Name, rel)
}

// Chooser picks one configuration when a project declares several.
// It returns the index of the chosen option.
type Chooser interface {
	Choose(root string, options []Option) (int, error)
}

// FirstChooser always picks the first option. It is used when no terminal
// is attached or prompting is disabled.
type FirstChooser struct{}

// Choose returns 0.
func (FirstChooser) Choose(string, []Option) (int, error) {
	return 0, nil
}

// PromptChooser asks the user on the terminal with a huh select field.
// The prompt is rendered on stderr so stdout stays untouched for the editor.
type PromptChooser struct{}

// Choose shows a "Which container?" prompt and returns the selected index.
// Cancelling the prompt returns huh.ErrUserAborted.
func (PromptChooser) Choose(root string, options []Option) (int, error) {
	selected := 0
	opts := make([]huh.Option[int], 0, len(options))
	for i, o := range options {
		opts = append(opts, huh.NewOption(o.Label(root), i))
	}

	sel := huh.NewSelect[int]().
		Title("Which container?").
		Description(root).
		Options(opts...).
		Value(&selected)

	form := huh.NewForm(huh.NewGroup(sel)).WithOutput(os.Stderr)
	if err := form.Run(); err != nil {
		return 0, err
	}
	return selected, nil
}

// NewChooser returns a PromptChooser when interactive is set and both stdin
// and stderr are terminals, otherwise a FirstChooser.
func NewChooser(interactive bool) Chooser {
	if interactive && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd())) {
		return PromptChooser{}
	}
	return FirstChooser{}
}
