package rewrite

import (
	"fmt"
	"strings"

	"github.com/mmr-tortoise/cope/internal/model"
)

// flagArity lists the editor flags that consume following arguments, and
// how many. Values of these flags are never treated as paths; when the
// command line runs short the editor reports the error itself.
var flagArity = map[string]int{
	"--add-mcp":                       1,
	"--add":                           1,
	"--category":                      1,
	"--diff":                          2,
	"--disable-extension":             1,
	"--enable-proposed-api":           1,
	"--extensions-dir":                1,
	"--goto":                          1,
	"--inspect-brk-extensions":        1,
	"--inspect-extensions":            1,
	"--install-extension":             1,
	"--locale":                        1,
	"--locate-shell-integration-path": 1,
	"--log":                           1,
	"--merge":                         4,
	"--profile":                       1,
	"--remove":                        1,
	"--sync":                          1,
	"--uninstall-extension":           1,
	"--user-data-dir":                 1,
	"-a":                              1,
	"-d":                              2,
	"-g":                              1,
	"-m":                              4,
}

// Subcommands are editor subcommands whose arguments are not file names.
// None of them is supported inside a container.
var Subcommands = []string{"chat", "serve-web", "tunnel"}

const terminator = "--"

func isSubcommand(s string) bool {
	for _, sub := range Subcommands {
		if s == sub {
			return true
		}
	}
	return false
}

// isShortCluster reports whether s is a group of short flags such as "-nw".
func isShortCluster(s string) bool {
	return len(s) > 2 && s[0] == '-' && s[1] != '-'
}

// shortArity returns how many values a short flag cluster consumes: the
// arity of its last letter, as the editor's option parser assigns following
// arguments to the final flag of a cluster.
func shortArity(s string) int {
	return flagArity["-"+s[len(s)-1:]]
}

// hasValueLetter reports whether a short cluster contains any flag that takes a value.
func hasValueLetter(s string) bool {
	for _, c := range s[1:] {
		if _, ok := flagArity["-"+string(c)]; ok {
			return true
		}
	}
	return false
}

// Classify tags every argument of an editor command line. It never changes,
// drops or reorders arguments: inv.Args() always equals args.
//
// The returned warnings describe constructs the classifier cannot handle
// precisely (short flag clusters with value-taking flags).
func Classify(args []string) (model.Invocation, []string) {
	inv := model.Invocation{Tokens: make([]model.Token, 0, len(args))}
	var warnings []string

	sawPositional := false
	for i := 0; i < len(args); i++ {
		a := args[i]

		switch {
		case a == terminator || (!sawPositional && isSubcommand(a)):
			// Nothing after a terminal token may be rewritten. After "--" a
			// rewritten --file-uri would be taken as a literal file name.
			kind := model.KindTerminator
			if a != terminator {
				kind = model.KindSubcommand
			}
			inv.Tokens = append(inv.Tokens, model.Token{Value: a, Kind: kind})
			for _, rest := range args[i+1:] {
				inv.Tokens = append(inv.Tokens, model.Token{Value: rest, Kind: model.KindVerbatim})
			}
			return inv, warnings

		case strings.HasPrefix(a, "-"):
			inv.Tokens = append(inv.Tokens, model.Token{Value: a, Kind: model.KindFlag})

			n := flagArity[a]
			if isShortCluster(a) && !strings.Contains(a, "=") {
				if hasValueLetter(a) {
					warnings = append(warnings, fmt.Sprintf("%s: combined short flags with values are not handled precisely", a))
				}
				n = shortArity(a)
			}
			for ; n > 0 && i+1 < len(args); n-- {
				i++
				inv.Tokens = append(inv.Tokens, model.Token{Value: args[i], Kind: model.KindFlagValue})
			}

		default:
			sawPositional = true
			inv.Tokens = append(inv.Tokens, model.Token{Value: a, Kind: model.KindPositional})
		}
	}

	return inv, warnings
}

// UsesGoto reports whether the command line asks the editor to open a file
// at a line (--goto, --goto=..., -g, or a short cluster containing g).
func UsesGoto(inv model.Invocation) bool {
	for _, t := range inv.Tokens {
		v := t.Value
		if v == "--goto" || strings.HasPrefix(v, "--goto=") {
			return true
		}
		if t.Kind == model.KindFlag && len(v) >= 2 && v[0] == '-' && v[1] != '-' {
			letters, _, _ := strings.Cut(v[1:], "=")
			if strings.ContainsRune(letters, 'g') {
				return true
			}
		}
	}
	return false
}

// UnsupportedSubcommand returns the subcommand the invocation starts with,
// if it is one cope cannot translate.
func UnsupportedSubcommand(inv model.Invocation) (string, bool) {
	for _, t := range inv.Tokens {
		if t.Kind == model.KindSubcommand {
			return t.Value, true
		}
	}
	return "", false
}
