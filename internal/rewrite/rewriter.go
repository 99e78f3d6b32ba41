package rewrite

import (
	"github.com/mmr-tortoise/cope/internal/model"
)

// PathResolver is the path resolver as seen by the rewriter.
// *devcontainer.Resolver satisfies it.
type PathResolver interface {
	// Resolve judges a single path argument.
	Resolve(arg string) model.PathVerdict

	// RemoteArg returns the editor argument replacing a devcontainer path.
	RemoteArg(v model.PathVerdict) (string, error)
}

// Rewriter turns an Invocation into the RewritePlan for the editor.
type Rewriter struct {
	program  string
	resolver PathResolver
	logf     func(format string, args ...interface{})
	warnf    func(format string, args ...interface{})
}

// New creates a Rewriter that plans commands for program.
//
// logf receives verbose diagnostics and warnf receives warnings the user
// should always see; either may be nil.
func New(program string, resolver PathResolver, logf, warnf func(format string, args ...interface{})) *Rewriter {
	noop := func(string, ...interface{}) {}
	if logf == nil {
		logf = noop
	}
	if warnf == nil {
		warnf = noop
	}
	return &Rewriter{program: program, resolver: resolver, logf: logf, warnf: warnf}
}

// Plan classifies args and rewrites them. It is the single entry point used
// by the CLI and produces exactly one plan per invocation.
func (r *Rewriter) Plan(args []string) model.RewritePlan {
	inv, warnings := Classify(args)
	for _, w := range warnings {
		r.warnf("%s", w)
	}
	return r.Rewrite(inv)
}

// Rewrite resolves the positional paths of inv and applies the verdicts.
// Unsupported invocations come back unchanged with Modified=false.
func (r *Rewriter) Rewrite(inv model.Invocation) model.RewritePlan {
	if reason, unsupported := r.unsupported(inv); unsupported {
		r.logf("passing through unchanged: %s", reason)
		return r.passThrough(inv)
	}

	// A bare "code" opens the current directory. Give that directory the
	// same chance to open in its container as an explicit ".".
	if len(inv.Tokens) == 0 {
		implicit := model.Invocation{Tokens: []model.Token{{Value: ".", Kind: model.KindPositional}}}
		if plan := r.Apply(implicit, r.Verdicts(implicit)); plan.Modified {
			return plan
		}
		return r.passThrough(inv)
	}

	return r.Apply(inv, r.Verdicts(inv))
}

// Verdicts runs the path resolver over every positional token, keyed by
// token index.
func (r *Rewriter) Verdicts(inv model.Invocation) map[int]model.PathVerdict {
	verdicts := make(map[int]model.PathVerdict)
	for _, i := range inv.Positionals() {
		v := r.resolver.Resolve(inv.Tokens[i].Value)
		r.logf("%s: %s", inv.Tokens[i].Value, v)
		verdicts[i] = v
	}
	return verdicts
}

// Apply builds the plan from inv and the verdicts. Tokens without a
// devcontainer verdict, and tokens whose remote form cannot be built, are
// copied verbatim in their original position.
func (r *Rewriter) Apply(inv model.Invocation, verdicts map[int]model.PathVerdict) model.RewritePlan {
	plan := model.RewritePlan{
		Program: r.program,
		Args:    make([]string, 0, len(inv.Tokens)),
	}

	for i, t := range inv.Tokens {
		v, ok := verdicts[i]
		if !ok || t.Kind != model.KindPositional || !v.HasDevcontainer {
			plan.Args = append(plan.Args, t.Value)
			continue
		}

		arg, err := r.resolver.RemoteArg(v)
		if err != nil {
			r.logf("keeping %s: %v", t.Value, err)
			plan.Args = append(plan.Args, t.Value)
			continue
		}

		plan.Args = append(plan.Args, arg)
		plan.Modified = true
	}

	return plan
}

func (r *Rewriter) unsupported(inv model.Invocation) (string, bool) {
	if UsesGoto(inv) {
		return "--goto is not supported inside a devcontainer", true
	}
	if sub, ok := UnsupportedSubcommand(inv); ok {
		return "subcommand " + sub + " is not supported inside a devcontainer", true
	}
	return "", false
}

func (r *Rewriter) passThrough(inv model.Invocation) model.RewritePlan {
	return model.RewritePlan{Program: r.program, Args: inv.Args()}
}
