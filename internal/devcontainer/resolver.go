// resolver.go implements the upward search from a path argument to the
// nearest directory that declares a devcontainer.
package devcontainer

import (
	"fmt"
	"path/filepath"

	"github.com/mmr-tortoise/cope/internal/model"
)

// Options configures a Resolver. Zero-valued name lists fall back to the
// conventional devcontainer.json / .devcontainer.json.
type Options struct {
	// WorkDir anchors relative path arguments.
	WorkDir string

	// ConfigFileNames are recognized inside .devcontainer/ and its subdirectories.
	ConfigFileNames []string

	// RootConfigFileNames are recognized directly in a directory.
	RootConfigFileNames []string

	// StopAt entries end the search at the first ancestor containing one.
	StopAt []string

	// DockerContext is embedded in descriptors for non-default configurations.
	DockerContext string

	// Chooser picks among several configurations. Defaults to FirstChooser.
	Chooser Chooser

	// Logf receives diagnostic messages. Defaults to a no-op.
	Logf func(format string, args ...interface{})
}

// Resolver answers "does this path live in a devcontainer project?".
//
// A Resolver is used for a single invocation. It caches the configuration
// chosen for each project root, so a user opening several files from the
// same project is asked at most once.
type Resolver struct {
	fsys FileSystem
	opts Options

	chosen   map[string]string
	declined map[string]error
	configs  map[string]*RawDevContainer
}

// NewResolver creates a Resolver over fsys.
func NewResolver(fsys FileSystem, opts Options) *Resolver {
	if len(opts.ConfigFileNames) == 0 {
		opts.ConfigFileNames = []string{"devcontainer.json"}
	}
	if opts.RootConfigFileNames == nil {
		opts.RootConfigFileNames = []string{".devcontainer.json"}
	}
	if opts.DockerContext == "" {
		opts.DockerContext = "desktop-linux"
	}
	if opts.Chooser == nil {
		opts.Chooser = FirstChooser{}
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...interface{}) {}
	}

	return &Resolver{
		fsys:    fsys,
		opts:    opts,
		chosen:   make(map[string]string),
		declined: make(map[string]error),
		configs:  make(map[string]*RawDevContainer),
	}
}

// Normalize turns a path argument into a clean absolute path. Relative
// paths are joined to workDir; ".." never climbs above the root.
func Normalize(arg, workDir string) string {
	if filepath.IsAbs(arg) {
		return filepath.Clean(arg)
	}
	return filepath.Join(workDir, arg)
}

// Resolve returns the verdict for a single path argument. Paths that do not
// exist, and any filesystem failure along the way, yield NoDevcontainer.
func (r *Resolver) Resolve(arg string) model.PathVerdict {
	abs := Normalize(arg, r.opts.WorkDir)

	info, err := r.fsys.Stat(abs)
	if err != nil {
		r.opts.Logf("%s: %v", abs, err)
		return model.NoDevcontainer
	}

	start := abs
	if !info.IsDir() {
		start = filepath.Dir(abs)
	}

	root, candidates := r.findUp(start)
	if root == "" {
		return model.NoDevcontainer
	}

	configPath, err := r.choose(root, candidates)
	if err != nil {
		r.opts.Logf("no configuration chosen for %s: %v", root, err)
		return model.NoDevcontainer
	}

	return model.PathVerdict{
		HasDevcontainer: true,
		AbsPath:         abs,
		IsDir:           info.IsDir(),
		ProjectRoot:     root,
		ConfigPath:      configPath,
	}
}

// findUp walks from start towards the filesystem root and returns the first
// directory that declares at least one configuration, with its candidates.
func (r *Resolver) findUp(start string) (string, []string) {
	dir := start
	for {
		if candidates := Candidates(r.fsys, dir, r.opts.ConfigFileNames, r.opts.RootConfigFileNames); len(candidates) > 0 {
			return dir, candidates
		}

		for _, marker := range r.opts.StopAt {
			if exists(r.fsys, filepath.Join(dir, marker)) {
				r.opts.Logf("stopped search at %s (found %s)", dir, marker)
				return "", nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// choose returns the configuration to use for root, asking the Chooser
// only when there is more than one and only once per root. A declined or
// invalid answer is remembered as well, so later arguments under the same
// root open on the host without asking again.
func (r *Resolver) choose(root string, candidates []string) (string, error) {
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	if p, ok := r.chosen[root]; ok {
		return p, nil
	}
	if err, ok := r.declined[root]; ok {
		return "", err
	}

	options := make([]Option, 0, len(candidates))
	for _, c := range candidates {
		cfg, _ := r.config(c)
		options = append(options, Option{Path: c, Name: cfg.DisplayName()})
	}

	idx, err := r.opts.Chooser.Choose(root, options)
	if err == nil && (idx < 0 || idx >= len(candidates)) {
		err = fmt.Errorf("choice %d out of range", idx)
	}
	if err != nil {
		r.declined[root] = err
		return "", err
	}

	r.chosen[root] = candidates[idx]
	return candidates[idx], nil
}

// config loads and caches the configuration at configPath.
func (r *Resolver) config(configPath string) (*RawDevContainer, error) {
	if cfg, ok := r.configs[configPath]; ok {
		return cfg, nil
	}
	cfg, err := LoadConfig(r.fsys, configPath)
	if err != nil {
		return nil, err
	}
	r.configs[configPath] = cfg
	return cfg, nil
}

// RemoteArg returns the editor argument that opens the verdict's path inside
// its devcontainer, e.g. "--folder-uri=vscode-remote://dev-container+...".
// An unreadable or invalid configuration returns an error and the caller
// keeps the original argument.
func (r *Resolver) RemoteArg(v model.PathVerdict) (string, error) {
	if !v.HasDevcontainer {
		return "", fmt.Errorf("%s has no devcontainer", v.AbsPath)
	}

	cfg, err := r.config(v.ConfigPath)
	if err != nil {
		return "", err
	}

	id := ContainerID(v.ProjectRoot, v.ConfigPath, r.opts.DockerContext)
	r.opts.Logf("container id for %s: %s", v.ProjectRoot, id)

	uri := RemoteURI(id, cfg.ContainerFolder(v.ProjectRoot), v.ProjectRoot, v.AbsPath)
	return URIFlag(uri, v.IsDir), nil
}
