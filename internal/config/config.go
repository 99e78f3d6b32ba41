// Package config loads the settings that shape how cope rewrites and
// dispatches an invocation.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults (editor "code", devcontainer.json / .devcontainer.json)
//  2. An optional YAML file ($COPE_CONFIG, or $XDG_CONFIG_HOME/cope/config.yaml,
//     or ~/.config/cope/config.yaml)
//  3. Environment variables (COPE_EDITOR, COPE_VERBOSE)
//
// Settings are read once at startup and passed to each component as plain
// values. No package in cope reads the environment after this point.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names understood by cope.
const (
	EnvVerbose = "COPE_VERBOSE"
	EnvEditor  = "COPE_EDITOR"
	EnvConfig  = "COPE_CONFIG"
)

// Defaults applied when neither the config file nor the environment say otherwise.
const (
	DefaultEditor         = "code"
	DefaultDockerContext  = "desktop-linux"
	DefaultConfigFileName = "devcontainer.json"
	DefaultRootConfigName = ".devcontainer.json"
)

// Settings holds every user-tunable knob.
type Settings struct {
	// Editor is the wrapped editor binary, looked up on $PATH.
	Editor string `yaml:"editor"`

	// ConfigFileNames are the file names recognized inside a .devcontainer
	// directory (and its immediate subdirectories).
	ConfigFileNames []string `yaml:"configFileNames"`

	// RootConfigFileNames are the file names recognized directly in a
	// project directory, e.g. ".devcontainer.json".
	RootConfigFileNames []string `yaml:"rootConfigFileNames"`

	// StopAt lists entries (e.g. ".git") that end the upward search when
	// found in an ancestor without a devcontainer configuration.
	StopAt []string `yaml:"stopAt"`

	// DockerContext is embedded in the container descriptor for
	// non-default configuration files.
	DockerContext string `yaml:"dockerContext"`

	// Interactive allows cope to prompt when a project has several
	// devcontainer configurations. Nil means "enabled".
	Interactive *bool `yaml:"interactive"`

	// Verbose is set from COPE_VERBOSE only.
	Verbose bool `yaml:"-"`

	// Source is the config file that was read, empty when none was found.
	Source string `yaml:"-"`
}

// LookupEnv matches os.LookupEnv so tests can inject an environment.
type LookupEnv func(key string) (string, bool)

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Editor:              DefaultEditor,
		ConfigFileNames:     []string{DefaultConfigFileName},
		RootConfigFileNames: []string{DefaultRootConfigName},
		DockerContext:       DefaultDockerContext,
	}
}

// IsInteractive reports whether prompting is allowed.
func (s *Settings) IsInteractive() bool {
	return s.Interactive == nil || *s.Interactive
}

// Load builds Settings from defaults, the config file and the environment.
//
// A missing config file is not an error. A config file that cannot be read
// or parsed returns the default-plus-environment settings together with a
// non-nil error, so the caller can warn and still behave exactly like the
// editor would.
func Load(env LookupEnv) (*Settings, error) {
	if env == nil {
		env = os.LookupEnv
	}

	settings := Default()
	var loadErr error

	if path := FilePath(env); path != "" {
		fileSettings, err := parseFile(path)
		switch {
		case err != nil:
			loadErr = err
		case fileSettings != nil:
			settings.merge(fileSettings)
			settings.Source = path
		}
	}

	applyEnv(settings, env)
	return settings, loadErr
}

// FilePath returns the config file location for the given environment,
// or "" when no home directory can be determined.
func FilePath(env LookupEnv) string {
	if p, ok := env(EnvConfig); ok && p != "" {
		return p
	}
	if xdg, ok := env("XDG_CONFIG_HOME"); ok && xdg != "" {
		return filepath.Join(xdg, "cope", "config.yaml")
	}
	if home, ok := env("HOME"); ok && home != "" {
		return filepath.Join(home, ".config", "cope", "config.yaml")
	}
	return ""
}

// parseFile reads one YAML settings file. It returns (nil, nil) when the
// file does not exist.
func parseFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays every field that is set in other.
func (s *Settings) merge(other *Settings) {
	if other.Editor != "" {
		s.Editor = other.Editor
	}
	if len(other.ConfigFileNames) > 0 {
		s.ConfigFileNames = other.ConfigFileNames
	}
	if len(other.RootConfigFileNames) > 0 {
		s.RootConfigFileNames = other.RootConfigFileNames
	}
	if len(other.StopAt) > 0 {
		s.StopAt = other.StopAt
	}
	if other.DockerContext != "" {
		s.DockerContext = other.DockerContext
	}
	if other.Interactive != nil {
		s.Interactive = other.Interactive
	}
}

func applyEnv(s *Settings, env LookupEnv) {
	if editor, ok := env(EnvEditor); ok && editor != "" {
		s.Editor = editor
	}
	if v, ok := env(EnvVerbose); ok {
		s.Verbose = IsTruthy(v)
	}
}

// IsTruthy interprets an environment value as a boolean switch. Any
// non-empty value counts as true except the usual spellings of "off".
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no", "off", "n", "f":
		return false
	default:
		return true
	}
}
