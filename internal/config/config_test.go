package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapEnv builds a LookupEnv backed by a plain map, so tests never touch
// the real process environment.
func mapEnv(vars map[string]string) LookupEnv {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

// writeConfig writes a YAML settings file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, "code", s.Editor)
	assert.Equal(t, []string{"devcontainer.json"}, s.ConfigFileNames)
	assert.Equal(t, []string{".devcontainer.json"}, s.RootConfigFileNames)
	assert.Empty(t, s.StopAt)
	assert.Equal(t, "desktop-linux", s.DockerContext)
	assert.True(t, s.IsInteractive())
	assert.False(t, s.Verbose)
}

// TestLoad_NoFile verifies that a missing config file yields defaults without error.
func TestLoad_NoFile(t *testing.T) {
	env := mapEnv(map[string]string{
		EnvConfig: filepath.Join(t.TempDir(), "missing.yaml"),
	})

	s, err := Load(env)
	require.NoError(t, err)
	assert.Equal(t, "code", s.Editor)
	assert.Empty(t, s.Source)
}

// TestLoad_File checks that every YAML field overrides its default.
func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `editor: code-insiders
configFileNames:
  - devcontainer.json
  - devcontainer.jsonc
rootConfigFileNames: [".devcontainer.json"]
stopAt: [".git"]
dockerContext: default
interactive: false
`)

	s, err := Load(mapEnv(map[string]string{EnvConfig: path}))
	require.NoError(t, err)

	assert.Equal(t, "code-insiders", s.Editor)
	assert.Equal(t, []string{"devcontainer.json", "devcontainer.jsonc"}, s.ConfigFileNames)
	assert.Equal(t, []string{".git"}, s.StopAt)
	assert.Equal(t, "default", s.DockerContext)
	assert.False(t, s.IsInteractive())
	assert.Equal(t, path, s.Source)
}

// TestLoad_PartialFile ensures unset YAML fields keep their defaults.
func TestLoad_PartialFile(t *testing.T) {
	path := writeConfig(t, "stopAt: [\".git\", \".hg\"]\n")

	s, err := Load(mapEnv(map[string]string{EnvConfig: path}))
	require.NoError(t, err)

	assert.Equal(t, "code", s.Editor)
	assert.Equal(t, []string{"devcontainer.json"}, s.ConfigFileNames)
	assert.Equal(t, []string{".git", ".hg"}, s.StopAt)
	assert.True(t, s.IsInteractive())
}

// TestLoad_MalformedFile verifies that a broken file still yields usable
// settings, together with an error the caller can warn about.
func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "{{invalid yaml")

	s, err := Load(mapEnv(map[string]string{
		EnvConfig:  path,
		EnvVerbose: "1",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	require.NotNil(t, s)
	assert.Equal(t, "code", s.Editor)
	assert.True(t, s.Verbose, "environment overrides still apply")
}

// TestLoad_EnvOverrides checks that COPE_EDITOR beats the config file.
func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "editor: codium\n")

	s, err := Load(mapEnv(map[string]string{
		EnvConfig:  path,
		EnvEditor:  "/opt/code/bin/code",
		EnvVerbose: "yes",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/opt/code/bin/code", s.Editor)
	assert.True(t, s.Verbose)
}

func TestFilePath(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected string
	}{
		{
			name:     "explicit COPE_CONFIG",
			env:      map[string]string{EnvConfig: "/etc/cope.yaml", "HOME": "/home/u"},
			expected: "/etc/cope.yaml",
		},
		{
			name:     "XDG_CONFIG_HOME",
			env:      map[string]string{"XDG_CONFIG_HOME": "/xdg", "HOME": "/home/u"},
			expected: filepath.Join("/xdg", "cope", "config.yaml"),
		},
		{
			name:     "HOME fallback",
			env:      map[string]string{"HOME": "/home/u"},
			expected: filepath.Join("/home/u", ".config", "cope", "config.yaml"),
		},
		{
			name:     "nothing set",
			env:      map[string]string{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilePath(mapEnv(tt.env)))
		})
	}
}

// TestIsTruthy covers the COPE_VERBOSE interpretation.
func TestIsTruthy(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"1", true},
		{"true", true},
		{"yes", true},
		{"anything", true},
		{"TRUE", true},
		{"", false},
		{"0", false},
		{"false", false},
		{"FALSE", false},
		{"no", false},
		{"off", false},
		{" off ", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTruthy(tt.value))
		})
	}
}

func TestLoad_VerboseUnset(t *testing.T) {
	s, err := Load(mapEnv(map[string]string{}))
	require.NoError(t, err)
	assert.False(t, s.Verbose)
	assert.Empty(t, s.Source)
}
