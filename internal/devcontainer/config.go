// Package devcontainer handles locating and reading devcontainer.json files.
//
// The devcontainer.json specification supports JSONC (JSON with Comments),
// so this package uses github.com/tidwall/jsonc to strip comments before
// parsing with the standard encoding/json library.
//
// Key responsibilities:
//   - List the configuration candidates declared by a single directory
//   - Load and parse devcontainer.json (with JSONC support)
//   - Derive the folder that the project is mounted at inside the container
package devcontainer

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

const (
	// DevContainerDir is the conventional directory holding configurations.
	DevContainerDir = ".devcontainer"

	// defaultWorkspaceRoot is where the Dev Containers extension mounts a
	// project when workspaceFolder is not set.
	defaultWorkspaceRoot = "/workspaces"
)

// RawDevContainer holds the few devcontainer.json fields cope reads.
// encoding/json silently ignores the rest of the file, which is the desired
// behavior since the container itself is built by the editor.
type RawDevContainer struct {
	// Name is the display name for the dev container.
	Name string `json:"name"`

	// WorkspaceFolder is the path inside the container where the project
	// source is mounted.
	WorkspaceFolder string `json:"workspaceFolder,omitempty"`
}

// LoadConfig reads a devcontainer.json file, strips JSONC comments, and
// parses it into a RawDevContainer struct.
func LoadConfig(fsys FileSystem, configPath string) (*RawDevContainer, error) {
	data, err := fsys.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read devcontainer.json: %w", err)
	}

	// Strip JSONC comments (// and /* */) and trailing commas before parsing.
	cleanJSON := jsonc.ToJSON(data)

	var raw RawDevContainer
	if err := json.Unmarshal(cleanJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse devcontainer.json at %s: %w", configPath, err)
	}

	return &raw, nil
}

// ContainerFolder returns the folder the project root is mounted at inside
// the container: workspaceFolder when set, otherwise /workspaces/<basename>.
func (c *RawDevContainer) ContainerFolder(projectRoot string) string {
	if c != nil && c.WorkspaceFolder != "" {
		folder := strings.TrimRight(c.WorkspaceFolder, "/")
		if folder == "" {
			return "/"
		}
		return folder
	}
	return path.Join(defaultWorkspaceRoot, filepath.Base(projectRoot))
}

// DisplayName returns the configured name, or a placeholder when unnamed.
func (c *RawDevContainer) DisplayName() string {
	if c == nil || c.Name == "" {
		return "<no name>"
	}
	return c.Name
}

// Candidates lists the devcontainer configuration files declared directly
// by dir, in priority order:
//  1. <dir>/.devcontainer/<name> for each directory-form name
//  2. <dir>/.devcontainer/<sub>/<name> for each immediate subdirectory, sorted
//  3. <dir>/<rootName> for each root-form name (e.g. .devcontainer.json)
//
// Unreadable entries are skipped. An empty result means dir declares no
// devcontainer.
func Candidates(fsys FileSystem, dir string, names, rootNames []string) []string {
	var found []string

	devDir := filepath.Join(dir, DevContainerDir)
	if isDir(fsys, devDir) {
		for _, name := range names {
			if p := filepath.Join(devDir, name); isFile(fsys, p) {
				found = append(found, p)
			}
		}

		// Errors here only mean no nested configurations are visible.
		entries, _ := fsys.ReadDir(devDir)
		for _, entry := range entries {
			for _, name := range names {
				// Stat rather than entry.IsDir so symlinked subdirectories count.
				if p := filepath.Join(devDir, entry.Name(), name); isFile(fsys, p) {
					found = append(found, p)
				}
			}
		}
	}

	for _, name := range rootNames {
		if p := filepath.Join(dir, name); isFile(fsys, p) {
			found = append(found, p)
		}
	}

	return found
}
