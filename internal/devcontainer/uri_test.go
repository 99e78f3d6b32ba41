package devcontainer

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeAuthority extracts and hex-decodes the container ID from a remote URI.
func decodeAuthority(t *testing.T, uri string) (string, string) {
	t.Helper()

	rest := strings.TrimPrefix(uri, remoteScheme)
	require.NotEqual(t, uri, rest, "URI should start with %s", remoteScheme)

	slash := strings.Index(rest, "/")
	require.GreaterOrEqual(t, slash, 0, "URI should have a path")

	id, err := hex.DecodeString(rest[:slash])
	require.NoError(t, err)
	return string(id), rest[slash:]
}

// TestContainerID_Default verifies that the default locations map to the bare root path.
func TestContainerID_Default(t *testing.T) {
	assert.Equal(t, "/foo", ContainerID("/foo", "/foo/.devcontainer/devcontainer.json", "desktop-linux"))
	assert.Equal(t, "/foo", ContainerID("/foo", "/foo/.devcontainer.json", "desktop-linux"))
}

// TestContainerID_Descriptor verifies the exact descriptor layout for other files.
func TestContainerID_Descriptor(t *testing.T) {
	id := ContainerID("/foo", "/foo/.devcontainer/bar/devcontainer.json", "desktop-linux")

	expected := `{"hostPath":"/foo","localDocker":false,"settings":{"context":"desktop-linux"},` +
		`"configFile":{"$mid":1,"fsPath":"/foo/.devcontainer/bar/devcontainer.json",` +
		`"external":"file:///foo/.devcontainer/bar/devcontainer.json",` +
		`"path":"/foo/.devcontainer/bar/devcontainer.json","scheme":"file"}}`
	assert.Equal(t, expected, id)

	// The descriptor must still be valid JSON.
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(id), &decoded))
	assert.Equal(t, "/foo", decoded["hostPath"])
}

// TestContainerID_Escaping ensures quotes in paths are escaped and HTML characters are not.
func TestContainerID_Escaping(t *testing.T) {
	id := ContainerID(`/a "b" & c`, `/a "b" & c/.devcontainer/x/devcontainer.json`, "ctx")

	assert.Contains(t, id, `"hostPath":"/a \"b\" & c"`)
	assert.NotContains(t, id, `\u0026`)
}

func TestContainerID_DockerContext(t *testing.T) {
	id := ContainerID("/foo", "/foo/.devcontainer/bar/devcontainer.json", "colima")
	assert.Contains(t, id, `"settings":{"context":"colima"}`)
}

// TestRemoteURI covers the folder/relative-path joining rules.
func TestRemoteURI(t *testing.T) {
	tests := []struct {
		name     string
		folder   string
		root     string
		target   string
		wantPath string
	}{
		{"project root", "/workspaces/app", "/home/u/app", "/home/u/app", "/workspaces/app"},
		{"nested file", "/workspaces/app", "/home/u/app", "/home/u/app/src/main.go", "/workspaces/app/src/main.go"},
		{"custom folder", "/src", "/home/u/app", "/home/u/app/lib", "/src/lib"},
		{"root folder", "/", "/home/u/app", "/home/u/app/lib", "/lib"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri := RemoteURI(tt.root, tt.folder, tt.root, tt.target)

			id, p := decodeAuthority(t, uri)
			assert.Equal(t, tt.root, id)
			assert.Equal(t, tt.wantPath, p)
		})
	}
}

// TestRemoteURI_Hex checks the authority is lower-case hex of the ID bytes.
func TestRemoteURI_Hex(t *testing.T) {
	uri := RemoteURI("\x01\x7f", "/w", "/r", "/r")
	assert.Equal(t, "vscode-remote://dev-container+017f/w", uri)
}

func TestURIFlag(t *testing.T) {
	assert.Equal(t, "--folder-uri=vscode-remote://x", URIFlag("vscode-remote://x", true))
	assert.Equal(t, "--file-uri=vscode-remote://x", URIFlag("vscode-remote://x", false))
}
