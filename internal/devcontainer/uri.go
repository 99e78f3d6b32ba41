// uri.go builds the vscode-remote URIs understood by the Dev Containers
// extension.
//
// The authority part of the URI is the hex encoding of a container ID. For
// the default configuration location the ID is just the host path of the
// project, which matches what the devcontainer CLI produces. For any other
// configuration file the ID is a compact descriptor naming the file. The
// extension is strict about that descriptor: keys must appear in exactly
// this order and without whitespace.
package devcontainer

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"path"
	"path/filepath"
	"strings"
)

const remoteScheme = "vscode-remote://dev-container+"

// ContainerID returns the container identifier for a project root and the
// configuration file chosen for it.
func ContainerID(root, configPath, dockerContext string) string {
	if isDefaultConfig(root, configPath) {
		return root
	}

	var b strings.Builder
	b.WriteString(`{"hostPath":`)
	b.WriteString(quoteJSON(root))
	b.WriteString(`,"localDocker":false,"settings":{"context":`)
	b.WriteString(quoteJSON(dockerContext))
	b.WriteString(`},"configFile":{"$mid":1,"fsPath":`)
	b.WriteString(quoteJSON(configPath))
	b.WriteString(`,"external":`)
	b.WriteString(quoteJSON("file://" + filepath.ToSlash(configPath)))
	b.WriteString(`,"path":`)
	b.WriteString(quoteJSON(filepath.ToSlash(configPath)))
	b.WriteString(`,"scheme":"file"}}`)
	return b.String()
}

// isDefaultConfig reports whether configPath is one of the locations the
// extension finds on its own from the project root.
func isDefaultConfig(root, configPath string) bool {
	return configPath == filepath.Join(root, DevContainerDir, "devcontainer.json") ||
		configPath == filepath.Join(root, ".devcontainer.json")
}

// quoteJSON renders s as a JSON string literal without HTML escaping.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// RemoteURI returns the vscode-remote URI that opens target inside the
// container, where target lies under root and root is mounted at folder.
func RemoteURI(containerID, folder, root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." {
		rel = ""
	}
	return remoteScheme + hex.EncodeToString([]byte(containerID)) + path.Join(folder, filepath.ToSlash(rel))
}

// URIFlag wraps a remote URI in the editor flag for a folder or a file.
func URIFlag(uri string, isDir bool) string {
	if isDir {
		return "--folder-uri=" + uri
	}
	return "--file-uri=" + uri
}
