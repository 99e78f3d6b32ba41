// Package devcontainer is cope's path resolver. It decides whether a path
// argument belongs to a project that declares a devcontainer and, if so,
// builds the remote URI that makes the editor open the path inside that
// container.
//
// Recognized configuration locations, checked at every ancestor of the
// target path, nearest ancestor first:
//
//   - <dir>/.devcontainer/devcontainer.json
//   - <dir>/.devcontainer/<sub>/devcontainer.json (one level deep)
//   - <dir>/.devcontainer.json
//
// The file names are configurable. All filesystem access goes through the
// FileSystem interface, so the search can run against an in-memory tree in
// tests. Filesystem errors never escape this package: they degrade to
// "no devcontainer" and the wrapped editor reports missing paths itself.
//
// JSONC (JSON with Comments) is supported via github.com/tidwall/jsonc,
// ensuring compatibility with the common practice of commenting
// devcontainer.json files.
package devcontainer
