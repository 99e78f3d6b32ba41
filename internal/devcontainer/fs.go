package devcontainer

import (
	"io/fs"
	"os"
)

// FileSystem abstracts the read-only filesystem queries the resolver needs.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
}

// OSFileSystem implements FileSystem using the real filesystem.
type OSFileSystem struct{}

// Stat returns file info for the given path, following symlinks.
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// ReadDir lists a directory sorted by file name.
func (OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// ReadFile reads a whole file.
func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// isDir reports whether name exists and is a directory.
func isDir(fsys FileSystem, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}

// isFile reports whether name exists and is not a directory.
func isFile(fsys FileSystem, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && !info.IsDir()
}

// exists reports whether name exists at all.
func exists(fsys FileSystem, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}
