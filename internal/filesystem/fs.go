package filesystem

import (
	"io"
	"io/fs"
	"os"
)

// FileSystem is the set of filesystem calls the walker and hasher make
type FileSystem interface {
	ReadDir(name string) ([]fs.DirEntry, error)
	Lstat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
}

// OSFileSystem implements FileSystem on top of the os package
type OSFileSystem struct{}

// ReadDir lists a directory
func (OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// Lstat returns metadata without following symlinks
func (OSFileSystem) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// Open opens a file for reading
func (OSFileSystem) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}
