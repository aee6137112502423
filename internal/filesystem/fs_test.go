package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"time"
)

var errInjected = errors.New("injected failure")

// faultyFS fails selected calls, matched by base name
type faultyFS struct {
	OSFileSystem
	lstatErr   map[string]bool
	readDirErr map[string]bool
	openErr    map[string]bool
	zeroTime   map[string]bool
}

func (f faultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if f.readDirErr[filepath.Base(name)] {
		return nil, &fs.PathError{Op: "readdirent", Path: name, Err: errInjected}
	}
	return f.OSFileSystem.ReadDir(name)
}

func (f faultyFS) Lstat(name string) (fs.FileInfo, error) {
	if f.lstatErr[filepath.Base(name)] {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: errInjected}
	}
	info, err := f.OSFileSystem.Lstat(name)
	if err != nil {
		return nil, err
	}
	if f.zeroTime[filepath.Base(name)] {
		return zeroTimeInfo{info}, nil
	}
	return info, nil
}

func (f faultyFS) Open(name string) (io.ReadCloser, error) {
	if f.openErr[filepath.Base(name)] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: errInjected}
	}
	return f.OSFileSystem.Open(name)
}

type zeroTimeInfo struct {
	fs.FileInfo
}

func (zeroTimeInfo) ModTime() time.Time { return time.Time{} }

// failingReader returns data then an error
type failingReader struct {
	data []byte
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errInjected
	}
	r.done = true
	return copy(p, r.data), nil
}
