// Package fsx provides the filesystem capability set the CSS builder is
// polymorphic over: a real OS-backed tree in build mode, or an in-memory
// tree for embedding grimoire as a library / for tests.
package fsx

import (
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// FileSystem is the capability set config loading and the CSS builder need.
// Both realizations (OS-backed, in-memory) satisfy fs.FS so callers can use
// fs.WalkDir / fs.Glob against either one uniformly.
type FileSystem interface {
	WriteFile(name string, data []byte, perm fs.FileMode) error
	ReadFile(name string) ([]byte, error)
	Remove(name string) error
	Rename(oldName, newName string) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	Stat(name string) (fs.FileInfo, error)
	Exists(path string) bool
	Open(name string) (fs.File, error)
}

// aferoFileSystem adapts an afero.Fs to FileSystem.
type aferoFileSystem struct {
	fs afero.Fs
}

// NewOS returns a FileSystem backed by the real operating system tree.
func NewOS() FileSystem {
	return &aferoFileSystem{fs: afero.NewOsFs()}
}

// NewMem returns a FileSystem backed by an in-memory tree, used for the
// in-memory config flavor and for tests that must not touch disk.
func NewMem() FileSystem {
	return &aferoFileSystem{fs: afero.NewMemMapFs()}
}

func (a *aferoFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if dir := parentDir(name); dir != "" {
		if err := a.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFileSystem) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFileSystem) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFileSystem) Rename(oldName, newName string) error {
	return a.fs.Rename(oldName, newName)
}

func (a *aferoFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}

func (a *aferoFileSystem) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFileSystem) Exists(path string) bool {
	ok, err := afero.Exists(a.fs, path)
	return err == nil && ok
}

func (a *aferoFileSystem) Open(name string) (fs.File, error) {
	return a.fs.Open(name)
}

func parentDir(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' || name[i] == os.PathSeparator {
			return name[:i]
		}
	}
	return ""
}
