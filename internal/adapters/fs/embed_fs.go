package fs

import (
	"errors"
	iofs "io/fs"
	"path"
	"path/filepath"
	"strings"
)

var ErrReadOnly = errors.New("embedded filesystem is read-only")

// EmbedFileSystem serves components and pages from an fs.FS such as an
// embed.FS. Paths are slash-converted and stripped of a leading "/" or "./".
type EmbedFileSystem struct {
	fs iofs.FS
}

func NewEmbedFileSystem(fsys iofs.FS) *EmbedFileSystem {
	return &EmbedFileSystem{fs: fsys}
}

func (fs *EmbedFileSystem) ReadFile(p string) ([]byte, error) {
	return iofs.ReadFile(fs.fs, embedPath(p))
}

func (fs *EmbedFileSystem) ReadDir(p string) ([]iofs.DirEntry, error) {
	return iofs.ReadDir(fs.fs, embedPath(p))
}

func (fs *EmbedFileSystem) FileExists(p string) bool {
	info, err := iofs.Stat(fs.fs, embedPath(p))
	return err == nil && !info.IsDir()
}

func (fs *EmbedFileSystem) WalkDir(root string, fn iofs.WalkDirFunc) error {
	return iofs.WalkDir(fs.fs, embedPath(root), fn)
}

func (fs *EmbedFileSystem) WriteFile(path string, data []byte, perm iofs.FileMode) error {
	return ErrReadOnly
}

func (fs *EmbedFileSystem) MkdirAll(path string, perm iofs.FileMode) error {
	return ErrReadOnly
}

func embedPath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return "."
	}
	return path.Clean(p)
}
