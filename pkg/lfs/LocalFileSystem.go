// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package lfs

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/navwar/gomirror/pkg/fs"
)

// LocalFileSystem implements fs.FileSystem on top of an afero filesystem.
// Names are used as given, so absolute paths address the whole underlying filesystem.
type LocalFileSystem struct {
	fs afero.Fs
}

func (lfs *LocalFileSystem) IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func (lfs *LocalFileSystem) Join(name ...string) string {
	return filepath.Join(name...)
}

func (lfs *LocalFileSystem) Mkdir(ctx context.Context, name string, mode os.FileMode) error {
	return lfs.fs.Mkdir(name, mode)
}

func (lfs *LocalFileSystem) MkdirAll(ctx context.Context, name string, mode os.FileMode) error {
	return lfs.fs.MkdirAll(name, mode)
}

func (lfs *LocalFileSystem) Open(ctx context.Context, name string) (fs.File, error) {
	f, err := lfs.fs.Open(name)
	if err != nil {
		return nil, err
	}
	return NewLocalFile(f), nil
}

func (lfs *LocalFileSystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (fs.File, error) {
	f, err := lfs.fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return NewLocalFile(f), nil
}

// ReadDir returns the entries of the directory sorted by name.
// Symbolic links are reported as links and are not followed.
func (lfs *LocalFileSystem) ReadDir(ctx context.Context, name string) ([]fs.DirectoryEntry, error) {
	fileInfos, err := afero.ReadDir(lfs.fs, name)
	if err != nil {
		return nil, err
	}
	directoryEntries := make([]fs.DirectoryEntry, 0, len(fileInfos))
	for _, fi := range fileInfos {
		directoryEntries = append(directoryEntries, fs.NewDirectoryEntry(fi.Name(), fi.Mode(), fi.ModTime(), fi.Size()))
	}
	return directoryEntries, nil
}

// Lstat falls back to Stat when the underlying filesystem has no notion of links.
func (lfs *LocalFileSystem) Lstat(ctx context.Context, name string) (fs.FileInfo, error) {
	if lstater, ok := lfs.fs.(afero.Lstater); ok {
		fi, _, err := lstater.LstatIfPossible(name)
		if err != nil {
			return nil, err
		}
		return fi, nil
	}
	return lfs.Stat(ctx, name)
}

func (lfs *LocalFileSystem) Remove(ctx context.Context, name string) error {
	return lfs.fs.Remove(name)
}

func (lfs *LocalFileSystem) RemoveAll(ctx context.Context, name string) error {
	return lfs.fs.RemoveAll(name)
}

func (lfs *LocalFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	fi, err := lfs.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	return fi, nil
}

func NewLocalFileSystem(base afero.Fs) *LocalFileSystem {
	return &LocalFileSystem{
		fs: base,
	}
}

// NewOsFileSystem returns a writable filesystem backed by the operating system.
func NewOsFileSystem() *LocalFileSystem {
	return NewLocalFileSystem(afero.NewOsFs())
}

// NewReadOnlyOsFileSystem returns a filesystem backed by the operating system that rejects every write.
func NewReadOnlyOsFileSystem() *LocalFileSystem {
	return NewLocalFileSystem(afero.NewReadOnlyFs(afero.NewOsFs()))
}
