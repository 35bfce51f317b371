// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"context"
	"os"
)

// FileSystem is the set of primitives the synchronizer needs from a source or replica tree.
type FileSystem interface {
	IsNotExist(err error) bool
	Join(name ...string) string
	// Lstat is Stat without following a final symbolic link.
	Lstat(ctx context.Context, name string) (FileInfo, error)
	Mkdir(ctx context.Context, name string, mode os.FileMode) error
	MkdirAll(ctx context.Context, name string, mode os.FileMode) error
	Open(ctx context.Context, name string) (File, error)
	OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (File, error)
	ReadDir(ctx context.Context, name string) ([]DirectoryEntry, error)
	Remove(ctx context.Context, name string) error
	RemoveAll(ctx context.Context, name string) error
	Stat(ctx context.Context, name string) (FileInfo, error)
}
