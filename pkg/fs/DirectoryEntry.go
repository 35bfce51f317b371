// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"os"
	"time"
)

// DirectoryEntry is a snapshot of one entry returned by ReadDir.
// Listings are materialized before the synchronizer mutates a directory.
type DirectoryEntry struct {
	name    string
	mode    os.FileMode
	modTime time.Time
	size    int64
}

func (de DirectoryEntry) IsDir() bool {
	return de.mode.IsDir()
}

// IsRegular returns true if the entry is a regular file.
func (de DirectoryEntry) IsRegular() bool {
	return de.mode.IsRegular()
}

func (de DirectoryEntry) IsSymlink() bool {
	return de.mode&os.ModeSymlink != 0
}

func (de DirectoryEntry) Mode() os.FileMode {
	return de.mode
}

func (de DirectoryEntry) Name() string {
	return de.name
}

func (de DirectoryEntry) ModTime() time.Time {
	return de.modTime
}

func (de DirectoryEntry) Size() int64 {
	return de.size
}

func (de DirectoryEntry) String() string {
	return de.name
}

func NewDirectoryEntry(name string, mode os.FileMode, modTime time.Time, size int64) DirectoryEntry {
	return DirectoryEntry{
		name:    name,
		mode:    mode,
		modTime: modTime,
		size:    size,
	}
}
