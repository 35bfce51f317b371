// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

// SyncOutput counts the actions taken during a pass.
// When a pass fails, the counts cover the actions completed before the failure.
type SyncOutput struct {
	BytesCopied        int64
	DirectoriesCreated int
	DirectoriesDeleted int
	FilesCopied        int
	FilesDeleted       int
}

func (o *SyncOutput) Add(other *SyncOutput) {
	if other == nil {
		return
	}
	o.BytesCopied += other.BytesCopied
	o.DirectoriesCreated += other.DirectoriesCreated
	o.DirectoriesDeleted += other.DirectoriesDeleted
	o.FilesCopied += other.FilesCopied
	o.FilesDeleted += other.FilesDeleted
}

// Changes returns the total number of mutating actions.
func (o *SyncOutput) Changes() int {
	return o.DirectoriesCreated + o.DirectoriesDeleted + o.FilesCopied + o.FilesDeleted
}

func (o *SyncOutput) Fields() map[string]interface{} {
	return map[string]interface{}{
		"bytes_copied":        o.BytesCopied,
		"directories_created": o.DirectoriesCreated,
		"directories_deleted": o.DirectoriesDeleted,
		"files_copied":        o.FilesCopied,
		"files_deleted":       o.FilesDeleted,
	}
}
