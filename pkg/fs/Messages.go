// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

// Message catalog.  Every mutating action produces exactly one of these lines.
const (
	MessageSourceNotExist          = "Source directory does not exist: %s"
	MessageCreatedReplicaDirectory = "Created replica directory: %s"
	MessageCopiedFile              = "Copied file: %s to %s"
	MessageDeletedFile             = "Deleted file: %s"
	MessageCreatedDirectory        = "Created directory: %s"
	MessageDeletedDirectory        = "Deleted directory: %s"
	MessageSynchronizationError    = "Error during synchronization: %s"
)

// DryRunPrefix is prepended to action messages when nothing is modified.
const DryRunPrefix = "[dry-run] "
