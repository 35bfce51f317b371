// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

type SyncDirectoryInput struct {
	DryRun            bool
	Hash              HashType
	Logger            Logger
	SourceDirectory   string
	SourceFileSystem  FileSystem
	ReplicaDirectory  string
	ReplicaFileSystem FileSystem
	// ReplicaMissing is set during a dry run when the replica directory
	// would have been created, so nothing under it is read.
	ReplicaMissing bool
}
