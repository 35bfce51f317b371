// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

type SyncInput struct {
	DryRun            bool
	Hash              HashType
	Logger            Logger
	Source            string // must be a directory
	SourceFileSystem  FileSystem
	Replica           string // created if it does not exist
	ReplicaFileSystem FileSystem
}
