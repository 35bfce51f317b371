// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"bytes"
	"context"
	"fmt"
)

// Compare reports whether the replica file is absent, equal to, or different from the source file.
// Equality is decided by comparing full content digests.
// Files of different sizes are reported as different without being read.
func Compare(ctx context.Context, input *CompareInput) (Comparison, error) {
	replicaFileInfo, err := input.ReplicaFileSystem.Lstat(ctx, input.ReplicaName)
	if err != nil {
		if input.ReplicaFileSystem.IsNotExist(err) {
			return ComparisonAbsent, nil
		}
		return 0, fmt.Errorf("error stating replica %q: %w", input.ReplicaName, err)
	}

	// a directory or link in place of the file does not count as a copy
	if !replicaFileInfo.Mode().IsRegular() {
		return ComparisonAbsent, nil
	}

	sourceFileInfo, err := input.SourceFileSystem.Stat(ctx, input.SourceName)
	if err != nil {
		return 0, fmt.Errorf("error stating source %q: %w", input.SourceName, err)
	}

	if sourceFileInfo.Size() != replicaFileInfo.Size() {
		return ComparisonDifferent, nil
	}

	sourceDigest, err := Digest(ctx, input.SourceFileSystem, input.SourceName, input.Hash)
	if err != nil {
		return 0, fmt.Errorf("error computing digest of source: %w", err)
	}

	replicaDigest, err := Digest(ctx, input.ReplicaFileSystem, input.ReplicaName, input.Hash)
	if err != nil {
		return 0, fmt.Errorf("error computing digest of replica: %w", err)
	}

	if bytes.Equal(sourceDigest, replicaDigest) {
		return ComparisonEqual, nil
	}

	return ComparisonDifferent, nil
}
