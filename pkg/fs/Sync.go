// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"context"
	"fmt"
)

// Sync makes the replica directory tree match the source directory tree.
// If the source does not exist or is not a directory, returns an error wrapping ErrSourceNotExist
// and leaves the replica untouched.  If the replica does not exist, it is created.
func Sync(ctx context.Context, input *SyncInput) (*SyncOutput, error) {
	output := &SyncOutput{}

	sourceFileInfo, err := input.SourceFileSystem.Stat(ctx, input.Source)
	if err != nil {
		if input.SourceFileSystem.IsNotExist(err) {
			return output, fmt.Errorf("%w: %q", ErrSourceNotExist, input.Source)
		}
		return output, fmt.Errorf("error stating source %q: %w", input.Source, err)
	}

	if !sourceFileInfo.IsDir() {
		return output, fmt.Errorf("%w: %q is not a directory", ErrSourceNotExist, input.Source)
	}

	replicaMissing := false
	replicaFileInfo, err := input.ReplicaFileSystem.Stat(ctx, input.Replica)
	if err != nil {
		if !input.ReplicaFileSystem.IsNotExist(err) {
			return output, fmt.Errorf("error stating replica %q: %w", input.Replica, err)
		}
		if !input.DryRun {
			if err := input.ReplicaFileSystem.MkdirAll(ctx, input.Replica, 0755); err != nil {
				return output, fmt.Errorf("error creating replica directory %q: %w", input.Replica, err)
			}
		}
		replicaMissing = input.DryRun
		output.DirectoriesCreated++
		if err := logAction(input.Logger, input.DryRun, fmt.Sprintf(MessageCreatedReplicaDirectory, input.Replica)); err != nil {
			return output, err
		}
	} else if !replicaFileInfo.IsDir() {
		return output, fmt.Errorf("%w: replica %q", ErrNotDirectory, input.Replica)
	}

	directoryOutput, err := SyncDirectory(ctx, &SyncDirectoryInput{
		DryRun:            input.DryRun,
		Hash:              input.Hash,
		Logger:            input.Logger,
		SourceDirectory:   input.Source,
		SourceFileSystem:  input.SourceFileSystem,
		ReplicaDirectory:  input.Replica,
		ReplicaFileSystem: input.ReplicaFileSystem,
		ReplicaMissing:    replicaMissing,
	})
	output.Add(directoryOutput)
	if err != nil {
		return output, err
	}

	return output, nil
}
