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

// listing splits a directory listing into regular files and directories.
// Other entries (sockets, devices, dangling links) are ignored on both sides.
type listing struct {
	files       []DirectoryEntry
	directories []DirectoryEntry
	links       []DirectoryEntry
	names       map[string]DirectoryEntry
}

func newListing(directoryEntries []DirectoryEntry) *listing {
	l := &listing{
		files:       []DirectoryEntry{},
		directories: []DirectoryEntry{},
		links:       []DirectoryEntry{},
		names:       map[string]DirectoryEntry{},
	}
	for _, directoryEntry := range directoryEntries {
		switch {
		case directoryEntry.IsDir():
			l.directories = append(l.directories, directoryEntry)
		case directoryEntry.IsRegular():
			l.files = append(l.files, directoryEntry)
		case directoryEntry.IsSymlink():
			l.links = append(l.links, directoryEntry)
		default:
			continue
		}
		l.names[directoryEntry.Name()] = directoryEntry
	}
	return l
}

func (l *listing) hasFile(name string) bool {
	de, ok := l.names[name]
	return ok && de.IsRegular()
}

func (l *listing) hasDirectory(name string) bool {
	de, ok := l.names[name]
	return ok && de.IsDir()
}

func (l *listing) hasLink(name string) bool {
	de, ok := l.names[name]
	return ok && de.IsSymlink()
}

// readSourceDirectory lists the source directory with symbolic links replaced by their targets.
// Links that cannot be resolved are skipped.
func readSourceDirectory(ctx context.Context, input *SyncDirectoryInput) ([]DirectoryEntry, error) {
	directoryEntries, err := input.SourceFileSystem.ReadDir(ctx, input.SourceDirectory)
	if err != nil {
		return nil, fmt.Errorf("error reading source directory %q: %w", input.SourceDirectory, err)
	}
	resolved := make([]DirectoryEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsSymlink() {
			resolved = append(resolved, directoryEntry)
			continue
		}
		fi, err := input.SourceFileSystem.Stat(ctx, input.SourceFileSystem.Join(input.SourceDirectory, directoryEntry.Name()))
		if err != nil {
			continue
		}
		resolved = append(resolved, NewDirectoryEntry(directoryEntry.Name(), fi.Mode(), fi.ModTime(), fi.Size()))
	}
	return resolved, nil
}

// readReplicaDirectory lists the replica directory without following symbolic links.
func readReplicaDirectory(ctx context.Context, input *SyncDirectoryInput) ([]DirectoryEntry, error) {
	if input.ReplicaMissing {
		return []DirectoryEntry{}, nil
	}
	directoryEntries, err := input.ReplicaFileSystem.ReadDir(ctx, input.ReplicaDirectory)
	if err != nil {
		return nil, fmt.Errorf("error reading replica directory %q: %w", input.ReplicaDirectory, err)
	}
	return directoryEntries, nil
}

func removeReplicaFile(ctx context.Context, input *SyncDirectoryInput, name string) error {
	if !input.DryRun {
		if err := input.ReplicaFileSystem.Remove(ctx, name); err != nil {
			return fmt.Errorf("error deleting replica file %q: %w", name, err)
		}
	}
	return logAction(input.Logger, input.DryRun, fmt.Sprintf(MessageDeletedFile, name))
}

func removeReplicaDirectory(ctx context.Context, input *SyncDirectoryInput, name string) error {
	if !input.DryRun {
		if err := input.ReplicaFileSystem.RemoveAll(ctx, name); err != nil {
			return fmt.Errorf("error deleting replica directory %q: %w", name, err)
		}
	}
	return logAction(input.Logger, input.DryRun, fmt.Sprintf(MessageDeletedDirectory, name))
}

// SyncDirectory synchronizes one directory level and recurses into subdirectories.
// The phases run in order: copy new or changed files, delete replica-only files,
// create and recurse into directories, delete replica-only directories.
func SyncDirectory(ctx context.Context, input *SyncDirectoryInput) (*SyncOutput, error) {
	output := &SyncOutput{}

	sourceDirectoryEntries, err := readSourceDirectory(ctx, input)
	if err != nil {
		return output, err
	}

	replicaDirectoryEntries, err := readReplicaDirectory(ctx, input)
	if err != nil {
		return output, err
	}

	source := newListing(sourceDirectoryEntries)
	replica := newListing(replicaDirectoryEntries)

	// copy files that are missing or different
	for _, sourceFile := range source.files {
		sourceName := input.SourceFileSystem.Join(input.SourceDirectory, sourceFile.Name())
		replicaName := input.ReplicaFileSystem.Join(input.ReplicaDirectory, sourceFile.Name())

		if replica.hasDirectory(sourceFile.Name()) {
			if err := removeReplicaDirectory(ctx, input, replicaName); err != nil {
				return output, err
			}
			output.DirectoriesDeleted++
		}

		// a link is replaced rather than written through
		if replica.hasLink(sourceFile.Name()) {
			if err := removeReplicaFile(ctx, input, replicaName); err != nil {
				return output, err
			}
			output.FilesDeleted++
		}

		comparison := ComparisonAbsent
		if !input.ReplicaMissing {
			comparison, err = Compare(ctx, &CompareInput{
				Hash:              input.Hash,
				SourceName:        sourceName,
				SourceFileSystem:  input.SourceFileSystem,
				ReplicaName:       replicaName,
				ReplicaFileSystem: input.ReplicaFileSystem,
			})
			if err != nil {
				return output, fmt.Errorf("error comparing %q to %q: %w", sourceName, replicaName, err)
			}
		}

		if comparison == ComparisonEqual {
			continue
		}

		written := sourceFile.Size()
		if !input.DryRun {
			written, err = Copy(ctx, &CopyInput{
				SourceName:            sourceName,
				SourceFileSystem:      input.SourceFileSystem,
				DestinationName:       replicaName,
				DestinationFileSystem: input.ReplicaFileSystem,
			})
			if err != nil {
				return output, fmt.Errorf("error copying %q to %q: %w", sourceName, replicaName, err)
			}
		}
		output.FilesCopied++
		output.BytesCopied += written

		if err := logAction(input.Logger, input.DryRun, fmt.Sprintf(MessageCopiedFile, sourceName, replicaName)); err != nil {
			return output, err
		}
	}

	// delete files that only exist in the replica
	for _, replicaFile := range replica.files {
		if source.hasFile(replicaFile.Name()) {
			continue
		}
		replicaName := input.ReplicaFileSystem.Join(input.ReplicaDirectory, replicaFile.Name())
		if err := removeReplicaFile(ctx, input, replicaName); err != nil {
			return output, err
		}
		output.FilesDeleted++
	}

	// delete links, except those already replaced by a file
	for _, replicaLink := range replica.links {
		if source.hasFile(replicaLink.Name()) {
			continue
		}
		replicaName := input.ReplicaFileSystem.Join(input.ReplicaDirectory, replicaLink.Name())
		if err := removeReplicaFile(ctx, input, replicaName); err != nil {
			return output, err
		}
		output.FilesDeleted++
	}

	// create directories and synchronize their contents
	for _, sourceDirectory := range source.directories {
		sourceName := input.SourceFileSystem.Join(input.SourceDirectory, sourceDirectory.Name())
		replicaName := input.ReplicaFileSystem.Join(input.ReplicaDirectory, sourceDirectory.Name())

		if !replica.hasDirectory(sourceDirectory.Name()) {
			if !input.DryRun {
				if err := input.ReplicaFileSystem.Mkdir(ctx, replicaName, 0755); err != nil {
					return output, fmt.Errorf("error creating replica directory %q: %w", replicaName, err)
				}
			}
			output.DirectoriesCreated++

			if err := logAction(input.Logger, input.DryRun, fmt.Sprintf(MessageCreatedDirectory, replicaName)); err != nil {
				return output, err
			}
		}

		directoryOutput, err := SyncDirectory(ctx, &SyncDirectoryInput{
			DryRun:            input.DryRun,
			Hash:              input.Hash,
			Logger:            input.Logger,
			SourceDirectory:   sourceName,
			SourceFileSystem:  input.SourceFileSystem,
			ReplicaDirectory:  replicaName,
			ReplicaFileSystem: input.ReplicaFileSystem,
			ReplicaMissing:    input.DryRun && !replica.hasDirectory(sourceDirectory.Name()),
		})
		output.Add(directoryOutput)
		if err != nil {
			return output, err
		}
	}

	// delete directories that only exist in the replica
	for _, replicaDirectory := range replica.directories {
		// directories replaced by a file were removed while copying files
		if source.hasDirectory(replicaDirectory.Name()) || source.hasFile(replicaDirectory.Name()) {
			continue
		}
		replicaName := input.ReplicaFileSystem.Join(input.ReplicaDirectory, replicaDirectory.Name())
		if err := removeReplicaDirectory(ctx, input, replicaName); err != nil {
			return output, err
		}
		output.DirectoriesDeleted++
	}

	return output, nil
}
