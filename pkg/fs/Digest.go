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
	"io"
)

// Digest streams the file through a hash of the given type and returns the sum.
// The file is closed before Digest returns.
func Digest(ctx context.Context, fileSystem FileSystem, name string, hashType HashType) ([]byte, error) {
	h, err := hashType.New()
	if err != nil {
		return nil, err
	}

	file, err := fileSystem.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error opening file at %q: %w", name, err)
	}
	defer func() {
		_ = file.Close() // read-only, nothing to flush
	}()

	if _, err := io.Copy(h, file); err != nil {
		return nil, fmt.Errorf("error reading file at %q: %w", name, err)
	}

	return h.Sum(nil), nil
}
