// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navwar/gomirror/pkg/fs"
	"github.com/navwar/gomirror/pkg/lfs"
)

func TestCompare(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	writeTree(t, base, "/source", map[string]string{
		"same.txt":  "same",
		"size.txt":  "short",
		"bytes.txt": "abcd",
		"dir.txt":   "file",
		"new.txt":   "new",
	})
	writeTree(t, base, "/replica", map[string]string{
		"same.txt":      "same",
		"size.txt":      "much longer",
		"bytes.txt":     "abce",
		"dir.txt/x.txt": "x",
	})
	fileSystem := lfs.NewLocalFileSystem(base)

	tests := map[string]fs.Comparison{
		"same.txt":  fs.ComparisonEqual,
		"size.txt":  fs.ComparisonDifferent,
		"bytes.txt": fs.ComparisonDifferent,
		"dir.txt":   fs.ComparisonAbsent,
		"new.txt":   fs.ComparisonAbsent,
	}
	for name, expected := range tests {
		comparison, err := fs.Compare(ctx, &fs.CompareInput{
			Hash:              fs.HashSHA256,
			SourceName:        "/source/" + name,
			SourceFileSystem:  fileSystem,
			ReplicaName:       "/replica/" + name,
			ReplicaFileSystem: fileSystem,
		})
		require.NoError(t, err, name)
		assert.Equal(t, expected, comparison, name)
	}
}

func TestComparisonString(t *testing.T) {
	assert.Equal(t, "absent", fs.ComparisonAbsent.String())
	assert.Equal(t, "equal", fs.ComparisonEqual.String())
	assert.Equal(t, "different", fs.ComparisonDifferent.String())
}
