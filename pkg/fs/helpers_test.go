// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs_test

import (
	"errors"
	"os"
	"path"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/navwar/gomirror/pkg/fs"
	"github.com/navwar/gomirror/pkg/lfs"
)

type recordingLogger struct {
	lines []string
	err   error
}

func (l *recordingLogger) Log(msg string, fields ...map[string]interface{}) error {
	if l.err != nil {
		return l.err
	}
	l.lines = append(l.lines, msg)
	return nil
}

var errDiskFull = errors.New("disk full")

// writeTree creates the files in the tree, keyed by path, under base.
// A path ending in "/" is created as an empty directory.
func writeTree(t *testing.T, base afero.Fs, root string, tree map[string]string) {
	t.Helper()
	require.NoError(t, base.MkdirAll(root, 0755))
	for p, content := range tree {
		if p[len(p)-1] == '/' {
			require.NoError(t, base.MkdirAll(root+"/"+p, 0755))
			continue
		}
		require.NoError(t, base.MkdirAll(path.Dir(root+"/"+p), 0755))
		require.NoError(t, afero.WriteFile(base, root+"/"+p, []byte(content), 0644))
	}
}

// readTree returns the files under root keyed by relative path.
// Directories are keyed with a trailing "/".
func readTree(t *testing.T, base afero.Fs, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := afero.Walk(base, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel := p[len(root)+1:]
		if info.IsDir() {
			tree[rel+"/"] = ""
			return nil
		}
		b, err := afero.ReadFile(base, p)
		if err != nil {
			return err
		}
		tree[rel] = string(b)
		return nil
	})
	require.NoError(t, err)
	return tree
}

func newSyncInput(base afero.Fs, logger fs.Logger) *fs.SyncInput {
	fileSystem := lfs.NewLocalFileSystem(base)
	return &fs.SyncInput{
		Hash:              fs.DefaultHash,
		Logger:            logger,
		Source:            "/source",
		SourceFileSystem:  fileSystem,
		Replica:           "/replica",
		ReplicaFileSystem: fileSystem,
	}
}

func sorted(lines []string) []string {
	out := append([]string{}, lines...)
	sort.Strings(out)
	return out
}
