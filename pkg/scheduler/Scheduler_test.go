// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package scheduler

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navwar/gomirror/pkg/fs"
	"github.com/navwar/gomirror/pkg/lfs"
)

type recordingLogger struct {
	mutex sync.Mutex
	lines []string
	err   error
}

func (l *recordingLogger) Log(msg string, fields ...map[string]interface{}) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.err != nil {
		return l.err
	}
	l.lines = append(l.lines, msg)
	return nil
}

func (l *recordingLogger) Lines() []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return append([]string{}, l.lines...)
}

// brokenFileSystem fails every attempt to open a file for writing.
type brokenFileSystem struct {
	fs.FileSystem
}

func (b *brokenFileSystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (fs.File, error) {
	return nil, errors.New("input/output error")
}

func newTestConfig(t *testing.T) (*Config, afero.Fs, *recordingLogger) {
	t.Helper()
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/source/sub", 0755))
	require.NoError(t, afero.WriteFile(base, "/source/a.txt", []byte("hello"), 0644))
	require.NoError(t, afero.WriteFile(base, "/source/sub/b.txt", []byte("world"), 0644))
	logger := &recordingLogger{}
	fileSystem := lfs.NewLocalFileSystem(base)
	return &Config{
		Clock:             clockwork.NewFakeClock(),
		Hash:              fs.HashSHA256,
		Interval:          10 * time.Second,
		Logger:            logger,
		Replica:           "/replica",
		ReplicaFileSystem: fileSystem,
		Source:            "/source",
		SourceFileSystem:  fileSystem,
	}, base, logger
}

func TestNew(t *testing.T) {
	config, _, _ := newTestConfig(t)
	s, err := New(config)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, 0, s.Passes())

	config.Clock = nil
	s, err = New(config)
	require.NoError(t, err)
	assert.NotNil(t, s.config.Clock)
}

func TestNewInvalid(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	config, _, _ := newTestConfig(t)
	config.Interval = 0
	_, err = New(config)
	assert.Error(t, err)

	config, _, _ = newTestConfig(t)
	config.Hash = fs.HashType("crc32")
	_, err = New(config)
	assert.ErrorIs(t, err, fs.ErrUnknownHash)

	config, _, _ = newTestConfig(t)
	config.Logger = nil
	_, err = New(config)
	assert.Error(t, err)

	config, _, _ = newTestConfig(t)
	config.SourceFileSystem = nil
	_, err = New(config)
	assert.Error(t, err)
}

func TestPass(t *testing.T) {
	config, base, logger := newTestConfig(t)
	s, err := New(config)
	require.NoError(t, err)

	output, err := s.Pass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, output.FilesCopied)
	assert.Equal(t, int64(10), output.BytesCopied)
	assert.Equal(t, 1, s.Passes())

	assert.Equal(t, []string{
		"Created replica directory: /replica",
		"Copied file: /source/a.txt to /replica/a.txt",
		"Created directory: /replica/sub",
		"Copied file: /source/sub/b.txt to /replica/sub/b.txt",
	}, logger.Lines())

	b, err := afero.ReadFile(base, "/replica/sub/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "world", string(b))
}

func TestPassDebug(t *testing.T) {
	config, _, logger := newTestConfig(t)
	config.Debug = true
	s, err := New(config)
	require.NoError(t, err)

	_, err = s.Pass(context.Background())
	require.NoError(t, err)

	lines := logger.Lines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Synchronizing", lines[0])
	assert.Equal(t, "Done synchronizing", lines[len(lines)-1])
}

func TestPassMissingSource(t *testing.T) {
	config, base, logger := newTestConfig(t)
	config.Source = "/missing"
	s, err := New(config)
	require.NoError(t, err)

	_, err = s.Pass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Source directory does not exist: /missing"}, logger.Lines())

	// the replica is left untouched
	_, err = base.Stat("/replica")
	assert.True(t, os.IsNotExist(err))
}

func TestPassSynchronizationError(t *testing.T) {
	config, _, logger := newTestConfig(t)
	config.ReplicaFileSystem = &brokenFileSystem{FileSystem: config.ReplicaFileSystem}
	s, err := New(config)
	require.NoError(t, err)

	_, err = s.Pass(context.Background())
	require.NoError(t, err)

	lines := logger.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Created replica directory: /replica", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Error during synchronization: "))
	assert.Contains(t, lines[1], "input/output error")
}

func TestRunLogErrorIsFatal(t *testing.T) {
	config, _, logger := newTestConfig(t)
	logger.err = errors.New("disk full")
	s, err := New(config)
	require.NoError(t, err)

	err = s.Run(context.Background())
	require.Error(t, err)
	var logError *fs.LogError
	assert.True(t, errors.As(err, &logError))
	assert.Equal(t, StateStopped, s.State())
	assert.Equal(t, 1, s.Passes())
}

func TestRunCancelledBeforeStart(t *testing.T) {
	config, _, logger := newTestConfig(t)
	s, err := New(config)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.Run(ctx))
	assert.Equal(t, StateStopped, s.State())
	assert.Equal(t, 0, s.Passes())
	assert.Empty(t, logger.Lines())
}

func TestRunCancelDuringWait(t *testing.T) {
	config, _, logger := newTestConfig(t)
	clock := clockwork.NewFakeClock()
	config.Clock = clock
	s, err := New(config)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 1)
	go func() {
		errs <- s.Run(ctx)
	}()

	// wait for the scheduler to start waiting on its timer
	clock.BlockUntil(1)
	assert.Equal(t, StateWaiting, s.State())
	assert.Equal(t, 1, s.Passes())
	lines := logger.Lines()

	cancel()

	select {
	case err := <-errs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}

	assert.Equal(t, StateStopped, s.State())
	assert.Equal(t, 1, s.Passes())
	assert.Equal(t, lines, logger.Lines())
}

func TestRunIntervalElapses(t *testing.T) {
	config, base, logger := newTestConfig(t)
	clock := clockwork.NewFakeClock()
	config.Clock = clock
	s, err := New(config)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 1)
	go func() {
		errs <- s.Run(ctx)
	}()

	clock.BlockUntil(1)
	assert.Equal(t, 1, s.Passes())

	require.NoError(t, base.Remove("/source/a.txt"))

	clock.Advance(config.Interval)
	clock.BlockUntil(1)
	assert.Equal(t, 2, s.Passes())

	cancel()
	require.NoError(t, <-errs)

	lines := logger.Lines()
	assert.Equal(t, "Deleted file: /replica/a.txt", lines[len(lines)-1])

	_, err = base.Stat("/replica/a.txt")
	assert.True(t, os.IsNotExist(err))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "syncing", StateSyncing.String())
	assert.Equal(t, "waiting", StateWaiting.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", State(42).String())
}
