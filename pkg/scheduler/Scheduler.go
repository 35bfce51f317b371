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
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"

	"github.com/navwar/gomirror/pkg/fs"
)

// Scheduler runs a synchronization pass, waits for the interval, and repeats
// until its context is cancelled.
type Scheduler struct {
	config *Config
	mutex  sync.RWMutex
	passes int
	state  State
}

func New(config *Config) (*Scheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c := *config
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return &Scheduler{config: &c, state: StateIdle}, nil
}

func (s *Scheduler) State() State {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state
}

func (s *Scheduler) Passes() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.passes
}

func (s *Scheduler) setState(state State) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.state = state
}

func (s *Scheduler) log(msg string, fields ...map[string]interface{}) error {
	if err := s.config.Logger.Log(msg, fields...); err != nil {
		return &fs.LogError{Message: msg, Err: err}
	}
	return nil
}

// Pass runs one synchronization pass. Synchronization failures are logged
// and swallowed. Only a failure to write to the log is returned.
func (s *Scheduler) Pass(ctx context.Context) (*fs.SyncOutput, error) {
	defer func() {
		s.mutex.Lock()
		s.passes++
		s.mutex.Unlock()
	}()

	if s.config.Debug {
		if err := s.log("Synchronizing", map[string]interface{}{
			"source":  s.config.Source,
			"replica": s.config.Replica,
		}); err != nil {
			return nil, err
		}
	}

	// a pass is never interrupted once started
	output, err := fs.Sync(context.WithoutCancel(ctx), &fs.SyncInput{
		Hash:              s.config.Hash,
		Logger:            s.config.Logger,
		Source:            s.config.Source,
		SourceFileSystem:  s.config.SourceFileSystem,
		Replica:           s.config.Replica,
		ReplicaFileSystem: s.config.ReplicaFileSystem,
	})
	if err != nil {
		var logError *fs.LogError
		if errors.As(err, &logError) {
			return output, err
		}
		if errors.Is(err, fs.ErrSourceNotExist) {
			return output, s.log(fmt.Sprintf(fs.MessageSourceNotExist, s.config.Source))
		}
		return output, s.log(fmt.Sprintf(fs.MessageSynchronizationError, err.Error()))
	}

	if s.config.Debug {
		fields := output.Fields()
		fields["bytes_copied"] = humanize.Bytes(uint64(output.BytesCopied))
		if err := s.log("Done synchronizing", fields); err != nil {
			return output, err
		}
	}

	return output, nil
}

// Run blocks until ctx is cancelled or a log write fails.
// The interval is measured from the end of each pass.
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.setState(StateStopped)

	for {
		if ctx.Err() != nil {
			return nil
		}

		s.setState(StateSyncing)
		if _, err := s.Pass(ctx); err != nil {
			return err
		}

		s.setState(StateWaiting)
		timer := s.config.Clock.NewTimer(s.config.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.Chan():
		}
	}
}
