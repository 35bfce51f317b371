// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/navwar/gomirror/pkg/fs"
)

// Config is read once by New and must not be changed afterwards.
type Config struct {
	Clock             clockwork.Clock
	Debug             bool
	Hash              fs.HashType
	Interval          time.Duration
	Logger            fs.Logger
	Replica           string
	ReplicaFileSystem fs.FileSystem
	Source            string
	SourceFileSystem  fs.FileSystem
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Source) == 0 {
		return errors.New("source is missing")
	}
	if len(c.Replica) == 0 {
		return errors.New("replica is missing")
	}
	if c.SourceFileSystem == nil {
		return errors.New("source file system is missing")
	}
	if c.ReplicaFileSystem == nil {
		return errors.New("replica file system is missing")
	}
	if c.Logger == nil {
		return errors.New("logger is missing")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, found %s", c.Interval)
	}
	if _, err := c.Hash.New(); err != nil {
		return err
	}
	return nil
}
