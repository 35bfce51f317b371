// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"fmt"
)

type Logger interface {
	Log(msg string, fields ...map[string]interface{}) error
}

// LogError is returned when the logger could not record an event.
// It is not recoverable by retrying on the next tick.
type LogError struct {
	Message string
	Err     error
}

func (e *LogError) Error() string {
	return fmt.Sprintf("error writing log message %q: %s", e.Message, e.Err)
}

func (e *LogError) Unwrap() error {
	return e.Err
}

func logAction(logger Logger, dryRun bool, msg string) error {
	if logger == nil {
		return nil
	}
	if dryRun {
		msg = DryRunPrefix + msg
	}
	if err := logger.Log(msg); err != nil {
		return &LogError{Message: msg, Err: err}
	}
	return nil
}
