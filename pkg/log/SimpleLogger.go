// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/navwar/gomirror/pkg/ts"
)

// SimpleLogger writes one formatted line per event to a writer.
// Unlike a logrus.Logger, write failures are returned to the caller.
type SimpleLogger struct {
	clock     clockwork.Clock
	formatter logrus.Formatter
	location  *time.Location
	mutex     sync.Mutex
	writer    io.Writer
}

type Option func(l *SimpleLogger)

func WithClock(clock clockwork.Clock) Option {
	return func(l *SimpleLogger) {
		l.clock = clock
	}
}

func WithFormatter(formatter logrus.Formatter) Option {
	return func(l *SimpleLogger) {
		l.formatter = formatter
	}
}

func WithLocation(location *time.Location) Option {
	return func(l *SimpleLogger) {
		l.location = location
	}
}

func (l *SimpleLogger) Log(msg string, fields ...map[string]interface{}) error {
	data := logrus.Fields{}
	for _, f := range fields {
		for k, v := range f {
			data[k] = v
		}
	}

	entry := &logrus.Entry{
		Data:    data,
		Level:   logrus.InfoLevel,
		Message: msg,
		Time:    l.clock.Now().In(l.location),
	}

	b, err := l.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("error formatting log entry: %w", err)
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if _, err := l.writer.Write(b); err != nil {
		return fmt.Errorf("error writing log entry: %w", err)
	}

	return nil
}

func NewSimpleLogger(w io.Writer, options ...Option) *SimpleLogger {
	l := &SimpleLogger{
		clock:     clockwork.NewRealClock(),
		formatter: &LineFormatter{Layout: ts.DefaultLayout},
		location:  time.Local,
		writer:    w,
	}
	for _, option := range options {
		option(l)
	}
	return l
}
