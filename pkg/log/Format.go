// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package log

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/navwar/gomirror/pkg/ts"
)

const (
	FormatText  = "text"
	FormatJSONL = "jsonl"
)

// NewFormatter returns the formatter for the named log format.
func NewFormatter(format string, layout ts.Layout) (logrus.Formatter, error) {
	switch format {
	case FormatText, "":
		return &LineFormatter{Layout: layout}, nil
	case FormatJSONL:
		return &logrus.JSONFormatter{
			TimestampFormat: layout.String(),
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}
