// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"errors"
)

var (
	ErrSourceNotExist = errors.New("source directory does not exist")
	ErrNotDirectory   = errors.New("not a directory")
	ErrUnknownHash    = errors.New("unknown hash type")
)
