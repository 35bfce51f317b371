// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package ts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseLocation returns the time zone for the given name.
// Accepts "Local", "UTC", an IANA name such as "Europe/Lisbon",
// or a whole-hour offset from UTC such as "-5", "+2", or "UTC+2".
func ParseLocation(location string) (*time.Location, error) {
	if location == "" {
		return nil, errors.New("cannot parse location from empty string")
	}
	switch location {
	case "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	offset := strings.TrimPrefix(location, "UTC")
	if hours, err := strconv.Atoi(offset); err == nil {
		if hours < -12 || hours > 14 {
			return nil, fmt.Errorf("offset %q is out of range", location)
		}
		name := "UTC" + offset
		if !strings.HasPrefix(offset, "-") && !strings.HasPrefix(offset, "+") {
			name = "UTC+" + offset
		}
		return time.FixedZone(name, hours*60*60), nil
	}
	loc, err := time.LoadLocation(location)
	if err != nil {
		return nil, fmt.Errorf("error loading location %q: %w", location, err)
	}
	return loc, nil
}
