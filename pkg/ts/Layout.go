// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package ts

import (
	"sort"
	"time"
)

// Layout is a string that describes the text representation of a time
type Layout string

func (l Layout) Format(t time.Time) string {
	if len(l) == 0 {
		return t.Format(string(DefaultLayout))
	}
	return t.Format(string(l))
}

func (l Layout) String() string {
	return string(l)
}

// DefaultLayout is used for log timestamps when no layout is given.
const DefaultLayout Layout = time.DateTime

// NamedLayouts includes a map of layouts that can be referenced by name
var NamedLayouts = map[string]Layout{
	"Default":     DefaultLayout,
	"DateTime":    time.DateTime,
	"General":     "1/2/2006 3:04:05 PM",
	"Kitchen":     time.Kitchen,
	"RFC3339":     time.RFC3339,
	"RFC3339Nano": time.RFC3339Nano,
	"Stamp":       time.StampMilli,
	"Full":        "Jan 02 15:04:05 2006",
}

// LayoutNames returns the names of the named layouts in sorted order.
func LayoutNames() []string {
	names := make([]string, 0, len(NamedLayouts))
	for name := range NamedLayouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseLayout returns a layout.
// If layout is the name of a known layout, then returns the referenced layout.
// If layout is empty, returns the default layout.
// Otherwise, returns the input layout.
func ParseLayout(layout string) Layout {
	if len(layout) == 0 {
		return DefaultLayout
	}
	if format, ok := NamedLayouts[layout]; ok {
		return format
	}
	return Layout(layout)
}
