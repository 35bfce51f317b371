// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

// Comparison is the state of a source file relative to its replica counterpart.
type Comparison int

const (
	ComparisonAbsent Comparison = iota + 1
	ComparisonEqual
	ComparisonDifferent
)

func (c Comparison) String() string {
	switch c {
	case ComparisonAbsent:
		return "absent"
	case ComparisonEqual:
		return "equal"
	case ComparisonDifferent:
		return "different"
	}
	return "unknown"
}
