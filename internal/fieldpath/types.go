// internal/fieldpath/types.go
package fieldpath

// Segment is a single component of a field path, e.g. `name` or `name[index]`.
// A segment with an empty Name and an index renders as a bare `[index]`,
// which is how an element of a nested sequence is addressed.
type Segment struct {
	Name  string
	Index int // -1 indicates no index is present.
}

// NewSegment creates a new path segment without an index.
func NewSegment(name string) Segment {
	return Segment{Name: name, Index: -1}
}

// NewSegmentWithIndex creates a new path segment that includes an index.
func NewSegmentWithIndex(name string, index int) Segment {
	return Segment{Name: name, Index: index}
}

// HasIndex returns true if the path segment has an explicit index.
func (s Segment) HasIndex() bool {
	return s.Index != -1
}

// Path is the structured representation of a field location.
type Path []Segment

// Root is the empty path, pointing at the definition itself.
var Root Path
