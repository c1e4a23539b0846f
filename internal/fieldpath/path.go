// internal/fieldpath/path.go
package fieldpath

import (
	"strconv"
	"strings"
)

// Field returns a new path with a named segment appended.
func (p Path) Field(name string) Path {
	return p.with(NewSegment(name))
}

// Index returns a new path addressing element i of the sequence at p.
// When the last segment carries no index yet, the index is attached to it
// so that `layers` becomes `layers[2]` rather than `layers.[2]`.
func (p Path) Index(i int) Path {
	if n := len(p); n > 0 && !p[n-1].HasIndex() {
		out := p.clone(0)
		out[n-1].Index = i
		return out
	}
	return p.with(NewSegmentWithIndex("", i))
}

// Join appends every segment of other to p.
func (p Path) Join(other Path) Path {
	out := p.clone(len(other))
	return append(out, other...)
}

// IsRoot reports whether the path is empty.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// String serializes the path into its canonical string representation.
func (p Path) String() string {
	var sb strings.Builder
	for i, segment := range p {
		if i > 0 && segment.Name != "" {
			sb.WriteRune('.')
		}
		sb.WriteString(segment.Name)
		if segment.HasIndex() {
			sb.WriteRune('[')
			sb.WriteString(strconv.Itoa(segment.Index))
			sb.WriteRune(']')
		}
	}
	return sb.String()
}

// Equal checks for equality between two paths.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Path) with(s Segment) Path {
	out := p.clone(1)
	return append(out, s)
}

func (p Path) clone(extra int) Path {
	out := make(Path, len(p), len(p)+extra)
	copy(out, p)
	return out
}
