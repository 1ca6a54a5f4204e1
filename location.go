package loci

import "strings"

// Location is an immutable hierarchical path value identifying where in an
// application's structure a request originates (or where a registration is
// available). Locations are structural: two Locations are equal when their
// segment sequences are equal, regardless of how they were constructed.
//
// The zero value is the root location.
type Location struct {
	// Canonical form: "" for the root, otherwise "/seg1/seg2" with no
	// trailing slash and no empty segments.
	path string
}

// Root is the empty root location. Every location is a descendant of Root.
var Root = Location{}

// ParseLocation builds a Location from a slash-separated path string.
// Empty segments are dropped, so "/a//b/" and "a/b" both parse to "/a/b".
func ParseLocation(path string) Location {
	return NewLocation(strings.Split(path, "/")...)
}

// NewLocation builds a Location from individual path segments. Segments
// containing slashes are split further, so NewLocation("a/b", "c") and
// NewLocation("a", "b", "c") are equal.
func NewLocation(segments ...string) Location {
	var b strings.Builder
	for _, seg := range segments {
		for _, part := range strings.Split(seg, "/") {
			if part == "" {
				continue
			}
			b.WriteByte('/')
			b.WriteString(part)
		}
	}
	return Location{path: b.String()}
}

// IsRoot reports whether l is the root location.
func (l Location) IsRoot() bool {
	return l.path == ""
}

// Parent returns the location one level up, dropping the last segment.
// The parent of the root is the root.
func (l Location) Parent() Location {
	i := strings.LastIndexByte(l.path, '/')
	if i <= 0 {
		return Root
	}
	return Location{path: l.path[:i]}
}

// Segments returns the ordered path segments. The root has no segments.
func (l Location) Segments() []string {
	if l.path == "" {
		return nil
	}
	return strings.Split(l.path[1:], "/")
}

// Depth returns the number of segments.
func (l Location) Depth() int {
	return strings.Count(l.path, "/")
}

// Equal reports structural equality. Location is comparable, so == works
// too; Equal exists for call sites that read better with a named predicate.
func (l Location) Equal(other Location) bool {
	return l.path == other.path
}

// IsDescendantOf reports whether l lives at or below other in the
// hierarchy. A location is considered a descendant of itself.
func (l Location) IsDescendantOf(other Location) bool {
	if other.path == "" {
		return true
	}
	return l.path == other.path || strings.HasPrefix(l.path, other.path+"/")
}

// String returns the canonical slash-separated form, "/" for the root.
func (l Location) String() string {
	if l.path == "" {
		return "/"
	}
	return l.path
}
