package tree

import "strings"

// Segment is one step of an access Path: a property name or the wildcard.
type Segment struct {
	Name     string
	Wildcard bool
}

// Wildcard matches every element of the array at its position.
var Wildcard = Segment{Wildcard: true}

// Field returns a property-name segment.
func Field(name string) Segment { return Segment{Name: name} }

func (s Segment) String() string {
	if s.Wildcard {
		return "*"
	}
	return s.Name
}

// Path locates positions in an instance document relative to its root.
// The zero-length path denotes the root itself. Consumers walk a Path through
// slice views and never modify it, so a Path can be reused freely.
type Path []Segment

// P builds a Path from strings, treating "*" as the wildcard.
func P(parts ...string) Path {
	p := make(Path, len(parts))
	for i, s := range parts {
		if s == "*" {
			p[i] = Wildcard
		} else {
			p[i] = Field(s)
		}
	}
	return p
}

// Strings renders the segments, with "*" for wildcards.
func (p Path) Strings() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.String()
	}
	return out
}

func (p Path) String() string { return strings.Join(p.Strings(), ".") }

// Append returns a new Path extended by segs. The receiver is left untouched
// even when it has spare capacity.
func (p Path) Append(segs ...Segment) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}
