package ast

import (
	"strconv"
	"strings"
)

// PathStart is where a Path begins (spec.md §3): top-level (`@`) or the
// root of the current top-level node (`/`). The zero value means
// "no explicit start", i.e. the path is relative to the current node.
type PathStart int

const (
	PathStartNone PathStart = iota
	PathStartTopLevel
	PathStartCurrentTop
)

func (s PathStart) String() string {
	switch s {
	case PathStartTopLevel:
		return "@"
	case PathStartCurrentTop:
		return "/"
	default:
		return ""
	}
}

// PathSegment is either ".." (go up a level) or a node-name segment with
// an optional name filter and index (spec.md §3).
type PathSegment struct {
	DotDot bool
	Node   string
	Name   *string
	Index  *int32
}

func (s PathSegment) String() string {
	if s.DotDot {
		return "../"
	}
	var b strings.Builder
	b.WriteString(s.Node)
	if s.Name != nil {
		b.WriteByte('[')
		b.WriteString(*s.Name)
		b.WriteByte(']')
	}
	if s.Index != nil {
		b.WriteString(strconv.FormatInt(int64(*s.Index), 10))
	}
	b.WriteByte('/')
	return b.String()
}

// Path is an optional start plus an ordered list of segments, always
// ending with a trailing "/" before joining the key or identifier that
// follows it (spec.md §3).
type Path struct {
	Start    PathStart
	Segments []PathSegment
}

func (p Path) String() string {
	var b strings.Builder
	b.WriteString(p.Start.String())
	for _, seg := range p.Segments {
		b.WriteString(seg.String())
	}
	return b.String()
}
