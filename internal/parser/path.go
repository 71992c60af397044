package parser

import (
	"strconv"

	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/lexer"
)

// parsePath parses a Path: optional start sigil ('@' top-level, '/'
// current-top), then '/'-separated segments, each either ".." or a
// node-name with optional [name] and index (spec.md §3).
func (p *parser) parsePath() ast.Path {
	var path ast.Path
	if b, ok := p.s.Peek(); ok {
		switch b {
		case '@':
			path.Start = ast.PathStartTopLevel
			p.s.Advance()
		case '/':
			path.Start = ast.PathStartCurrentTop
			p.s.Advance()
		}
	}
	for {
		seg, ok := p.tryParsePathSegment()
		if !ok {
			break
		}
		path.Segments = append(path.Segments, seg)
	}
	return path
}

// tryParsePathSegment attempts one "node[name]index/" or "../" segment.
// A segment is only accepted if it ends with the trailing '/' every
// path segment carries (spec.md §3, mirrored in the reference
// PathSegment's Display impl, which always appends one) — without that
// requirement a plain key immediately following the path (no further
// '/') would be misparsed as one more path segment.
func (p *parser) tryParsePathSegment() (ast.PathSegment, bool) {
	if p.s.HasPrefix("../") {
		p.s.AdvanceN(3)
		return ast.PathSegment{DotDot: true}, true
	}
	save := p.s.Snapshot()
	node, ok := lexer.TakeWhile(p.s, isNodeIdentByte)
	if !ok {
		return ast.PathSegment{}, false
	}
	seg := ast.PathSegment{Node: node}
	if b, ok := p.s.Peek(); ok && b == '[' {
		p.s.Advance()
		name, _ := lexer.TakeWhile(p.s, func(c byte) bool { return c != ']' && c != '\n' && c != '\r' })
		if b2, ok2 := p.s.Peek(); ok2 && b2 == ']' {
			p.s.Advance()
		}
		seg.Name = &name
	}
	if digits, ok := lexer.TakeWhile(p.s, func(c byte) bool { return (c >= '0' && c <= '9') || c == '-' }); ok {
		if n, err := strconv.ParseInt(digits, 10, 32); err == nil {
			i32 := int32(n)
			seg.Index = &i32
		}
	}
	if b, ok := p.s.Peek(); ok && b == '/' {
		p.s.Advance()
		return seg, true
	}
	p.s.Restore(save)
	return ast.PathSegment{}, false
}
