// Package lexer provides the character-level scanning primitives and
// combinators the parser is built from (spec.md §4.2): whitespace
// skipping, line-ending handling, and an error-capturing "expect"
// wrapper that reports a diagnostic without aborting the parse.
//
// Unlike a conventional tokenizer, this is not a token stream: the
// grammar is irregular enough (sigils fuse with identifiers, keys carry
// embedded whitespace, assignment operators are a closed multi-char
// set) that the parser scans characters directly through a Scanner and
// decides what it's looking at as it goes, the same shape as the
// reference nom-based combinator parser (spec.md §4.3, §9).
package lexer

import (
	"strings"

	"github.com/cybersorcerer/kspcfg/internal/span"
)

// Scanner walks a UTF-8 source buffer byte by byte, tracking 1-indexed
// line/column position. It has no ambient error sink of its own —
// combinators built on top of it report to a diag.Sink passed in
// explicitly, matching the "each parse owns its own sink" contract
// (spec.md §5).
type Scanner struct {
	src  string
	pos  int
	line int
	col  int
}

// New creates a Scanner positioned at the start of src.
func New(src string) *Scanner {
	return &Scanner{src: src, pos: 0, line: 1, col: 1}
}

// Pos returns the current 1-indexed line/column position.
func (s *Scanner) Pos() span.Position {
	return span.Position{Line: s.line, Column: s.col}
}

// Offset returns the current byte offset into the source.
func (s *Scanner) Offset() int {
	return s.pos
}

// Eof reports whether the scanner has consumed the whole buffer.
func (s *Scanner) Eof() bool {
	return s.pos >= len(s.src)
}

// Remaining returns the unconsumed suffix of the source.
func (s *Scanner) Remaining() string {
	return s.src[s.pos:]
}

// Peek returns the byte at the current position without consuming it.
func (s *Scanner) Peek() (byte, bool) {
	return s.PeekAt(0)
}

// PeekAt returns the byte n positions ahead of the current one, without
// consuming anything.
func (s *Scanner) PeekAt(n int) (byte, bool) {
	i := s.pos + n
	if i < 0 || i >= len(s.src) {
		return 0, false
	}
	return s.src[i], true
}

// HasPrefix reports whether the remaining input starts with prefix,
// without consuming it.
func (s *Scanner) HasPrefix(prefix string) bool {
	return strings.HasPrefix(s.Remaining(), prefix)
}

// Advance consumes and returns the current byte, updating line/column.
// A '\n' advances the line counter and resets the column; callers that
// want to treat "\r\n" as one logical newline should use ConsumeEOL
// instead of calling Advance twice.
func (s *Scanner) Advance() (byte, bool) {
	ch, ok := s.Peek()
	if !ok {
		return 0, false
	}
	s.pos++
	if ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return ch, true
}

// AdvanceN consumes n bytes unconditionally (used after a literal
// prefix match has already been verified).
func (s *Scanner) AdvanceN(n int) {
	for i := 0; i < n; i++ {
		s.Advance()
	}
}

// ConsumeEOL accepts "\n" or "\r\n" (spec.md §4.2) and reports whether
// it consumed one.
func (s *Scanner) ConsumeEOL() bool {
	if b, ok := s.Peek(); ok && b == '\r' {
		if b2, ok2 := s.PeekAt(1); ok2 && b2 == '\n' {
			s.Advance()
			s.Advance()
			return true
		}
	}
	if b, ok := s.Peek(); ok && b == '\n' {
		s.Advance()
		return true
	}
	return false
}

// SkipHSpace consumes horizontal whitespace (spaces and tabs) and
// returns how many bytes were skipped.
func (s *Scanner) SkipHSpace() int {
	n := 0
	for {
		b, ok := s.Peek()
		if !ok || (b != ' ' && b != '\t') {
			break
		}
		s.Advance()
		n++
	}
	return n
}

// AtLineEnd reports whether the scanner is at EOF or looking at a line
// ending.
func (s *Scanner) AtLineEnd() bool {
	if s.Eof() {
		return true
	}
	b, _ := s.Peek()
	return b == '\n' || b == '\r'
}

// RangeFrom builds a Range from a previously captured start position to
// the scanner's current position.
func (s *Scanner) RangeFrom(start span.Position) span.Range {
	return span.Range{Start: start, End: s.Pos()}
}

// PointRange builds a zero-width Range at the scanner's current
// position.
func (s *Scanner) PointRange() span.Range {
	p := s.Pos()
	return span.Range{Start: p, End: p}
}

// State is an opaque snapshot of a Scanner's position, for the bounded
// backtracking the key-val two-phase parse needs (spec.md §4.3 "dumb
// key... stricter re-parse"): scan ahead speculatively, then rewind and
// commit to whichever interpretation won.
type State struct {
	pos, line, col int
}

// Snapshot captures the current position.
func (s *Scanner) Snapshot() State {
	return State{pos: s.pos, line: s.line, col: s.col}
}

// Restore rewinds the scanner to a previously captured State.
func (s *Scanner) Restore(st State) {
	s.pos, s.line, s.col = st.pos, st.line, st.col
}

// Slice returns the source text between two byte offsets previously
// obtained from Offset.
func (s *Scanner) Slice(start, end int) string {
	return s.src[start:end]
}
