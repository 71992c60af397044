package lexer

import (
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/span"
)

// Expect runs parse and, if it fails, reports a diagnostic at the
// scanner's current position without consuming anything or aborting
// the caller — the ambient-sink error-tolerance contract (spec.md §5).
// Callers that can still make forward progress after a missing token
// (e.g. a missing closing bracket) should call Expect and keep going
// rather than unwind.
func Expect[T any](s *Scanner, sink *diag.Sink, parse func(*Scanner) (T, bool), message string) (T, bool) {
	start := s.Pos()
	v, ok := parse(s)
	if ok {
		return v, true
	}
	sink.Report(diag.Diagnostic{
		Range:    span.Range{Start: start, End: s.Pos()},
		Severity: diag.SeverityError,
		Message:  message,
		Source:   "parser",
	})
	var zero T
	return zero, false
}

// TakeWhile consumes a maximal run of bytes satisfying pred and returns
// it, along with whether anything was consumed.
func TakeWhile(s *Scanner, pred func(byte) bool) (string, bool) {
	start := s.Offset()
	for {
		b, ok := s.Peek()
		if !ok || !pred(b) {
			break
		}
		s.Advance()
	}
	if s.Offset() == start {
		return "", false
	}
	return s.src[start:s.Offset()], true
}
