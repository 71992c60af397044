// Package diag is the wire-neutral diagnostic model shared by the
// parser and the linter (spec.md §4.8, §6).
package diag

import (
	"fmt"
	"sort"

	"github.com/cybersorcerer/kspcfg/internal/span"
)

// Severity mirrors the closed set spec.md names.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	case SeverityInfo:
		return "Info"
	case SeverityHint:
		return "Hint"
	default:
		return "Unknown"
	}
}

// LSPSeverity maps to the 1-4 ints the LSP wire format expects
// (Error=1, Warning=2, Information=3, Hint=4).
func (s Severity) LSPSeverity() int {
	switch s {
	case SeverityError:
		return 1
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 3
	case SeverityHint:
		return 4
	default:
		return 1
	}
}

// Location is a cloned back-reference to a place in a document: a URI
// (opaque to this package) plus a range. Used instead of a pointer so
// the AST stays a tree with no cyclic ownership (spec.md §9).
type Location struct {
	URI   string
	Range span.Range
}

// Related is one related-information entry attached to a Diagnostic.
type Related struct {
	Location Location
	Message  string
}

// Diagnostic is the wire-neutral record described in spec.md §6.
type Diagnostic struct {
	Range    span.Range
	Severity Severity
	Message  string
	Source   string
	Related  []Related
	// Context optionally points back at another span that explains why
	// this diagnostic fired (e.g. the opening '[' of an unterminated
	// bracket), carrying its own message.
	Context *span.Ranged[string]
}

// Sink is the ambient, per-parse error sink described in spec.md §4.2 and
// §9: combinators append to it as they fail, never aborting the parse.
// It is not safe for concurrent use across goroutines; each parse owns
// its own Sink, so two parses running on two threads need no
// coordination (spec.md §5).
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink constructs an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report appends a diagnostic to the sink.
func (s *Sink) Report(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

// Mark returns the number of diagnostics recorded so far, for callers
// that speculatively parse and may need to discard what they reported
// if the speculative attempt is abandoned (the key-val two-phase parse,
// spec.md §4.3, discards the errors its strict re-parse reported when
// it falls back to the literal "dumb key").
func (s *Sink) Mark() int {
	return len(s.diagnostics)
}

// Rollback discards every diagnostic reported since mark.
func (s *Sink) Rollback(mark int) {
	s.diagnostics = s.diagnostics[:mark]
}

// Errorf is a convenience for the common case of a plain message with a
// range and Error severity.
func (s *Sink) Errorf(r span.Range, format string, args ...any) {
	s.Report(Diagnostic{Range: r, Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

// Drain returns the accumulated diagnostics in source order (start
// position), ties broken by insertion order (spec.md §5), and resets
// the sink.
func (s *Sink) Drain() []Diagnostic {
	out := s.diagnostics
	s.diagnostics = nil
	sortDiagnostics(out)
	return out
}

// Peek returns the diagnostics accumulated so far without draining,
// in source order.
func (s *Sink) Peek() []Diagnostic {
	out := make([]Diagnostic, len(s.diagnostics))
	copy(out, s.diagnostics)
	sortDiagnostics(out)
	return out
}

func sortDiagnostics(d []Diagnostic) {
	sort.SliceStable(d, func(i, j int) bool {
		return d[i].Range.Start.Before(d[j].Range.Start)
	})
}

// HasError reports whether any diagnostic in the slice has Error
// severity, used by the public format wrapper to decide whether to bail
// out and return the input unchanged (spec.md §6, §7).
func HasError(diagnostics []Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
