// Package parser implements the error-tolerant recursive-descent parser
// described in spec.md §4.3: it consumes source text through a
// lexer.Scanner and produces an *ast.Document plus a list of
// diagnostics, never failing catastrophically. Every combinator that
// cannot make sense of its input reports to the ambient diag.Sink and
// keeps going, rather than unwinding (spec.md §4.2, §9).
package parser

import (
	"strings"

	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/lexer"
	"github.com/cybersorcerer/kspcfg/internal/span"
)

type parser struct {
	s    *lexer.Scanner
	sink *diag.Sink
}

// Parse parses text into a Document. Parsing never fails: malformed
// input is represented with ast.ErrorItem placeholders and recorded in
// the returned diagnostics (spec.md §4.3, §4.7).
func Parse(text string) (*ast.Document, []diag.Diagnostic) {
	p := &parser{s: lexer.New(text), sink: diag.NewSink()}
	items := p.parseBlockItems(true)
	return &ast.Document{Items: items}, p.sink.Drain()
}

// itemKind is the result of a bounded lookahead used to decide what
// kind of item starts at the scanner's current position, without
// committing to a parse (spec.md §4.2 "no backtracking-after-commit":
// classify never consumes anything).
type itemKind int

const (
	itemUnknown itemKind = iota
	itemNode
	itemKeyVal
	itemCloseBrace
)

// classify scans ahead (read-only) to decide whether the upcoming item
// is a Node (an opening '{' appears before any assignment operator), a
// KeyVal (an assignment operator appears first), or an unrecognized
// run. Comments and bracketed content are skipped over since a node's
// head may carry comments before its opening brace, and HAS/NEEDS
// brackets may contain characters that would otherwise look like an
// assignment operator.
func classify(s *lexer.Scanner) itemKind {
	rem := s.Remaining()
	depth := 0
	for i := 0; i < len(rem); {
		switch {
		case rem[i] == '}' && depth == 0:
			return itemCloseBrace
		case rem[i] == '{' && depth == 0:
			return itemNode
		case strings.HasPrefix(rem[i:], "//"):
			for i < len(rem) && rem[i] != '\n' && rem[i] != '\r' {
				i++
			}
		case rem[i] == '[':
			depth++
			i++
		case rem[i] == ']':
			if depth > 0 {
				depth--
			}
			i++
		case depth > 0:
			i++
		default:
			if _, n, ok := ast.MatchAssignmentOperator(rem[i:]); ok && n > 0 {
				return itemKeyVal
			}
			i++
		}
	}
	return itemUnknown
}

// parseBlockItems parses a sequence of items until either EOF
// (topLevel) or an unescaped '}' (node body), which it does not
// consume — the caller (parseNode) consumes the closing brace itself.
func (p *parser) parseBlockItems(topLevel bool) []ast.Item {
	var items []ast.Item
	for {
		start := p.s.Pos()
		p.s.SkipHSpace()
		if p.s.Eof() {
			return items
		}
		if p.s.ConsumeEOL() {
			items = append(items, &ast.BlankLine{Span: p.s.RangeFrom(start)})
			continue
		}
		if b, ok := p.s.Peek(); ok && b == '/' {
			if b2, ok2 := p.s.PeekAt(1); ok2 && b2 == '/' {
				items = append(items, p.parseComment())
				continue
			}
		}
		if b, ok := p.s.Peek(); ok && b == '}' {
			if !topLevel {
				return items
			}
			errStart := p.s.Pos()
			p.s.Advance()
			p.sink.Report(diag.Diagnostic{
				Range:    p.s.RangeFrom(errStart),
				Severity: diag.SeverityError,
				Message:  "unexpected `}`, no matching node to close",
				Source:   "parser",
			})
			items = append(items, &ast.ErrorItem{Span: p.s.RangeFrom(errStart)})
			continue
		}

		switch classify(p.s) {
		case itemNode:
			items = append(items, p.parseNode(topLevel))
		case itemKeyVal:
			kv := p.parseKeyVal()
			if topLevel {
				p.sink.Report(diag.Diagnostic{
					Range:    kv.Span,
					Severity: diag.SeverityError,
					Message:  "assignment found at top level",
					Source:   "parser",
				})
				items = append(items, &ast.ErrorItem{Span: kv.Span})
			} else {
				items = append(items, kv)
			}
		default:
			errStart := p.s.Pos()
			for !p.s.Eof() && !p.s.AtLineEnd() {
				p.s.Advance()
			}
			p.s.ConsumeEOL()
			p.sink.Report(diag.Diagnostic{
				Range:    p.s.RangeFrom(errStart),
				Severity: diag.SeverityError,
				Message:  "unrecognized content",
				Source:   "parser",
			})
			items = append(items, &ast.ErrorItem{Span: p.s.RangeFrom(errStart)})
		}
	}
}

// parseComment consumes a `//...` run to end of line and then the line
// ending that follows it; the returned Text excludes that line ending
// and any trailing horizontal whitespace.
func (p *parser) parseComment() *ast.Comment {
	start := p.s.Pos()
	text, _ := lexer.TakeWhile(p.s, func(b byte) bool { return b != '\n' && b != '\r' })
	p.s.ConsumeEOL()
	return &ast.Comment{Text: strings.TrimRight(text, " \t"), Span: p.s.RangeFrom(start)}
}

func pointRange(pos span.Position) span.Range {
	return span.Range{Start: pos, End: pos}
}

// expectByte consumes the scanner's current byte if it equals want, or
// reports message via the shared lexer.Expect combinator and leaves the
// scanner untouched (spec.md §4.2 "expect combinator").
func (p *parser) expectByte(want byte, message string) bool {
	_, ok := lexer.Expect(p.s, p.sink, func(s *lexer.Scanner) (byte, bool) {
		if b, ok := s.Peek(); ok && b == want {
			s.Advance()
			return b, true
		}
		return 0, false
	}, message)
	return ok
}
