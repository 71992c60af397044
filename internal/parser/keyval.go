package parser

import (
	"strings"

	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/span"
)

// parsedKey is the product of the strict key re-parse (spec.md §4.3
// "KeyVal left-side").
type parsedKey struct {
	path       *span.Ranged[ast.Path]
	operator   *span.Ranged[ast.Operator]
	key        span.Ranged[string]
	needs      *span.Ranged[ast.NeedsBlock]
	index      *span.Ranged[ast.Index]
	arrayIndex *span.Ranged[ast.ArrayIndex]
}

// parseKeyVal implements the two-phase left-side parse from spec.md
// §4.3, ported from the reference key_val.rs: first an opportunistic
// "dumb key" scan up to the next plausible assignment operator (or
// comment, or block delimiter), then a stricter re-parse of exactly
// that span into path/operator/key/needs/index/array_index. If the
// strict parse does not consume the whole dumb key, the dumb key is
// adopted verbatim as the literal key and an Error diagnostic is
// reported against the unparsed suffix.
func (p *parser) parseKeyVal() *ast.KeyVal {
	start := p.s.Pos()
	begin := p.s.Snapshot()
	beginOffset := p.s.Offset()

	for !p.s.Eof() && !p.dumbKeyStop() {
		p.s.Advance()
	}
	afterDumbKey := p.s.Snapshot()
	dumbKeyEndOffset := p.s.Offset()
	dumbKeyText := p.s.Slice(beginOffset, dumbKeyEndOffset)
	dumbKeyEndPos := p.s.Pos()

	p.s.Restore(begin)
	mark := p.sink.Mark()
	parsed, consumedAll := p.parseKeyStrict(dumbKeyEndOffset)

	kv := &ast.KeyVal{}
	if consumedAll {
		kv.Path = parsed.path
		kv.Operator = parsed.operator
		kv.Key = parsed.key
		kv.Needs = parsed.needs
		kv.Index = parsed.index
		kv.ArrayIndex = parsed.arrayIndex
		p.s.Restore(afterDumbKey)
	} else {
		failPos := p.s.Pos()
		leftover := p.s.Slice(p.s.Offset(), dumbKeyEndOffset)
		p.sink.Rollback(mark)
		p.sink.Report(diag.Diagnostic{
			Range:    span.Range{Start: failPos, End: dumbKeyEndPos},
			Severity: diag.SeverityError,
			Message:  "failed to parse key. Unexpected `" + leftover + "`",
			Source:   "parser",
		})
		kv.Key = span.Ranged[string]{Value: dumbKeyText, Range: span.Range{Start: start, End: dumbKeyEndPos}}
		p.s.Restore(afterDumbKey)
	}

	assignStart := p.s.Pos()
	p.s.SkipHSpace()
	op, n, ok := ast.MatchAssignmentOperator(p.s.Remaining())
	if ok {
		p.s.AdvanceN(n)
	} else {
		p.sink.Report(diag.Diagnostic{
			Range:    pointRange(p.s.Pos()),
			Severity: diag.SeverityError,
			Message:  "expected an assignment operator",
			Source:   "parser",
		})
	}
	kv.AssignmentOperator = span.Ranged[ast.AssignmentOperator]{Value: op, Range: p.s.RangeFrom(assignStart)}
	p.s.SkipHSpace()

	kv.Value, kv.Comment = p.parseValueAndComment()
	kv.Span = p.s.RangeFrom(start)
	return kv
}

// dumbKeyStop reports whether the current position is where the dumb
// key scan should stop: optional horizontal whitespace followed by an
// assignment operator, or a comment, or a block/line delimiter.
func (p *parser) dumbKeyStop() bool {
	rem := p.s.Remaining()
	j := 0
	for j < len(rem) && (rem[j] == ' ' || rem[j] == '\t') {
		j++
	}
	if _, n, ok := ast.MatchAssignmentOperator(rem[j:]); ok && n > 0 {
		return true
	}
	if strings.HasPrefix(rem, "//") {
		return true
	}
	if len(rem) > 0 {
		switch rem[0] {
		case '{', '}', '\n', '\r':
			return true
		}
	}
	return false
}

// parseKeyStrict attempts the strict left-side grammar starting at the
// scanner's current position. It reports true only if it consumed
// exactly up to boundary (an absolute byte offset), mirroring the
// reference's `all_consuming` requirement.
func (p *parser) parseKeyStrict(boundary int) (parsedKey, bool) {
	var result parsedKey

	if b, ok := p.s.Peek(); ok && b == '*' {
		p.s.Advance()
		pathStart := p.s.Pos()
		path := p.parsePath()
		result.path = &span.Ranged[ast.Path]{Value: path, Range: p.s.RangeFrom(pathStart)}
	}

	if b, ok := p.s.Peek(); ok {
		if op, ok2 := ast.OperatorFromSigil(b); ok2 {
			opStart := p.s.Pos()
			p.s.Advance()
			result.operator = &span.Ranged[ast.Operator]{Value: op, Range: p.s.RangeFrom(opStart)}
		}
	}

	keyStart := p.s.Pos()
	keyText, _ := p.scanKey()
	result.key = span.Ranged[string]{Value: keyText, Range: p.s.RangeFrom(keyStart)}

	if p.s.HasPrefix(":NEEDS[") {
		needsStart := p.s.Pos()
		nb := p.parseNeedsBlock()
		result.needs = &span.Ranged[ast.NeedsBlock]{Value: nb, Range: p.s.RangeFrom(needsStart)}
	}

	if b, ok := p.s.Peek(); ok && b == ',' {
		idxStart := p.s.Pos()
		idx := p.parseIndex()
		result.index = &span.Ranged[ast.Index]{Value: idx, Range: p.s.RangeFrom(idxStart)}
	}

	if b, ok := p.s.Peek(); ok && b == '[' {
		aiStart := p.s.Pos()
		ai := p.parseArrayIndex()
		result.arrayIndex = &span.Ranged[ast.ArrayIndex]{Value: ai, Range: p.s.RangeFrom(aiStart)}
	}

	return result, p.s.Offset() == boundary
}

// isPlainKeyChar is the unconditionally-legal part of the key character
// class (spec.md §4.3 "Key characters"): alphanumerics plus `#_.?()`.
func isPlainKeyChar(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '#', '_', '.', '?', '(', ')':
		return true
	}
	return false
}

// scanKeyWord consumes one maximal run of key characters, where `-+*`
// are legal only when not immediately followed by `=` or end of input,
// and `/` is legal only when not immediately followed by `/` or `=`
// (spec.md §4.3 "Key characters", disambiguating from operators and
// comments).
func (p *parser) scanKeyWord() bool {
	start := p.s.Offset()
	for {
		b, ok := p.s.Peek()
		if !ok {
			break
		}
		if isPlainKeyChar(b) {
			p.s.Advance()
			continue
		}
		if b == '-' || b == '+' || b == '*' {
			next, hasNext := p.s.PeekAt(1)
			if hasNext && next != '=' {
				p.s.Advance()
				continue
			}
			break
		}
		if b == '/' {
			next, hasNext := p.s.PeekAt(1)
			if !hasNext || (next != '/' && next != '=') {
				p.s.Advance()
				continue
			}
			break
		}
		break
	}
	return p.s.Offset() > start
}

// scanKey consumes whitespace-separated groups of scanKeyWord runs: a
// key may contain embedded single-space-flanked whitespace (spec.md
// §4.3), so long as every group boundary is itself a key-word.
func (p *parser) scanKey() (string, bool) {
	start := p.s.Offset()
	if !p.scanKeyWord() {
		return "", false
	}
	for {
		save := p.s.Snapshot()
		if p.s.SkipHSpace() == 0 {
			break
		}
		if !p.scanKeyWord() {
			p.s.Restore(save)
			break
		}
	}
	return p.s.Slice(start, p.s.Offset()), true
}

// parseValueAndComment parses the value text up to end-of-line, `}`, or
// a trailing comment, stripping trailing horizontal whitespace that
// precedes either terminator (spec.md §4.3 "Value").
func (p *parser) parseValueAndComment() (span.Ranged[string], *ast.Comment) {
	start := p.s.Pos()
	startOffset := p.s.Offset()
	for {
		if p.s.Eof() || p.s.AtLineEnd() || p.s.HasPrefix("//") {
			break
		}
		if b, ok := p.s.Peek(); ok && b == '}' {
			break
		}
		p.s.Advance()
	}
	end := p.s.Pos()
	raw := p.s.Slice(startOffset, p.s.Offset())
	trimmed := strings.TrimRight(raw, " \t")
	end.Column -= len(raw) - len(trimmed)

	var comment *ast.Comment
	if p.s.HasPrefix("//") {
		comment = p.parseComment()
	} else {
		p.s.ConsumeEOL()
	}
	return span.Ranged[string]{Value: trimmed, Range: span.Range{Start: start, End: end}}, comment
}
