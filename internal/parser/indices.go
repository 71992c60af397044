package parser

import (
	"strconv"

	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/lexer"
)

// parseIndex parses ",*" or ",n" (spec.md §3). The caller has already
// confirmed the leading ','.
func (p *parser) parseIndex() ast.Index {
	p.s.Advance() // ','
	if b, ok := p.s.Peek(); ok && b == '*' {
		p.s.Advance()
		return ast.Index{Kind: ast.IndexAll}
	}
	start := p.s.Pos()
	digits, _ := lexer.TakeWhile(p.s, isIndexDigit)
	n, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		p.sink.Report(diag.Diagnostic{
			Range:    p.s.RangeFrom(start),
			Severity: diag.SeverityError,
			Message:  "failed to parse index as an integer",
			Source:   "parser",
		})
		return ast.Index{Kind: ast.IndexNumber}
	}
	return ast.Index{Kind: ast.IndexNumber, Number: int32(n)}
}

// parseArrayIndex parses "[All|Number(,separator)?]" (spec.md §3). The
// caller has already confirmed the leading '['.
func (p *parser) parseArrayIndex() ast.ArrayIndex {
	openerPos := p.s.Pos()
	p.s.Advance() // '['
	var ai ast.ArrayIndex
	if b, ok := p.s.Peek(); ok && b == '*' {
		p.s.Advance()
		ai.Kind = ast.IndexAll
	} else {
		start := p.s.Pos()
		// Unlike Index, ArrayIndex's ordinal does not accept a leading
		// '-': "deleteMe[-1] = true" is a parse failure (spec.md §8
		// scenario 3), not a negative array index.
		digits, _ := lexer.TakeWhile(p.s, isUnsignedDigit)
		n, err := strconv.ParseInt(digits, 10, 32)
		if err != nil {
			p.sink.Report(diag.Diagnostic{
				Range:    p.s.RangeFrom(start),
				Severity: diag.SeverityError,
				Message:  "failed to parse array index as an integer",
				Source:   "parser",
			})
		}
		ai.Kind = ast.IndexNumber
		ai.Number = int32(n)
	}
	if b, ok := p.s.Peek(); ok && b == ',' {
		p.s.Advance()
		if b2, ok2 := p.s.Peek(); ok2 && b2 != ']' {
			ai.Separator = rune(b2)
			ai.HasSep = true
			p.s.Advance()
		}
	}
	p.closeBracket(openerPos)
	return ai
}

func isIndexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-'
}

func isUnsignedDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
