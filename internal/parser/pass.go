package parser

import (
	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/lexer"
	"github.com/cybersorcerer/kspcfg/internal/span"
)

// tryParsePass parses one of :FIRST :BEFORE[n] :FOR[n] :AFTER[n]
// :LAST[n] :FINAL (spec.md §4.3). :FINAL is treated as first-class
// alongside the other variants per spec.md §9's redesign note.
func (p *parser) tryParsePass() (*ast.RangedPass, bool) {
	start := p.s.Pos()
	switch {
	case p.s.HasPrefix(":FIRST"):
		p.s.AdvanceN(len(":FIRST"))
		return p.rangedPass(ast.Pass{Kind: ast.PassFirst}, start), true
	case p.s.HasPrefix(":FINAL"):
		p.s.AdvanceN(len(":FINAL"))
		return p.rangedPass(ast.Pass{Kind: ast.PassFinal}, start), true
	case p.s.HasPrefix(":BEFORE["):
		return p.parseNamedPass(":BEFORE[", ast.PassBefore, start), true
	case p.s.HasPrefix(":FOR["):
		return p.parseNamedPass(":FOR[", ast.PassFor, start), true
	case p.s.HasPrefix(":AFTER["):
		return p.parseNamedPass(":AFTER[", ast.PassAfter, start), true
	case p.s.HasPrefix(":LAST["):
		return p.parseNamedPass(":LAST[", ast.PassLast, start), true
	}
	return nil, false
}

func (p *parser) parseNamedPass(prefix string, kind ast.PassKind, start span.Position) *ast.RangedPass {
	openerPos := p.advancePastOpener(prefix)
	name, _ := lexer.TakeWhile(p.s, func(c byte) bool { return c != ']' && c != '\n' && c != '\r' })
	p.closeBracket(openerPos)
	return p.rangedPass(ast.Pass{Kind: kind, Name: name}, start)
}

func (p *parser) rangedPass(pass ast.Pass, start span.Position) *ast.RangedPass {
	r := ast.RangedPass{Value: pass, Range: p.s.RangeFrom(start)}
	return &r
}
