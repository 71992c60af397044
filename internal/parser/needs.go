package parser

import (
	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/lexer"
)

// parseNeedsBlock parses ":NEEDS[" orClause ("," orClause)* "]", each
// orClause being "|"-separated modClauses (spec.md §3, §4.3).
func (p *parser) parseNeedsBlock() ast.NeedsBlock {
	openerPos := p.advancePastOpener(":NEEDS[")
	var block ast.NeedsBlock
	for {
		p.s.SkipHSpace()
		if b, ok := p.s.Peek(); !ok || b == ']' || b == '\n' || b == '\r' || b == '}' {
			break
		}
		block.OrClauses = append(block.OrClauses, p.parseOrClause())
		p.s.SkipHSpace()
		if b, ok := p.s.Peek(); ok && b == ',' {
			p.s.Advance()
			continue
		}
		break
	}
	p.closeBracket(openerPos)
	return block
}

func (p *parser) parseOrClause() ast.OrClause {
	var clause ast.OrClause
	for {
		clause.Clauses = append(clause.Clauses, p.parseModClause())
		if b, ok := p.s.Peek(); ok && b == '|' {
			p.s.Advance()
			continue
		}
		break
	}
	return clause
}

func (p *parser) parseModClause() ast.ModClause {
	negated := false
	if b, ok := p.s.Peek(); ok && b == '!' {
		negated = true
		p.s.Advance()
	}
	name, _ := lexer.TakeWhile(p.s, func(c byte) bool {
		return c != ',' && c != '|' && c != ']' && c != '\n' && c != '\r' && c != '}'
	})
	return ast.ModClause{Negated: negated, Name: name}
}
