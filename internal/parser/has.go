package parser

import (
	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/lexer"
	"github.com/cybersorcerer/kspcfg/internal/span"
)

// parseHasBlock parses ":HAS[" predicate ("," predicate)* "]" (spec.md
// §4.3). The caller has already confirmed the ":HAS[" prefix.
func (p *parser) parseHasBlock() ast.HasBlock {
	openerPos := p.advancePastOpener(":HAS[")
	var block ast.HasBlock
	for {
		p.s.SkipHSpace()
		if b, ok := p.s.Peek(); !ok || b == ']' || b == '\n' || b == '\r' || b == '}' {
			break
		}
		predStart := p.s.Pos()
		pred := p.parseHasPredicate()
		block.Predicates = append(block.Predicates, span.Ranged[ast.HasPredicate]{Value: pred, Range: p.s.RangeFrom(predStart)})
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

// advancePastOpener consumes prefix, which must end in '[', and returns
// the position of that '[' for later use as a closeBracket Context
// anchor.
func (p *parser) advancePastOpener(prefix string) span.Position {
	p.s.AdvanceN(len(prefix) - 1)
	openerPos := p.s.Pos()
	p.s.Advance()
	return openerPos
}

// closeBracket consumes a ']' or reports a missing-bracket diagnostic
// whose Context points back at openerPos, the position of the '[' that
// opened this bracket (spec.md §4.3 "Bracket matching").
func (p *parser) closeBracket(openerPos span.Position) {
	if b, ok := p.s.Peek(); ok && b == ']' {
		p.s.Advance()
		return
	}
	p.sink.Report(diag.Diagnostic{
		Range:    pointRange(p.s.Pos()),
		Severity: diag.SeverityError,
		Message:  "Expected closing `]`",
		Source:   "parser",
		Context:  &span.Ranged[string]{Value: "Expected due to `[` found here", Range: pointRange(openerPos)},
	})
}

func (p *parser) parseHasPredicate() ast.HasPredicate {
	b, ok := p.s.Peek()
	if !ok {
		return ast.HasPredicate{}
	}
	switch b {
	case '@', '!':
		negated := b == '!'
		p.s.Advance()
		nodeType, _ := lexer.TakeWhile(p.s, isNodeIdentByte)
		pred := ast.HasPredicate{Kind: ast.PredicateNode, Negated: negated, NodeType: nodeType}
		if b2, ok2 := p.s.Peek(); ok2 && b2 == '[' {
			openerPos := p.s.Pos()
			p.s.Advance()
			name, _ := lexer.TakeWhile(p.s, func(c byte) bool { return c != ']' && c != '\n' && c != '\r' && c != ':' })
			p.closeBracket(openerPos)
			pred.Name = &name
		}
		if p.s.HasPrefix(":HAS[") {
			nested := p.parseHasBlock()
			pred.Nested = &nested
		}
		return pred
	case '#', '~':
		negated := b == '~'
		p.s.Advance()
		key, _ := lexer.TakeWhile(p.s, isNodeIdentByte)
		pred := ast.HasPredicate{Kind: ast.PredicateKey, Negated: negated, Key: key}
		if b2, ok2 := p.s.Peek(); ok2 && b2 == '[' {
			openerPos := p.s.Pos()
			p.s.Advance()
			matchType := ast.MatchLiteral
			if b3, ok3 := p.s.Peek(); ok3 {
				switch b3 {
				case '<':
					matchType = ast.MatchLessThan
					p.s.Advance()
				case '>':
					matchType = ast.MatchGreaterThan
					p.s.Advance()
				}
			}
			valStart := p.s.Pos()
			value, _ := lexer.TakeWhile(p.s, func(c byte) bool { return c != ']' && c != '\n' && c != '\r' })
			pred.Value = &span.Ranged[string]{Value: value, Range: p.s.RangeFrom(valStart)}
			p.closeBracket(openerPos)
			pred.MatchType = matchType
		}
		return pred
	default:
		p.sink.Report(diag.Diagnostic{
			Range:    pointRange(p.s.Pos()),
			Severity: diag.SeverityError,
			Message:  "unexpected character in HAS predicate",
			Source:   "parser",
		})
		p.s.Advance()
		return ast.HasPredicate{}
	}
}
