package parser

import (
	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/lexer"
	"github.com/cybersorcerer/kspcfg/internal/span"
)

// isNodeIdentByte is the node-identifier character class (spec.md §4.3
// "identifier (alphanumeric plus `_.?()`)"). '(' and ')' are
// deliberately excluded from the identifier's own charset here even
// though the prose groups them with it, since '(' is what opens the
// name block that follows the identifier — treating it as an
// identifier character would make the two indistinguishable (see
// DESIGN.md).
func isNodeIdentByte(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '_', b == '.', b == '?':
		return true
	}
	return false
}

// parseNode parses a node head through its closing brace (spec.md §4.3
// "Node head").
func (p *parser) parseNode(topLevel bool) *ast.Node {
	start := p.s.Pos()
	node := &ast.Node{TopLevel: topLevel}

	if b, ok := p.s.Peek(); ok && b == '#' {
		pathStart := p.s.Pos()
		p.s.Advance()
		path := p.parsePath()
		node.Path = &span.Ranged[ast.Path]{Value: path, Range: p.s.RangeFrom(pathStart)}
	}

	if b, ok := p.s.Peek(); ok {
		if op, ok2 := ast.OperatorFromSigil(b); ok2 {
			opStart := p.s.Pos()
			p.s.Advance()
			node.Operator = &span.Ranged[ast.Operator]{Value: op, Range: p.s.RangeFrom(opStart)}
		}
	}

	idStart := p.s.Pos()
	ident, _ := lexer.TakeWhile(p.s, isNodeIdentByte)
	node.Identifier = span.Ranged[string]{Value: ident, Range: p.s.RangeFrom(idStart)}
	if ident == "" {
		p.sink.Report(diag.Diagnostic{
			Range:    pointRange(p.s.Pos()),
			Severity: diag.SeverityError,
			Message:  "expected a node identifier",
			Source:   "parser",
		})
	}

	if b, ok := p.s.Peek(); ok && b == '(' {
		nameStart := p.s.Pos()
		p.s.Advance()
		name, _ := lexer.TakeWhile(p.s, func(c byte) bool { return c != ')' && c != '\n' && c != '\r' })
		if b2, ok2 := p.s.Peek(); ok2 && b2 == ')' {
			p.s.Advance()
		} else {
			p.sink.Report(diag.Diagnostic{
				Range:    p.s.RangeFrom(nameStart),
				Severity: diag.SeverityError,
				Message:  "expected closing `)`",
				Source:   "parser",
				Context:  &span.Ranged[string]{Value: "expected due to `(` found here", Range: pointRange(nameStart)},
			})
		}
		node.Name = &span.Ranged[string]{Value: name, Range: p.s.RangeFrom(nameStart)}
	}

	if p.s.HasPrefix(":HAS[") {
		hasStart := p.s.Pos()
		block := p.parseHasBlock()
		node.Has = &span.Ranged[ast.HasBlock]{Value: block, Range: p.s.RangeFrom(hasStart)}
	}

	if p.s.HasPrefix(":NEEDS[") {
		needsStart := p.s.Pos()
		block := p.parseNeedsBlock()
		node.Needs = &span.Ranged[ast.NeedsBlock]{Value: block, Range: p.s.RangeFrom(needsStart)}
	}

	if pass, ok := p.tryParsePass(); ok {
		node.Pass = pass
	}

	if b, ok := p.s.Peek(); ok && b == ',' {
		idxStart := p.s.Pos()
		idx := p.parseIndex()
		node.Index = &span.Ranged[ast.Index]{Value: idx, Range: p.s.RangeFrom(idxStart)}
	}

	p.parseNodeHeadTrailer(node)

	p.expectByte('{', "expected `{`")

	// A '{' on its own line (the common multi-line style) ends that line
	// immediately; that line ending belongs to the brace, not to the
	// block body, so it must not be mistaken for a genuinely blank first
	// line inside the body (spec.md §3 — only a line with nothing on it
	// at all is a BlankLine item).
	p.s.SkipHSpace()
	p.s.ConsumeEOL()

	node.Block = p.parseBlockItems(false)

	p.s.SkipHSpace()
	p.expectByte('}', "expected `}`")

	p.s.SkipHSpace()
	if b, ok := p.s.Peek(); ok && b == '/' {
		if b2, ok2 := p.s.PeekAt(1); ok2 && b2 == '/' {
			node.TrailingComment = p.parseComment()
		}
	}
	p.s.ConsumeEOL()

	node.Span = p.s.RangeFrom(start)
	return node
}

// parseNodeHeadTrailer consumes whitespace, newlines, and comments
// between the end of the node head and its opening brace, classifying
// each comment as the id-comment (first one, same line as the head) or
// one of comments_after_newline (anything after the first newline),
// per spec.md §3.
func (p *parser) parseNodeHeadTrailer(node *ast.Node) {
	p.s.SkipHSpace()
	newlineSeen := false
	for {
		if b, ok := p.s.Peek(); ok && b == '/' {
			if b2, ok2 := p.s.PeekAt(1); ok2 && b2 == '/' {
				c := p.parseComment()
				if !newlineSeen {
					node.IDComment = c
				} else {
					node.CommentsAfterNewline = append(node.CommentsAfterNewline, *c)
				}
				newlineSeen = true
				p.s.SkipHSpace()
				continue
			}
		}
		if p.s.ConsumeEOL() {
			newlineSeen = true
			p.s.SkipHSpace()
			continue
		}
		break
	}
}
