// Package printer is the catamorphism spec.md §4.5 describes: it walks
// an already-transformed *ast.Document (see internal/transform) and
// renders it back to text, driven by depth, an indent unit, a line
// ending, and a collapse flag. Printing never inspects the source a
// document was parsed from except to guess its line ending when asked
// to preserve it.
package printer

import (
	"strings"

	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/transform"
)

// IndentKind selects tabs or a fixed number of spaces (spec.md §4.5,
// §6 "--indentation").
type IndentKind int

const (
	IndentTabs IndentKind = iota
	IndentSpaces
)

// Indentation is one level's indent unit.
type Indentation struct {
	Kind  IndentKind
	Width int // meaningful only when Kind == IndentSpaces
}

func (i Indentation) unit() string {
	if i.Kind == IndentSpaces {
		width := i.Width
		if width <= 0 {
			width = 2
		}
		return strings.Repeat(" ", width)
	}
	return "\t"
}

// InlineMode controls single-KeyVal-child node rendering (spec.md
// §4.4.3, §6 "--inline").
type InlineMode int

const (
	// InlineCollapse always collapses a structurally eligible node.
	InlineCollapse InlineMode = iota
	// InlineKeep collapses an eligible node only if it was already
	// written on one line in the source it was parsed from.
	InlineKeep
	// InlineExpand never collapses, regardless of eligibility.
	InlineExpand
)

// LineReturnMode selects the printed line ending (spec.md §4.5
// "Identify").
type LineReturnMode int

const (
	LineReturnLF LineReturnMode = iota
	LineReturnCRLF
	LineReturnIdentify
)

// Settings bundles the printer's three knobs.
type Settings struct {
	Indentation Indentation
	Inline      InlineMode
	LineReturn  LineReturnMode
}

// DefaultSettings matches the reference formatter's defaults: tab
// indentation, collapsing single-assignment nodes, and detecting the
// source's own line ending.
func DefaultSettings() Settings {
	return Settings{
		Indentation: Indentation{Kind: IndentTabs},
		Inline:      InlineCollapse,
		LineReturn:  LineReturnIdentify,
	}
}

func (s Settings) eol(original string) string {
	switch s.LineReturn {
	case LineReturnCRLF:
		return "\r\n"
	case LineReturnLF:
		return "\n"
	default:
		if strings.Contains(original, "\r\n") {
			return "\r\n"
		}
		return "\n"
	}
}

// Print renders doc as text. original is the source text doc was
// parsed from; it is consulted only by LineReturnIdentify (to detect
// CRLF). InlineKeep reads each node's parsed Span instead.
func Print(doc *ast.Document, original string, settings Settings) string {
	var b strings.Builder
	eol := settings.eol(original)
	for _, item := range doc.Items {
		printItem(&b, item, 0, settings, eol)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int, settings Settings) {
	unit := settings.Indentation.unit()
	for i := 0; i < depth; i++ {
		b.WriteString(unit)
	}
}

func printItem(b *strings.Builder, item ast.Item, depth int, settings Settings, eol string) {
	switch it := item.(type) {
	case *ast.BlankLine:
		b.WriteString(eol)
	case *ast.Comment:
		indent(b, depth, settings)
		b.WriteString(it.Text)
		b.WriteString(eol)
	case *ast.KeyVal:
		indent(b, depth, settings)
		writeKeyVal(b, it)
		b.WriteString(eol)
	case *ast.Node:
		printNode(b, it, depth, settings, eol)
	case *ast.ErrorItem:
		// Carries no recoverable text. spec.md §4.7 requires the printer
		// be total on any parser-produced tree; a document containing
		// one is, by construction, not round-trip clean to begin with
		// (see DESIGN.md).
	}
}

func writeKeyVal(b *strings.Builder, kv *ast.KeyVal) {
	b.WriteString(kv.LeftSide())
	if kv.KeyPadding > 0 {
		b.WriteString(strings.Repeat(" ", kv.KeyPadding))
	}
	b.WriteByte(' ')
	b.WriteString(kv.AssignmentOperator.Value.String())
	b.WriteByte(' ')
	b.WriteString(kv.Value.Value)
	if kv.Comment != nil {
		b.WriteByte(' ')
		b.WriteString(kv.Comment.Text)
	}
}

func printNode(b *strings.Builder, n *ast.Node, depth int, settings Settings, eol string) {
	head := n.HeadText()

	if len(n.Block) == 0 {
		indent(b, depth, settings)
		b.WriteString(head)
		b.WriteString(" {}")
		b.WriteString(eol)
		return
	}

	if shouldCollapse(n, settings) {
		kv := n.Block[0].(*ast.KeyVal)
		indent(b, depth, settings)
		b.WriteString(head)
		b.WriteString(" { ")
		writeKeyVal(b, kv)
		b.WriteString(" }")
		b.WriteString(eol)
		return
	}

	indent(b, depth, settings)
	b.WriteString(head)
	if n.IDComment != nil {
		b.WriteByte(' ')
		b.WriteString(n.IDComment.Text)
	}
	b.WriteString(eol)
	for _, c := range n.CommentsAfterNewline {
		indent(b, depth, settings)
		b.WriteString(c.Text)
		b.WriteString(eol)
	}
	indent(b, depth, settings)
	b.WriteString("{")
	b.WriteString(eol)
	for _, item := range n.Block {
		printItem(b, item, depth+1, settings, eol)
	}
	indent(b, depth, settings)
	b.WriteString("}")
	if n.TrailingComment != nil {
		b.WriteByte(' ')
		b.WriteString(n.TrailingComment.Text)
	}
	b.WriteString(eol)
}

func shouldCollapse(n *ast.Node, settings Settings) bool {
	if settings.Inline == InlineExpand {
		return false
	}
	if !transform.CanCollapse(n) {
		return false
	}
	if settings.Inline == InlineCollapse {
		return true
	}
	// InlineKeep: only if the node was already single-line in source. A
	// node's Span ends after the line ending that follows its closing
	// brace, i.e. at column 1 of the next line; that line does not count.
	end := n.Span.End
	if end.Column == 1 && end.Line > n.Span.Start.Line {
		end.Line--
	}
	return n.Span.Start.Line == end.Line
}
