package ast

import (
	"strings"

	"github.com/cybersorcerer/kspcfg/internal/span"
)

// Node is a brace-delimited node (spec.md §3). TopLevel is set by the
// parser and reflects whether this node's parent is the Document.
type Node struct {
	Path                 *span.Ranged[Path]
	Operator             *span.Ranged[Operator]
	Identifier           span.Ranged[string]
	Name                 *span.Ranged[string]
	Has                  *span.Ranged[HasBlock]
	Needs                *span.Ranged[NeedsBlock]
	Pass                 *RangedPass
	Index                *span.Ranged[Index]
	IDComment            *Comment
	CommentsAfterNewline []Comment
	Block                []Item
	TrailingComment      *Comment
	TopLevel             bool
	Span                 span.Range
}

func (*Node) item()               {}
func (n *Node) Range() span.Range { return n.Span }

// HeadRange unions the ranges of the name, HAS, NEEDS, index and pass
// parts of the node head (not the path, operator or identifier); used
// by the linter's "no-op-but-MM" rule (spec.md §4.6).
func (n *Node) HeadRange() (span.Range, bool) {
	var ranges []span.Range
	if n.Name != nil {
		ranges = append(ranges, n.Name.Range)
	}
	if n.Has != nil {
		ranges = append(ranges, n.Has.Range)
	}
	if n.Needs != nil {
		ranges = append(ranges, n.Needs.Range)
	}
	if n.Index != nil {
		ranges = append(ranges, n.Index.Range)
	}
	if n.Pass != nil {
		ranges = append(ranges, n.Pass.Range)
	}
	return span.UnionAll(ranges)
}

// HeadText renders the node head — path prefix through index — in
// source order, the text printer.Print and the collapse-length check
// both need and that otherwise neither could derive without duplicating
// the grammar order from parser.parseNode (spec.md §4.5).
func (n *Node) HeadText() string {
	var b strings.Builder
	if n.Path != nil {
		b.WriteByte('#')
		b.WriteString(n.Path.Value.String())
	}
	if n.Operator != nil {
		b.WriteString(n.Operator.Value.String())
	}
	b.WriteString(n.Identifier.Value)
	if n.Name != nil {
		b.WriteByte('(')
		b.WriteString(n.Name.Value)
		b.WriteByte(')')
	}
	if n.Has != nil {
		b.WriteString(n.Has.Value.String())
	}
	if n.Needs != nil {
		b.WriteString(n.Needs.Value.String())
	}
	if n.Pass != nil {
		b.WriteString(n.Pass.Value.String())
	}
	if n.Index != nil {
		b.WriteString(n.Index.Value.String())
	}
	return b.String()
}
