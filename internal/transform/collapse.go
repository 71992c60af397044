package transform

import "github.com/cybersorcerer/kspcfg/internal/ast"

// maxCollapsedLineLength is the composed-line budget spec.md §4.4.3
// gives a single-child node before it's forced onto multiple lines.
const maxCollapsedLineLength = 72

// CanCollapse reports whether n is structurally eligible to print as a
// single line (spec.md §4.4.3): exactly one child, that child a
// comment-free KeyVal, no identifier comment on the node itself, and a
// composed "IDENT { left = value }" line no longer than
// maxCollapsedLineLength. Eligibility here is necessary but not
// sufficient — the caller still has to want collapsing (printer.Settings
// .Inline); CanCollapse never consults that, it only answers "could
// this node ever be collapsed".
func CanCollapse(n *ast.Node) bool {
	if len(n.Block) != 1 {
		return false
	}
	kv, ok := n.Block[0].(*ast.KeyVal)
	if !ok {
		return false
	}
	if kv.Comment != nil {
		return false
	}
	if n.IDComment != nil {
		return false
	}
	return len([]rune(composedLine(n, kv))) <= maxCollapsedLineLength
}

func composedLine(n *ast.Node, kv *ast.KeyVal) string {
	left := kv.LeftSide()
	return n.HeadText() + " { " + left + " " + kv.AssignmentOperator.Value.String() + " " + kv.Value.Value + " }"
}
