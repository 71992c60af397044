// Package transform implements the two tree-rewriting passes spec.md
// §4.4 runs between parsing and printing: reordering a node's body so
// assignments precede child nodes, and padding adjacent, similarly-named
// assignments into aligned columns. Neither pass touches the document's
// text content outside the padding it inserts (spec.md §8 "alignment
// never reorders or changes characters outside the padding-space run").
package transform

import (
	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/diag"
)

// Apply runs Reorder then Align over items and then recurses into every
// child node's body, so the whole tree is reshaped top-down in one call.
// It is the entry point internal/format (and through it cmd/kspcfgfmt
// and internal/lspapi) drives the formatter through.
func Apply(items []ast.Item, sink *diag.Sink) []ast.Item {
	items = Reorder(items, sink)
	Align(items)
	for _, item := range items {
		if n, ok := item.(*ast.Node); ok {
			n.Block = Apply(n.Block, sink)
		}
	}
	return items
}

// Reorder partitions a node body into its assignment section followed
// by its child-node section, each keeping its own relative order
// (spec.md §4.4.1). Classification is a single backward scan: a
// comment or blank line takes on whichever section the nearest KeyVal
// encountered so far (walking from the end) belongs to; Node items are
// always child-section. A comment or blank line at the very end of a
// body with no KeyVal anywhere in it is reported as an error, since
// reordering has nothing to attach it to.
func Reorder(items []ast.Item, sink *diag.Sink) []ast.Item {
	n := len(items)
	if n == 0 {
		return items
	}

	hasKeyVal := false
	for _, it := range items {
		if _, ok := it.(*ast.KeyVal); ok {
			hasKeyVal = true
			break
		}
	}
	if !hasKeyVal && sink != nil {
		switch last := items[n-1].(type) {
		case *ast.Comment:
			sink.Errorf(last.Span, "Found Comment at end of node")
		case *ast.BlankLine:
			sink.Errorf(last.Span, "Found Empty Line at end of node")
		}
	}

	assignmentSection := make([]bool, n)
	seenKeyVal := false
	for i := n - 1; i >= 0; i-- {
		switch items[i].(type) {
		case *ast.KeyVal:
			assignmentSection[i] = true
			seenKeyVal = true
		case *ast.Node:
			assignmentSection[i] = false
		default:
			assignmentSection[i] = seenKeyVal
		}
	}

	out := make([]ast.Item, 0, n)
	for i, it := range items {
		if assignmentSection[i] {
			out = append(out, it)
		}
	}
	for i, it := range items {
		if !assignmentSection[i] {
			out = append(out, it)
		}
	}
	return out
}
