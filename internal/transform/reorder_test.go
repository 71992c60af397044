package transform

import (
	"testing"

	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/span"
)

func kv(key string) *ast.KeyVal {
	return &ast.KeyVal{Key: span.Ranged[string]{Value: key}}
}

func node(ident string) *ast.Node {
	return &ast.Node{Identifier: span.Ranged[string]{Value: ident}}
}

// TestReorderAssignmentsFirst covers spec.md §4.4.1: a child node
// appearing before an assignment in source order is moved after it.
func TestReorderAssignmentsFirst(t *testing.T) {
	items := []ast.Item{node("CHILD"), kv("a")}
	out := Reorder(items, nil)
	if _, ok := out[0].(*ast.KeyVal); !ok {
		t.Fatalf("expected assignment first, got %T", out[0])
	}
	if _, ok := out[1].(*ast.Node); !ok {
		t.Fatalf("expected child node second, got %T", out[1])
	}
}

// TestReorderAttachesCommentToPrecedingAssignment covers spec.md §4.4.1:
// a comment between two assignments travels with the assignment before
// it, not with the trailing node section.
func TestReorderAttachesCommentToPrecedingAssignment(t *testing.T) {
	comment := &ast.Comment{Text: "// note"}
	items := []ast.Item{kv("a"), comment, node("CHILD"), kv("b")}
	out := Reorder(items, nil)
	if len(out) != 4 {
		t.Fatalf("expected 4 items, got %d", len(out))
	}
	if out[0] != items[0] || out[1] != comment {
		t.Fatalf("expected assignment then its comment first, got %#v", out[:2])
	}
	if _, ok := out[3].(*ast.Node); !ok {
		t.Fatalf("expected child node last, got %T", out[3])
	}
}

// TestReorderTrailingCommentWithNoAssignmentIsError covers spec.md
// §4.4.1: a body with no KeyVal at all that ends in a comment reports
// the "found at end of node" diagnostic.
func TestReorderTrailingCommentWithNoAssignmentIsError(t *testing.T) {
	sink := diag.NewSink()
	items := []ast.Item{node("CHILD"), &ast.Comment{Text: "// dangling"}}
	Reorder(items, sink)
	diags := sink.Drain()
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Severity != diag.SeverityError {
		t.Errorf("expected Error severity, got %v", diags[0].Severity)
	}
}

// TestReorderPreservesRelativeOrderWithinEachSection covers spec.md
// §4.4.1: assignments keep their own order, as do child nodes.
func TestReorderPreservesRelativeOrderWithinEachSection(t *testing.T) {
	a, b := kv("a"), kv("b")
	x, y := node("X"), node("Y")
	items := []ast.Item{x, a, y, b}
	out := Reorder(items, nil)
	if out[0] != a || out[1] != b {
		t.Fatalf("expected assignments a,b in order, got %#v", out[:2])
	}
	if out[2] != x || out[3] != y {
		t.Fatalf("expected nodes X,Y in order, got %#v", out[2:])
	}
}
