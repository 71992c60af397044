package transform

import (
	"strings"
	"testing"

	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/span"
)

// TestCanCollapseSingleShortKeyVal covers spec.md §8 scenario 5: a node
// with exactly one short, comment-free KeyVal child is collapse-eligible.
func TestCanCollapseSingleShortKeyVal(t *testing.T) {
	n := &ast.Node{
		Identifier: span.Ranged[string]{Value: "PART"},
		Block: []ast.Item{
			&ast.KeyVal{Key: span.Ranged[string]{Value: "deleteMe"}, Value: span.Ranged[string]{Value: "true"}},
		},
	}
	if !CanCollapse(n) {
		t.Fatal("expected single short key-val node to be collapse-eligible")
	}
}

// TestCanCollapseRejectsMultipleChildren covers spec.md §4.4.3.
func TestCanCollapseRejectsMultipleChildren(t *testing.T) {
	n := &ast.Node{
		Identifier: span.Ranged[string]{Value: "PART"},
		Block: []ast.Item{
			&ast.KeyVal{Key: span.Ranged[string]{Value: "a"}, Value: span.Ranged[string]{Value: "1"}},
			&ast.KeyVal{Key: span.Ranged[string]{Value: "b"}, Value: span.Ranged[string]{Value: "2"}},
		},
	}
	if CanCollapse(n) {
		t.Fatal("expected a two-child node to not be collapse-eligible")
	}
}

// TestCanCollapseRejectsTooLong covers spec.md §4.4.3's 72-character
// composed-line budget.
func TestCanCollapseRejectsTooLong(t *testing.T) {
	n := &ast.Node{
		Identifier: span.Ranged[string]{Value: "PART"},
		Block: []ast.Item{
			&ast.KeyVal{
				Key:   span.Ranged[string]{Value: strings.Repeat("x", 60)},
				Value: span.Ranged[string]{Value: strings.Repeat("y", 40)},
			},
		},
	}
	if CanCollapse(n) {
		t.Fatal("expected an overlong composed line to not be collapse-eligible")
	}
}

// TestCanCollapseRejectsKeyValComment covers spec.md §4.4.3: a trailing
// comment on the single child rules out collapsing.
func TestCanCollapseRejectsKeyValComment(t *testing.T) {
	n := &ast.Node{
		Identifier: span.Ranged[string]{Value: "PART"},
		Block: []ast.Item{
			&ast.KeyVal{
				Key:     span.Ranged[string]{Value: "deleteMe"},
				Value:   span.Ranged[string]{Value: "true"},
				Comment: &ast.Comment{Text: "// note"},
			},
		},
	}
	if CanCollapse(n) {
		t.Fatal("expected a commented key-val to not be collapse-eligible")
	}
}
