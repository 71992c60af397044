// Package linter implements the purely-functional rule checks of
// spec.md §4.6: it never mutates the tree it walks, and a call to Lint
// only ever depends on the tree and the document URI passed in.
package linter

import (
	"strings"

	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/span"
)

// Diagnostic message text is matched verbatim against spec.md §4.6's
// rule table; these constants exist so every call site and test
// agrees on the exact wording.
const (
	msgUnexpectedOperator = "Unexpected_operator"
	msgTopLevelNoOp       = "top_level_no_op"
	msgOrInChildName      = "OR-in-child-name"
	msgEmptyName          = "Empty Name"
	msgNoOpButMM          = "No-op-but-MM"
	msgEmptyHasValue      = "Empty HAS value"
)

// topLevelNoOp tracks the most recent ancestor top-level node that has
// no patch operator (spec.md §4.6): created when a top-level node
// lacking one is entered, carried unchanged to every descendant, and
// consulted by the two Unexpected_operator rules.
type topLevelNoOp struct {
	loc       diag.Location
	triggered bool
}

// Lint walks doc and returns every diagnostic spec.md §4.6's rule table
// produces, sorted in source order. uri is attached to each rule's
// related-information location (it is otherwise opaque to this
// package, mirroring diag.Location).
func Lint(doc *ast.Document, uri string) []diag.Diagnostic {
	sink := diag.NewSink()
	for _, item := range doc.Items {
		lintItem(item, uri, nil, sink)
	}
	return sink.Drain()
}

func lintItem(item ast.Item, uri string, top *topLevelNoOp, sink *diag.Sink) {
	switch it := item.(type) {
	case *ast.Node:
		lintNode(it, uri, top, sink)
	case *ast.KeyVal:
		lintKeyVal(it, top, sink)
	}
}

func lintNode(n *ast.Node, uri string, top *topLevelNoOp, sink *diag.Sink) {
	childState := top
	if n.TopLevel {
		if n.Operator == nil {
			childState = &topLevelNoOp{loc: diag.Location{URI: uri, Range: n.Span}}
		} else {
			childState = nil
		}
	} else if top != nil && n.Operator != nil {
		top.triggered = true
		sink.Report(diag.Diagnostic{
			Range:    n.Operator.Range,
			Severity: diag.SeverityWarning,
			Message:  msgUnexpectedOperator,
			Source:   "linter",
			Related: []diag.Related{{
				Location: top.loc,
				Message:  "top-level ancestor has no patch operator of its own",
			}},
		})
	}

	if n.Name != nil {
		if !n.TopLevel && strings.Contains(n.Name.Value, "|") {
			sink.Report(diag.Diagnostic{
				Range:    n.Name.Range,
				Severity: diag.SeverityWarning,
				Message:  msgOrInChildName,
				Source:   "linter",
			})
		}
		if n.Name.Value == "" {
			sink.Report(diag.Diagnostic{
				Range:    n.Name.Range,
				Severity: diag.SeverityWarning,
				Message:  msgEmptyName,
				Source:   "linter",
			})
		}
	}

	if n.Operator == nil {
		if r, ok := n.HeadRange(); ok {
			sink.Report(diag.Diagnostic{
				Range:    r,
				Severity: diag.SeverityWarning,
				Message:  msgNoOpButMM,
				Source:   "linter",
			})
		}
	}

	if n.Has != nil {
		for _, pred := range n.Has.Value.Predicates {
			if pred.Value.Kind == ast.PredicateKey && pred.Value.Value != nil && pred.Value.Value.Value == "" {
				sink.Report(diag.Diagnostic{
					Range:    pred.Value.Value.Range,
					Severity: diag.SeverityInfo,
					Message:  msgEmptyHasValue,
					Source:   "linter",
				})
			}
		}
	}

	for _, item := range n.Block {
		lintItem(item, uri, childState, sink)
	}

	if n.TopLevel && childState != nil && childState.triggered {
		sink.Report(diag.Diagnostic{
			Range:    childState.loc.Range,
			Severity: diag.SeverityHint,
			Message:  msgTopLevelNoOp,
			Source:   "linter",
		})
	}
}

func lintKeyVal(kv *ast.KeyVal, top *topLevelNoOp, sink *diag.Sink) {
	if top != nil && kv.Operator != nil {
		top.triggered = true
		sink.Report(diag.Diagnostic{
			Range:    kv.Operator.Range,
			Severity: diag.SeverityWarning,
			Message:  msgUnexpectedOperator,
			Source:   "linter",
			Related: []diag.Related{{
				Location: top.loc,
				Message:  "top-level ancestor has no patch operator of its own",
			}},
		})
	}

	if kv.Operator == nil && kv.Path == nil {
		var ranges []span.Range
		if kv.ArrayIndex != nil {
			ranges = append(ranges, kv.ArrayIndex.Range)
		}
		if kv.Index != nil {
			ranges = append(ranges, kv.Index.Range)
		}
		if kv.AssignmentOperator.Value != ast.AssignAssign {
			ranges = append(ranges, kv.AssignmentOperator.Range)
		}
		if r, ok := span.UnionAll(ranges); ok {
			sink.Report(diag.Diagnostic{
				Range:    r,
				Severity: diag.SeverityWarning,
				Message:  msgNoOpButMM,
				Source:   "linter",
			})
		}
	}
}
