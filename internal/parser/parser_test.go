package parser

import (
	"testing"

	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/lexer"
)

// parseKeyValLine runs the key-val parser directly on src and returns
// the key-val, its diagnostics, and the input it left unconsumed. Parse
// itself reports an assignment outside any node as an error (see
// TestTopLevelAssignmentIsError), so the key-val tests go through
// parseKeyVal the way TestParseNodeMissingBracket goes through
// parseHasPredicate.
func parseKeyValLine(src string) (*ast.KeyVal, []diag.Diagnostic, string) {
	p := &parser{s: lexer.New(src), sink: diag.NewSink()}
	kv := p.parseKeyVal()
	return kv, p.sink.Drain(), p.s.Remaining()
}

// TestParseKeyValSimple covers spec.md §8 scenario 1: a bare key-val
// line parses with no diagnostics.
func TestParseKeyValSimple(t *testing.T) {
	kv, diags, rest := parseKeyValLine("key = val\r\n")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if rest != "" {
		t.Fatalf("expected the whole line consumed, left %q", rest)
	}
	if kv.Key.Value != "key" {
		t.Errorf("expected key %q, got %q", "key", kv.Key.Value)
	}
	if kv.AssignmentOperator.Value != ast.AssignAssign {
		t.Errorf("expected plain assign, got %v", kv.AssignmentOperator.Value)
	}
	if kv.Value.Value != "val" {
		t.Errorf("expected value %q, got %q", "val", kv.Value.Value)
	}
}

// TestParseKeyValPathAndOperator covers spec.md §8 scenario 2: a
// path-prefixed, operator-carrying key parses with the key reduced to
// just "deleteMe" and no diagnostics.
func TestParseKeyValPathAndOperator(t *testing.T) {
	kv, diags, rest := parseKeyValLine("*@PART[RO-M55]/deleteMe = true\r\n")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if rest != "" {
		t.Fatalf("expected the whole line consumed, left %q", rest)
	}
	if kv.Path == nil {
		t.Fatal("expected a path on the key-val")
	}
	if kv.Path.Value.Start != ast.PathStartTopLevel {
		t.Errorf("expected top-level path start, got %v", kv.Path.Value.Start)
	}
	if len(kv.Path.Value.Segments) != 1 || kv.Path.Value.Segments[0].Node != "PART" {
		t.Fatalf("expected one PART segment, got %+v", kv.Path.Value.Segments)
	}
	if kv.Path.Value.Segments[0].Name == nil || *kv.Path.Value.Segments[0].Name != "RO-M55" {
		t.Fatalf("expected segment name RO-M55, got %+v", kv.Path.Value.Segments[0].Name)
	}
	if kv.Key.Value != "deleteMe" {
		t.Errorf("expected key %q, got %q", "deleteMe", kv.Key.Value)
	}
	if kv.Value.Value != "true" {
		t.Errorf("expected value %q, got %q", "true", kv.Value.Value)
	}
}

// TestParseKeyValArrayIndexError covers spec.md §8 scenario 3: a
// negative array-index ordinal is rejected by the strict re-parse (only
// Index, not ArrayIndex, may be negative), producing exactly one Error
// diagnostic while the key still falls back to the literal dumb-key
// text so nothing is lost.
func TestParseKeyValArrayIndexError(t *testing.T) {
	kv, diags, rest := parseKeyValLine("deleteMe[-1] = true\r\n")
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %v", len(diags), diags)
	}
	d := diags[0]
	if d.Severity != diag.SeverityError {
		t.Errorf("expected Error severity, got %v", d.Severity)
	}
	want := "failed to parse key. Unexpected `-1]`"
	if d.Message != want {
		t.Errorf("expected message %q, got %q", want, d.Message)
	}
	if rest != "" {
		t.Fatalf("expected the whole line consumed, left %q", rest)
	}
	if kv.Key.Value != "deleteMe[-1]" {
		t.Errorf("expected literal fallback key %q, got %q", "deleteMe[-1]", kv.Key.Value)
	}
	if kv.Value.Value != "true" {
		t.Errorf("expected value %q, got %q", "true", kv.Value.Value)
	}
}

// TestParseNodeMissingBracket covers spec.md §8 scenario 4: a HAS
// node-predicate's name bracket with no closing ']' is recovered from
// by implicitly closing it and reporting an Error whose Context points
// back at the '[' that opened it.
func TestParseNodeMissingBracket(t *testing.T) {
	p := &parser{s: lexer.New("@PART[foo\n"), sink: diag.NewSink()}
	pred := p.parseHasPredicate()
	diags := p.sink.Drain()

	if pred.Kind != ast.PredicateNode || pred.NodeType != "PART" {
		t.Fatalf("expected a PART node predicate, got %+v", pred)
	}
	if pred.Name == nil || *pred.Name != "foo" {
		t.Fatalf("expected name %q, got %+v", "foo", pred.Name)
	}

	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %v", len(diags), diags)
	}
	d := diags[0]
	if d.Severity != diag.SeverityError {
		t.Errorf("expected Error severity, got %v", d.Severity)
	}
	if d.Message != "Expected closing `]`" {
		t.Errorf("unexpected message %q", d.Message)
	}
	if d.Context == nil || d.Context.Value != "Expected due to `[` found here" {
		t.Fatalf("expected a context pointing at the opening `[`, got %+v", d.Context)
	}
	// The opener is the 6th byte (1-indexed column 6): "@PART[...".
	if line, col := d.Context.Range.Start.LSPPosition(); line != 0 || col != 5 {
		t.Errorf("expected context at 0-indexed line 0 col 5, got line %d col %d", line, col)
	}
}

// TestParseNodeRoundTripShape covers a plain node with a body item,
// confirming the head, body, and brace handling all land on the
// expected AST shape with no diagnostics.
func TestParseNodeRoundTripShape(t *testing.T) {
	doc, diags := Parse("PART\r\n{\r\n\tkey = val\r\n}\r\n")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if len(doc.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(doc.Items))
	}
	node, ok := doc.Items[0].(*ast.Node)
	if !ok {
		t.Fatalf("expected *ast.Node, got %T", doc.Items[0])
	}
	if node.Identifier.Value != "PART" {
		t.Errorf("expected identifier %q, got %q", "PART", node.Identifier.Value)
	}
	if !node.TopLevel {
		t.Error("expected TopLevel to be true")
	}
	if len(node.Block) != 1 {
		t.Fatalf("expected 1 block item, got %d", len(node.Block))
	}
	kv, ok := node.Block[0].(*ast.KeyVal)
	if !ok {
		t.Fatalf("expected *ast.KeyVal in block, got %T", node.Block[0])
	}
	if kv.Key.Value != "key" || kv.Value.Value != "val" {
		t.Errorf("unexpected key-val %+v", kv)
	}
}

// TestTopLevelAssignmentIsError confirms a bare assignment at the top
// level is flagged rather than silently accepted (spec.md §4.3).
func TestTopLevelAssignmentIsError(t *testing.T) {
	doc, diags := Parse("key = val\r\nPART\r\n{\r\n}\r\n")
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Message != "assignment found at top level" {
		t.Errorf("unexpected message %q", diags[0].Message)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(doc.Items))
	}
	if _, ok := doc.Items[0].(*ast.ErrorItem); !ok {
		t.Fatalf("expected first item to be an ErrorItem, got %T", doc.Items[0])
	}
	if _, ok := doc.Items[1].(*ast.Node); !ok {
		t.Fatalf("expected second item to be a Node, got %T", doc.Items[1])
	}
}
