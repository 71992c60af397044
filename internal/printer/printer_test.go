package printer

import (
	"strings"
	"testing"

	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/parser"
	"github.com/cybersorcerer/kspcfg/internal/span"
	"github.com/cybersorcerer/kspcfg/internal/transform"
)

func format(t *testing.T, text string, settings Settings) string {
	t.Helper()
	doc, diags := parser.Parse(text)
	if diag.HasError(diags) {
		t.Fatalf("unexpected parse errors for %q: %v", text, diags)
	}
	sink := diag.NewSink()
	doc.Items = transform.Apply(doc.Items, sink)
	return Print(doc, text, settings)
}

// TestPrintRoundTripSimpleKeyVal covers spec.md §8 scenario 1. Parse
// reports an assignment outside any node as an error, so the key-val is
// parsed inside a node and then printed on its own.
func TestPrintRoundTripSimpleKeyVal(t *testing.T) {
	doc, diags := parser.Parse("PART\n{\nkey = val\n}\n")
	if diag.HasError(diags) {
		t.Fatalf("unexpected parse errors: %v", diags)
	}
	var b strings.Builder
	printItem(&b, doc.Items[0].(*ast.Node).Block[0], 0, Settings{Indentation: Indentation{Kind: IndentTabs}, LineReturn: LineReturnLF}, "\n")
	got := b.String()
	want := "key = val\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestPrintIdempotent covers spec.md §8's round-trip idempotence:
// print(parse(print(parse(x)))) == print(parse(x)).
func TestPrintIdempotent(t *testing.T) {
	src := "PART {\n\tmass = 1\n\tcost = 2\n\tCHILD {\n\t\tdeleteMe = true\n\t}\n}\n"
	settings := Settings{Indentation: Indentation{Kind: IndentTabs}, Inline: InlineExpand, LineReturn: LineReturnLF}
	once := format(t, src, settings)
	twice := format(t, once, settings)
	if once != twice {
		t.Errorf("not idempotent:\nfirst:\n%s\nsecond:\n%s", once, twice)
	}
}

// TestPrintCollapseVsExpand covers spec.md §8 scenario 5: a single
// short key-val child renders on one line under InlineCollapse and
// across four lines under InlineExpand.
func TestPrintCollapseVsExpand(t *testing.T) {
	src := "PART {\n\tdeleteMe = true\n}\n"

	collapsed := format(t, src, Settings{Indentation: Indentation{Kind: IndentTabs}, Inline: InlineCollapse, LineReturn: LineReturnLF})
	if collapsed != "PART { deleteMe = true }\n" {
		t.Errorf("collapsed: got %q", collapsed)
	}

	expanded := format(t, src, Settings{Indentation: Indentation{Kind: IndentTabs}, Inline: InlineExpand, LineReturn: LineReturnLF})
	want := "PART\n{\n\tdeleteMe = true\n}\n"
	if expanded != want {
		t.Errorf("expanded: got %q, want %q", expanded, want)
	}
}

// TestPrintSpacesIndentation covers spec.md §6 "--indentation".
func TestPrintSpacesIndentation(t *testing.T) {
	src := "PART {\n\ta = 1\n\tb = 2\n}\n"
	got := format(t, src, Settings{
		Indentation: Indentation{Kind: IndentSpaces, Width: 4},
		Inline:      InlineExpand,
		LineReturn:  LineReturnLF,
	})
	want := "PART\n{\n    a = 1\n    b = 2\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestPrintAlignmentPadding covers spec.md §4.4.2 end-to-end: similar
// adjacent keys of different lengths line up their assignment operators.
func TestPrintAlignmentPadding(t *testing.T) {
	src := "PART {\n\tengineStage1 = 1\n\tengineStage22 = 2\n}\n"
	got := format(t, src, Settings{Indentation: Indentation{Kind: IndentTabs}, Inline: InlineExpand, LineReturn: LineReturnLF})
	want := "PART\n{\n\tengineStage1  = 1\n\tengineStage22 = 2\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestPrintEmptyNode covers spec.md §4.5's "{}" rendering for a node
// with no body.
func TestPrintEmptyNode(t *testing.T) {
	doc := &ast.Document{Items: []ast.Item{
		&ast.Node{Identifier: span.Ranged[string]{Value: "PART"}},
	}}
	got := Print(doc, "", Settings{Indentation: Indentation{Kind: IndentTabs}, LineReturn: LineReturnLF})
	if got != "PART {}\n" {
		t.Errorf("got %q", got)
	}
}
