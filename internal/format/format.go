// Package format is the public formatting entry point spec.md §6 names
// (`format_text(settings, text) → text`): it wires parser, transform,
// and printer together and applies the one formatting-specific policy
// decision spec.md §7 calls out — bail out and return the input
// unchanged when parsing produced an Error-severity diagnostic, rather
// than printing a best-effort tree. Both cmd/kspcfgfmt and
// internal/lspapi call this instead of each re-wiring the pipeline.
package format

import (
	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/parser"
	"github.com/cybersorcerer/kspcfg/internal/printer"
	"github.com/cybersorcerer/kspcfg/internal/transform"
)

// Text parses text, reorders/aligns/collapses it, and prints it with
// settings. If parsing reported any Error-severity diagnostic, text is
// returned unchanged alongside those diagnostics (spec.md §7's "the
// only time a caller sees text unchanged").
func Text(settings printer.Settings, text string) (string, []diag.Diagnostic) {
	doc, diags := parser.Parse(text)
	if diag.HasError(diags) {
		return text, diags
	}

	doc.Items = transform.Apply(doc.Items, nil)
	return printer.Print(doc, text, settings), diags
}

// Diagnose parses text and returns its AST and diagnostics, without
// formatting — the `--check` CLI mode and the LSP diagnostics pull
// both need just this half of the pipeline (the caller runs
// internal/linter.Lint over the returned document itself).
func Diagnose(text string) (*ast.Document, []diag.Diagnostic) {
	return parser.Parse(text)
}
