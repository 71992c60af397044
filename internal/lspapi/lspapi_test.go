package lspapi

import (
	"testing"

	"github.com/cybersorcerer/kspcfg/internal/printer"
	"github.com/cybersorcerer/kspcfg/pkg/lsp"
)

func openHandler(t *testing.T, uri, text string) *Handler {
	t.Helper()
	h := New("test", printer.DefaultSettings())
	if err := h.TextDocumentDidOpen(lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: uri, Text: text},
	}); err != nil {
		t.Fatalf("TextDocumentDidOpen: %v", err)
	}
	return h
}

func TestInitializeAdvertisesNarrowCapabilities(t *testing.T) {
	h := New("1.2.3", printer.DefaultSettings())
	result, err := h.Initialize(lsp.InitializeParams{})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	caps := result.Capabilities
	if !caps.DocumentFormattingProvider {
		t.Errorf("expected DocumentFormattingProvider to be true")
	}
	if caps.DiagnosticProvider == nil || caps.DiagnosticProvider.Identifier != "kspcfg" {
		t.Errorf("expected diagnostic provider identifier kspcfg, got %+v", caps.DiagnosticProvider)
	}
}

func TestTextDocumentFormattingReturnsSingleWholeDocumentEdit(t *testing.T) {
	uri := "file:///a.cfg"
	h := openHandler(t, uri, "@PART {\n\tname = foo\n}\n")

	edits, err := h.TextDocumentFormatting(lsp.DocumentFormattingParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
		Options:      lsp.FormattingOptions{TabSize: 2, InsertSpaces: false},
	})
	if err != nil {
		t.Fatalf("TextDocumentFormatting: %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("expected exactly one TextEdit, got %d", len(edits))
	}
	if edits[0].Range.Start.Line != 0 || edits[0].Range.Start.Character != 0 {
		t.Errorf("expected edit to start at 0,0, got %+v", edits[0].Range.Start)
	}
}

func TestTextDocumentFormattingUnknownDocument(t *testing.T) {
	h := New("test", printer.DefaultSettings())
	edits, err := h.TextDocumentFormatting(lsp.DocumentFormattingParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: "file:///missing.cfg"},
	})
	if err != nil {
		t.Fatalf("TextDocumentFormatting: %v", err)
	}
	if edits != nil {
		t.Errorf("expected nil edits for an unopened document, got %v", edits)
	}
}

func TestTextDocumentDiagnosticMergesParseAndLint(t *testing.T) {
	uri := "file:///a.cfg"
	h := openHandler(t, uri, "PART {\n\t@CHILD {\n\t}\n}\n")

	report, err := h.TextDocumentDiagnostic(lsp.DocumentDiagnosticParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatalf("TextDocumentDiagnostic: %v", err)
	}
	if report.Kind != "full" {
		t.Errorf("expected full report kind, got %q", report.Kind)
	}
	if len(report.Items) == 0 {
		t.Fatalf("expected linter diagnostics for a no-op top-level node with an operator child")
	}
}

func TestWorkspaceDidChangeConfigurationUpdatesSettings(t *testing.T) {
	h := New("test", printer.DefaultSettings())
	err := h.WorkspaceDidChangeConfiguration(lsp.DidChangeConfigurationParams{
		Settings: &lsp.WorkspaceSettings{
			Kspcfg: &lsp.KspcfgSettings{Indentation: "spaces:4", Inline: "expand", LineReturn: "lf"},
		},
	})
	if err != nil {
		t.Fatalf("WorkspaceDidChangeConfiguration: %v", err)
	}
	want := printer.Settings{
		Indentation: printer.Indentation{Kind: printer.IndentSpaces, Width: 4},
		Inline:      printer.InlineExpand,
		LineReturn:  printer.LineReturnLF,
	}
	if h.settings != want {
		t.Errorf("got %+v, want %+v", h.settings, want)
	}
}
