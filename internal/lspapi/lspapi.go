// Package lspapi is kspcfg's pkg/lsp.Handler implementation: it keeps
// the open-document text, formats on request, and lints on request.
// It replaces the teacher's internal/handler, which wired up five
// MCS-specific providers (completion, hover, diagnostics, semantic
// tokens, symbols) this dialect has no use for (see DESIGN.md) — only
// the document-store bookkeeping and the Initialize/didOpen/didChange/
// didClose shape survive, generalized from statement text to KSP
// config text.
package lspapi

import (
	"sync"

	"github.com/cybersorcerer/kspcfg/internal/config"
	"github.com/cybersorcerer/kspcfg/internal/diag"
	"github.com/cybersorcerer/kspcfg/internal/format"
	"github.com/cybersorcerer/kspcfg/internal/linter"
	"github.com/cybersorcerer/kspcfg/internal/logger"
	"github.com/cybersorcerer/kspcfg/internal/printer"
	"github.com/cybersorcerer/kspcfg/pkg/lsp"
)

// Handler implements pkg/lsp.Handler for kspcfg.
type Handler struct {
	version  string
	settings printer.Settings

	documentsMutex sync.RWMutex
	documents      map[string]string

	server *lsp.Server
}

// New creates a Handler seeded with settings (normally loaded from
// internal/config before the server starts; workspace/didChangeConfiguration
// can still override it later).
func New(version string, settings printer.Settings) *Handler {
	return &Handler{
		version:   version,
		settings:  settings,
		documents: make(map[string]string),
	}
}

// SetServer lets the handler push notifications (diagnostics) back to
// the client once the server is constructed.
func (h *Handler) SetServer(server *lsp.Server) {
	h.server = server
}

// Initialize handles the initialize request.
func (h *Handler) Initialize(params lsp.InitializeParams) (*lsp.InitializeResult, error) {
	logger.Info("Initializing LSP server")

	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync:           lsp.TextDocumentSyncFull,
			DocumentFormattingProvider: true,
			DiagnosticProvider: &lsp.DiagnosticOptions{
				Identifier:            "kspcfg",
				InterFileDependencies: false,
				WorkspaceDiagnostics:  false,
			},
		},
		ServerInfo: &lsp.ServerInfo{
			Name:    "kspcfg",
			Version: h.version,
		},
	}, nil
}

// TextDocumentDidOpen handles document open notification.
func (h *Handler) TextDocumentDidOpen(params lsp.DidOpenTextDocumentParams) error {
	logger.Info("Document opened: %s", params.TextDocument.URI)

	h.documentsMutex.Lock()
	h.documents[params.TextDocument.URI] = params.TextDocument.Text
	h.documentsMutex.Unlock()

	return nil
}

// TextDocumentDidChange handles document change notification. The
// server advertises full sync, so the latest content change replaces
// the whole document (mirrors the teacher's handler.go).
func (h *Handler) TextDocumentDidChange(params lsp.DidChangeTextDocumentParams) error {
	logger.Debug("Document changed: %s", params.TextDocument.URI)

	if len(params.ContentChanges) == 0 {
		return nil
	}

	h.documentsMutex.Lock()
	h.documents[params.TextDocument.URI] = params.ContentChanges[len(params.ContentChanges)-1].Text
	h.documentsMutex.Unlock()

	return nil
}

// TextDocumentDidClose handles document close notification.
func (h *Handler) TextDocumentDidClose(params lsp.DidCloseTextDocumentParams) error {
	logger.Info("Document closed: %s", params.TextDocument.URI)

	h.documentsMutex.Lock()
	delete(h.documents, params.TextDocument.URI)
	h.documentsMutex.Unlock()

	return nil
}

// TextDocumentFormatting handles a whole-document format request,
// grounded on the reference implementation's handle_formatting_request/
// text_edit_entire_document (original_source/lsp-rs/src/requests/handlers.rs):
// a single TextEdit spanning the entire original document, replacing it
// with the reorder+align+printer pipeline's output.
func (h *Handler) TextDocumentFormatting(params lsp.DocumentFormattingParams) ([]lsp.TextEdit, error) {
	h.documentsMutex.RLock()
	text, ok := h.documents[params.TextDocument.URI]
	h.documentsMutex.RUnlock()
	if !ok {
		logger.Debug("Document not found: %s", params.TextDocument.URI)
		return nil, nil
	}

	settings := h.settings
	if !params.Options.InsertSpaces {
		settings.Indentation.Kind = printer.IndentTabs
	} else {
		width := params.Options.TabSize
		if width <= 0 {
			width = 2
		}
		settings.Indentation = printer.Indentation{Kind: printer.IndentSpaces, Width: width}
	}

	newText, diags := format.Text(settings, text)
	if diag.HasError(diags) {
		logger.Debug("Formatting skipped, %s has parse errors", params.TextDocument.URI)
		return nil, nil
	}

	return []lsp.TextEdit{textEditEntireDocument(text, newText)}, nil
}

// textEditEntireDocument builds the single replacement edit spanning
// original's full extent, mirroring the reference implementation's
// helper of the same name.
func textEditEntireDocument(original, newText string) lsp.TextEdit {
	lines := splitLines(original)
	lastLine := 0
	lastChar := 0
	if n := len(lines); n > 0 {
		lastLine = n - 1
		lastChar = len([]rune(lines[n-1]))
	}
	return lsp.TextEdit{
		Range: lsp.Range{
			Start: lsp.Position{Line: 0, Character: 0},
			End:   lsp.Position{Line: lastLine, Character: lastChar},
		},
		NewText: newText,
	}
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

// TextDocumentDiagnostic handles a pull-mode diagnostics request,
// grounded on the reference's handle_diagnostics_request: the parse
// diagnostics come first, followed by the linter's findings only when
// parsing reported no Error; each list is in source order, and the
// combined list is not re-sorted.
func (h *Handler) TextDocumentDiagnostic(params lsp.DocumentDiagnosticParams) (*lsp.DocumentDiagnosticReport, error) {
	h.documentsMutex.RLock()
	text, ok := h.documents[params.TextDocument.URI]
	h.documentsMutex.RUnlock()
	if !ok {
		return &lsp.DocumentDiagnosticReport{Kind: "full", Items: nil}, nil
	}

	doc, parseDiags := format.Diagnose(text)
	items := make([]lsp.Diagnostic, 0, len(parseDiags))
	for _, d := range parseDiags {
		items = append(items, toLSPDiagnostic(d))
	}
	if !diag.HasError(parseDiags) {
		for _, d := range linter.Lint(doc, params.TextDocument.URI) {
			items = append(items, toLSPDiagnostic(d))
		}
	}

	return &lsp.DocumentDiagnosticReport{Kind: "full", Items: items}, nil
}

func toLSPDiagnostic(d diag.Diagnostic) lsp.Diagnostic {
	startLine, startChar := d.Range.Start.LSPPosition()
	endLine, endChar := d.Range.End.LSPPosition()
	return lsp.Diagnostic{
		Range: lsp.Range{
			Start: lsp.Position{Line: startLine, Character: startChar},
			End:   lsp.Position{Line: endLine, Character: endChar},
		},
		Severity: d.Severity.LSPSeverity(),
		Source:   d.Source,
		Message:  d.Message,
	}
}

// WorkspaceDidChangeConfiguration re-reads the kspcfg-namespaced
// settings object a client pushes, updating future formatting requests.
func (h *Handler) WorkspaceDidChangeConfiguration(params lsp.DidChangeConfigurationParams) error {
	if params.Settings == nil || params.Settings.Kspcfg == nil {
		return nil
	}
	opts := params.Settings.Kspcfg

	cfg := &config.Config{
		Indentation: opts.Indentation,
		Inline:      opts.Inline,
		LineReturn:  opts.LineReturn,
	}
	if cfg.Indentation == "" {
		cfg.Indentation = "tabs"
	}
	if cfg.Inline == "" {
		cfg.Inline = "collapse"
	}
	if cfg.LineReturn == "" {
		cfg.LineReturn = "identify"
	}

	h.settings = cfg.Settings()
	logger.SetDebug(opts.Debug)
	return nil
}
