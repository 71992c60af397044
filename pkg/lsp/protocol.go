package lsp

// LSP Protocol types and structures
// Based on Language Server Protocol Specification

// Position represents a position in a text document
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range represents a range in a text document
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location represents a location in a text document
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// Diagnostic represents a diagnostic (error, warning, etc.)
type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity"`
	Code     string `json:"code,omitempty"`
	Source   string `json:"source,omitempty"`
	Message  string `json:"message"`
}

// DiagnosticSeverity levels
const (
	SeverityError       = 1
	SeverityWarning     = 2
	SeverityInformation = 3
	SeverityHint        = 4
)

// TextDocumentIdentifier identifies a text document
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// VersionedTextDocumentIdentifier identifies a versioned text document
type VersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier
	Version int `json:"version"`
}

// TextDocumentItem represents a text document
type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

// TextDocumentContentChangeEvent describes a change to a text document
type TextDocumentContentChangeEvent struct {
	Range       *Range `json:"range,omitempty"`
	RangeLength int    `json:"rangeLength,omitempty"`
	Text        string `json:"text"`
}

// TextEdit is a single replacement of a range with new text. This
// server only ever emits one TextEdit per formatting request, spanning
// the whole document (spec.md §6, ported from the reference
// text_edit_entire_document).
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// FormattingOptions carries the client's editor settings for a
// formatting request. TabSize/InsertSpaces always decide
// internal/printer's Indentation (tabs when InsertSpaces is false,
// otherwise TabSize spaces, 2 if TabSize is not positive); the server's
// configured settings supply the inline and line-return modes.
type FormattingOptions struct {
	TabSize      int  `json:"tabSize"`
	InsertSpaces bool `json:"insertSpaces"`
}

// DocumentFormattingParams is "textDocument/formatting"'s request body.
type DocumentFormattingParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Options      FormattingOptions      `json:"options"`
}

// DocumentDiagnosticParams is the pull-mode "textDocument/diagnostic"
// request body (spec.md §6).
type DocumentDiagnosticParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// DocumentDiagnosticReport is this server's (deliberately flat) answer
// to a diagnostics pull: the LSP spec's full
// DocumentDiagnosticReportResult is a nested unchanged/full/related
// union this hand-rolled transport has no other use for, so it is
// simplified to the one shape the server ever produces (see DESIGN.md).
type DocumentDiagnosticReport struct {
	Kind  string       `json:"kind"`
	Items []Diagnostic `json:"items"`
}

// ServerCapabilities describes the capabilities of the server
type ServerCapabilities struct {
	TextDocumentSync           int                `json:"textDocumentSync,omitempty"`
	DocumentFormattingProvider bool               `json:"documentFormattingProvider,omitempty"`
	DiagnosticProvider         *DiagnosticOptions `json:"diagnosticProvider,omitempty"`
}

// TextDocumentSyncKind values
const (
	TextDocumentSyncNone        = 0
	TextDocumentSyncFull        = 1
	TextDocumentSyncIncremental = 2
)

// DiagnosticOptions describes diagnostic options
type DiagnosticOptions struct {
	Identifier            string `json:"identifier,omitempty"`
	InterFileDependencies bool   `json:"interFileDependencies"`
	WorkspaceDiagnostics  bool   `json:"workspaceDiagnostics"`
}

// InitializeParams represents the initialize request parameters
type InitializeParams struct {
	ProcessID    int    `json:"processId"`
	RootURI      string `json:"rootUri,omitempty"`
	Capabilities struct {
		// Client capabilities
	} `json:"capabilities"`
}

// InitializeResult represents the initialize response
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// ServerInfo contains server information
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// KspcfgSettings is the server-specific slice of a
// workspace/didChangeConfiguration payload (spec.md §6): indentation,
// inline, and line-return mirror internal/config.Config; Debug toggles
// logger verbosity.
type KspcfgSettings struct {
	Indentation string `json:"indentation,omitempty"`
	Inline      string `json:"inline,omitempty"`
	LineReturn  string `json:"lineReturn,omitempty"`
	Debug       bool   `json:"debug,omitempty"`
}

// WorkspaceSettings is the "settings" object a client sends with
// workspace/didChangeConfiguration, namespaced under "kspcfg".
type WorkspaceSettings struct {
	Kspcfg *KspcfgSettings `json:"kspcfg,omitempty"`
}

// DidChangeConfigurationParams is workspace/didChangeConfiguration's
// notification body.
type DidChangeConfigurationParams struct {
	Settings *WorkspaceSettings `json:"settings,omitempty"`
}
