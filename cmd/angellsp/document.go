package main

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/funvibe/angelscript-front/internal/analyzer"
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/diagnostics"
	"github.com/funvibe/angelscript-front/internal/hoist"
	"github.com/funvibe/angelscript-front/internal/lexer"
	"github.com/funvibe/angelscript-front/internal/parser"
	"github.com/funvibe/angelscript-front/internal/symbols"
	"github.com/funvibe/angelscript-front/internal/token"
)

// DocumentState is one open document's last-analyzed state. Every edit
// reanalyzes the whole file (spec.md §5: no sub-file incremental reparse),
// so there is nothing to merge between runs.
type DocumentState struct {
	mu sync.RWMutex

	Content     string
	Tokens      []token.Token
	Script      *ast.Script
	Hoist       *hoist.Result
	Analyzer    *analyzer.Analyzer
	AnalysisID  string // uuid minted per analysis run; no handler reads it
}

func (s *LanguageServer) analyzeDocument(uri, content string) *DocumentState {
	path := uriToPath(uri)
	tokens := lexer.New(content, path).Tokenize()
	p := parser.New(tokens, path)
	script := p.ParseProgram()
	hoistResult := hoist.Run(script)

	a := analyzer.New()
	a.Diagnostics = p.Diagnostics() // share one sink: parser diagnostics first, then the analyzer's
	a.Analyze(hoistResult)

	return &DocumentState{
		Content:    content,
		Tokens:     tokens,
		Script:     script,
		Hoist:      hoistResult,
		Analyzer:   a,
		AnalysisID: uuid.NewString(),
	}
}

func (s *LanguageServer) handleDidOpen(params DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	doc := s.analyzeDocument(uri, params.TextDocument.Text)
	s.mu.Lock()
	s.documents[uri] = doc
	s.mu.Unlock()
	return s.publishDiagnostics(uri, doc)
}

func (s *LanguageServer) handleDidChange(params DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	uri := params.TextDocument.URI
	doc := s.analyzeDocument(uri, params.ContentChanges[len(params.ContentChanges)-1].Text)
	s.mu.Lock()
	s.documents[uri] = doc
	s.mu.Unlock()
	return s.publishDiagnostics(uri, doc)
}

func (s *LanguageServer) handleDidClose(params DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()
	return nil
}

func (s *LanguageServer) document(uri string) (*DocumentState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[uri]
	return doc, ok
}

func uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

func (s *LanguageServer) publishDiagnostics(uri string, doc *DocumentState) error {
	var lspDiags []Diagnostic
	for _, d := range doc.Analyzer.Diagnostics.All() {
		lspDiags = append(lspDiags, Diagnostic{
			Range:    locRange(d.Location),
			Severity: severityFor(d.Severity),
			Code:     d.Code,
			Message:  d.Message,
			Source:   "angelcheck",
		})
	}
	return s.notify("textDocument/publishDiagnostics", PublishDiagnosticsParams{URI: uri, Diagnostics: lspDiags})
}

// severityFor maps every diagnostics.Severity to LSP's Error tier. None of
// this system's four severities are advisory (spec.md §7: Syntactic,
// Resolution, Type, and Access are all failures to report, never warnings),
// so there is nothing to distinguish on the LSP side yet.
func severityFor(diagnostics.Severity) DiagnosticSeverity {
	return SeverityError
}

func locRange(loc token.Location) Range {
	return Range{
		Start: Position{Line: loc.Start.Line - 1, Character: loc.Start.Column - 1},
		End:   Position{Line: loc.End.Line - 1, Character: loc.End.Column - 1},
	}
}

func nodeLocation(uri string, n ast.Node) Location {
	r := n.Range()
	return Location{URI: uri, Range: Range{
		Start: Position{Line: r.Start.Location.Start.Line - 1, Character: r.Start.Location.Start.Column - 1},
		End:   Position{Line: r.End.Location.End.Line - 1, Character: r.End.Location.End.Column - 1},
	}}
}

// tokenAt returns the token whose span covers a 0-based LSP position.
func tokenAt(tokens []token.Token, pos Position) (token.Token, bool) {
	line, char := pos.Line+1, pos.Character+1
	for _, t := range tokens {
		if t.Location.Start.Line > line {
			break
		}
		if t.Location.Start.Line <= line && line <= t.Location.End.Line &&
			t.Location.Start.Column <= char && char <= t.Location.End.Column {
			return t, true
		}
	}
	return token.Token{}, false
}

// findSymbol searches the whole scope tree for a symbol named `name`,
// preferring the nearest declaration: shallow scopes are checked only via
// FindLocal, deeper scopes are visited depth-first. This is a simplification
// (spec.md's real lookup is scope-accurate at the use site; this scans
// broadly) noted in DESIGN.md.
func findSymbol(scope *symbols.Scope, name string) (symbols.Symbol, bool) {
	if sym, ok := scope.FindLocal(name); ok {
		return sym, true
	}
	for _, child := range scope.Children {
		if sym, ok := findSymbol(child, name); ok {
			return sym, true
		}
	}
	return nil, false
}
