package main

import (
	"fmt"

	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/symbols"
)

// handleHover answers with the declaring kind and name of the identifier
// under the cursor. Lookup is the same approximate global-scope scan
// findSymbol uses everywhere else in this server: good enough for a single
// global/class-member namespace, not scope-accurate at the use site.
func (s *LanguageServer) handleHover(params TextDocumentPositionParams) *Hover {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil
	}
	tok, ok := tokenAt(doc.Tokens, params.Position)
	if !ok || tok.Text == "" {
		return nil
	}
	sym, ok := findSymbol(doc.Hoist.GlobalScope, tok.Text)
	if !ok {
		return nil
	}
	return &Hover{Contents: MarkupContent{Kind: "plaintext", Value: describeSymbol(sym)}}
}

// handleDefinition answers with the declaration site of the identifier under
// the cursor, found the same way handleHover finds it.
func (s *LanguageServer) handleDefinition(params TextDocumentPositionParams) *Location {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil
	}
	tok, ok := tokenAt(doc.Tokens, params.Position)
	if !ok || tok.Text == "" {
		return nil
	}
	sym, ok := findSymbol(doc.Hoist.GlobalScope, tok.Text)
	if !ok {
		return nil
	}
	n, ok := declNodeOf(sym)
	if !ok {
		return nil
	}
	loc := nodeLocation(params.TextDocument.URI, n)
	return &loc
}

// handleCompletion offers every symbol declared anywhere in the document's
// scope tree. It does not filter by what's actually visible at the cursor
// (another deliberate approximation): a client sees the whole program's
// names regardless of position.
func (s *LanguageServer) handleCompletion(params TextDocumentPositionParams) *CompletionList {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return &CompletionList{}
	}
	var items []CompletionItem
	collectCompletions(doc.Hoist.GlobalScope, &items)
	return &CompletionList{Items: items}
}

func collectCompletions(scope *symbols.Scope, items *[]CompletionItem) {
	for _, sym := range scope.All() {
		*items = append(*items, CompletionItem{
			Label:  symbols.Name(sym),
			Kind:   completionKindOf(sym),
			Detail: describeSymbol(sym),
		})
	}
	for _, child := range scope.Children {
		collectCompletions(child, items)
	}
}

func completionKindOf(sym symbols.Symbol) CompletionItemKind {
	switch v := sym.(type) {
	case *symbols.Function:
		return CompletionItemFunction
	case *symbols.Variable:
		return CompletionItemVariable
	case *symbols.Type:
		if _, ok := v.Node.(*ast.Enum); ok {
			return CompletionItemEnum
		}
		return CompletionItemClass
	default:
		return CompletionItemVariable
	}
}

func describeSymbol(sym symbols.Symbol) string {
	switch v := sym.(type) {
	case *symbols.Function:
		return fmt.Sprintf("function %s", v.SymName)
	case *symbols.Variable:
		return fmt.Sprintf("%s %s", describeType(v.Type), v.SymName)
	case *symbols.Type:
		return fmt.Sprintf("type %s", v.SymName)
	default:
		return symbols.Name(sym)
	}
}

func describeType(t symbols.ResolvedType) string {
	if t.Name != "" {
		return t.Name
	}
	return "?"
}

func declNodeOf(sym symbols.Symbol) (ast.Node, bool) {
	switch v := sym.(type) {
	case *symbols.Function:
		if v.Node == nil {
			return nil, false
		}
		return v.Node, true
	case *symbols.Variable:
		if v.Node == nil {
			return nil, false
		}
		return v.Node, true
	case *symbols.Type:
		if v.Node == nil {
			return nil, false
		}
		return v.Node, true
	default:
		return nil, false
	}
}
