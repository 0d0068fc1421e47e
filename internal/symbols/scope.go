package symbols

import "github.com/funvibe/angelscript-front/internal/ast"

// ScopeKind distinguishes the nesting levels a Scope can represent.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeNamespace
	ScopeClass
	ScopeFunction
	ScopeBlock
)

// CompletionHintKind distinguishes what a completion hint is offering at its
// recorded position (spec.md §2 "Completion-hint collector").
type CompletionHintKind int

const (
	HintNamespace CompletionHintKind = iota
	HintType
	HintArguments
)

// CompletionHint is one emitted suggestion point.
type CompletionHint struct {
	Kind CompletionHintKind
	Node ast.Node
}

// Scope is one node of the hierarchical symbol tree (spec.md §3 "Symbol
// graph"): a name table plus parent/child links, the node it was hoisted
// from, every symbol a reference inside it resolved to, and any completion
// hints recorded while analyzing it.
type Scope struct {
	Kind     ScopeKind
	Name     string // namespace/class name; empty for function/block scopes
	Parent   *Scope
	Children []*Scope

	symbols map[string]Symbol

	// LinkedNode is the declaration this scope was hoisted from: *ast.Script
	// for the root, *ast.Namespace, *ast.Class, *ast.Func, or a statement
	// that opens a block (spec.md §4.7).
	LinkedNode ast.Node

	// Referenced records, in resolution order, every symbol a VarAccess,
	// FuncCall, or type reference inside this scope resolved to — the
	// analyzer's "referenced list" used for overload-resolution diagnostics
	// and for completion/definition lookups downstream.
	Referenced []Symbol

	CompletionHints []CompletionHint
}

// NewScope builds a root scope with no parent.
func NewScope(kind ScopeKind, name string, linked ast.Node) *Scope {
	return &Scope{Kind: kind, Name: name, symbols: make(map[string]Symbol), LinkedNode: linked}
}

// NewChild builds a scope nested under s and links it as a child.
func (s *Scope) NewChild(kind ScopeKind, name string, linked ast.Node) *Scope {
	child := NewScope(kind, name, linked)
	child.Parent = s
	s.Children = append(s.Children, child)
	return child
}

// Declare registers a symbol in this scope's own table, overwriting any
// existing non-function symbol of the same name. Declaring a second Function
// under a name already bound to a Function chains it onto NextOverload
// instead of replacing it (spec.md §4.5 overload resolution).
func (s *Scope) Declare(sym Symbol) {
	if fn, ok := sym.(*Function); ok {
		if existing, ok := s.symbols[fn.SymName].(*Function); ok {
			last := existing
			for last.NextOverload != nil {
				last = last.NextOverload
			}
			last.NextOverload = fn
			return
		}
	}
	s.symbols[Name(sym)] = sym
}

// Find looks up name in this scope's own table, then climbs Parent links
// until it either finds a binding or runs out of scopes (spec.md §4.1
// "shallow lookup, then climb the enclosing chain").
func (s *Scope) Find(name string) (Symbol, *Scope, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, cur, true
		}
	}
	return nil, nil, false
}

// FindLocal looks up name in exactly this scope's own table, without
// climbing to Parent.
func (s *Scope) FindLocal(name string) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Record appends sym to this scope's Referenced list.
func (s *Scope) Record(sym Symbol) {
	s.Referenced = append(s.Referenced, sym)
}

// Hint appends a completion hint to this scope.
func (s *Scope) Hint(kind CompletionHintKind, node ast.Node) {
	s.CompletionHints = append(s.CompletionHints, CompletionHint{Kind: kind, Node: node})
}

// All returns every symbol declared directly in this scope, in no
// particular order — callers that need declaration order should walk the
// AST instead.
func (s *Scope) All() []Symbol {
	all := make([]Symbol, 0, len(s.symbols))
	for _, sym := range s.symbols {
		all = append(all, sym)
	}
	return all
}
