// Package symbols is the resolved-name graph internal/hoist builds and
// internal/analyzer reads and extends (spec.md §3 "Symbol graph").
package symbols

import "github.com/funvibe/angelscript-front/internal/ast"

// Kind distinguishes the three concrete Symbol shapes.
type Kind int

const (
	TypeKind Kind = iota
	VariableKind
	FunctionKind
)

// Symbol is the tagged-variant interface every entry in a SymbolScope's
// table implements: SymbolType, SymbolVariable, or SymbolFunction.
type Symbol interface {
	symbolName() string
	symbolKind() Kind
}

// Name returns a Symbol's declared name regardless of its concrete kind.
func Name(s Symbol) string { return s.symbolName() }

// KindOf returns a Symbol's concrete kind.
func KindOf(s Symbol) Kind { return s.symbolKind() }

// Type is a symbol bound to a class/interface/enum/funcdef declaration.
type Type struct {
	SymName   string
	Node      ast.Decl // *ast.Class, *ast.Interface, *ast.Enum, or *ast.FuncDef
	IsBuiltin bool      // primitives and the handful of engine-registered types
	Template  *TemplateTranslation
	Scope     *Scope // the member scope hoisted for this type, nil for builtins
}

func (t *Type) symbolName() string { return t.SymName }
func (t *Type) symbolKind() Kind   { return TypeKind }

// Variable is a symbol bound to a declared variable, parameter, or member
// field.
type Variable struct {
	SymName string
	Type    ResolvedType
	Node    ast.Node // declaring *ast.Var or *ast.VirtualProp; nil for params, builtins and enum values
	IsConst bool
	Access  ast.Access // zero value (AccessDefault) for builtins/params/globals
}

func (v *Variable) symbolName() string { return v.SymName }
func (v *Variable) symbolKind() Kind   { return VariableKind }

// Function is a symbol bound to a declared function, method, or constructor.
// Overloads are chained through NextOverload rather than stored as a slice,
// matching the single-symbol-per-name shape the rest of the symbol table
// uses (spec.md §3).
type Function struct {
	SymName      string
	Node         *ast.Func
	ReturnType   ResolvedType
	Params       []ResolvedType
	IsConst      bool
	Access       ast.Access
	NextOverload *Function
}

func (f *Function) symbolName() string { return f.SymName }
func (f *Function) symbolKind() Kind   { return FunctionKind }

// Overloads walks the NextOverload chain, returning f and every overload
// after it in declaration order.
func (f *Function) Overloads() []*Function {
	var all []*Function
	for cur := f; cur != nil; cur = cur.NextOverload {
		all = append(all, cur)
	}
	return all
}
