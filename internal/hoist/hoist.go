// Package hoist runs the forward-declaration pass that internal/analyzer
// consumes as input (spec.md §2 lists the hoisting pass as an external
// collaborator, outside the parser/analyzer core budget; this package is
// that collaborator, kept in the same module so the whole pipeline is
// runnable end to end).
package hoist

import (
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/symbols"
	"github.com/funvibe/angelscript-front/internal/token"
)

// Task pairs a statement block with the scope its parameters were already
// declared in and the return type its Return statements must match, ready
// for internal/analyzer to walk. A property accessor body is queued the same
// way a function body is (ReturnType is void for a 'set' accessor, per
// spec.md §4.7's getter/setter distinction).
type Task struct {
	Scope      *symbols.Scope
	Body       *ast.StatBlock
	ReturnType symbols.ResolvedType
	Label      string
}

// GlobalVarInit pairs a Script-level variable declarator (global, or nested
// in a namespace) with the scope and declared type it was hoisted against,
// so internal/analyzer can check its initializer the same way spec.md §4.4
// describes for any "Script or StatBlock": function-body locals are queued
// through AnalyzeQueue/Task, Script-level declarators through this list.
type GlobalVarInit struct {
	Scope *symbols.Scope
	Decl  *ast.VarDeclarator
	Type  symbols.ResolvedType
}

// Result is the hoisting pass's output: the fully populated global scope
// tree (spec.md §6 "Output: ... SymbolScope tree"), the queue of bodies
// still needing analysis, and every Script-level variable initializer still
// needing its own analysis pass.
type Result struct {
	GlobalScope    *symbols.Scope
	AnalyzeQueue   []Task
	GlobalVarInits []GlobalVarInit
}

// Run hoists every declaration in script, two passes deep: first every
// Type-shaped declaration (class/interface/enum/funcdef/typedef) across the
// whole tree, so member and parameter types can resolve forward references;
// then every variable, field, and function signature, queuing each
// function/method body for later analysis.
func Run(script *ast.Script) *Result {
	global := symbols.NewScope(symbols.ScopeGlobal, "", script)
	h := &hoister{result: &Result{GlobalScope: global}}
	h.registerTypes(script, global)
	h.registerMembers(script, global)
	return h.result
}

type hoister struct {
	result *Result
}

func (h *hoister) registerTypes(script *ast.Script, scope *symbols.Scope) {
	for _, decl := range script.Decls {
		switch d := decl.(type) {
		case *ast.Namespace:
			ns := scope.NewChild(symbols.ScopeNamespace, lastName(d.Names), d)
			h.registerTypes(d.Body, ns)
		case *ast.Class:
			tySym := &symbols.Type{SymName: d.Name.Text, Node: d}
			scope.Declare(tySym)
			classScope := scope.NewChild(symbols.ScopeClass, d.Name.Text, d)
			tySym.Scope = classScope
			h.registerTypes(&ast.Script{Decls: memberDeclsOf(d.Members)}, classScope)
		case *ast.Interface:
			tySym := &symbols.Type{SymName: d.Name.Text, Node: d}
			scope.Declare(tySym)
			ifaceScope := scope.NewChild(symbols.ScopeClass, d.Name.Text, d)
			tySym.Scope = ifaceScope
			h.registerTypes(&ast.Script{Decls: memberDeclsOf(d.Members)}, ifaceScope)
		case *ast.Enum:
			tySym := &symbols.Type{SymName: d.Name.Text, Node: d}
			scope.Declare(tySym)
			tySym.Scope = scope.NewChild(symbols.ScopeClass, d.Name.Text, d)
		case *ast.FuncDef:
			scope.Declare(&symbols.Type{SymName: d.Name.Text, Node: d})
		case *ast.TypeDef:
			scope.Declare(&symbols.Type{SymName: d.Name.Text, Node: d, IsBuiltin: true})
		case *ast.Mixin:
			tySym := &symbols.Type{SymName: d.Class.Name.Text, Node: d.Class}
			scope.Declare(tySym)
			mixinScope := scope.NewChild(symbols.ScopeClass, d.Class.Name.Text, d.Class)
			tySym.Scope = mixinScope
			h.registerTypes(&ast.Script{Decls: memberDeclsOf(d.Class.Members)}, mixinScope)
		}
	}
}

func (h *hoister) registerMembers(script *ast.Script, scope *symbols.Scope) {
	for _, decl := range script.Decls {
		switch d := decl.(type) {
		case *ast.Namespace:
			ns := h.childScope(scope, d)
			h.registerMembers(d.Body, ns)
		case *ast.Class:
			classScope := h.childScope(scope, d)
			h.registerClassMembers(d.Members, classScope)
		case *ast.Interface:
			ifaceScope := h.childScope(scope, d)
			h.registerInterfaceMembers(d.Members, ifaceScope)
		case *ast.Enum:
			enumScope := h.childScope(scope, d)
			for _, m := range d.Members {
				enumScope.Declare(&symbols.Variable{
					SymName: m.Name.Text,
					Type:    symbols.ResolvedType{Tag: symbols.UserType, Name: d.Name.Text},
					IsConst: true,
				})
			}
		case *ast.Func:
			h.registerFunc(d, scope, false)
		case *ast.Var:
			registerVarDecls(d, scope)
			h.queueVarInits(d, scope)
		case *ast.Import:
			scope.Declare(&symbols.Function{
				SymName:    d.Name.Text,
				ReturnType: ResolveType(scope, d.ReturnType),
				Params:     resolveParamTypes(scope, d.Params),
			})
		case *ast.Mixin:
			mixinScope := h.childScope(scope, d.Class)
			h.registerClassMembers(d.Class.Members, mixinScope)
		}
	}
}

// childScope re-finds the scope registerTypes already created for a
// declaration, matched by its LinkedNode identity, rather than recreating it
// (every Type-bearing declaration gets exactly one scope per spec.md §3's
// "Symbol graph" tree shape).
func (h *hoister) childScope(parent *symbols.Scope, linked ast.Node) *symbols.Scope {
	for _, child := range parent.Children {
		if child.LinkedNode == linked {
			return child
		}
	}
	return parent.NewChild(symbols.ScopeBlock, "", linked)
}

func (h *hoister) registerClassMembers(members []ast.Decl, classScope *symbols.Scope) {
	for _, member := range members {
		switch m := member.(type) {
		case *ast.Func:
			h.registerFunc(m, classScope, true)
		case *ast.Var:
			registerVarDecls(m, classScope)
		case *ast.VirtualProp:
			ty := ResolveType(classScope, m.Type)
			classScope.Declare(&symbols.Variable{SymName: m.Name.Text, Type: ty, Node: m, Access: m.Access})
			if m.Get != nil && m.Get.Body != nil {
				getScope := classScope.NewChild(symbols.ScopeFunction, m.Name.Text+".get", m)
				h.result.AnalyzeQueue = append(h.result.AnalyzeQueue, Task{Scope: getScope, Body: m.Get.Body, ReturnType: ty, Label: m.Name.Text + ".get"})
			}
			if m.Set != nil && m.Set.Body != nil {
				setScope := classScope.NewChild(symbols.ScopeFunction, m.Name.Text+".set", m)
				setScope.Declare(&symbols.Variable{SymName: "value", Type: ty})
				h.result.AnalyzeQueue = append(h.result.AnalyzeQueue, Task{Scope: setScope, Body: m.Set.Body, ReturnType: symbols.ResolvedType{Tag: symbols.Void}, Label: m.Name.Text + ".set"})
			}
		case *ast.FuncDef:
			classScope.Declare(&symbols.Type{SymName: m.Name.Text, Node: m})
		}
	}
}

func (h *hoister) registerInterfaceMembers(members []ast.Decl, ifaceScope *symbols.Scope) {
	for _, member := range members {
		switch m := member.(type) {
		case *ast.IntfMethod:
			ifaceScope.Declare(&symbols.Function{
				SymName:    m.Name.Text,
				ReturnType: ResolveType(ifaceScope, m.ReturnType),
				Params:     resolveParamTypes(ifaceScope, m.Params),
				IsConst:    m.IsConst,
			})
		case *ast.VirtualProp:
			ifaceScope.Declare(&symbols.Variable{SymName: m.Name.Text, Type: ResolveType(ifaceScope, m.Type), Node: m})
		}
	}
}

func (h *hoister) registerFunc(fn *ast.Func, enclosing *symbols.Scope, isMethod bool) {
	sym := &symbols.Function{
		SymName:    fn.Name.Text,
		Node:       fn,
		ReturnType: ResolveType(enclosing, fn.ReturnType),
		Params:     resolveParamTypes(enclosing, fn.Params),
		IsConst:    fn.IsConst,
		Access:     fn.Access,
	}
	enclosing.Declare(sym)

	bodyScope := enclosing.NewChild(symbols.ScopeFunction, fn.Name.Text, fn)
	for _, param := range fn.Params {
		if param.Name.Text == "" {
			continue
		}
		bodyScope.Declare(&symbols.Variable{SymName: param.Name.Text, Type: ResolveType(enclosing, param.Type)})
	}
	h.result.AnalyzeQueue = append(h.result.AnalyzeQueue, Task{
		Scope: bodyScope, Body: fn.Body, ReturnType: sym.ReturnType, Label: fn.Name.Text,
	})
}

// queueVarInits records every declarator in v that has an initializer so
// internal/analyzer can check it against v's declared type, mirroring how a
// function body's local Var statements reach the analyzer via Task.Body.
func (h *hoister) queueVarInits(v *ast.Var, scope *symbols.Scope) {
	ty := ResolveType(scope, v.Type)
	for _, decl := range v.Declarators {
		if decl.InitKind == ast.VarInitNone {
			continue
		}
		h.result.GlobalVarInits = append(h.result.GlobalVarInits, GlobalVarInit{Scope: scope, Decl: decl, Type: ty})
	}
}

func registerVarDecls(v *ast.Var, scope *symbols.Scope) {
	ty := ResolveType(scope, v.Type)
	for _, decl := range v.Declarators {
		scope.Declare(&symbols.Variable{SymName: decl.Name.Text, Type: ty, Node: v, IsConst: ty.IsConst, Access: v.Access})
	}
}

func resolveParamTypes(scope *symbols.Scope, params []*ast.Param) []symbols.ResolvedType {
	resolved := make([]symbols.ResolvedType, len(params))
	for i, param := range params {
		resolved[i] = ResolveType(scope, param.Type)
	}
	return resolved
}

func lastName(names []token.Token) string {
	if len(names) == 0 {
		return ""
	}
	return names[len(names)-1].Text
}

func memberDeclsOf(members []ast.Decl) []ast.Decl { return members }
