package analyzer

import (
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/diagnostics"
	"github.com/funvibe/angelscript-front/internal/hoist"
	"github.com/funvibe/angelscript-front/internal/symbols"
	"github.com/funvibe/angelscript-front/internal/token"
)

// analyzeVarAccess resolves `[SCOPE] IDENT` with no trailing call, recording
// a hit on the owning scope's referenced list (spec.md §4.5). A miss is
// reported as A001 and not recorded.
func (a *Analyzer) analyzeVarAccess(e *ast.VarAccess, scope *symbols.Scope) symbols.ResolvedType {
	lookupScope := a.resolveScopePrefixOrSelf(scope, e.Scope)
	sym, owner, ok := lookupScope.Find(e.Name.Text)
	if !ok {
		a.Diagnostics.Addf(diagnostics.Resolution, "A001", e.Name, "Unresolved identifier '"+e.Name.Text+"'.")
		return symbols.ResolvedType{Tag: symbols.Unresolved, Name: e.Name.Text}
	}
	owner.Record(sym)
	switch s := sym.(type) {
	case *symbols.Variable:
		return s.Type
	case *symbols.Function:
		return symbols.ResolvedType{Tag: symbols.Unresolved, Name: "function"}
	case *symbols.Type:
		return symbols.ResolvedType{Tag: symbols.Unresolved, Name: "type"}
	default:
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
}

// resolveScopePrefixOrSelf walks a `::`-qualified Scope the same way
// hoist.ResolveType's resolveScopePrefix does, recording a Namespace
// completion hint on scope for every hop it steps through (spec.md §2
// "Completion-hint collector", §4.5).
func (a *Analyzer) resolveScopePrefixOrSelf(scope *symbols.Scope, sc *ast.Scope) *symbols.Scope {
	if sc == nil {
		return scope
	}
	root := scope
	if sc.IsGlobal {
		for root.Parent != nil {
			root = root.Parent
		}
	}
	cur := root
	for _, name := range sc.Names {
		found := false
		for _, child := range cur.Children {
			if child.Name == name.Text {
				cur = child
				found = true
				break
			}
		}
		if !found {
			return scope
		}
		scope.Hint(symbols.HintNamespace, cur.LinkedNode)
	}
	return cur
}

// analyzeFuncCall dispatches `[SCOPE] IDENT ['<'...'>'] ARGLIST` by the
// resolved callee symbol's kind (spec.md §4.5):
//   - SymbolType            -> this is really a constructor call; the parser
//     only produced FuncCall here because a bare identifier head is
//     syntactically ambiguous between the two (see internal/parser's
//     parseCallOrAccess).
//   - SymbolFunction        -> ordinary call, resolved through overloads.
//   - SymbolVariable with a function-pointer type -> indirect call.
//   - SymbolVariable of a user type with an opCall method -> operator-call
//     alias dispatch.
//   - anything else / unresolved -> "Function call without handler".
func (a *Analyzer) analyzeFuncCall(e *ast.FuncCall, scope *symbols.Scope) symbols.ResolvedType {
	argTypes := a.analyzeArgList(e.Args, scope)
	lookupScope := a.resolveScopePrefixOrSelf(scope, e.Scope)
	sym, owner, ok := lookupScope.Find(e.Name.Text)
	if !ok {
		a.Diagnostics.Addf(diagnostics.Resolution, "A002", e.Name, "Function call without handler: '"+e.Name.Text+"'.")
		return symbols.ResolvedType{Tag: symbols.Unresolved, Name: e.Name.Text}
	}
	owner.Record(sym)

	switch s := sym.(type) {
	case *symbols.Type:
		return a.constructUserType(s, argTypes, e.Name, scope)
	case *symbols.Function:
		overload, ok := a.resolveOverload(s, argTypes, e.Name)
		if !ok {
			a.Diagnostics.Addf(diagnostics.Type, "A003", e.Name,
				"No matching overload for call to '"+e.Name.Text+"'.")
			return symbols.ResolvedType{Tag: symbols.Unresolved, Name: e.Name.Text}
		}
		owner.Record(overload)
		return overload.ReturnType
	case *symbols.Variable:
		if s.Type.Tag == symbols.UserType && s.Type.Decl != nil {
			if opCall, ok := a.findMethod(s.Type.Decl, "opCall"); ok {
				if overload, ok := a.resolveOverload(opCall, argTypes, e.Name); ok {
					return overload.ReturnType
				}
			}
		}
		target := s.Type
		if target.Tag == symbols.HandleOf && target.Inner != nil {
			target = *target.Inner
		}
		if target.IsHandler && target.Decl != nil {
			if fd, ok := target.Decl.Node.(*ast.FuncDef); ok {
				return hoist.ResolveType(scope, fd.ReturnType)
			}
		}
		a.Diagnostics.Addf(diagnostics.Type, "A002", e.Name, "Function call without handler: '"+e.Name.Text+"'.")
		return symbols.ResolvedType{Tag: symbols.Unresolved, Name: e.Name.Text}
	default:
		a.Diagnostics.Addf(diagnostics.Type, "A002", e.Name, "Function call without handler: '"+e.Name.Text+"'.")
		return symbols.ResolvedType{Tag: symbols.Unresolved, Name: e.Name.Text}
	}
}

// analyzeConstructCall resolves `TYPE ARGLIST` for heads the parser could
// already tell were unambiguously a type (primitives, const, array, handle
// suffixes — see internal/parser's looksLikeExplicitTypeHead).
func (a *Analyzer) analyzeConstructCall(e *ast.ConstructCall, scope *symbols.Scope) symbols.ResolvedType {
	argTypes := a.analyzeArgList(e.Args, scope)
	if e.Type == nil {
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
	ty := a.analyzeTypeNode(scope, e.Type)
	if ty.Tag != symbols.UserType || ty.Decl == nil {
		// Primitive/array/handle construction: always well-formed as long as
		// the single argument (if any) could convert, which overload
		// resolution can't check without a builtin conversion table — accept
		// it, matching spec.md §7's best-effort recovery policy.
		return ty
	}
	return a.constructUserType(ty.Decl, argTypes, e.Type.Start, scope)
}

func (a *Analyzer) constructUserType(ty *symbols.Type, argTypes []symbols.ResolvedType, at token.Token, scope *symbols.Scope) symbols.ResolvedType {
	if ctor, ok := a.findMethod(ty, ty.SymName); ok {
		if _, ok := a.resolveOverload(ctor, argTypes, at); !ok {
			a.reportNoConstructor(ty, at)
		}
	} else if len(argTypes) > 1 {
		// No user constructor declared, but more than one argument was
		// supplied — the builtin default/enum-value constructor only
		// accepts zero or one argument (spec.md §4.5 "constructor-call
		// rules").
		a.reportNoConstructor(ty, at)
	}
	return symbols.ResolvedType{Tag: symbols.UserType, Name: ty.SymName, Decl: ty}
}

func (a *Analyzer) reportNoConstructor(ty *symbols.Type, at token.Token) {
	a.Diagnostics.Addf(diagnostics.Type, "A004", at, "No matching constructor for type '"+ty.SymName+"'.")
}
