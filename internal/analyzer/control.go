package analyzer

import (
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/config"
	"github.com/funvibe/angelscript-front/internal/diagnostics"
	"github.com/funvibe/angelscript-front/internal/symbols"
)

// flow summarizes what a statement or block does for return-path checking
// (spec.md §4.7 "Return type matching"): whether every path through it ends
// in a return.
type flow struct {
	alwaysReturns bool
}

// analyzeStatBlock walks block's statements in the scope it is given; it
// opens no scope itself. Callers supply the scope: nested blocks, Try, For,
// While and DoWhile get a fresh child scope from their caller, and a function
// body uses the scope hoist already built for its parameters.
// expected is the declared return type of the enclosing function, getter, or
// setter body (Void for a function/setter that returns nothing, Unresolved
// when no return-type check should be performed — lambda bodies, whose
// return type is never inferred, pass Unresolved here).
func (a *Analyzer) analyzeStatBlock(block *ast.StatBlock, expected symbols.ResolvedType, scope *symbols.Scope) flow {
	result := flow{}
	for _, stmt := range block.Statements {
		if result.alwaysReturns {
			// Unreachable, but still walked for diagnostics/highlights —
			// spec.md §5 makes no exception for dead code.
		}
		f := a.analyzeStatement(stmt, expected, scope)
		if f.alwaysReturns {
			result.alwaysReturns = true
		}
	}
	return result
}

func (a *Analyzer) analyzeStatement(stmt ast.Stmt, expected symbols.ResolvedType, scope *symbols.Scope) flow {
	switch s := stmt.(type) {
	case *ast.StatBlock:
		child := scope.NewChild(symbols.ScopeBlock, "", s)
		return a.analyzeStatBlock(s, expected, child)
	case *ast.Var:
		a.analyzeLocalVar(s, scope)
		return flow{}
	case *ast.If:
		return a.analyzeIf(s, expected, scope)
	case *ast.For:
		return a.analyzeFor(s, expected, scope)
	case *ast.While:
		return a.analyzeWhile(s, expected, scope)
	case *ast.DoWhile:
		return a.analyzeDoWhile(s, expected, scope)
	case *ast.Switch:
		return a.analyzeSwitch(s, expected, scope)
	case *ast.Try:
		return a.analyzeTry(s, expected, scope)
	case *ast.Return:
		a.analyzeReturn(s, expected, scope)
		return flow{alwaysReturns: true}
	case *ast.Break, *ast.Continue:
		return flow{}
	case *ast.ExprStat:
		if s.Value != nil {
			a.analyzeAssign(s.Value, scope)
		}
		return flow{}
	default:
		return flow{}
	}
}

// analyzeReturn checks a return statement's value (if any) against the
// enclosing function/getter/setter's declared return type (spec.md §4.7
// "Return type matching"): a value supplied where the declared type is Void
// is always an error, and otherwise the value's type must be convertible to
// the declared type. expected.Tag == Unresolved disables the check entirely
// (lambda bodies, whose return type spec.md §9 leaves uninferred).
func (a *Analyzer) analyzeReturn(s *ast.Return, expected symbols.ResolvedType, scope *symbols.Scope) {
	if s.Value == nil {
		return
	}
	actual := a.analyzeAssign(s.Value, scope)
	if expected.Tag == symbols.Unresolved {
		return
	}
	if expected.Tag == symbols.Void {
		a.Diagnostics.Addf(diagnostics.Type, "A015", s.Value.Range().Start,
			"Function does not return a value, but 'return' supplies one.")
		return
	}
	if !isAssignable(expected, actual) {
		a.Diagnostics.Addf(diagnostics.Type, "A015", s.Value.Range().Start,
			"Type mismatch: cannot return a value of type '"+actual.String()+"' where '"+expected.String()+"' is expected.")
	}
}

func (a *Analyzer) analyzeLocalVar(v *ast.Var, scope *symbols.Scope) {
	ty := a.analyzeTypeNode(scope, v.Type)
	for _, decl := range v.Declarators {
		declTy := a.analyzeVarInit(decl, ty, scope)
		scope.Declare(&symbols.Variable{SymName: decl.Name.Text, Type: declTy, Node: v, IsConst: declTy.IsConst})
	}
}

// analyzeVarInit analyzes one declarator's initializer against its declared
// type (spec.md §4.4) and returns the type the resulting symbol should
// carry: the initializer's own type when the declaration was 'auto', the
// declared type otherwise.
func (a *Analyzer) analyzeVarInit(decl *ast.VarDeclarator, declaredTy symbols.ResolvedType, scope *symbols.Scope) symbols.ResolvedType {
	switch decl.InitKind {
	case ast.VarInitAssign:
		initTy := a.analyzeAssign(decl.Assign, scope)
		if declaredTy.Tag == symbols.Auto {
			return initTy
		}
		if !isAssignable(declaredTy, initTy) {
			a.Diagnostics.Addf(diagnostics.Type, "A012", decl.Assign.Range().Start,
				"Type mismatch: cannot initialize '"+decl.Name.Text+"' of type '"+declaredTy.String()+"' with a value of type '"+initTy.String()+"'.")
		}
		return declaredTy
	case ast.VarInitList:
		// initializer type currently unresolved for braced initializers
		// (open issue, spec.md §9) — analyzed only for its side effects.
		a.analyzeInitList(decl.InitList, scope)
		return declaredTy
	case ast.VarInitArgs:
		argTypes := a.analyzeArgList(decl.Args, scope)
		if declaredTy.Tag == symbols.UserType && declaredTy.Decl != nil {
			a.constructUserType(declaredTy.Decl, argTypes, decl.Name, scope)
		}
		return declaredTy
	default:
		return declaredTy
	}
}

// checkCondition analyzes a condition expression and reports it unless its
// resolved type is bool or unresolved (spec.md §4.7: "condition must be
// convertible to bool").
func (a *Analyzer) checkCondition(cond *ast.Assign, scope *symbols.Scope) {
	ty := a.analyzeAssign(cond, scope)
	if ty.Tag == symbols.Unresolved {
		return
	}
	if ty.Tag != symbols.Primitive || ty.Name != "bool" {
		a.Diagnostics.Addf(diagnostics.Type, "A011", cond.Start, "Condition must be convertible to bool.")
	}
}

func (a *Analyzer) analyzeIf(s *ast.If, expected symbols.ResolvedType, scope *symbols.Scope) flow {
	a.checkCondition(s.Cond, scope)
	thenFlow := a.analyzeStatement(s.Then, expected, scope)
	if s.Else == nil {
		return flow{}
	}
	elseFlow := a.analyzeStatement(s.Else, expected, scope)
	return flow{alwaysReturns: thenFlow.alwaysReturns && elseFlow.alwaysReturns}
}

func (a *Analyzer) analyzeFor(s *ast.For, expected symbols.ResolvedType, scope *symbols.Scope) flow {
	child := scope.NewChild(symbols.ScopeBlock, "", s)
	if s.Init != nil {
		a.analyzeStatement(s.Init, expected, child)
	}
	if s.Cond != nil {
		a.checkCondition(s.Cond, child)
	}
	for _, post := range s.Post {
		a.analyzeAssign(post, child)
	}
	a.analyzeStatement(s.Body, expected, child)
	return flow{}
}

func (a *Analyzer) analyzeWhile(s *ast.While, expected symbols.ResolvedType, scope *symbols.Scope) flow {
	child := scope.NewChild(symbols.ScopeBlock, "", s)
	a.checkCondition(s.Cond, child)
	a.analyzeStatement(s.Body, expected, child)
	return flow{}
}

func (a *Analyzer) analyzeDoWhile(s *ast.DoWhile, expected symbols.ResolvedType, scope *symbols.Scope) flow {
	child := scope.NewChild(symbols.ScopeBlock, "", s)
	a.analyzeStatement(s.Body, expected, child)
	a.checkCondition(s.Cond, child)
	return flow{}
}

func (a *Analyzer) analyzeSwitch(s *ast.Switch, expected symbols.ResolvedType, scope *symbols.Scope) flow {
	a.analyzeAssign(s.Cond, scope)
	hasDefault := false
	allReturn := len(s.Cases) > 0
	for _, c := range s.Cases {
		child := scope.NewChild(symbols.ScopeBlock, "", s)
		if c.Value != nil {
			if assign, ok := c.Value.(*ast.Assign); ok {
				a.analyzeAssign(assign, child)
			}
		} else {
			hasDefault = true
		}
		caseFlow := flow{alwaysReturns: len(c.Statements) > 0}
		for _, stmt := range c.Statements {
			f := a.analyzeStatement(stmt, expected, child)
			caseFlow.alwaysReturns = f.alwaysReturns
		}
		if !caseFlow.alwaysReturns {
			allReturn = false
		}
	}
	if !hasDefault && config.StrictMode {
		a.Diagnostics.Addf(diagnostics.Type, "A016", s.Range().Start, "Switch has no default case.")
	}
	return flow{alwaysReturns: allReturn && hasDefault}
}

func (a *Analyzer) analyzeTry(s *ast.Try, expected symbols.ResolvedType, scope *symbols.Scope) flow {
	tryChild := scope.NewChild(symbols.ScopeBlock, "", s.TryBlock)
	tryFlow := a.analyzeStatBlock(s.TryBlock, expected, tryChild)
	catchChild := scope.NewChild(symbols.ScopeBlock, "", s.CatchBlock)
	catchFlow := a.analyzeStatBlock(s.CatchBlock, expected, catchChild)
	return flow{alwaysReturns: tryFlow.alwaysReturns && catchFlow.alwaysReturns}
}
