package analyzer

import (
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/hoist"
	"github.com/funvibe/angelscript-front/internal/symbols"
)

// analyzeTypeNode resolves an ast.Type the same way hoisting did. When the
// type resolves to a declared symbol, that symbol is recorded on the scope's
// Referenced list and a Type completion hint is added; an unresolved name is
// returned as-is and not recorded.
func (a *Analyzer) analyzeTypeNode(scope *symbols.Scope, t *ast.Type) symbols.ResolvedType {
	resolved := hoist.ResolveType(scope, t)
	if resolved.Decl != nil {
		scope.Record(resolved.Decl)
		scope.Hint(symbols.HintType, t)
	}
	return resolved
}

// analyzeAssign analyzes `CONDITION [ASSIGNOP ASSIGN]`. An assignment
// operator on a user type rewrites to the matching `opXxxAssign` alias per
// spec.md §4.5; the rewrite itself lives in operators.go since it shares the
// alias table with binary operators.
func (a *Analyzer) analyzeAssign(assign *ast.Assign, scope *symbols.Scope) symbols.ResolvedType {
	head := a.analyzeCondition(assign.Head, scope)
	if assign.Tail == nil {
		return head
	}
	tail := a.analyzeAssign(assign.Tail, scope)
	return a.analyzeAssignOp(assign.Op, head, tail, scope)
}

func (a *Analyzer) analyzeCondition(cond *ast.Condition, scope *symbols.Scope) symbols.ResolvedType {
	exprType := a.analyzeExprNode(cond.Expr, scope)
	if cond.True == nil || cond.False == nil {
		return exprType
	}
	trueType := a.analyzeAssign(cond.True, scope)
	a.analyzeAssign(cond.False, scope)
	return trueType
}

// analyzeExprNode resolves the flat EXPRTERM {EXPROP EXPRTERM} list by
// handing it to the shunting-yard pass (spec.md §4.6), which is the sole
// authority on operator precedence.
func (a *Analyzer) analyzeExprNode(expr *ast.ExprNode, scope *symbols.Scope) symbols.ResolvedType {
	return a.evalShuntingYard(expr, scope)
}

func (a *Analyzer) analyzeExprTerm(term ast.ExprTerm, scope *symbols.Scope) symbols.ResolvedType {
	switch t := term.(type) {
	case *ast.ExprTermInitList:
		if t.Type != nil {
			a.analyzeTypeNode(scope, t.Type)
		}
		a.analyzeInitList(t.List, scope)
		return symbols.ResolvedType{Tag: symbols.Unresolved, Name: "initlist"}
	case *ast.ExprTermValue:
		return a.analyzeExprTermValue(t, scope)
	default:
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
}

func (a *Analyzer) analyzeExprTermValue(t *ast.ExprTermValue, scope *symbols.Scope) symbols.ResolvedType {
	value := a.analyzeExprValue(t.Value, scope)
	for _, op := range t.PostOps {
		value = a.analyzePostOp(op, value, scope)
	}
	if len(t.PreOps) > 0 {
		value = a.applyPreOps(t.PreOps, value, scope)
	}
	return value
}

func (a *Analyzer) analyzeExprValue(expr ast.Expr, scope *symbols.Scope) symbols.ResolvedType {
	switch e := expr.(type) {
	case *ast.Literal:
		return analyzeLiteral(e)
	case *ast.VoidExpr:
		return symbols.ResolvedType{Tag: symbols.Void}
	case *ast.ParenExpr:
		return a.analyzeAssign(e.Inner, scope)
	case *ast.Cast:
		return a.analyzeCast(e, scope)
	case *ast.Lambda:
		return a.analyzeLambda(e, scope)
	case *ast.FuncCall:
		return a.analyzeFuncCall(e, scope)
	case *ast.ConstructCall:
		return a.analyzeConstructCall(e, scope)
	case *ast.VarAccess:
		return a.analyzeVarAccess(e, scope)
	default:
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
}

func analyzeLiteral(l *ast.Literal) symbols.ResolvedType {
	switch l.Kind {
	case ast.LiteralBool:
		return symbols.ResolvedType{Tag: symbols.Primitive, Name: "bool"}
	case ast.LiteralNull:
		// spec.md §9 open question: null-literal type handling is left
		// unspecified upstream; Unresolved lets every consumer degrade
		// gracefully instead of picking an arbitrary handle type.
		return symbols.ResolvedType{Tag: symbols.Unresolved, Name: "null"}
	case ast.LiteralString:
		return symbols.ResolvedType{Tag: symbols.UserType, Name: "string"}
	case ast.LiteralBits:
		return symbols.ResolvedType{Tag: symbols.Primitive, Name: "uint64"}
	default:
		return symbols.ResolvedType{Tag: symbols.Primitive, Name: "int"}
	}
}

func (a *Analyzer) analyzeCast(c *ast.Cast, scope *symbols.Scope) symbols.ResolvedType {
	ty := symbols.ResolvedType{Tag: symbols.Unresolved}
	if c.Type != nil {
		ty = a.analyzeTypeNode(scope, c.Type)
	}
	if c.Value != nil {
		a.analyzeAssign(c.Value, scope)
	}
	return ty
}

// analyzeLambda resolves lambda parameter types when present and walks the
// body in a fresh function scope. Per spec.md §9's open question, a
// parameter with no declared type and no inferable context resolves to
// Unresolved: context-sensitive inference is unimplemented.
func (a *Analyzer) analyzeLambda(l *ast.Lambda, scope *symbols.Scope) symbols.ResolvedType {
	lambdaScope := scope.NewChild(symbols.ScopeFunction, "", l)
	for _, param := range l.Params {
		pt := symbols.ResolvedType{Tag: symbols.Unresolved}
		if param.Type != nil {
			pt = a.analyzeTypeNode(scope, param.Type)
		}
		if param.Name.Text != "" {
			lambdaScope.Declare(&symbols.Variable{SymName: param.Name.Text, Type: pt})
		}
	}
	a.analyzeStatBlock(l.Body, symbols.ResolvedType{Tag: symbols.Unresolved}, lambdaScope)
	return symbols.ResolvedType{Tag: symbols.Unresolved, Name: "lambda"}
}

func (a *Analyzer) analyzeInitList(list *ast.InitList, scope *symbols.Scope) {
	if list == nil {
		return
	}
	for _, item := range list.Items {
		switch v := item.(type) {
		case *ast.Assign:
			a.analyzeAssign(v, scope)
		case *ast.InitList:
			a.analyzeInitList(v, scope)
		}
	}
}

// analyzeArgList analyzes every call argument and records an Arguments
// completion hint for the whole list, covering FuncCall/ConstructCall/
// MethodCall/Indexer/opCall alike since they all funnel through here
// (spec.md §2 "Completion-hint collector", §4.5, §6).
func (a *Analyzer) analyzeArgList(args *ast.ArgList, scope *symbols.Scope) []symbols.ResolvedType {
	if args == nil {
		return nil
	}
	scope.Hint(symbols.HintArguments, args)
	types := make([]symbols.ResolvedType, len(args.Args))
	for i, arg := range args.Args {
		if arg.Value != nil {
			types[i] = a.analyzeAssign(arg.Value, scope)
		} else {
			types[i] = symbols.ResolvedType{Tag: symbols.Unresolved}
		}
	}
	return types
}
