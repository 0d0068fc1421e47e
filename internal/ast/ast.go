// Package ast is the tagged-variant AST produced by internal/parser and
// walked by internal/analyzer. Every node carries a NodeRange establishing
// its source span (spec.md §3 invariant: start <= end in token order, and
// sibling ranges never overlap).
package ast

import "github.com/funvibe/angelscript-front/internal/token"

// NodeRange is the span of tokens a node was built from. Storing the token
// values directly (rather than indices into a separate arena) is safe here
// because tokens and nodes are immutable once constructed (see DESIGN.md).
type NodeRange struct {
	Start token.Token
	End   token.Token
}

// Node is the base interface every AST node implements.
type Node interface {
	Range() NodeRange
	Accept(v Visitor)
}

// Decl is any top-level or member declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is any statement inside a StatBlock.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any expression-family node (Expr, ExprTerm, ExprValue, Assign,
// Condition, Literal, FuncCall, VarAccess, ConstructCall, Cast, Lambda,
// InitList, ArgList all satisfy this).
type Expr interface {
	Node
	exprNode()
}

// Visitor dispatches over every production. Analyzer and any future tooling
// implement it instead of type-switching on concrete node types.
type Visitor interface {
	VisitScript(*Script)
	VisitNamespace(*Namespace)
	VisitImport(*Import)
	VisitTypeDef(*TypeDef)
	VisitMixin(*Mixin)
	VisitClass(*Class)
	VisitInterface(*Interface)
	VisitEnum(*Enum)
	VisitFuncDef(*FuncDef)
	VisitIntfMethod(*IntfMethod)
	VisitFunc(*Func)
	VisitVirtualProp(*VirtualProp)
	VisitVar(*Var)

	VisitType(*Type)
	VisitScope(*Scope)

	VisitExpr(*ExprNode)
	VisitExprTermInitList(*ExprTermInitList)
	VisitExprTermValue(*ExprTermValue)
	VisitLiteral(*Literal)
	VisitFuncCall(*FuncCall)
	VisitVarAccess(*VarAccess)
	VisitConstructCall(*ConstructCall)
	VisitCast(*Cast)
	VisitLambda(*Lambda)
	VisitVoidExpr(*VoidExpr)
	VisitParenExpr(*ParenExpr)
	VisitInitList(*InitList)
	VisitArgList(*ArgList)
	VisitAssign(*Assign)
	VisitCondition(*Condition)

	VisitIf(*If)
	VisitFor(*For)
	VisitWhile(*While)
	VisitDoWhile(*DoWhile)
	VisitSwitch(*Switch)
	VisitTry(*Try)
	VisitReturn(*Return)
	VisitBreak(*Break)
	VisitContinue(*Continue)
	VisitExprStat(*ExprStat)
	VisitStatBlock(*StatBlock)
}
