package parser

import (
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/highlight"
	"github.com/funvibe/angelscript-front/internal/parserstate"
)

func (p *Parser) parseStatBlock() *ast.StatBlock {
	if !p.enterRecursive() {
		defer p.leaveRecursive()
		return &ast.StatBlock{NodeRange: p.rangeFrom(p.s.Next(0))}
	}
	defer p.leaveRecursive()

	start := p.s.Next(0)
	if !p.s.Expect("{", highlight.Operator) {
		return &ast.StatBlock{NodeRange: p.rangeFrom(start)}
	}
	var stmts []ast.Stmt
	for p.s.Next(0).Text != "}" && !p.s.IsEnd() {
		stmt, kind := p.parseStatement()
		if kind == parserstate.Mismatch {
			p.skipToken("a statement")
			continue
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.s.Expect("}", highlight.Operator)
	return &ast.StatBlock{NodeRange: p.rangeFrom(start), Statements: stmts}
}

func (p *Parser) parseStatement() (ast.Stmt, parserstate.ResultKind) {
	switch p.s.Next(0).Text {
	case "{":
		return p.parseStatBlock(), parserstate.Ok
	case "if":
		return p.parseIf()
	case "for":
		return p.parseFor()
	case "while":
		return p.parseWhile()
	case "do":
		return p.parseDoWhile()
	case "switch":
		return p.parseSwitch()
	case "try":
		return p.parseTry()
	case "return":
		return p.parseReturn()
	case "break":
		start := p.s.Commit(highlight.Keyword)
		p.s.Expect(";", highlight.Operator)
		return &ast.Break{NodeRange: p.rangeFrom(start)}, parserstate.Ok
	case "continue":
		start := p.s.Commit(highlight.Keyword)
		p.s.Expect(";", highlight.Operator)
		return &ast.Continue{NodeRange: p.rangeFrom(start)}, parserstate.Ok
	}

	if decl, kind := p.parseVar(ast.AccessDefault); kind != parserstate.Mismatch {
		if v, ok := decl.(*ast.Var); ok {
			return v, kind
		}
		return nil, kind
	}

	return p.parseExprStat()
}

func (p *Parser) parseIf() (ast.Stmt, parserstate.ResultKind) {
	start := p.s.Commit(highlight.Keyword) // 'if'
	if !p.s.Expect("(", highlight.Operator) {
		return nil, parserstate.Pending
	}
	cond := p.parseAssignExpr()
	p.s.Expect(")", highlight.Operator)
	then, kind := p.parseStatement()
	if kind == parserstate.Mismatch {
		p.s.Error("Expected a statement.")
		kind = parserstate.Pending
	}
	stmt := &ast.If{Cond: cond, Then: then}
	if p.s.Next(0).Text == "else" {
		p.s.Commit(highlight.Keyword)
		elseStmt, elseKind := p.parseStatement()
		if elseKind == parserstate.Mismatch {
			p.s.Error("Expected a statement.")
		}
		stmt.Else = elseStmt
	}
	stmt.NodeRange = p.rangeFrom(start)
	return stmt, parserstate.Ok
}

func (p *Parser) parseFor() (ast.Stmt, parserstate.ResultKind) {
	start := p.s.Commit(highlight.Keyword) // 'for'
	if !p.s.Expect("(", highlight.Operator) {
		return nil, parserstate.Pending
	}
	var init ast.Stmt
	if decl, kind := p.parseVar(ast.AccessDefault); kind != parserstate.Mismatch {
		init = decl.(*ast.Var)
	} else {
		init = p.parseExprStatNoDiag()
	}

	var cond *ast.Assign
	if p.s.Next(0).Text != ";" {
		cond = p.parseAssignExpr()
	}
	p.s.Expect(";", highlight.Operator)

	var post []*ast.Assign
	for p.s.Next(0).Text != ")" && !p.s.IsEnd() {
		post = append(post, p.parseAssignExpr())
		if p.s.Next(0).Text == "," {
			p.s.Commit(highlight.Operator)
			continue
		}
		break
	}
	p.s.Expect(")", highlight.Operator)
	body, kind := p.parseStatement()
	if kind == parserstate.Mismatch {
		p.s.Error("Expected a statement.")
	}
	return &ast.For{NodeRange: p.rangeFrom(start), Init: init, Cond: cond, Post: post, Body: body}, parserstate.Ok
}

func (p *Parser) parseWhile() (ast.Stmt, parserstate.ResultKind) {
	start := p.s.Commit(highlight.Keyword) // 'while'
	if !p.s.Expect("(", highlight.Operator) {
		return nil, parserstate.Pending
	}
	cond := p.parseAssignExpr()
	p.s.Expect(")", highlight.Operator)
	body, kind := p.parseStatement()
	if kind == parserstate.Mismatch {
		p.s.Error("Expected a statement.")
	}
	return &ast.While{NodeRange: p.rangeFrom(start), Cond: cond, Body: body}, parserstate.Ok
}

func (p *Parser) parseDoWhile() (ast.Stmt, parserstate.ResultKind) {
	start := p.s.Commit(highlight.Keyword) // 'do'
	body, kind := p.parseStatement()
	if kind == parserstate.Mismatch {
		p.s.Error("Expected a statement.")
	}
	if !p.s.Expect("while", highlight.Keyword) {
		return nil, parserstate.Pending
	}
	if !p.s.Expect("(", highlight.Operator) {
		return nil, parserstate.Pending
	}
	cond := p.parseAssignExpr()
	p.s.Expect(")", highlight.Operator)
	p.s.Expect(";", highlight.Operator)
	return &ast.DoWhile{NodeRange: p.rangeFrom(start), Body: body, Cond: cond}, parserstate.Ok
}

func (p *Parser) parseSwitch() (ast.Stmt, parserstate.ResultKind) {
	start := p.s.Commit(highlight.Keyword) // 'switch'
	if !p.s.Expect("(", highlight.Operator) {
		return nil, parserstate.Pending
	}
	cond := p.parseAssignExpr()
	p.s.Expect(")", highlight.Operator)
	if !p.s.Expect("{", highlight.Operator) {
		return nil, parserstate.Pending
	}
	var cases []*ast.Case
	for p.s.Next(0).Text != "}" && !p.s.IsEnd() {
		c, ok := p.parseCase()
		if !ok {
			p.skipToken("'case' or 'default'")
			continue
		}
		cases = append(cases, c)
	}
	p.s.Expect("}", highlight.Operator)
	return &ast.Switch{NodeRange: p.rangeFrom(start), Cond: cond, Cases: cases}, parserstate.Ok
}

// parseCase absorbs statements until a Mismatch is returned — i.e. the next
// token starts a sibling case or the closing brace (spec.md §4.2).
func (p *Parser) parseCase() (*ast.Case, bool) {
	start := p.s.Next(0)
	var value ast.Expr
	switch p.s.Next(0).Text {
	case "case":
		p.s.Commit(highlight.Keyword)
		value = p.parseAssignExpr()
	case "default":
		p.s.Commit(highlight.Keyword)
	default:
		return nil, false
	}
	if !p.s.Expect(":", highlight.Operator) {
		return &ast.Case{NodeRange: p.rangeFrom(start), Value: value}, true
	}
	var stmts []ast.Stmt
	for {
		if p.s.Next(0).Text == "case" || p.s.Next(0).Text == "default" || p.s.Next(0).Text == "}" || p.s.IsEnd() {
			break
		}
		stmt, kind := p.parseStatement()
		if kind == parserstate.Mismatch {
			break
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return &ast.Case{NodeRange: p.rangeFrom(start), Value: value, Statements: stmts}, true
}

func (p *Parser) parseTry() (ast.Stmt, parserstate.ResultKind) {
	start := p.s.Commit(highlight.Keyword) // 'try'
	tryBlock := p.parseStatBlock()
	if !p.s.Expect("catch", highlight.Keyword) {
		return nil, parserstate.Pending
	}
	catchBlock := p.parseStatBlock()
	return &ast.Try{NodeRange: p.rangeFrom(start), TryBlock: tryBlock, CatchBlock: catchBlock}, parserstate.Ok
}

func (p *Parser) parseReturn() (ast.Stmt, parserstate.ResultKind) {
	start := p.s.Commit(highlight.Keyword) // 'return'
	var value *ast.Assign
	if p.s.Next(0).Text != ";" {
		value = p.parseAssignExpr()
	}
	p.s.Expect(";", highlight.Operator)
	return &ast.Return{NodeRange: p.rangeFrom(start), Value: value}, parserstate.Ok
}

func (p *Parser) parseExprStat() (ast.Stmt, parserstate.ResultKind) {
	start := p.s.Next(0)
	if p.s.Next(0).Text == ";" {
		p.s.Commit(highlight.Operator)
		return &ast.ExprStat{NodeRange: p.rangeFrom(start)}, parserstate.Ok
	}
	value := p.parseAssignExpr()
	if value == nil {
		return nil, parserstate.Mismatch
	}
	p.s.Expect(";", highlight.Operator)
	return &ast.ExprStat{NodeRange: p.rangeFrom(start), Value: value}, parserstate.Ok
}

// parseExprStatNoDiag is used for the optional `for (;;)` init clause: a
// missing expression there is not an error, it is simply absent.
func (p *Parser) parseExprStatNoDiag() ast.Stmt {
	start := p.s.Next(0)
	if p.s.Next(0).Text == ";" {
		p.s.Commit(highlight.Operator)
		return &ast.ExprStat{NodeRange: p.rangeFrom(start)}
	}
	value := p.parseAssignExpr()
	p.s.Expect(";", highlight.Operator)
	return &ast.ExprStat{NodeRange: p.rangeFrom(start), Value: value}
}
