package parser

import (
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/highlight"
	"github.com/funvibe/angelscript-front/internal/parserstate"
	"github.com/funvibe/angelscript-front/internal/token"
)

// parseAssignExpr parses `CONDITION [ASSIGNOP ASSIGN]`, right-associative.
func (p *Parser) parseAssignExpr() *ast.Assign {
	if !p.enterRecursive() {
		defer p.leaveRecursive()
		return &ast.Assign{Head: &ast.Condition{Expr: &ast.ExprNode{}}}
	}
	defer p.leaveRecursive()

	start := p.s.Next(0)
	head := p.parseCondition()
	assign := &ast.Assign{Head: head}
	if text, parts, ok := p.peekAssignOp(); ok {
		assign.Op = p.commitVirtual(parts, text, highlight.Operator)
		assign.Tail = p.parseAssignExpr()
	}
	assign.NodeRange = p.rangeFrom(start)
	return assign
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "&=": true, "|=": true, "^=": true, "<<=": true,
}

// peekAssignOp recognizes a single-token assignment operator, or the two
// compound ones that only the '>' family needs synthesized from adjacent
// tokens (spec.md §4.2): '>>=' and '>>>='.
func (p *Parser) peekAssignOp() (string, []token.Token, bool) {
	if p.s.Next(0).Text == ">" {
		if text, parts := p.lookaheadGT(); text == ">>=" || text == ">>>=" {
			return text, parts, true
		}
		return "", nil, false
	}
	text := p.s.Next(0).Text
	if assignOps[text] {
		return text, []token.Token{p.s.Next(0)}, true
	}
	return "", nil, false
}

// parseCondition parses `EXPR ['?' ASSIGN ':' ASSIGN]`. Per spec.md §3, True
// and False are only both set when both branches, including the ':'
// separator, were actually present.
func (p *Parser) parseCondition() *ast.Condition {
	start := p.s.Next(0)
	expr := p.parseExprNode()
	cond := &ast.Condition{Expr: expr}
	if p.s.Next(0).Text == "?" {
		p.s.Commit(highlight.Operator)
		trueBranch := p.parseAssignExpr()
		if p.s.Expect(":", highlight.Operator) {
			cond.True = trueBranch
			cond.False = p.parseAssignExpr()
		}
	}
	cond.NodeRange = p.rangeFrom(start)
	return cond
}

// parseExprNode parses `EXPRTERM {EXPROP EXPRTERM}` as a flat, right-leaning
// list (spec.md §4.3). Precedence is deliberately not applied here; it is
// internal/analyzer's shunting-yard pass (§4.6) that reshapes this list.
func (p *Parser) parseExprNode() *ast.ExprNode {
	start := p.s.Next(0)
	node := &ast.ExprNode{Head: p.parseExprTerm()}
	if text, parts, ok := p.peekExprOp(); ok {
		op := p.commitExprOp(text, parts)
		node.Tail = &ast.ExprTail{Op: op, Rest: p.parseExprNode()}
	}
	node.NodeRange = p.rangeFrom(start)
	return node
}

var singleTokenExprOps = map[string]bool{
	"**": true, "*": true, "/": true, "%": true, "+": true, "-": true,
	"<<": true, "&": true, "^": true, "|": true, "<": true, "<=": true,
	"==": true, "!=": true, "is": true, "xor": true, "^^": true,
	"and": true, "&&": true, "or": true, "||": true,
}

// peekExprOp recognizes an EXPROP at the current position, synthesizing the
// '!is' and '>'-family virtual tokens spec.md §4.2 calls for.
func (p *Parser) peekExprOp() (string, []token.Token, bool) {
	if text, parts := p.lookaheadNotIs(); text != "" {
		return text, parts, true
	}
	if p.s.Next(0).Text == ">" {
		text, parts := p.lookaheadGT()
		return text, parts, true
	}
	text := p.s.Next(0).Text
	if singleTokenExprOps[text] {
		return text, []token.Token{p.s.Next(0)}, true
	}
	return "", nil, false
}

// commitExprOp advances past an operator, synthesizing a virtual token only
// when more than one underlying token was combined to form it.
func (p *Parser) commitExprOp(text string, parts []token.Token) token.Token {
	if len(parts) <= 1 {
		return p.s.Commit(highlight.Operator)
	}
	return p.commitVirtual(parts, text, highlight.Operator)
}

// commitVirtual steps past every underlying token without individually
// highlighting them, then records a single highlight classification for the
// synthesized token (spec.md §4.2, §9 "virtual tokens as on-demand wrappers").
func (p *Parser) commitVirtual(parts []token.Token, text string, kind highlight.Kind) token.Token {
	for range parts {
		p.s.Step()
	}
	synth := token.Synthesize(text, parts...)
	p.s.Highlights.Add(synth, kind)
	return synth
}

// lookaheadGT builds the longest run of adjacent '>' tokens, optionally
// followed by an adjacent '=', without consuming anything. It always
// succeeds when the current token is '>' — the degenerate one-part result is
// just the comparison operator itself.
func (p *Parser) lookaheadGT() (string, []token.Token) {
	first := p.s.Next(0)
	if first.Text != ">" {
		return "", nil
	}
	second := p.s.Next(1)
	if second.Text == "=" && second.Adjacent {
		return ">=", []token.Token{first, second}
	}
	if second.Text != ">" || !second.Adjacent {
		return ">", []token.Token{first}
	}
	third := p.s.Next(2)
	if third.Text != ">" || !third.Adjacent {
		if third.Text == "=" && third.Adjacent {
			return ">>=", []token.Token{first, second, third}
		}
		return ">>", []token.Token{first, second}
	}
	fourth := p.s.Next(3)
	if fourth.Text == "=" && fourth.Adjacent {
		return ">>>=", []token.Token{first, second, third, fourth}
	}
	return ">>>", []token.Token{first, second, third}
}

func (p *Parser) lookaheadNotIs() (string, []token.Token) {
	first := p.s.Next(0)
	if first.Text != "!" {
		return "", nil
	}
	second := p.s.Next(1)
	if second.Text == "is" && second.Adjacent {
		return "!is", []token.Token{first, second}
	}
	return "", nil
}

var preOps = map[string]bool{
	"-": true, "+": true, "!": true, "~": true, "++": true, "--": true, "not": true,
}

func isPreOp(tok token.Token) bool {
	return tok.Flags.Has(token.IsExprPreOp) || preOps[tok.Text]
}

// parseExprTerm disambiguates the two ExprTerm variants (spec.md §4.3) by
// speculatively attempting `[TYPE '='] INITLIST` first, backtracking to the
// `{preOp} ExprValue {postOp}` form on any mismatch.
func (p *Parser) parseExprTerm() ast.ExprTerm {
	start := p.s.Next(0)

	if p.s.Next(0).Text == "{" {
		return &ast.ExprTermInitList{NodeRange: p.rangeFrom(start), List: p.parseInitList()}
	}

	mark := p.s.Mark()
	if ty, kind := p.parseType(); kind == parserstate.Ok && p.s.Next(0).Text == "=" {
		eqMark := p.s.Mark()
		p.s.Commit(highlight.Operator)
		if p.s.Next(0).Text == "{" {
			list := p.parseInitList()
			return &ast.ExprTermInitList{NodeRange: p.rangeFrom(start), Type: ty, List: list}
		}
		p.s.Backtrack(eqMark)
	}
	p.s.Backtrack(mark)

	return p.parseExprTermValue()
}

func (p *Parser) parseExprTermValue() *ast.ExprTermValue {
	start := p.s.Next(0)
	var preTokens []token.Token
	for isPreOp(p.s.Next(0)) {
		preTokens = append(preTokens, p.s.Commit(highlight.Operator))
	}
	value := p.parseExprValue()
	var postOps []*ast.PostOp
	for {
		op, ok := p.parsePostOp()
		if !ok {
			break
		}
		postOps = append(postOps, op)
	}
	return &ast.ExprTermValue{NodeRange: p.rangeFrom(start), PreOps: preTokens, Value: value, PostOps: postOps}
}

func (p *Parser) parsePostOp() (*ast.PostOp, bool) {
	start := p.s.Next(0)
	switch p.s.Next(0).Text {
	case ".":
		p.s.Commit(highlight.Operator)
		if !isIdentLike(p.s.Next(0)) {
			p.s.Error("Expected a member name.")
			return &ast.PostOp{NodeRange: p.rangeFrom(start), Kind: ast.PostMember}, true
		}
		name := p.s.Commit(highlight.Variable)
		if p.s.Next(0).Text == "(" {
			args := p.parseArgList()
			return &ast.PostOp{NodeRange: p.rangeFrom(start), Kind: ast.PostMethodCall, Name: name, Args: args}, true
		}
		return &ast.PostOp{NodeRange: p.rangeFrom(start), Kind: ast.PostMember, Name: name}, true
	case "[":
		args := p.parseIndexArgList()
		return &ast.PostOp{NodeRange: p.rangeFrom(start), Kind: ast.PostIndex, Args: args}, true
	case "(":
		args := p.parseArgList()
		return &ast.PostOp{NodeRange: p.rangeFrom(start), Kind: ast.PostCall, Args: args}, true
	case "++", "--":
		op := p.s.Commit(highlight.Operator)
		return &ast.PostOp{NodeRange: p.rangeFrom(start), Kind: ast.PostIncDec, Op: op}, true
	default:
		return nil, false
	}
}

// parseExprValue dispatches ExprValue in the fixed, most-specific-first order
// spec.md §4.3 calls for: Cast, parenthesis, Literal, Lambda, FuncCall,
// ConstructCall, VarAccess.
func (p *Parser) parseExprValue() ast.Expr {
	start := p.s.Next(0)
	switch {
	case p.s.Next(0).Text == "void":
		p.s.Commit(highlight.Keyword)
		return &ast.VoidExpr{NodeRange: p.rangeFrom(start)}
	case p.s.Next(0).Text == "cast":
		return p.parseCastExpr()
	case p.s.Next(0).Text == "(":
		return p.parseParenExpr()
	case isLiteralStart(p.s.Next(0)):
		return p.parseLiteralExpr()
	case p.s.Next(0).Text == "function" && p.lambdaLooksAhead():
		return p.parseLambdaExpr()
	}
	return p.parseCallOrAccess()
}

func (p *Parser) parseCastExpr() *ast.Cast {
	start := p.s.Commit(highlight.Keyword) // 'cast'
	if !p.s.Expect("<", highlight.Operator) {
		return &ast.Cast{NodeRange: p.rangeFrom(start)}
	}
	ty, kind := p.parseType()
	if kind != parserstate.Ok {
		p.s.Error("Expected a type name.")
	}
	p.closeAngleBracket()
	if !p.s.Expect("(", highlight.Operator) {
		return &ast.Cast{NodeRange: p.rangeFrom(start), Type: ty}
	}
	value := p.parseAssignExpr()
	p.s.Expect(")", highlight.Operator)
	return &ast.Cast{NodeRange: p.rangeFrom(start), Type: ty, Value: value}
}

func (p *Parser) parseParenExpr() *ast.ParenExpr {
	start := p.s.Commit(highlight.Operator) // '('
	inner := p.parseAssignExpr()
	p.s.Expect(")", highlight.Operator)
	return &ast.ParenExpr{NodeRange: p.rangeFrom(start), Inner: inner}
}

func isLiteralStart(tok token.Token) bool {
	if tok.Kind == token.Number || tok.Kind == token.String {
		return true
	}
	switch tok.Text {
	case "true", "false", "null":
		return true
	}
	return false
}

func (p *Parser) parseLiteralExpr() *ast.Literal {
	start := p.s.Next(0)
	var kind ast.LiteralKind
	switch {
	case start.Text == "true", start.Text == "false":
		kind = ast.LiteralBool
		p.s.Commit(highlight.Builtin)
	case start.Text == "null":
		kind = ast.LiteralNull
		p.s.Commit(highlight.Builtin)
	case start.Kind == token.String:
		kind = ast.LiteralString
		p.s.Commit(highlight.String)
	default:
		kind = ast.LiteralNumber
		p.s.Commit(highlight.Number)
	}
	return &ast.Literal{NodeRange: p.rangeFrom(start), Kind: kind, Token: start}
}

// lambdaLooksAhead implements the lambda lookahead heuristic of spec.md
// §4.2/§9: scan forward from 'function' for a '(' followed eventually by a
// matching ')' then '{', WITHOUT balancing nested parentheses — a lambda
// whose parameter list itself needs nested parens (none legally do, since
// AngelScript lambda params are bare `[TYPE] IDENT`) would be misread, which
// is the exact gap spec.md §9 calls out as worth a targeted test.
func (p *Parser) lambdaLooksAhead() bool {
	if p.s.Next(1).Text != "(" {
		return false
	}
	for i := 2; i < 64; i++ {
		tok := p.s.Next(i)
		if tok.Kind == token.EOF {
			return false
		}
		if tok.Text == ")" {
			return p.s.Next(i + 1).Text == "{"
		}
	}
	return false
}

func (p *Parser) parseLambdaExpr() *ast.Lambda {
	start := p.s.Commit(highlight.Keyword) // 'function'
	p.s.Expect("(", highlight.Operator)
	var params []*ast.LambdaParam
	for p.s.Next(0).Text != ")" && !p.s.IsEnd() {
		param := &ast.LambdaParam{}
		if ty, kind := p.parseType(); kind == parserstate.Ok {
			param.Type = ty
		}
		if isIdentLike(p.s.Next(0)) {
			param.Name = p.s.Commit(highlight.Parameter)
		}
		params = append(params, param)
		if !p.expectContinuousOrClose(",", ")", true) {
			break
		}
	}
	if p.s.Next(0).Text == ")" {
		p.s.Commit(highlight.Operator)
	}
	body := p.parseStatBlock()
	return &ast.Lambda{NodeRange: p.rangeFrom(start), Params: params, Body: body}
}

// parseCallOrAccess resolves the remaining three ExprValue shapes —
// ConstructCall, FuncCall, VarAccess — which all start with an optional
// SCOPE and a type-or-identifier head. A head that can only ever be a TYPE
// (a primitive keyword, 'const', 'auto', '?', or an array/handle suffix) is
// unambiguously a ConstructCall when followed by '('. A bare identifier head
// is ambiguous between a function name and a user type's constructor name;
// spec.md §4.5 resolves that ambiguity in the analyzer by symbol kind, so the
// parser always emits FuncCall for that shape and leaves the reclassification
// to analysis.
func (p *Parser) parseCallOrAccess() ast.Expr {
	start := p.s.Next(0)
	mark := p.s.Mark()

	if p.looksLikeExplicitTypeHead() {
		ty, kind := p.parseType()
		if kind == parserstate.Ok && p.s.Next(0).Text == "(" {
			args := p.parseArgList()
			return &ast.ConstructCall{NodeRange: p.rangeFrom(start), Type: ty, Args: args}
		}
		if kind == parserstate.Pending {
			return &ast.ConstructCall{NodeRange: p.rangeFrom(start), Type: ty}
		}
		p.s.Backtrack(mark)
	}

	scope, scopeKind := p.parseScope()
	if scopeKind == parserstate.Pending {
		p.s.Error("Expected an expression.")
		return &ast.VarAccess{NodeRange: p.rangeFrom(start)}
	}

	if !isIdentLike(p.s.Next(0)) {
		p.s.Backtrack(mark)
		p.s.Error("Expected an expression.")
		p.s.Step()
		return &ast.VarAccess{NodeRange: p.rangeFrom(start)}
	}
	name := p.s.Commit(highlight.Variable)

	var templateArgs []*ast.Type
	if args, kind := p.parseTypeTemplates(); kind == parserstate.Ok && p.s.Next(0).Text == "(" {
		templateArgs = args
	}

	if p.s.Next(0).Text == "(" {
		args := p.parseArgList()
		return &ast.FuncCall{NodeRange: p.rangeFrom(start), Scope: scope, Name: name, TemplateArgs: templateArgs, Args: args}
	}
	return &ast.VarAccess{NodeRange: p.rangeFrom(start), Scope: scope, Name: name}
}

// looksLikeExplicitTypeHead reports whether the current position can only be
// the start of a TYPE, never a plain identifier: 'const', 'auto', '?', or a
// primitive type keyword.
func (p *Parser) looksLikeExplicitTypeHead() bool {
	text := p.s.Next(0).Text
	return text == "const" || text == "auto" || text == "?" || primitiveTypes[text]
}

// parseInitList parses `'{' [ASSIGN|INITLIST] {',' [ASSIGN|INITLIST]} '}'`.
func (p *Parser) parseInitList() *ast.InitList {
	start := p.s.Next(0)
	if !p.s.Expect("{", highlight.Operator) {
		return &ast.InitList{NodeRange: p.rangeFrom(start)}
	}
	var items []ast.Expr
	for p.s.Next(0).Text != "}" && !p.s.IsEnd() {
		if p.s.Next(0).Text == "," {
			p.s.Commit(highlight.Operator)
			continue
		}
		if p.s.Next(0).Text == "{" {
			items = append(items, p.parseInitList())
		} else {
			items = append(items, p.parseAssignExpr())
		}
		if !p.expectContinuousOrClose(",", "}", true) {
			return &ast.InitList{NodeRange: p.rangeFrom(start), Items: items}
		}
	}
	if p.s.Next(0).Text == "}" {
		p.s.Commit(highlight.Operator)
	}
	return &ast.InitList{NodeRange: p.rangeFrom(start), Items: items}
}

// parseArgList parses a parenthesized, comma-separated, optionally-named
// argument list: `'(' [ARG {',' ARG}] ')'`, ARG := [IDENT ':'] ASSIGN.
func (p *Parser) parseArgList() *ast.ArgList {
	start := p.s.Next(0)
	if !p.s.Expect("(", highlight.Operator) {
		return &ast.ArgList{NodeRange: p.rangeFrom(start)}
	}
	var args []*ast.Arg
	for p.s.Next(0).Text != ")" && !p.s.IsEnd() {
		args = append(args, p.parseArg())
		if !p.expectContinuousOrClose(",", ")", true) {
			return &ast.ArgList{NodeRange: p.rangeFrom(start), Args: args}
		}
	}
	if p.s.Next(0).Text == ")" {
		p.s.Commit(highlight.Operator)
	}
	return &ast.ArgList{NodeRange: p.rangeFrom(start), Args: args}
}

// parseIndexArgList parses the same ARG list shape but bracket-delimited, for
// `value[a, b]` indexer access.
func (p *Parser) parseIndexArgList() *ast.ArgList {
	start := p.s.Next(0)
	if !p.s.Expect("[", highlight.Operator) {
		return &ast.ArgList{NodeRange: p.rangeFrom(start)}
	}
	var args []*ast.Arg
	for p.s.Next(0).Text != "]" && !p.s.IsEnd() {
		args = append(args, p.parseArg())
		if !p.expectContinuousOrClose(",", "]", true) {
			return &ast.ArgList{NodeRange: p.rangeFrom(start), Args: args}
		}
	}
	if p.s.Next(0).Text == "]" {
		p.s.Commit(highlight.Operator)
	}
	return &ast.ArgList{NodeRange: p.rangeFrom(start), Args: args}
}

func (p *Parser) parseArg() *ast.Arg {
	if isIdentLike(p.s.Next(0)) && p.s.Next(1).Text == ":" {
		name := p.s.Commit(highlight.Parameter)
		p.s.Commit(highlight.Operator) // ':'
		return &ast.Arg{Name: name, Value: p.parseAssignExpr()}
	}
	return &ast.Arg{Value: p.parseAssignExpr()}
}
