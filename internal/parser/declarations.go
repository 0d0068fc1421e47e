package parser

import (
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/highlight"
	"github.com/funvibe/angelscript-front/internal/parserstate"
	"github.com/funvibe/angelscript-front/internal/token"
)

// parseScript parses `{IMPORT|ENUM|TYPEDEF|CLASS|MIXIN|INTERFACE|FUNCDEF|
// VIRTPROP|VAR|FUNC|NAMESPACE|';'}`. When topLevel is false this is a
// namespace body, closed by '}' instead of end-of-input.
func (p *Parser) parseScript(topLevel bool) *ast.Script {
	start := p.s.Next(0)
	script := &ast.Script{}

	for {
		if topLevel {
			if p.s.IsEnd() {
				break
			}
		} else if p.s.Next(0).Text == "}" || p.s.IsEnd() {
			break
		}

		if p.s.Next(0).Text == ";" {
			p.s.Commit(highlight.Operator)
			continue
		}

		decl, kind := p.parseTopLevelDecl()
		if kind == parserstate.Mismatch {
			p.skipToken("a top-level declaration")
			continue
		}
		if decl != nil {
			script.Decls = append(script.Decls, decl)
		}
	}

	script.NodeRange = p.rangeFrom(start)
	return script
}

// parseMetadata parses a bracket-balanced `[...]` metadata prefix, preserving
// the tokens verbatim as decorators. Returns nil if no '[' is present.
// Unterminated metadata backtracks cleanly (Mismatch).
func (p *Parser) parseMetadata() []token.Token {
	if p.s.Next(0).Text != "[" {
		return nil
	}
	mark := p.s.Mark()
	depth := 0
	var toks []token.Token
	for {
		tok := p.s.Next(0)
		if tok.Kind == token.EOF {
			p.s.Backtrack(mark)
			return nil
		}
		switch tok.Text {
		case "[":
			depth++
		case "]":
			depth--
		}
		toks = append(toks, p.s.Commit(highlight.Decorator))
		if depth == 0 {
			return toks
		}
	}
}

func (p *Parser) parseTopLevelDecl() (ast.Decl, parserstate.ResultKind) {
	switch p.s.Next(0).Text {
	case "namespace":
		return p.parseNamespace()
	case "import":
		return p.parseImport()
	case "typedef":
		return p.parseTypeDef()
	case "mixin":
		return p.parseMixin()
	}

	metadata := p.parseMetadata()

	mark := p.s.Mark()
	if attrs, matchedHead := p.peekClassLikeHead(); matchedHead {
		switch p.s.Next(0).Text {
		case "class":
			return p.parseClass(metadata, attrs)
		case "interface":
			return p.parseInterface(attrs)
		case "enum":
			return p.parseEnum(attrs)
		case "funcdef":
			return p.parseFuncDef(attrs)
		}
	}
	p.s.Backtrack(mark)

	if metadata != nil {
		// Metadata must be followed by one of class/interface/enum/funcdef/
		// func/var; fall through to member-style disambiguation.
	}

	if decl, kind := p.parseFunc(metadata, ast.AccessDefault); kind != parserstate.Mismatch {
		return decl, kind
	}
	if decl, kind := p.parseVirtualProp(ast.AccessDefault); kind != parserstate.Mismatch {
		return decl, kind
	}
	if decl, kind := p.parseVar(ast.AccessDefault); kind != parserstate.Mismatch {
		return decl, kind
	}
	return nil, parserstate.Mismatch
}

// peekClassLikeHead speculatively consumes entity attributes and reports
// whether the token that follows is one of 'class'/'interface'/'enum'/
// 'funcdef', i.e. whether the caller is looking at a class-like head
// (spec.md §4.2: "class-head entity attributes shared with enum and
// interface").
func (p *Parser) peekClassLikeHead() (ast.EntityAttributes, bool) {
	attrs := p.parseEntityAttributes()
	switch p.s.Next(0).Text {
	case "class", "interface", "enum", "funcdef":
		return attrs, true
	default:
		return attrs, false
	}
}

func (p *Parser) parseNamespace() (ast.Decl, parserstate.ResultKind) {
	start := p.s.Commit(highlight.Keyword) // 'namespace'
	var names []token.Token
	for {
		if !isIdentLike(p.s.Next(0)) {
			p.s.Error("Expected a namespace name.")
			return &ast.Namespace{NodeRange: p.rangeFrom(start), Names: names}, parserstate.Pending
		}
		names = append(names, p.s.Commit(highlight.Namespace))
		if p.s.Next(0).Text == "::" {
			p.s.Commit(highlight.Operator)
			continue
		}
		break
	}
	if !p.s.Expect("{", highlight.Operator) {
		return &ast.Namespace{NodeRange: p.rangeFrom(start), Names: names}, parserstate.Pending
	}
	body := p.parseScript(false)
	p.s.Expect("}", highlight.Operator)
	return &ast.Namespace{NodeRange: p.rangeFrom(start), Names: names, Body: body}, parserstate.Ok
}

func (p *Parser) parseImport() (ast.Decl, parserstate.ResultKind) {
	start := p.s.Commit(highlight.Keyword) // 'import'
	ty, kind := p.parseType()
	if kind != parserstate.Ok {
		p.s.Error("Expected a return type.")
		return nil, parserstate.Pending
	}
	isRef := false
	if p.s.Next(0).Text == "&" {
		isRef = true
		p.s.Commit(highlight.Operator)
	}
	if !isIdentLike(p.s.Next(0)) {
		p.s.Error("Expected an import name.")
		return nil, parserstate.Pending
	}
	name := p.s.Commit(highlight.Function)
	params, ok := p.parseParamList()
	if !ok {
		return nil, parserstate.Pending
	}
	attrs := p.parseFuncAttributes()
	if !p.s.Expect("from", highlight.Keyword) {
		return nil, parserstate.Pending
	}
	fromTok := p.s.Next(0)
	if fromTok.Kind != token.String {
		p.s.Error("Expected a module string.")
		return nil, parserstate.Pending
	}
	p.s.Commit(highlight.String)
	p.s.Expect(";", highlight.Operator)
	return &ast.Import{
		NodeRange: p.rangeFrom(start), ReturnType: ty, IsRef: isRef, Name: name,
		Params: params, FuncAttrs: attrs, From: fromTok,
	}, parserstate.Ok
}

func (p *Parser) parseTypeDef() (ast.Decl, parserstate.ResultKind) {
	start := p.s.Commit(highlight.Keyword) // 'typedef'
	primTok := p.s.Next(0)
	if !primitiveTypes[primTok.Text] {
		p.s.Error("Expected a primitive type.")
		return nil, parserstate.Pending
	}
	p.s.Commit(highlight.Builtin)
	if !isIdentLike(p.s.Next(0)) {
		p.s.Error("Expected a type alias name.")
		return nil, parserstate.Pending
	}
	name := p.s.Commit(highlight.Type)
	p.s.Expect(";", highlight.Operator)
	return &ast.TypeDef{NodeRange: p.rangeFrom(start), Primitive: primTok, Name: name}, parserstate.Ok
}

func (p *Parser) parseMixin() (ast.Decl, parserstate.ResultKind) {
	start := p.s.Commit(highlight.Keyword) // 'mixin'
	if p.s.Next(0).Text != "class" {
		p.s.Error("Expected 'class' after 'mixin'.")
		return nil, parserstate.Pending
	}
	decl, kind := p.parseClass(nil, ast.EntityAttributes{})
	if kind != parserstate.Ok {
		return nil, parserstate.Pending
	}
	class := decl.(*ast.Class)
	return &ast.Mixin{NodeRange: ast.NodeRange{Start: start, End: class.NodeRange.End}, Class: class}, parserstate.Ok
}

func (p *Parser) parseBaseList() []token.Token {
	if p.s.Next(0).Text != ":" {
		return nil
	}
	p.s.Commit(highlight.Operator)
	var bases []token.Token
	for {
		if !isIdentLike(p.s.Next(0)) {
			p.s.Error("Expected a base type name.")
			return bases
		}
		bases = append(bases, p.s.Commit(highlight.Class))
		if p.s.Next(0).Text == "," {
			p.s.Commit(highlight.Operator)
			continue
		}
		return bases
	}
}

func (p *Parser) parseClass(metadata []token.Token, attrs ast.EntityAttributes) (ast.Decl, parserstate.ResultKind) {
	start := p.s.Next(0)
	if metadata != nil {
		start = metadata[0]
	}
	p.s.Commit(highlight.Keyword) // 'class'
	if !isIdentLike(p.s.Next(0)) {
		p.s.Error("Expected a class name.")
		return nil, parserstate.Pending
	}
	name := p.s.Commit(highlight.Class)

	var templates []token.Token
	if p.s.Next(0).Text == "<" {
		mark := p.s.Mark()
		p.s.Commit(highlight.Operator)
		ok := true
		for {
			if !isIdentLike(p.s.Next(0)) {
				ok = false
				break
			}
			templates = append(templates, p.s.Commit(highlight.Type))
			if p.s.Next(0).Text == "," {
				p.s.Commit(highlight.Operator)
				continue
			}
			break
		}
		if !ok || !p.closeAngleBracket() {
			p.s.Backtrack(mark)
			templates = nil
		}
	}

	if p.s.Next(0).Text == ";" {
		p.s.Commit(highlight.Operator)
		return &ast.Class{NodeRange: p.rangeFrom(start), Metadata: metadata, Attrs: attrs, Name: name, TypeTemplates: templates, DeclOnly: true}, parserstate.Ok
	}

	bases := p.parseBaseList()
	scopeStart := p.s.Next(0)
	if !p.s.Expect("{", highlight.Operator) {
		return nil, parserstate.Pending
	}
	var members []ast.Decl
	for p.s.Next(0).Text != "}" && !p.s.IsEnd() {
		member, kind := p.parseClassMember()
		if kind == parserstate.Mismatch {
			p.skipToken("a class member")
			continue
		}
		if member != nil {
			members = append(members, member)
		}
	}
	p.s.Expect("}", highlight.Operator)
	return &ast.Class{
		NodeRange: p.rangeFrom(start), Metadata: metadata, Attrs: attrs, Name: name,
		TypeTemplates: templates, Bases: bases, Members: members,
		ScopeRange: p.rangeFrom(scopeStart),
	}, parserstate.Ok
}

// parseClassMember disambiguates FuncDef/Func/VirtualProp/Var in a fixed
// order, accepting the first non-Mismatch (spec.md §4.2).
func (p *Parser) parseClassMember() (ast.Decl, parserstate.ResultKind) {
	metadata := p.parseMetadata()
	mark := p.s.Mark()
	if p.s.Next(0).Text == "funcdef" {
		if decl, kind := p.parseFuncDef(ast.EntityAttributes{}); kind != parserstate.Mismatch {
			return decl, kind
		}
	}
	p.s.Backtrack(mark)

	access := p.parseAccessModifier()
	if decl, kind := p.parseFunc(metadata, access); kind != parserstate.Mismatch {
		return decl, kind
	}
	if decl, kind := p.parseVirtualProp(access); kind != parserstate.Mismatch {
		return decl, kind
	}
	if decl, kind := p.parseVar(access); kind != parserstate.Mismatch {
		return decl, kind
	}
	return nil, parserstate.Mismatch
}

func (p *Parser) parseAccessModifier() ast.Access {
	switch p.s.Next(0).Text {
	case "private":
		p.s.Commit(highlight.Keyword)
		return ast.AccessPrivate
	case "protected":
		p.s.Commit(highlight.Keyword)
		return ast.AccessProtected
	default:
		return ast.AccessDefault
	}
}

func (p *Parser) parseInterface(attrs ast.EntityAttributes) (ast.Decl, parserstate.ResultKind) {
	start := p.s.Next(0)
	p.s.Commit(highlight.Keyword) // 'interface'
	if !isIdentLike(p.s.Next(0)) {
		p.s.Error("Expected an interface name.")
		return nil, parserstate.Pending
	}
	name := p.s.Commit(highlight.Interface)
	if p.s.Next(0).Text == ";" {
		p.s.Commit(highlight.Operator)
		return &ast.Interface{NodeRange: p.rangeFrom(start), Attrs: attrs, Name: name, DeclOnly: true}, parserstate.Ok
	}
	bases := p.parseBaseList()
	scopeStart := p.s.Next(0)
	if !p.s.Expect("{", highlight.Operator) {
		return nil, parserstate.Pending
	}
	var members []ast.Decl
	for p.s.Next(0).Text != "}" && !p.s.IsEnd() {
		member, kind := p.parseInterfaceMember()
		if kind == parserstate.Mismatch {
			p.skipToken("an interface member")
			continue
		}
		if member != nil {
			members = append(members, member)
		}
	}
	p.s.Expect("}", highlight.Operator)
	return &ast.Interface{NodeRange: p.rangeFrom(start), Attrs: attrs, Name: name, Bases: bases, Members: members, ScopeRange: p.rangeFrom(scopeStart)}, parserstate.Ok
}

func (p *Parser) parseInterfaceMember() (ast.Decl, parserstate.ResultKind) {
	if decl, kind := p.parseVirtualProp(ast.AccessDefault); kind != parserstate.Mismatch {
		return decl, kind
	}

	start := p.s.Next(0)
	ty, kind := p.parseType()
	if kind != parserstate.Ok {
		return nil, parserstate.Mismatch
	}
	isRef := false
	if p.s.Next(0).Text == "&" {
		isRef = true
		p.s.Commit(highlight.Operator)
	}
	if !isIdentLike(p.s.Next(0)) {
		p.s.Error("Expected a method name.")
		return nil, parserstate.Pending
	}
	name := p.s.Commit(highlight.Function)
	params, ok := p.parseParamList()
	if !ok {
		return nil, parserstate.Pending
	}
	isConst := false
	if p.s.Next(0).Text == "const" {
		isConst = true
		p.s.Commit(highlight.Keyword)
	}
	p.s.Expect(";", highlight.Operator)
	return &ast.IntfMethod{NodeRange: p.rangeFrom(start), ReturnType: ty, IsRef: isRef, Name: name, Params: params, IsConst: isConst}, parserstate.Ok
}

func (p *Parser) parseEnum(attrs ast.EntityAttributes) (ast.Decl, parserstate.ResultKind) {
	start := p.s.Next(0)
	p.s.Commit(highlight.Keyword) // 'enum'
	if !isIdentLike(p.s.Next(0)) {
		p.s.Error("Expected an enum name.")
		return nil, parserstate.Pending
	}
	name := p.s.Commit(highlight.Enum)
	if p.s.Next(0).Text == ";" {
		p.s.Commit(highlight.Operator)
		return &ast.Enum{NodeRange: p.rangeFrom(start), Attrs: attrs, Name: name, DeclOnly: true}, parserstate.Ok
	}
	scopeStart := p.s.Next(0)
	if !p.s.Expect("{", highlight.Operator) {
		return nil, parserstate.Pending
	}
	var members []ast.EnumMember
	for p.s.Next(0).Text != "}" && !p.s.IsEnd() {
		if !isIdentLike(p.s.Next(0)) {
			p.skipToken("an enum member")
			continue
		}
		memberName := p.s.Commit(highlight.EnumMember)
		var value ast.Expr
		if p.s.Next(0).Text == "=" {
			p.s.Commit(highlight.Operator)
			value = p.parseAssignExpr()
		}
		members = append(members, ast.EnumMember{Name: memberName, Value: value})
		if !p.expectContinuousOrClose(",", "}", true) {
			break
		}
	}
	if p.s.Next(0).Text == "}" {
		p.s.Commit(highlight.Operator)
	}
	return &ast.Enum{NodeRange: p.rangeFrom(start), Attrs: attrs, Name: name, Members: members, ScopeRange: p.rangeFrom(scopeStart)}, parserstate.Ok
}
