package parser

import (
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/highlight"
	"github.com/funvibe/angelscript-front/internal/parserstate"
	"github.com/funvibe/angelscript-front/internal/token"
)

// parseParamList parses `'(' [PARAM {',' PARAM}] ')'`. Returns ok=false
// without having committed anything beyond '(' when the content clearly
// isn't a typed parameter list — this lets the caller (Func) backtrack
// wholesale and let the Var/ConstructCall ARGLIST interpretation take over,
// per spec.md §4.2's speculative-start contract.
func (p *Parser) parseParamList() ([]*ast.Param, bool) {
	if !p.s.Expect("(", highlight.Operator) {
		return nil, false
	}
	var params []*ast.Param
	for p.s.Next(0).Text != ")" {
		ty, kind := p.parseType()
		if kind == parserstate.Mismatch {
			if len(params) == 0 {
				return nil, false
			}
			p.skipToken("a parameter type")
			if !p.expectContinuousOrClose(",", ")", true) {
				break
			}
			continue
		}
		if kind == parserstate.Pending {
			return params, true
		}
		if p.s.Next(0).Text == "&" {
			p.s.Commit(highlight.Operator)
		}
		param := &ast.Param{Type: ty}
		if isIdentLike(p.s.Next(0)) {
			param.Name = p.s.Commit(highlight.Parameter)
		}
		if p.s.Next(0).Text == "=" {
			p.s.Commit(highlight.Operator)
			param.Default = p.parseAssignExpr()
		}
		params = append(params, param)
		if !p.expectContinuousOrClose(",", ")", true) {
			return params, true
		}
	}
	if p.s.Next(0).Text == ")" {
		p.s.Commit(highlight.Operator)
	}
	return params, true
}

func (p *Parser) parseFuncAttributes() ast.FuncAttributes {
	var attrs ast.FuncAttributes
	for {
		switch p.s.Next(0).Text {
		case "override":
			attrs.IsOverride = true
			p.s.Commit(highlight.Keyword)
		case "final":
			attrs.IsFinal = true
			p.s.Commit(highlight.Keyword)
		case "explicit":
			attrs.IsExplicit = true
			p.s.Commit(highlight.Keyword)
		case "property":
			attrs.IsProperty = true
			p.s.Commit(highlight.Keyword)
		default:
			return attrs
		}
	}
}

// parseFuncBody parses `(';' | STATBLOCK)`. Per spec.md §3, the returned
// StatBlock is never nil: a ';' yields an empty, zero-width block.
func (p *Parser) parseFuncBody() *ast.StatBlock {
	if p.s.Next(0).Text == ";" {
		at := p.s.Commit(highlight.Operator)
		return &ast.StatBlock{NodeRange: ast.NodeRange{Start: at, End: at}}
	}
	return p.parseStatBlock()
}

func (p *Parser) parseTemplateParamIdents() []token.Token {
	if p.s.Next(0).Text != "<" {
		return nil
	}
	mark := p.s.Mark()
	p.s.Commit(highlight.Operator)
	var params []token.Token
	for {
		if !isIdentLike(p.s.Next(0)) {
			p.s.Backtrack(mark)
			return nil
		}
		params = append(params, p.s.Commit(highlight.Type))
		if p.s.Next(0).Text == "," {
			p.s.Commit(highlight.Operator)
			continue
		}
		break
	}
	if !p.closeAngleBracket() {
		p.s.Backtrack(mark)
		return nil
	}
	return params
}

// parseFunc disambiguates constructor/destructor/regular function heads and
// parses the full FUNC production. Returns Mismatch (cursor unchanged) when
// the current position is clearly not a function head, so the caller can
// try VirtualProp then Var next (spec.md §4.2).
func (p *Parser) parseFunc(metadata []token.Token, access ast.Access) (ast.Decl, parserstate.ResultKind) {
	start := p.s.Next(0)
	if metadata != nil {
		start = metadata[0]
	}
	mark := p.s.Mark()

	if p.s.Next(0).Text == "~" {
		p.s.Commit(highlight.Operator)
		if !isIdentLike(p.s.Next(0)) {
			p.s.Backtrack(mark)
			return nil, parserstate.Mismatch
		}
		name := p.s.Commit(highlight.Function)
		params, ok := p.parseParamList()
		if !ok {
			p.s.Backtrack(mark)
			return nil, parserstate.Mismatch
		}
		attrs := p.parseFuncAttributes()
		body := p.parseFuncBody()
		return &ast.Func{
			NodeRange: p.rangeFrom(start), Metadata: metadata, Access: access, Head: ast.FuncDestructor,
			Name: name, Params: params, FuncAttrs: attrs, Body: body,
		}, parserstate.Ok
	}

	if ty, kind := p.parseType(); kind == parserstate.Ok {
		isRef := false
		if p.s.Next(0).Text == "&" {
			isRef = true
			p.s.Commit(highlight.Operator)
		}
		looksLikeFuncName := isIdentLike(p.s.Next(0)) && (p.s.Next(1).Text == "(" || p.s.Next(1).Text == "<")
		if looksLikeFuncName {
			name := p.s.Commit(highlight.Function)
			templates := p.parseTemplateParamIdents()
			params, ok := p.parseParamList()
			if !ok {
				p.s.Backtrack(mark)
				return nil, parserstate.Mismatch
			}
			isConst := false
			if p.s.Next(0).Text == "const" {
				isConst = true
				p.s.Commit(highlight.Keyword)
			}
			attrs := p.parseFuncAttributes()
			body := p.parseFuncBody()
			return &ast.Func{
				NodeRange: p.rangeFrom(start), Metadata: metadata, Access: access, Head: ast.FuncRegular,
				ReturnType: ty, IsRefReturn: isRef, Name: name, TypeTemplates: templates,
				Params: params, IsConst: isConst, FuncAttrs: attrs, Body: body,
			}, parserstate.Ok
		}
		p.s.Backtrack(mark)
	} else if kind == parserstate.Pending {
		return nil, parserstate.Pending
	}

	if isIdentLike(p.s.Next(0)) && p.s.Next(1).Text == "(" {
		name := p.s.Commit(highlight.Function)
		params, ok := p.parseParamList()
		if !ok {
			p.s.Backtrack(mark)
			return nil, parserstate.Mismatch
		}
		attrs := p.parseFuncAttributes()
		body := p.parseFuncBody()
		return &ast.Func{
			NodeRange: p.rangeFrom(start), Metadata: metadata, Access: access, Head: ast.FuncConstructor,
			Name: name, Params: params, FuncAttrs: attrs, Body: body,
		}, parserstate.Ok
	}

	p.s.Backtrack(mark)
	return nil, parserstate.Mismatch
}

func (p *Parser) parseFuncDef(attrs ast.EntityAttributes) (ast.Decl, parserstate.ResultKind) {
	start := p.s.Next(0)
	p.s.Commit(highlight.Keyword) // 'funcdef'
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
		p.s.Error("Expected a funcdef name.")
		return nil, parserstate.Pending
	}
	name := p.s.Commit(highlight.Type)
	params, ok := p.parseParamList()
	if !ok {
		p.s.Error("Expected a parameter list.")
		return nil, parserstate.Pending
	}
	p.s.Expect(";", highlight.Operator)
	return &ast.FuncDef{NodeRange: p.rangeFrom(start), Attrs: attrs, ReturnType: ty, IsRef: isRef, Name: name, Params: params}, parserstate.Ok
}

func (p *Parser) parseVirtualProp(access ast.Access) (ast.Decl, parserstate.ResultKind) {
	start := p.s.Next(0)
	mark := p.s.Mark()
	ty, kind := p.parseType()
	if kind != parserstate.Ok {
		if kind == parserstate.Pending {
			return nil, parserstate.Pending
		}
		return nil, parserstate.Mismatch
	}
	isRef := false
	if p.s.Next(0).Text == "&" {
		isRef = true
		p.s.Commit(highlight.Operator)
	}
	if !isIdentLike(p.s.Next(0)) || p.s.Next(1).Text != "{" {
		p.s.Backtrack(mark)
		return nil, parserstate.Mismatch
	}
	name := p.s.Commit(highlight.Variable)
	p.s.Commit(highlight.Operator) // '{'

	vp := &ast.VirtualProp{Access: access, Type: ty, IsRef: isRef, Name: name}
	for p.s.Next(0).Text != "}" && !p.s.IsEnd() {
		acc, ok := p.parsePropAccessor()
		if !ok {
			p.skipToken("'get' or 'set'")
			continue
		}
		if acc.kind == "get" {
			vp.Get = acc.accessor
		} else {
			vp.Set = acc.accessor
		}
	}
	p.s.Expect("}", highlight.Operator)
	vp.NodeRange = p.rangeFrom(start)
	return vp, parserstate.Ok
}

type propAccessorResult struct {
	kind     string
	accessor *ast.PropAccessor
}

func (p *Parser) parsePropAccessor() (propAccessorResult, bool) {
	kind := p.s.Next(0).Text
	if kind != "get" && kind != "set" {
		return propAccessorResult{}, false
	}
	start := p.s.Commit(highlight.Keyword)
	isConst := false
	if p.s.Next(0).Text == "const" {
		isConst = true
		p.s.Commit(highlight.Keyword)
	}
	attrs := p.parseFuncAttributes()
	var body *ast.StatBlock
	if p.s.Next(0).Text == ";" {
		p.s.Commit(highlight.Operator)
	} else {
		body = p.parseStatBlock()
	}
	return propAccessorResult{kind: kind, accessor: &ast.PropAccessor{
		NodeRange: p.rangeFrom(start), IsConst: isConst, FuncAttrs: attrs, Body: body,
	}}, true
}

func (p *Parser) parseVar(access ast.Access) (ast.Decl, parserstate.ResultKind) {
	start := p.s.Next(0)
	mark := p.s.Mark()
	ty, kind := p.parseType()
	if kind != parserstate.Ok {
		if kind == parserstate.Pending {
			return nil, parserstate.Pending
		}
		return nil, parserstate.Mismatch
	}
	if !isIdentLike(p.s.Next(0)) {
		p.s.Backtrack(mark)
		return nil, parserstate.Mismatch
	}

	var declarators []*ast.VarDeclarator
	for {
		if !isIdentLike(p.s.Next(0)) {
			p.s.Error("Expected a variable name.")
			break
		}
		name := p.s.Commit(highlight.Variable)
		decl := &ast.VarDeclarator{Name: name}
		switch p.s.Next(0).Text {
		case "=":
			p.s.Commit(highlight.Operator)
			if p.s.Next(0).Text == "{" {
				decl.InitKind = ast.VarInitList
				decl.InitList = p.parseInitList()
			} else {
				decl.InitKind = ast.VarInitAssign
				decl.Assign = p.parseAssignExpr()
			}
		case "(":
			decl.InitKind = ast.VarInitArgs
			decl.Args = p.parseArgList()
		}
		declarators = append(declarators, decl)
		if p.s.Next(0).Text == "," {
			p.s.Commit(highlight.Operator)
			continue
		}
		break
	}
	p.s.Expect(";", highlight.Operator)
	return &ast.Var{NodeRange: p.rangeFrom(start), Access: access, Type: ty, Declarators: declarators}, parserstate.Ok
}
