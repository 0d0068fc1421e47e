package parser

import (
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/highlight"
	"github.com/funvibe/angelscript-front/internal/parserstate"
)

var primitiveTypes = map[string]bool{
	"void": true, "bool": true, "float": true, "double": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
}

// parseEntityAttribute recognizes a single class/interface/enum head
// modifier (shared/abstract/final/external) at the current cursor. It is
// memoized (spec.md §4.1) because the caller retries it in a loop at every
// class/interface/enum head, which are themselves attempted speculatively at
// many points in the grammar.
func (p *Parser) parseEntityAttribute() (string, bool) {
	h := p.s.Cache("EntityAttribute")
	if v, matched, hit := h.Restore(); hit {
		if !matched {
			return "", false
		}
		return v.(string), true
	}

	text := p.s.Next(0).Text
	switch text {
	case "shared", "abstract", "final", "external":
		p.s.Commit(highlight.Keyword)
		h.Store(text, true)
		return text, true
	default:
		h.Store("", false)
		return "", false
	}
}

func (p *Parser) parseEntityAttributes() ast.EntityAttributes {
	var attrs ast.EntityAttributes
	for {
		attr, ok := p.parseEntityAttribute()
		if !ok {
			return attrs
		}
		switch attr {
		case "shared":
			attrs.IsShared = true
		case "abstract":
			attrs.IsAbstract = true
		case "final":
			attrs.IsFinal = true
		case "external":
			attrs.IsExternal = true
		}
	}
}

// parseScope parses `['::'] {IDENT '::'} [IDENT ['<' TYPE {',' TYPE} '>'] '::']`.
// Memoized: Scope is speculatively attempted at every type and every
// var-access/func-call/construct-call disambiguation site.
func (p *Parser) parseScope() (*ast.Scope, parserstate.ResultKind) {
	h := p.s.Cache("Scope")
	if v, matched, hit := h.Restore(); hit {
		if !matched {
			return nil, mismatchToKind(v)
		}
		return v.(*ast.Scope), parserstate.Ok
	}

	start := p.s.Next(0)
	scope := &ast.Scope{}
	mark := p.s.Mark()

	if p.s.Next(0).Text == "::" {
		scope.IsGlobal = true
		p.s.Commit(highlight.Operator)
	}

	for isIdentLike(p.s.Next(0)) && p.s.Next(1).Text == "::" {
		name := p.s.Commit(highlight.Namespace)
		scope.Names = append(scope.Names, name)
		p.s.Commit(highlight.Operator) // '::'
	}

	// Optional final identifier with template args, followed by '::'. This
	// is only part of Scope (as opposed to the start of DATATYPE) when it is
	// actually followed by '::'.
	if isIdentLike(p.s.Next(0)) {
		save := p.s.Mark()
		name := p.s.Commit(highlight.Namespace)
		args, kind := p.parseTypeTemplates()
		if kind == parserstate.Pending {
			h.Store(kindToStorable(parserstate.Pending), false)
			return nil, parserstate.Pending
		}
		if p.s.Next(0).Text == "::" {
			scope.Names = append(scope.Names, name)
			if kind == parserstate.Ok {
				scope.TemplateArgs = args
			}
			p.s.Commit(highlight.Operator)
		} else {
			p.s.Backtrack(save)
		}
	}

	if len(scope.Names) == 0 && !scope.IsGlobal {
		p.s.Backtrack(mark)
		h.Store(kindToStorable(parserstate.Mismatch), false)
		return nil, parserstate.Mismatch
	}

	scope.NodeRange = p.rangeFrom(start)
	h.Store(scope, true)
	return scope, parserstate.Ok
}

// parseTypeTemplates parses `'<' TYPE {',' TYPE} '>'`. Memoized because it is
// speculatively attempted at every generic-looking identifier, and must
// cleanly backtrack when '<' turns out to be a comparison operator.
func (p *Parser) parseTypeTemplates() ([]*ast.Type, parserstate.ResultKind) {
	h := p.s.Cache("TypeTemplates")
	if v, matched, hit := h.Restore(); hit {
		if !matched {
			return nil, mismatchToKind(v)
		}
		return v.([]*ast.Type), parserstate.Ok
	}

	if p.s.Next(0).Text != "<" {
		h.Store(kindToStorable(parserstate.Mismatch), false)
		return nil, parserstate.Mismatch
	}
	mark := p.s.Mark()
	p.s.Commit(highlight.Operator)

	var args []*ast.Type
	for {
		ty, kind := p.parseType()
		if kind != parserstate.Ok {
			p.s.Backtrack(mark)
			h.Store(kindToStorable(parserstate.Mismatch), false)
			return nil, parserstate.Mismatch
		}
		args = append(args, ty)
		if p.s.Next(0).Text == "," {
			p.s.Commit(highlight.Operator)
			continue
		}
		break
	}

	if !p.closeAngleBracket() {
		p.s.Backtrack(mark)
		h.Store(kindToStorable(parserstate.Mismatch), false)
		return nil, parserstate.Mismatch
	}

	h.Store(args, true)
	return args, parserstate.Ok
}

// closeAngleBracket consumes a closing '>' for a template argument list,
// synthesizing it from adjacent '>' tokens if the tokenizer produced a
// compound '>>'/'>>>'/etc (spec.md §4.2 "Virtual token synthesis" — here run
// in reverse: split, not combine).
func (p *Parser) closeAngleBracket() bool {
	tok := p.s.Next(0)
	switch tok.Text {
	case ">":
		p.s.Commit(highlight.Operator)
		return true
	case ">>", ">>=", ">>>", ">>>=":
		// The tokenizer kept '>' single inside template contexts per
		// spec.md §4.2; if it nonetheless produced a compound token here,
		// the whole token is consumed as this level's closing '>'. No
		// remainder is left, so an enclosing template list does not see
		// the rest of the token.
		p.s.Step()
		return true
	default:
		return false
	}
}

// parseType parses `['const'] SCOPE DATATYPE ['<' TYPE {',' TYPE} '>'] {'[' ']' | '@' ['const']}`.
func (p *Parser) parseType() (*ast.Type, parserstate.ResultKind) {
	start := p.s.Next(0)
	ty := &ast.Type{}

	if start.Text == "const" {
		ty.IsConst = true
		p.s.Commit(highlight.Keyword)
	}

	if scope, kind := p.parseScope(); kind == parserstate.Ok {
		ty.Scope = scope
	} else if kind == parserstate.Pending {
		return nil, parserstate.Pending
	}

	dt, ok := p.parseDataType()
	if !ok {
		if ty.IsConst || ty.Scope != nil {
			p.s.Error("Expected a type name.")
			return nil, parserstate.Pending
		}
		return nil, parserstate.Mismatch
	}
	ty.DataType = dt

	if args, kind := p.parseTypeTemplates(); kind == parserstate.Ok {
		ty.TemplateArgs = args
	} else if kind == parserstate.Pending {
		return nil, parserstate.Pending
	}

	for {
		switch p.s.Next(0).Text {
		case "[":
			if p.s.Next(1).Text != "]" {
				// `name[expr]` is an indexer, not an array type suffix.
				return ty, parserstate.Ok
			}
			p.s.Commit(highlight.Operator)
			p.s.Commit(highlight.Operator)
			ty.IsArray = true
		case "@":
			p.s.Commit(highlight.Operator)
			if p.s.Next(0).Text == "const" {
				p.s.Commit(highlight.Keyword)
				ty.Ref = ast.RefAtConst
			} else {
				ty.Ref = ast.RefAt
			}
		default:
			ty.NodeRange = p.rangeFrom(start)
			return ty, parserstate.Ok
		}
	}
}

func (p *Parser) parseDataType() (ast.DataType, bool) {
	tok := p.s.Next(0)
	switch {
	case tok.Text == "auto":
		p.s.Commit(highlight.Keyword)
		return ast.DataType{Kind: ast.DataTypeAuto, Token: tok}, true
	case tok.Text == "?":
		p.s.Commit(highlight.Operator)
		return ast.DataType{Kind: ast.DataTypeQuestion, Token: tok}, true
	case primitiveTypes[tok.Text]:
		p.s.Commit(highlight.Builtin)
		return ast.DataType{Kind: ast.DataTypePrimitive, Token: tok}, true
	case isIdentLike(tok):
		p.s.Commit(highlight.Type)
		return ast.DataType{Kind: ast.DataTypeIdent, Token: tok}, true
	default:
		return ast.DataType{}, false
	}
}

func mismatchToKind(v any) parserstate.ResultKind {
	if k, ok := v.(parserstate.ResultKind); ok {
		return k
	}
	return parserstate.Mismatch
}

func kindToStorable(k parserstate.ResultKind) parserstate.ResultKind { return k }
