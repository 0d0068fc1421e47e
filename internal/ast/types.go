package ast

import "github.com/funvibe/angelscript-front/internal/token"

// RefModifier is the `@`/`@const` reference-modifier suffix on a Type.
type RefModifier int

const (
	RefNone RefModifier = iota
	RefAt
	RefAtConst
)

// DataTypeKind distinguishes the four shapes a Type's base datatype can take.
type DataTypeKind int

const (
	DataTypeIdent DataTypeKind = iota
	DataTypePrimitive
	DataTypeQuestion // '?'
	DataTypeAuto     // 'auto'
)

// DataType is the core name of a Type, before array/handle suffixes.
type DataType struct {
	Kind  DataTypeKind
	Token token.Token
}

// Type is `['const'] SCOPE DATATYPE ['<' TYPE {',' TYPE} '>'] {'[' ']' | '@' ['const']}`.
type Type struct {
	NodeRange
	IsConst     bool
	Scope       *Scope // nil if no scope prefix
	DataType    DataType
	TemplateArgs []*Type
	IsArray     bool
	Ref         RefModifier
}

func (t *Type) Range() NodeRange { return t.NodeRange }
func (t *Type) Accept(v Visitor) { v.VisitType(t) }

// Scope is `['::'] {IDENT '::'} [IDENT ['<' TYPE {',' TYPE} '>'] '::']`.
type Scope struct {
	NodeRange
	IsGlobal bool
	Names    []token.Token
	// TemplateArgs are the type-template arguments attached to the final
	// identifier before the trailing '::', if the grammar supplied any.
	TemplateArgs []*Type
}

func (s *Scope) Range() NodeRange { return s.NodeRange }
func (s *Scope) Accept(v Visitor) { v.VisitScope(s) }
