package ast

import "github.com/funvibe/angelscript-front/internal/token"

// EntityAttributes are the optional modifiers shared by class/interface/enum
// heads (spec.md §3 Class invariants).
type EntityAttributes struct {
	IsShared   bool
	IsExternal bool
	IsAbstract bool
	IsFinal    bool
}

// Access is the member access modifier.
type Access int

const (
	AccessDefault Access = iota
	AccessPrivate
	AccessProtected
)

// Script is an ordered sequence of top-level declarations. A Namespace body
// is also a Script.
type Script struct {
	NodeRange
	Decls []Decl
}

func (s *Script) Range() NodeRange  { return s.NodeRange }
func (s *Script) Accept(v Visitor)  { v.VisitScript(s) }

// Namespace is a qualified name plus a nested Script.
type Namespace struct {
	NodeRange
	Names []token.Token // qualified name, one token per identifier
	Body  *Script
}

func (n *Namespace) Range() NodeRange { return n.NodeRange }
func (n *Namespace) Accept(v Visitor) { v.VisitNamespace(n) }
func (n *Namespace) declNode()        {}

// Import is the `import TYPE ['&'] IDENT PARAMLIST FUNCATTR 'from' STRING ';'`
// production.
type Import struct {
	NodeRange
	ReturnType  *Type
	IsRef       bool
	Name        token.Token
	Params      []*Param
	FuncAttrs   FuncAttributes
	From        token.Token // string literal token
}

func (im *Import) Range() NodeRange { return im.NodeRange }
func (im *Import) Accept(v Visitor) { v.VisitImport(im) }
func (im *Import) declNode()        {}

// TypeDef is `typedef PRIMTYPE IDENT ';'`.
type TypeDef struct {
	NodeRange
	Primitive token.Token
	Name      token.Token
}

func (t *TypeDef) Range() NodeRange { return t.NodeRange }
func (t *TypeDef) Accept(v Visitor) { v.VisitTypeDef(t) }
func (t *TypeDef) declNode()        {}

// Mixin wraps a Class declaration (`mixin CLASS`).
type Mixin struct {
	NodeRange
	Class *Class
}

func (m *Mixin) Range() NodeRange { return m.NodeRange }
func (m *Mixin) Accept(v Visitor) { v.VisitMixin(m) }
func (m *Mixin) declNode()        {}
