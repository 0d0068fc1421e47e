package ast

import "github.com/funvibe/angelscript-front/internal/token"

// Class is `{attrs} 'class' IDENT (';' | [':' bases] '{' members '}')`.
type Class struct {
	NodeRange
	Metadata      []token.Token
	Attrs         EntityAttributes
	Name          token.Token
	TypeTemplates []token.Token
	Bases         []token.Token
	Members       []Decl // VirtualProp | Var | Func | FuncDef
	// ScopeRange covers the member list, distinct from NodeRange which
	// covers the whole declaration including metadata and the trailing ';'.
	ScopeRange NodeRange
	DeclOnly   bool // true when the source used ';' instead of a body
}

func (c *Class) Range() NodeRange { return c.NodeRange }
func (c *Class) Accept(v Visitor) { v.VisitClass(c) }
func (c *Class) declNode()        {}

// Interface is like Class but its members are only IntfMethod/VirtualProp.
type Interface struct {
	NodeRange
	Attrs      EntityAttributes
	Name       token.Token
	Bases      []token.Token
	Members    []Decl // IntfMethod | VirtualProp
	ScopeRange NodeRange
	DeclOnly   bool
}

func (i *Interface) Range() NodeRange { return i.NodeRange }
func (i *Interface) Accept(v Visitor) { v.VisitInterface(i) }
func (i *Interface) declNode()        {}

// IntfMethod is an interface method signature, no body.
type IntfMethod struct {
	NodeRange
	ReturnType *Type
	IsRef      bool
	Name       token.Token
	Params     []*Param
	IsConst    bool
}

func (m *IntfMethod) Range() NodeRange { return m.NodeRange }
func (m *IntfMethod) Accept(v Visitor) { v.VisitIntfMethod(m) }
func (m *IntfMethod) declNode()        {}

// Enum is `{attrs} 'enum' IDENT (';' | '{' members '}')`.
type Enum struct {
	NodeRange
	Attrs      EntityAttributes
	Name       token.Token
	Members    []EnumMember
	ScopeRange NodeRange
	DeclOnly   bool
}

func (e *Enum) Range() NodeRange { return e.NodeRange }
func (e *Enum) Accept(v Visitor) { v.VisitEnum(e) }
func (e *Enum) declNode()        {}

// EnumMember is `IDENT ['=' EXPR]`.
type EnumMember struct {
	Name  token.Token
	Value Expr // nil if the member used implicit auto-increment
}

// FuncHeadKind distinguishes constructor/destructor/regular function heads.
type FuncHeadKind int

const (
	FuncRegular FuncHeadKind = iota
	FuncConstructor
	FuncDestructor
)

// FuncAttributes are the trailing function-attribute keywords.
type FuncAttributes struct {
	IsOverride bool
	IsFinal    bool
	IsExplicit bool
	IsProperty bool
}

// Param is one PARAMLIST entry.
type Param struct {
	Type    *Type
	Name    token.Token // zero value if the parameter is unnamed
	Default Expr        // nil if no default
}

// Func covers constructors, destructors, and regular methods/functions. Body
// is always present, even for a declaration that ended in ';' (spec.md §3
// invariant): in that case Body is a StatBlock with a zero-width range and no
// statements.
type Func struct {
	NodeRange
	Metadata      []token.Token
	Access        Access
	Head          FuncHeadKind
	ReturnType    *Type // nil for Constructor/Destructor
	IsRefReturn   bool
	Name          token.Token
	TypeTemplates []token.Token
	Params        []*Param
	IsConst       bool
	FuncAttrs     FuncAttributes
	Body          *StatBlock
	DeclOnly      bool
}

func (f *Func) Range() NodeRange { return f.NodeRange }
func (f *Func) Accept(v Visitor) { v.VisitFunc(f) }
func (f *Func) declNode()        {}

// FuncDef is `{attrs} 'funcdef' TYPE ['&'] IDENT PARAMLIST ';'`.
type FuncDef struct {
	NodeRange
	Attrs      EntityAttributes
	ReturnType *Type
	IsRef      bool
	Name       token.Token
	Params     []*Param
}

func (fd *FuncDef) Range() NodeRange { return fd.NodeRange }
func (fd *FuncDef) Accept(v Visitor) { v.VisitFuncDef(fd) }
func (fd *FuncDef) declNode()        {}

// PropAccessor is one `('get'|'set') ['const'] FUNCATTR (STATBLOCK|';')` arm.
type PropAccessor struct {
	NodeRange
	IsConst   bool
	FuncAttrs FuncAttributes
	Body      *StatBlock // nil if the accessor ended in ';'
}

// VirtualProp is `[access] TYPE ['&'] IDENT '{' accessors '}'`.
type VirtualProp struct {
	NodeRange
	Access Access
	Type   *Type
	IsRef  bool
	Name   token.Token
	Get    *PropAccessor
	Set    *PropAccessor
}

func (vp *VirtualProp) Range() NodeRange { return vp.NodeRange }
func (vp *VirtualProp) Accept(v Visitor) { v.VisitVirtualProp(vp) }
func (vp *VirtualProp) declNode()        {}

// VarInitKind distinguishes the three ways a declarator can be initialized.
type VarInitKind int

const (
	VarInitNone VarInitKind = iota
	VarInitAssign
	VarInitList
	VarInitArgs
)

// VarDeclarator is one `IDENT [('=' INITLIST|ASSIGN) | ARGLIST]` entry.
type VarDeclarator struct {
	Name     token.Token
	InitKind VarInitKind
	Assign   *Assign   // InitKind == VarInitAssign
	InitList *InitList // InitKind == VarInitList
	Args     *ArgList  // InitKind == VarInitArgs
}

// Var is a member or local variable declaration (possibly several
// comma-separated declarators sharing one Type).
type Var struct {
	NodeRange
	Access      Access
	Type        *Type
	Declarators []*VarDeclarator
}

func (vr *Var) Range() NodeRange { return vr.NodeRange }
func (vr *Var) Accept(v Visitor) { v.VisitVar(vr) }
func (vr *Var) declNode()        {}
func (vr *Var) stmtNode()        {}
