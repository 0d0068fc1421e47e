// Package highlight defines the classification kinds the parser and analyzer
// attach to tokens for presentation layers (spec.md §6 Output).
package highlight

import "github.com/funvibe/angelscript-front/internal/token"

type Kind int

const (
	Operator Kind = iota
	Builtin
	Keyword
	Namespace
	Type
	Class
	Interface
	Enum
	EnumMember
	Function
	Variable
	Parameter
	Number
	String
	Decorator
)

// Classification pairs a token with the kind it was committed under.
type Classification struct {
	Token token.Token
	Kind  Kind
}

// List is an append-only, source-ordered collection of classifications,
// mirroring the diagnostics.Sink shape: passed explicitly, never global.
type List struct {
	items []Classification
}

func NewList() *List { return &List{} }

func (l *List) Add(tok token.Token, kind Kind) {
	l.items = append(l.items, Classification{Token: tok, Kind: kind})
}

func (l *List) All() []Classification { return l.items }
