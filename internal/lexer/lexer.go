// Package lexer is a small embedded tokenizer standing in for the external
// tokenizer spec.md §1 assumes already exists. It exists only so
// cmd/angelcheck, cmd/angellsp, and this module's own tests have something
// concrete to feed internal/parser; it deliberately does not combine
// multi-character operators like `>>` or `!is` into single tokens, leaving
// that to the parser's virtual-token synthesis (spec.md §4.2).
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/angelscript-front/internal/token"
)

var keywords = map[string]bool{
	"and": true, "abstract": true, "auto": true, "bool": true, "break": true,
	"case": true, "cast": true, "catch": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "explicit": true, "external": true, "false": true,
	"final": true, "float": true, "for": true, "from": true, "funcdef": true,
	"function": true, "get": true, "if": true, "import": true, "int": true,
	"int8": true, "int16": true, "int32": true, "int64": true, "interface": true,
	"is": true, "mixin": true, "namespace": true, "not": true, "null": true,
	"or": true, "override": true, "private": true, "property": true,
	"protected": true, "return": true, "set": true, "shared": true,
	"switch": true, "true": true, "try": true, "typedef": true, "uint": true,
	"uint8": true, "uint16": true, "uint32": true, "uint64": true, "void": true,
	"while": true, "xor": true,
}

var primeTypes = map[string]bool{
	"void": true, "bool": true, "float": true, "double": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
}

var exprPreOps = map[string]bool{"-": true, "+": true, "!": true, "~": true}
var mathOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true, "**": true}
var bitOps = map[string]bool{"&": true, "|": true, "^": true, "<<": true, ">>": true}
var compOps = map[string]bool{"<": true, ">": true, "==": true, "!=": true}
var logicOps = map[string]bool{"&&": true, "||": true, "^^": true}
var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
}

// two-character operators the lexer does combine: these never participate in
// the parser's virtual-token synthesis (only `>`, `=`, and `!` do), so
// leaving them as two single-char tokens would force every grammar rule that
// reads them to special-case adjacency. `>>` is deliberately excluded here;
// the parser reassembles it.
var twoCharOps = []string{
	"**=", "<<=", "==", "!=", "<=", "&&", "||", "^^", "::", "++", "--",
	"**", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<",
}

// Lexer turns AngelScript-shaped source text into a token.Token slice.
type Lexer struct {
	src   string
	path  string
	pos   int
	line  int
	col   int
	prevEnd int
}

// New builds a Lexer over src, attributing positions to path.
func New(src, path string) *Lexer {
	return &Lexer{src: src, path: path, line: 1, col: 1}
}

// Tokenize runs the lexer to completion, returning every token including a
// trailing EOF, but excluding comments and whitespace.
func (l *Lexer) Tokenize() []token.Token {
	var out []token.Token
	for {
		tok, ok := l.next()
		if !ok {
			break
		}
		out = append(out, tok)
	}
	out = append(out, token.EndOfFile(l.path, token.Position{Line: l.line, Column: l.col, Offset: l.pos}))
	return out
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *Lexer) skipTrivia() {
	for l.pos < len(l.src) {
		switch {
		case unicode.IsSpace(rune(l.peekByte())):
			l.advance()
		case l.peekByte() == '/' && l.peekByteAt(1) == '/':
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.advance()
			}
		case l.peekByte() == '/' && l.peekByteAt(1) == '*':
			l.advance()
			l.advance()
			for l.pos < len(l.src) && !(l.peekByte() == '*' && l.peekByteAt(1) == '/') {
				l.advance()
			}
			if l.pos < len(l.src) {
				l.advance()
				l.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentPart(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

func (l *Lexer) next() (token.Token, bool) {
	l.skipTrivia()
	adjacent := l.pos == l.prevEnd

	if l.pos >= len(l.src) {
		return token.Token{}, false
	}

	start := token.Position{Line: l.line, Column: l.col, Offset: l.pos}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])

	var text string
	var kind token.Kind

	switch {
	case isIdentStart(r):
		text = l.readIdent()
		if keywords[text] {
			kind = token.Reserved
		} else {
			kind = token.Identifier
		}
	case unicode.IsDigit(r):
		text = l.readNumber()
		kind = token.Number
	case r == '"':
		text = l.readString()
		kind = token.String
	default:
		text = l.readOperator()
		kind = token.Reserved
	}

	end := token.Position{Line: l.line, Column: l.col, Offset: l.pos}
	l.prevEnd = l.pos

	tok := token.Token{
		Kind:     kind,
		Text:     text,
		Location: token.Location{Path: l.path, Start: start, End: end},
		Adjacent: adjacent,
	}
	if kind == token.Reserved {
		tok.Flags = flagsFor(text)
	}
	return tok, true
}

func flagsFor(text string) token.Flags {
	var f token.Flags
	if primeTypes[text] {
		f |= token.IsPrimeType
	}
	if exprPreOps[text] {
		f |= token.IsExprPreOp
	}
	if mathOps[text] || bitOps[text] || compOps[text] || logicOps[text] {
		f |= token.IsExprOp
	}
	if mathOps[text] {
		f |= token.IsMathOp
	}
	if bitOps[text] {
		f |= token.IsBitOp
	}
	if compOps[text] {
		f |= token.IsCompOp
	}
	if logicOps[text] || text == "and" || text == "or" || text == "xor" || text == "not" {
		f |= token.IsLogicOp
	}
	if assignOps[text] {
		f |= token.IsAssignOp
	}
	return f
}

func (l *Lexer) readIdent() string {
	start := l.pos
	for l.pos < len(l.src) {
		r, w := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.pos += w
		l.col++
	}
	return l.src[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for l.pos < len(l.src) && (unicode.IsDigit(rune(l.peekByte())) || l.peekByte() == '.' ||
		l.peekByte() == 'x' || l.peekByte() == 'X' || l.peekByte() == 'f' || l.peekByte() == 'F' ||
		(l.peekByte() >= 'a' && l.peekByte() <= 'f') || (l.peekByte() >= 'A' && l.peekByte() <= 'F')) {
		l.advance()
	}
	return l.src[start:l.pos]
}

func (l *Lexer) readString() string {
	start := l.pos
	l.advance() // opening quote
	for l.pos < len(l.src) && l.peekByte() != '"' {
		if l.peekByte() == '\\' && l.pos+1 < len(l.src) {
			l.advance()
		}
		l.advance()
	}
	if l.pos < len(l.src) {
		l.advance() // closing quote
	}
	return l.src[start:l.pos]
}

func (l *Lexer) readOperator() string {
	for _, op := range twoCharOps {
		if strings.HasPrefix(l.src[l.pos:], op) {
			for range op {
				l.advance()
			}
			return op
		}
	}
	b := l.advance()
	return string(rune(b))
}
