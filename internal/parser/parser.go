// Package parser is the recursive-descent grammar of spec.md §6, built on
// top of internal/parserstate's cursor/memoization/diagnostic substrate.
package parser

import (
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/config"
	"github.com/funvibe/angelscript-front/internal/diagnostics"
	"github.com/funvibe/angelscript-front/internal/highlight"
	"github.com/funvibe/angelscript-front/internal/parserstate"
	"github.com/funvibe/angelscript-front/internal/token"
)

// Parser wraps a parserstate.State with the grammar in spec.md §6.
type Parser struct {
	s     *parserstate.State
	depth int
}

// New builds a Parser over a pre-tokenized input.
func New(tokens []token.Token, path string) *Parser {
	return &Parser{s: parserstate.New(tokens, path)}
}

// enterRecursive guards against runaway recursion on pathological input
// (deeply nested parens, statement blocks, …), reporting once and forcing
// further attempts at this depth to fail rather than overflow the Go stack.
// Every caller must pair this with a deferred leaveRecursive.
func (p *Parser) enterRecursive() bool {
	p.depth++
	if p.depth > config.MaxRecursionDepth {
		p.s.Error("Maximum expression/statement nesting depth exceeded.")
		return false
	}
	return true
}

func (p *Parser) leaveRecursive() { p.depth-- }

// Diagnostics returns every diagnostic emitted while parsing.
func (p *Parser) Diagnostics() *diagnostics.Sink { return p.s.Diagnostics }

// Highlights returns every highlight classification emitted while parsing.
func (p *Parser) Highlights() *highlight.List { return p.s.Highlights }

// ParseProgram parses a whole Script (the root production).
func (p *Parser) ParseProgram() *ast.Script {
	return p.parseScript(true)
}

func (p *Parser) rangeFrom(start token.Token) ast.NodeRange {
	return ast.NodeRange{Start: start, End: p.s.Prev()}
}

// skipToken is the uniform error-recovery step used inside blocks: emit a
// diagnostic and consume exactly one token, guaranteeing progress
// (spec.md §4.2 "Error recovery inside blocks").
func (p *Parser) skipToken(expected string) {
	p.s.Error("Expected " + expected + ".")
	p.s.Step()
}

// expectContinuousOrClose enforces list-closing uniformly (spec.md §4.2):
// at the next token, accept close (commit and stop), else if allowSep and
// next is sep, commit and continue; otherwise emit a diagnostic and stop.
// Returns true if the caller should continue the loop.
func (p *Parser) expectContinuousOrClose(sep, close string, allowSep bool) bool {
	if p.s.Next(0).Text == close {
		p.s.Commit(highlight.Operator)
		return false
	}
	if allowSep && p.s.Next(0).Text == sep {
		p.s.Commit(highlight.Operator)
		return true
	}
	p.s.Error("Expected '" + sep + "' or '" + close + "'.")
	return false
}

func isIdentLike(tok token.Token) bool {
	return tok.Kind == token.Identifier
}
