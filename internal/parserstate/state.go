// Package parserstate is the cursor/memoization/diagnostic substrate the
// grammar in internal/parser is built on (spec.md §4.1).
package parserstate

import (
	"github.com/funvibe/angelscript-front/internal/diagnostics"
	"github.com/funvibe/angelscript-front/internal/highlight"
	"github.com/funvibe/angelscript-front/internal/token"
)

// ResultKind is the three-valued parse outcome (spec.md §4.2): a production
// either matched (Ok), definitely did not match at all (Mismatch, cursor
// unchanged — caller may try an alternative), or started matching and then
// failed partway through (Pending, cursor left past the consumed prefix,
// diagnostics already emitted — caller must not try another alternative
// here but may continue the surrounding construct).
type ResultKind int

const (
	Mismatch ResultKind = iota
	Pending
	Ok
)

// State is the parser's cursor over a fixed token sequence, plus the
// diagnostics sink, highlight classification list, and the memoization
// cache for the three speculative-heavy nonterminals (Scope, TypeTemplates,
// EntityAttribute).
type State struct {
	tokens []token.Token
	cursor int
	path   string

	Diagnostics *diagnostics.Sink
	Highlights  *highlight.List

	cache map[cacheKey]cacheEntry
}

// New builds a State over tokens. path is used for the synthetic EOF
// token's location when the cursor runs past the end of input.
func New(tokens []token.Token, path string) *State {
	return &State{
		tokens:      tokens,
		path:        path,
		Diagnostics: diagnostics.NewSink(),
		Highlights:  highlight.NewList(),
		cache:       make(map[cacheKey]cacheEntry),
	}
}

// next peeks the token at cursor+offset without consuming it. Offsets past
// the end of input return a synthetic EOF token.
func (s *State) Next(offset int) token.Token {
	i := s.cursor + offset
	if i < 0 || i >= len(s.tokens) {
		return s.eof()
	}
	return s.tokens[i]
}

func (s *State) eof() token.Token {
	if len(s.tokens) == 0 {
		return token.EndOfFile(s.path, token.Position{Line: 1, Column: 1})
	}
	last := s.tokens[len(s.tokens)-1]
	return token.EndOfFile(s.path, last.Location.End)
}

// Prev returns the last committed or stepped token, or the zero Token if
// nothing has been consumed yet.
func (s *State) Prev() token.Token {
	if s.cursor == 0 {
		return token.Token{}
	}
	return s.tokens[s.cursor-1]
}

// Commit classifies the current token for highlighting and advances.
func (s *State) Commit(kind highlight.Kind) token.Token {
	tok := s.Next(0)
	s.Highlights.Add(tok, kind)
	s.cursor++
	return tok
}

// Step advances the cursor without classifying the token, used by error
// recovery to guarantee progress.
func (s *State) Step() token.Token {
	tok := s.Next(0)
	s.cursor++
	return tok
}

// Mark returns an opaque cursor snapshot for a later Backtrack.
func (s *State) Mark() int { return s.cursor }

// Backtrack rewinds the cursor to a snapshot returned by Mark.
func (s *State) Backtrack(mark int) { s.cursor = mark }

// Expect checks the current token's text; on match it commits under kind
// and returns true. On mismatch it emits a diagnostic and returns false
// without moving the cursor.
func (s *State) Expect(text string, kind highlight.Kind) bool {
	if s.Next(0).Text == text {
		s.Commit(kind)
		return true
	}
	s.Error("Expected '" + text + "'.")
	return false
}

// Error emits a diagnostic at the current token's location.
func (s *State) Error(message string) {
	s.Diagnostics.Addf(diagnostics.Syntactic, "P000", s.Next(0), message)
}

// IsEnd reports whether the cursor has moved past the last real token.
func (s *State) IsEnd() bool {
	return s.cursor >= len(s.tokens) || s.tokens[s.cursor].Kind == token.EOF
}

// cacheKey identifies one memoized attempt: which nonterminal, at which
// cursor position.
type cacheKey struct {
	kind     string
	position int
}

type cacheEntry struct {
	matched    bool // false means "tried and failed" (a cached Mismatch)
	value      any
	nextCursor int
}

// Handle is returned by Cache for one (nonterminal, cursor) attempt.
type Handle struct {
	state *State
	key   cacheKey
}

// Cache returns a memoization handle for nonterminal kind at the current
// cursor position. Callers should call Restore first; if it reports a miss,
// invoke the real parser and then Store the outcome.
func (s *State) Cache(kind string) Handle {
	return Handle{state: s, key: cacheKey{kind: kind, position: s.cursor}}
}

// Restore reports whether kind was already attempted at this cursor
// position. On a hit it also advances the cursor to exactly where it was
// left after the original attempt (spec.md §4.1: "restore() both returns the
// result and advances the cursor accordingly"), even for a cached failure.
func (h Handle) Restore() (value any, matched bool, hit bool) {
	entry, ok := h.state.cache[h.key]
	if !ok {
		return nil, false, false
	}
	h.state.cursor = entry.nextCursor
	return entry.value, entry.matched, true
}

// Store records the outcome of parsing kind at the handle's original cursor
// position, using the state's *current* cursor as the next-cursor to
// restore to later.
func (h Handle) Store(value any, matched bool) {
	h.state.cache[h.key] = cacheEntry{matched: matched, value: value, nextCursor: h.state.cursor}
}
