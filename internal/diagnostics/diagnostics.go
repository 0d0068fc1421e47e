// Package diagnostics is the in-memory sink parser and analyzer append to.
//
// Errors never throw (spec.md §7): every failure becomes a Diagnostic
// appended here and analysis proceeds on a best-effort basis.
package diagnostics

import "github.com/funvibe/angelscript-front/internal/token"

// Severity distinguishes the four diagnostic kinds spec.md §7 names.
type Severity int

const (
	Syntactic Severity = iota
	Resolution
	Type
	Access
)

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity
	Code     string
	Location token.Location
	Message  string
}

func (d Diagnostic) Error() string {
	return d.Location.String() + ": " + d.Message
}

// New builds a Diagnostic anchored at tok's location.
func New(severity Severity, code string, tok token.Token, message string) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Location: tok.Location, Message: message}
}

// Sink collects diagnostics in emission order. It is passed explicitly
// through parse/analyze entry points rather than held as process-wide state
// (spec.md §9), so independent ParserStates/analyses never share one.
type Sink struct {
	items []Diagnostic
}

// NewSink returns an empty sink.
func NewSink() *Sink { return &Sink{} }

// Add appends one diagnostic, preserving source order.
func (s *Sink) Add(d Diagnostic) { s.items = append(s.items, d) }

// Addf is a convenience for New immediately followed by Add.
func (s *Sink) Addf(severity Severity, code string, tok token.Token, message string) {
	s.Add(New(severity, code, tok, message))
}

// All returns every diagnostic collected so far, in emission order.
func (s *Sink) All() []Diagnostic { return s.items }

// Empty reports whether no diagnostic has been recorded.
func (s *Sink) Empty() bool { return len(s.items) == 0 }
