package parser_test

import (
	"testing"

	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/lexer"
	"github.com/funvibe/angelscript-front/internal/parser"
)

func parse(t *testing.T, src string) (*ast.Script, *parser.Parser) {
	t.Helper()
	tokens := lexer.New(src, "test.as").Tokenize()
	p := parser.New(tokens, "test.as")
	script := p.ParseProgram()
	return script, p
}

func expectNoDiagnostics(t *testing.T, p *parser.Parser) {
	t.Helper()
	if diags := p.Diagnostics().All(); len(diags) != 0 {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, d.Message)
		}
		t.Fatalf("expected no diagnostics, got: %v", msgs)
	}
}

func TestParseTopLevelDeclarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty script", ""},
		{"global var", "int x = 5;"},
		{"function", "void f() { }"},
		{"class", "class Foo { int x; void bar() {} }"},
		{"interface", "interface IFoo { void bar(); }"},
		{"enum", "enum Color { Red, Green, Blue }"},
		{"namespace", "namespace NS { int x; }"},
		{"typedef", "typedef float real;"},
		{"funcdef", "funcdef void CALLBACK(int);"},
		{"mixin", "mixin class Mix { int x; }"},
		{"array type", "int[] xs;"},
		{"handle type", "Foo@ h;"},
		{"template instantiation", "array<int> xs;"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			script, p := parse(t, tc.src)
			if script == nil {
				t.Fatal("expected a non-nil script")
			}
			expectNoDiagnostics(t, p)
		})
	}
}

func TestParseExpressionStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"arithmetic", "void f() { int x = 1 + 2 * 3; }"},
		{"comparison chain", "void f() { bool b = a < b && c > d; }"},
		{"ternary", "void f() { int x = a ? 1 : 2; }"},
		{"unary ops", "void f() { int x = -a; bool b = !a; int y = ~a; }"},
		{"increment", "void f() { a++; --b; }"},
		{"method call", "void f() { obj.method(1, 2); }"},
		{"indexer", "void f() { x = arr[0]; }"},
		{"construct call", "void f() { float x = float(1); }"},
		{"cast", "void f() { float x = cast<float>(a); }"},
		{"lambda", "void f() { auto fn = function(int x) { return x; }; }"},
		{"if/else", "void f() { if (a) { } else { } }"},
		{"for loop", "void f() { for (int i = 0; i < 10; i++) { } }"},
		{"while loop", "void f() { while (a) { } }"},
		{"switch", "void f() { switch (a) { case 1: break; default: break; } }"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, p := parse(t, tc.src)
			expectNoDiagnostics(t, p)
		})
	}
}

// The '>' family of compound operators (>=, >>, >>=, >>>, >>>=) and '!is'
// are never pre-combined by the lexer (spec.md §4.2); the parser must
// synthesize them itself from adjacent tokens at lookahead time.
func TestVirtualTokenSynthesis(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"greater-equal", "void f() { bool b = a >= b; }"},
		{"right shift", "void f() { int x = a >> b; }"},
		{"right shift assign", "void f() { a >>= b; }"},
		{"unsigned right shift", "void f() { int x = a >>> b; }"},
		{"unsigned right shift assign", "void f() { a >>>= b; }"},
		{"not-is", "void f() { bool b = a !is b; }"},
		{"nested template closed by synthesized shift", "void f() { array<array<int>> xs; }"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, p := parse(t, tc.src)
			expectNoDiagnostics(t, p)
		})
	}
}

// parseAssignExpr and parseStatBlock both guard against runaway recursion on
// pathological input (internal/config.MaxRecursionDepth) rather than
// overflowing the Go stack.
func TestRecursionDepthGuard(t *testing.T) {
	src := "void f() { int x = "
	for i := 0; i < 2000; i++ {
		src += "("
	}
	src += "1"
	for i := 0; i < 2000; i++ {
		src += ")"
	}
	src += "; }"

	_, p := parse(t, src)
	diags := p.Diagnostics().All()
	if len(diags) == 0 {
		t.Fatal("expected a recursion-depth diagnostic for 2000 levels of nested parens")
	}
}

func TestParseErrorRecovery(t *testing.T) {
	// Malformed input should still produce a script and diagnostics rather
	// than panicking (spec.md §7: analysis always proceeds best-effort).
	script, p := parse(t, "class {{{ !!! ")
	if script == nil {
		t.Fatal("expected a non-nil script even on malformed input")
	}
	if len(p.Diagnostics().All()) == 0 {
		t.Fatal("expected at least one diagnostic for malformed input")
	}
}
