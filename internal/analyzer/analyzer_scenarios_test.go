package analyzer_test

import (
	"testing"

	"github.com/funvibe/angelscript-front/internal/analyzer"
	"github.com/funvibe/angelscript-front/internal/diagnostics"
	"github.com/funvibe/angelscript-front/internal/hoist"
	"github.com/funvibe/angelscript-front/internal/lexer"
	"github.com/funvibe/angelscript-front/internal/parser"
	"github.com/funvibe/angelscript-front/internal/symbols"
)

// analyze runs the whole pipeline — lex, parse, hoist, analyze — the way
// cmd/angelcheck and cmd/angellsp both do, and returns every diagnostic from
// either stage alongside the hoisted result for structural assertions.
func analyze(t *testing.T, src string) (*hoist.Result, *analyzer.Analyzer, []diagnostics.Diagnostic) {
	t.Helper()
	tokens := lexer.New(src, "test.as").Tokenize()
	p := parser.New(tokens, "test.as")
	script := p.ParseProgram()
	result := hoist.Run(script)
	a := analyzer.New()
	a.Analyze(result)
	var all []diagnostics.Diagnostic
	all = append(all, p.Diagnostics().All()...)
	all = append(all, a.Diagnostics.All()...)
	return result, a, all
}

// S1: a plain global declaration with a well-typed initializer produces no
// diagnostics and declares one int-typed variable.
func TestScenarioS1_SimpleGlobalVar(t *testing.T) {
	result, _, diags := analyze(t, "int x = 1 + 2 * 3;")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got: %v", diags)
	}
	sym, ok := result.GlobalScope.FindLocal("x")
	if !ok {
		t.Fatal("expected variable 'x' to be declared")
	}
	v := sym.(*symbols.Variable)
	if v.Type.Tag != symbols.Primitive || v.Type.Name != "int" {
		t.Errorf("expected 'x' to resolve to int, got %+v", v.Type)
	}
}

// S2: a one-constructor class and a construct-call against it produce no
// diagnostics, with the field, the constructor overload, and the variable
// all present.
func TestScenarioS2_ClassWithConstructor(t *testing.T) {
	src := `class A { int v; A(int x) { v = x; } } A a(42);`
	result, _, diags := analyze(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got: %v", diags)
	}

	classSym, ok := result.GlobalScope.FindLocal("A")
	if !ok {
		t.Fatal("expected class 'A' to be declared")
	}
	class := classSym.(*symbols.Type)
	if _, ok := class.Scope.FindLocal("v"); !ok {
		t.Fatal("expected field 'v' to be declared on A")
	}
	ctorSym, ok := class.Scope.FindLocal("A")
	if !ok {
		t.Fatal("expected constructor 'A' to be declared on A's scope")
	}
	if len(ctorSym.(*symbols.Function).Overloads()) != 1 {
		t.Fatal("expected exactly one constructor overload")
	}

	aSym, ok := result.GlobalScope.FindLocal("a")
	if !ok {
		t.Fatal("expected variable 'a' to be declared")
	}
	av := aSym.(*symbols.Variable)
	if av.Type.Tag != symbols.UserType || av.Type.Name != "A" {
		t.Errorf("expected 'a' to resolve to user type 'A', got %+v", av.Type)
	}
}

// S3: assigning an int to a declared bool reports a type mismatch, and the
// variable is still inserted with its declared type regardless.
func TestScenarioS3_TypeMismatchOnInitializer(t *testing.T) {
	result, _, diags := analyze(t, "int a = 1; bool b = a;")
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Code != "A012" {
		t.Errorf("expected diagnostic code A012, got %s", diags[0].Code)
	}
	if diags[0].Location.Start.Column == 0 {
		t.Errorf("expected a concrete location for the mismatch diagnostic")
	}

	bSym, ok := result.GlobalScope.FindLocal("b")
	if !ok {
		t.Fatal("expected variable 'b' to be declared despite the mismatch")
	}
	bv := bSym.(*symbols.Variable)
	if bv.Type.Tag != symbols.Primitive || bv.Type.Name != "bool" {
		t.Errorf("expected 'b' to keep its declared type bool, got %+v", bv.Type)
	}
}

// S4: enum members resolve to the enum's own type, and a one-argument
// construct-call against the enum (the builtin enum-value constructor)
// produces no diagnostics.
func TestScenarioS4_EnumConstructCall(t *testing.T) {
	src := `enum E { X, Y = 5, Z } E e = E(1);`
	result, _, diags := analyze(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got: %v", diags)
	}

	enumSym, ok := result.GlobalScope.FindLocal("E")
	if !ok {
		t.Fatal("expected enum 'E' to be declared")
	}
	enumTy := enumSym.(*symbols.Type)
	for _, name := range []string{"X", "Y", "Z"} {
		member, ok := enumTy.Scope.FindLocal(name)
		if !ok {
			t.Fatalf("expected enum member %q to be declared", name)
		}
		if member.(*symbols.Variable).Type.Name != "E" {
			t.Errorf("expected member %q to resolve to enum type E", name)
		}
	}

	eSym, ok := result.GlobalScope.FindLocal("e")
	if !ok {
		t.Fatal("expected variable 'e' to be declared")
	}
	if eSym.(*symbols.Variable).Type.Name != "E" {
		t.Errorf("expected 'e' to resolve to enum type E, got %+v", eSym.(*symbols.Variable).Type)
	}
}

// S5: two overloads of a free function are chained together, and calling
// with an int argument resolves to the int overload, recorded on the call
// site's referenced list.
func TestScenarioS5_OverloadResolution(t *testing.T) {
	// The call site is wrapped in a function body: the Script grammar has no
	// bare top-level expression-statement production (spec.md §4.1 lists
	// only declarations at that level), so the call itself must live inside
	// a StatBlock.
	src := `int f(int x) { return x; } int f(float x) { return 0; } void g() { f(1); }`
	result, _, diags := analyze(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got: %v", diags)
	}

	fSym, ok := result.GlobalScope.FindLocal("f")
	if !ok {
		t.Fatal("expected function 'f' to be declared")
	}
	overloads := fSym.(*symbols.Function).Overloads()
	if len(overloads) != 2 {
		t.Fatalf("expected 2 overloads of 'f', got %d", len(overloads))
	}

	var recordedIntOverload bool
	for _, sym := range result.GlobalScope.Referenced {
		if fn, ok := sym.(*symbols.Function); ok && fn.SymName == "f" {
			if len(fn.Params) == 1 && fn.Params[0].Name == "int" {
				recordedIntOverload = true
			}
		}
	}
	if !recordedIntOverload {
		t.Error("expected the int overload of 'f' to be recorded on the global scope's referenced list")
	}
}

// S6: a malformed class member still recovers to a usable (if incomplete)
// Class node, with parsing continuing past the closing brace.
func TestScenarioS6_ParserRecoveryInsideClass(t *testing.T) {
	result, _, diags := analyze(t, "class C { int ; } int after = 1;")
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic for the malformed member")
	}

	if _, ok := result.GlobalScope.FindLocal("C"); !ok {
		t.Fatal("expected class 'C' to still be declared despite the malformed member")
	}
	if _, ok := result.GlobalScope.FindLocal("after"); !ok {
		t.Fatal("expected parsing to continue past the malformed class body to the following declaration")
	}
}
