package hoist_test

import (
	"testing"

	"github.com/funvibe/angelscript-front/internal/hoist"
	"github.com/funvibe/angelscript-front/internal/lexer"
	"github.com/funvibe/angelscript-front/internal/parser"
	"github.com/funvibe/angelscript-front/internal/symbols"
)

func run(t *testing.T, src string) *hoist.Result {
	t.Helper()
	tokens := lexer.New(src, "test.as").Tokenize()
	p := parser.New(tokens, "test.as")
	script := p.ParseProgram()
	if diags := p.Diagnostics().All(); len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}
	return hoist.Run(script)
}

func TestGlobalFunctionQueuedForAnalysis(t *testing.T) {
	result := run(t, "void f() { int x = 1; }")
	if _, ok := result.GlobalScope.FindLocal("f"); !ok {
		t.Fatal("expected 'f' to be declared in the global scope")
	}
	if len(result.AnalyzeQueue) != 1 {
		t.Fatalf("expected exactly one queued body, got %d", len(result.AnalyzeQueue))
	}
	if result.AnalyzeQueue[0].Label != "f" {
		t.Errorf("expected queued task label 'f', got %q", result.AnalyzeQueue[0].Label)
	}
}

func TestClassMembersResolveForwardReferences(t *testing.T) {
	// registerTypes runs across the whole tree before registerMembers, so a
	// field whose type is declared later in the file must still resolve.
	src := `
class A { B b; }
class B { int x; }
`
	result := run(t, src)
	sym, ok := result.GlobalScope.FindLocal("A")
	if !ok {
		t.Fatal("expected class 'A' to be declared")
	}
	ty := sym.(*symbols.Type)
	if ty.Scope == nil {
		t.Fatal("expected class 'A' to have a member scope")
	}
	field, ok := ty.Scope.FindLocal("b")
	if !ok {
		t.Fatal("expected field 'b' to be declared on A's scope")
	}
	fieldVar := field.(*symbols.Variable)
	if fieldVar.Type.Tag != symbols.UserType || fieldVar.Type.Name != "B" {
		t.Errorf("expected field 'b' to resolve to user type 'B', got %+v", fieldVar.Type)
	}
}

func TestMethodOverloadsChain(t *testing.T) {
	src := `
class A {
	void f(int x) {}
	void f(float x) {}
}
`
	result := run(t, src)
	sym, _ := result.GlobalScope.FindLocal("A")
	ty := sym.(*symbols.Type)
	fnSym, ok := ty.Scope.FindLocal("f")
	if !ok {
		t.Fatal("expected method 'f' to be declared")
	}
	fn := fnSym.(*symbols.Function)
	overloads := fn.Overloads()
	if len(overloads) != 2 {
		t.Fatalf("expected 2 overloads chained under 'f', got %d", len(overloads))
	}
}

func TestArrayTypeResolvesToConfiguredArrayName(t *testing.T) {
	result := run(t, "int[] xs;")
	sym, ok := result.GlobalScope.FindLocal("xs")
	if !ok {
		t.Fatal("expected global variable 'xs' to be declared")
	}
	v := sym.(*symbols.Variable)
	if v.Type.Tag != symbols.ArrayOf {
		t.Fatalf("expected 'xs' to resolve as ArrayOf, got %+v", v.Type)
	}
	if v.Type.Name != "array" {
		t.Errorf("expected default array type name 'array', got %q", v.Type.Name)
	}
	if v.Type.Inner == nil || v.Type.Inner.Tag != symbols.Primitive || v.Type.Inner.Name != "int" {
		t.Errorf("expected array element type 'int', got %+v", v.Type.Inner)
	}
}

func TestEnumMembersAreConstVariablesOfTheEnumType(t *testing.T) {
	result := run(t, "enum Color { Red, Green, Blue }")
	sym, ok := result.GlobalScope.FindLocal("Color")
	if !ok {
		t.Fatal("expected enum 'Color' to be declared")
	}
	ty := sym.(*symbols.Type)
	member, ok := ty.Scope.FindLocal("Red")
	if !ok {
		t.Fatal("expected enum member 'Red' to be declared in Color's scope")
	}
	v := member.(*symbols.Variable)
	if !v.IsConst {
		t.Error("expected enum member to be const")
	}
	if v.Type.Name != "Color" {
		t.Errorf("expected enum member type 'Color', got %q", v.Type.Name)
	}
}

// TestFieldTypeClimbsPastOwnConstructor covers a field whose declared type
// is the name of its own enclosing class: the constructor overload chain
// bound to that name in the class's own scope must not shadow the class's
// Type symbol when resolving the field's type.
func TestFieldTypeClimbsPastOwnConstructor(t *testing.T) {
	src := `
class Node {
	Node(int x) {}
	Node@ next;
}
`
	result := run(t, src)
	sym, ok := result.GlobalScope.FindLocal("Node")
	if !ok {
		t.Fatal("expected class 'Node' to be declared")
	}
	ty := sym.(*symbols.Type)
	field, ok := ty.Scope.FindLocal("next")
	if !ok {
		t.Fatal("expected field 'next' to be declared on Node's scope")
	}
	fieldVar := field.(*symbols.Variable)
	if fieldVar.Type.Tag != symbols.HandleOf || fieldVar.Type.Inner == nil {
		t.Fatalf("expected 'next' to resolve to a handle type, got %+v", fieldVar.Type)
	}
	if fieldVar.Type.Inner.Tag != symbols.UserType || fieldVar.Type.Inner.Name != "Node" {
		t.Errorf("expected 'next' to hold a handle to 'Node' despite the same-named constructor, got %+v", fieldVar.Type.Inner)
	}
}

// TestFuncDefResolvesAsHandlerType covers a field typed as a funcdef: the
// resolved type must be flagged IsHandler so the analyzer can distinguish a
// function-pointer type from an ordinary class/interface/enum type.
func TestFuncDefResolvesAsHandlerType(t *testing.T) {
	src := `
funcdef void Callback();
Callback@ cb;
`
	result := run(t, src)
	sym, ok := result.GlobalScope.FindLocal("cb")
	if !ok {
		t.Fatal("expected global variable 'cb' to be declared")
	}
	v := sym.(*symbols.Variable)
	if v.Type.Tag != symbols.HandleOf || v.Type.Inner == nil {
		t.Fatalf("expected 'cb' to resolve to a handle type, got %+v", v.Type)
	}
	if !v.Type.Inner.IsHandler {
		t.Error("expected the funcdef-typed handle target to be flagged IsHandler")
	}
}

// TestScopePrefixRecordsNamespaceHints covers a `::`-qualified reference:
// each resolved hop should append a HintNamespace completion hint to the
// referencing scope.
func TestScopePrefixRecordsNamespaceHints(t *testing.T) {
	src := `
namespace NS { class Inner {} }
NS::Inner x;
`
	result := run(t, src)
	var found bool
	for _, hint := range result.GlobalScope.CompletionHints {
		if hint.Kind == symbols.HintNamespace {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a HintNamespace completion hint on the global scope, got: %+v", result.GlobalScope.CompletionHints)
	}
}

func TestNamespaceNesting(t *testing.T) {
	result := run(t, "namespace NS { class Inner {} }")
	nsSym, ok := result.GlobalScope.FindLocal("Inner")
	_ = nsSym
	if ok {
		t.Fatal("expected 'Inner' to NOT be declared directly in the global scope")
	}
	var ns *symbols.Scope
	for _, child := range result.GlobalScope.Children {
		if child.Kind == symbols.ScopeNamespace && child.Name == "NS" {
			ns = child
		}
	}
	if ns == nil {
		t.Fatal("expected a namespace scope named 'NS'")
	}
	if _, ok := ns.FindLocal("Inner"); !ok {
		t.Fatal("expected class 'Inner' to be declared inside namespace 'NS'")
	}
}
