package analyzer_test

import (
	"testing"

	"github.com/funvibe/angelscript-front/internal/config"
	"github.com/funvibe/angelscript-front/internal/diagnostics"
)

func hasCode(diags []diagnostics.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

// TestA001_UnresolvedIdentifier covers a bare VarAccess to an undeclared name.
func TestA001_UnresolvedIdentifier(t *testing.T) {
	_, _, diags := analyze(t, "void f() { int x = y; }")
	if !hasCode(diags, "A001") {
		t.Fatalf("expected A001 among diagnostics, got: %v", diags)
	}
}

// TestA002_CallOnNonCallableVariable covers calling a plain int local as if
// it were a function: the parser can't tell 'x()' apart from a function call
// syntactically, so the analyzer reports the mismatch once the variable's
// type is known.
func TestA002_CallOnNonCallableVariable(t *testing.T) {
	_, _, diags := analyze(t, "void f() { int x; x(); }")
	if !hasCode(diags, "A002") {
		t.Fatalf("expected A002 among diagnostics, got: %v", diags)
	}
}

// TestA003_NoMatchingOverload covers a call whose argument count matches no
// declared overload.
func TestA003_NoMatchingOverload(t *testing.T) {
	_, _, diags := analyze(t, "void f(int x) {} void g() { f(1, 2); }")
	if !hasCode(diags, "A003") {
		t.Fatalf("expected A003 among diagnostics, got: %v", diags)
	}
}

// TestA004_NoMatchingConstructor covers a construct-call against a
// single-constructor class with the wrong argument count.
func TestA004_NoMatchingConstructor(t *testing.T) {
	_, _, diags := analyze(t, "class A { A(int x) {} } void g() { A a(1, 2); }")
	if !hasCode(diags, "A004") {
		t.Fatalf("expected A004 among diagnostics, got: %v", diags)
	}
}

// TestA005_BinaryOperatorAliasMissing covers '+' between two instances of a
// class with no opAdd.
func TestA005_BinaryOperatorAliasMissing(t *testing.T) {
	_, _, diags := analyze(t, "class A {} void g() { A a; A b; a + b; }")
	if !hasCode(diags, "A005") {
		t.Fatalf("expected A005 among diagnostics, got: %v", diags)
	}
}

// TestA006_AssignOperatorAliasMissing covers '+=' against a class with no
// opAddAssign.
func TestA006_AssignOperatorAliasMissing(t *testing.T) {
	_, _, diags := analyze(t, "class A {} void g() { A a; A b; a += b; }")
	if !hasCode(diags, "A006") {
		t.Fatalf("expected A006 among diagnostics, got: %v", diags)
	}
}

// TestA007_UnaryOperatorAliasMissing covers prefix '-' against a class with
// no opNeg.
func TestA007_UnaryOperatorAliasMissing(t *testing.T) {
	_, _, diags := analyze(t, "class A {} void g() { A a; -a; }")
	if !hasCode(diags, "A007") {
		t.Fatalf("expected A007 among diagnostics, got: %v", diags)
	}
}

// TestA008_NoSuchField covers field access against a class with no members.
func TestA008_NoSuchField(t *testing.T) {
	_, _, diags := analyze(t, "class A {} void g() { A a; a.missing; }")
	if !hasCode(diags, "A008") {
		t.Fatalf("expected A008 among diagnostics, got: %v", diags)
	}
}

// TestA009_NoSuchMethod covers a method call against a class with no such
// method.
func TestA009_NoSuchMethod(t *testing.T) {
	_, _, diags := analyze(t, "class A {} void g() { A a; a.missing(); }")
	if !hasCode(diags, "A009") {
		t.Fatalf("expected A009 among diagnostics, got: %v", diags)
	}
}

// TestA009_NoOpIndex covers an indexer against a class with no opIndex.
func TestA009_NoOpIndex(t *testing.T) {
	_, _, diags := analyze(t, "class A {} void g() { A a; a[0]; }")
	if !hasCode(diags, "A009") {
		t.Fatalf("expected A009 among diagnostics, got: %v", diags)
	}
}

// TestA010_NotAllPathsReturn covers a non-void function whose only branch
// doesn't cover the implicit fall-through.
func TestA010_NotAllPathsReturn(t *testing.T) {
	_, _, diags := analyze(t, "int f() { if (true) { return 1; } }")
	if !hasCode(diags, "A010") {
		t.Fatalf("expected A010 among diagnostics, got: %v", diags)
	}
}

// TestA011_ConditionNotBool covers an if-condition typed as int.
func TestA011_ConditionNotBool(t *testing.T) {
	_, _, diags := analyze(t, "void f() { if (1) {} }")
	if !hasCode(diags, "A011") {
		t.Fatalf("expected A011 among diagnostics, got: %v", diags)
	}
}

// TestNumericOperatorsNeverReportAliasMismatches covers the common case: two
// ints through every arithmetic/comparison/logical operator never hit the
// opXxx alias path at all.
func TestNumericOperatorsNeverReportAliasMismatches(t *testing.T) {
	src := "void f() { int a = 1; int b = 2; int c = a + b - a * b / b % a; bool d = a < b && a != b || a == b; }"
	_, _, diags := analyze(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics for all-numeric operators, got: %v", diags)
	}
}

// TestA005_EqualityAliasMissing covers '==' between two instances of a class
// with no opEquals: equality on user types rewrites to opEquals the same way
// math operators rewrite to opAdd/opSub/etc.
func TestA005_EqualityAliasMissing(t *testing.T) {
	_, _, diags := analyze(t, "class A {} void g() { A a; A b; a == b; }")
	if !hasCode(diags, "A005") {
		t.Fatalf("expected A005 among diagnostics, got: %v", diags)
	}
}

// TestA005_OrderingAliasMissing covers '<' between two instances of a class
// with no opCmp.
func TestA005_OrderingAliasMissing(t *testing.T) {
	_, _, diags := analyze(t, "class A {} void g() { A a; A b; a < b; }")
	if !hasCode(diags, "A005") {
		t.Fatalf("expected A005 among diagnostics, got: %v", diags)
	}
}

// TestEqualityAgainstUserOpEquals covers '==' between two instances of a
// class that does declare opEquals: no alias-mismatch diagnostic, and the
// comparison's own type is still bool regardless of opEquals's declared
// return type.
func TestEqualityAgainstUserOpEquals(t *testing.T) {
	src := "class A { bool opEquals(A other) { return true; } } void g() { A a; A b; bool r = a == b; }"
	_, _, diags := analyze(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got: %v", diags)
	}
}

// TestA013_AmbiguousOverload covers two overloads of a function that tie for
// best score against an argument whose type never resolved (so every
// parameter slot is scored as equally convertible).
func TestA013_AmbiguousOverload(t *testing.T) {
	src := "void f(int x) {} void f(float x) {} void g() { f(missing); }"
	_, _, diags := analyze(t, src)
	if !hasCode(diags, "A013") {
		t.Fatalf("expected A013 among diagnostics, got: %v", diags)
	}
}

// TestA015_VoidFunctionReturnsValue covers a void function whose return
// statement supplies a value.
func TestA015_VoidFunctionReturnsValue(t *testing.T) {
	_, _, diags := analyze(t, "void f() { return 1; }")
	if !hasCode(diags, "A015") {
		t.Fatalf("expected A015 among diagnostics, got: %v", diags)
	}
}

// TestA015_ReturnTypeMismatch covers a non-void function returning a value
// not convertible to its declared return type.
func TestA015_ReturnTypeMismatch(t *testing.T) {
	_, _, diags := analyze(t, "class A {} bool f() { A a; return a; }")
	if !hasCode(diags, "A015") {
		t.Fatalf("expected A015 among diagnostics, got: %v", diags)
	}
}

// TestA015_GetterReturnTypeChecked covers a property getter, whose expected
// return type is the property's own type rather than void.
func TestA015_GetterReturnTypeChecked(t *testing.T) {
	src := "class A { int v { get { return true; } } }"
	_, _, diags := analyze(t, src)
	if !hasCode(diags, "A015") {
		t.Fatalf("expected A015 among diagnostics for a bool value returned from an int getter, got: %v", diags)
	}
}

// TestA015_SetterRejectsReturnValue covers a property setter, whose expected
// return type is always void.
func TestA015_SetterRejectsReturnValue(t *testing.T) {
	src := "class A { int v { set { return 1; } } }"
	_, _, diags := analyze(t, src)
	if !hasCode(diags, "A015") {
		t.Fatalf("expected A015 among diagnostics for a setter returning a value, got: %v", diags)
	}
}

// TestReturnTypeConvertibleNumericNoDiagnostic covers a non-void function
// returning a convertible (but not identical) numeric primitive.
func TestReturnTypeConvertibleNumericNoDiagnostic(t *testing.T) {
	_, _, diags := analyze(t, "float f() { return 1; }")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics for a convertible numeric return, got: %v", diags)
	}
}

// TestA014_PrivateFieldNotAccessibleOutsideClass covers reading a private
// field from outside the declaring class.
func TestA014_PrivateFieldNotAccessibleOutsideClass(t *testing.T) {
	src := "class A { private int v; } void g() { A a; int x = a.v; }"
	_, _, diags := analyze(t, src)
	if !hasCode(diags, "A014") {
		t.Fatalf("expected A014 among diagnostics, got: %v", diags)
	}
}

// TestPrivateFieldAccessibleFromOwnMethod covers reading a private field from
// inside the declaring class's own method body.
func TestPrivateFieldAccessibleFromOwnMethod(t *testing.T) {
	src := "class A { private int v; int read() { return v; } }"
	_, _, diags := analyze(t, src)
	for _, d := range diags {
		if d.Code == "A014" {
			t.Fatalf("expected no A014 from within the declaring class, got: %v", diags)
		}
	}
}

// TestA014_PrivateMethodNotAccessibleOutsideClass covers calling a private
// method from outside the declaring class.
func TestA014_PrivateMethodNotAccessibleOutsideClass(t *testing.T) {
	src := "class A { private void secret() {} } void g() { A a; a.secret(); }"
	_, _, diags := analyze(t, src)
	if !hasCode(diags, "A014") {
		t.Fatalf("expected A014 among diagnostics, got: %v", diags)
	}
}

// TestA016_SwitchMissingDefaultUnderStrictMode covers a switch with no
// default case, reported only when config.StrictMode is on.
func TestA016_SwitchMissingDefaultUnderStrictMode(t *testing.T) {
	src := "void f(int x) { switch (x) { case 1: break; } }"

	_, _, diags := analyze(t, src)
	if hasCode(diags, "A016") {
		t.Fatalf("expected no A016 with StrictMode off, got: %v", diags)
	}

	config.StrictMode = true
	defer func() { config.StrictMode = false }()
	_, _, diags = analyze(t, src)
	if !hasCode(diags, "A016") {
		t.Fatalf("expected A016 among diagnostics with StrictMode on, got: %v", diags)
	}
}
