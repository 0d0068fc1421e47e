package parser_test

import (
	"testing"

	"github.com/funvibe/angelscript-front/internal/ast"
)

// lambdaOf drills through a declarator's plain (non-ternary) Assign down to
// the Lambda its ExprTermValue holds, failing the test if any link along the
// way isn't shaped the way a bare 'function(...) {...}' initializer parses.
func lambdaOf(t *testing.T, decl *ast.VarDeclarator) *ast.Lambda {
	t.Helper()
	if decl.InitKind != ast.VarInitAssign {
		t.Fatalf("expected an assign-initialized declarator, got %v", decl.InitKind)
	}
	cond := decl.Assign.Head
	term, ok := cond.Expr.Head.(*ast.ExprTermValue)
	if !ok {
		t.Fatalf("expected an ExprTermValue, got %T", cond.Expr.Head)
	}
	lambda, ok := term.Value.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected the initializer to parse as a Lambda, got %T", term.Value)
	}
	return lambda
}

// TestLambdaLookaheadRecognizesParamList exercises the no-depth-balancing
// scan the parser uses to decide 'function(' starts a lambda rather than a
// construct-call on a type literally named "function": a plain parameter
// list followed by '{' must be recognized as a lambda.
func TestLambdaLookaheadRecognizesParamList(t *testing.T) {
	script, p := parse(t, "void g() { auto f = function(int x, int y) { return x + y; }; }")
	expectNoDiagnostics(t, p)
	fn := findFunc(t, script, "g")
	v, ok := fn.Body.Statements[0].(*ast.Var)
	if !ok {
		t.Fatalf("expected a Var statement, got %T", fn.Body.Statements[0])
	}
	lambda := lambdaOf(t, v.Declarators[0])
	if len(lambda.Params) != 2 {
		t.Fatalf("expected 2 lambda params, got %d", len(lambda.Params))
	}
}

// TestLambdaLookaheadEmptyParamList covers the zero-parameter shape, where
// the scan sees '(' immediately followed by ')' then '{'.
func TestLambdaLookaheadEmptyParamList(t *testing.T) {
	script, p := parse(t, "void g() { auto f = function() { return 1; }; }")
	expectNoDiagnostics(t, p)
	fn := findFunc(t, script, "g")
	v := fn.Body.Statements[0].(*ast.Var)
	lambda := lambdaOf(t, v.Declarators[0])
	if len(lambda.Params) != 0 {
		t.Errorf("expected 0 lambda params, got %d", len(lambda.Params))
	}
}

func findFunc(t *testing.T, script *ast.Script, name string) *ast.Func {
	t.Helper()
	for _, decl := range script.Decls {
		if fn, ok := decl.(*ast.Func); ok && fn.Name.Text == name {
			return fn
		}
	}
	t.Fatalf("expected a top-level function named %q", name)
	return nil
}
