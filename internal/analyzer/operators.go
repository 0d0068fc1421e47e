package analyzer

import (
	"strconv"

	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/diagnostics"
	"github.com/funvibe/angelscript-front/internal/symbols"
	"github.com/funvibe/angelscript-front/internal/token"
)

// precedence gives every EXPROP its shunting-yard binding strength (spec.md
// §4.6). Higher binds tighter; terms themselves sit at 1.
func precedence(op string) int {
	switch op {
	case "**":
		return 0
	case "*", "/", "%":
		return -1
	case "+", "-":
		return -2
	case "<<", ">>", ">>>":
		return -3
	case "&":
		return -4
	case "^":
		return -5
	case "|":
		return -6
	case "<", "<=", ">", ">=":
		return -7
	case "==", "!=", "is", "!is", "xor", "^^":
		return -8
	case "and", "&&":
		return -9
	case "or", "||":
		return -10
	default:
		return -11
	}
}

// shuntItem is one entry of the flattened EXPRTERM {EXPROP EXPRTERM} list,
// either a term already analyzed or a pending operator token.
type shuntItem struct {
	isOp  bool
	op    token.Token
	value symbols.ResolvedType
}

// evalShuntingYard walks the parser's flat right-leaning ExprNode list into
// input items, runs the shunting-yard reduction spec.md §4.6 describes, then
// folds the output by applying each operator to the two operands it sits
// between (§4.5's binary-operator analysis).
func (a *Analyzer) evalShuntingYard(expr *ast.ExprNode, scope *symbols.Scope) symbols.ResolvedType {
	var input []shuntItem
	for cur := expr; cur != nil; {
		input = append(input, shuntItem{value: a.analyzeExprTerm(cur.Head, scope)})
		if cur.Tail == nil {
			break
		}
		input = append(input, shuntItem{isOp: true, op: cur.Tail.Op})
		cur = cur.Tail.Rest
	}
	if len(input) == 0 {
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}

	var output []shuntItem
	var stack []shuntItem
	for _, item := range input {
		if !item.isOp {
			output = append(output, item)
			continue
		}
		for len(stack) > 0 && precedence(item.op.Text) <= precedence(stack[len(stack)-1].op.Text) {
			output = append(output, stack[len(stack)-1])
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, item)
	}
	for len(stack) > 0 {
		output = append(output, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}

	var operands []symbols.ResolvedType
	for _, item := range output {
		if !item.isOp {
			operands = append(operands, item.value)
			continue
		}
		if len(operands) < 2 {
			// Malformed input the parser should never produce; degrade
			// quietly rather than panic (spec.md §7).
			operands = append(operands, symbols.ResolvedType{Tag: symbols.Unresolved})
			continue
		}
		right := operands[len(operands)-1]
		left := operands[len(operands)-2]
		operands = operands[:len(operands)-2]
		operands = append(operands, a.analyzeBinaryOp(item.op, left, right, scope))
	}
	if len(operands) == 0 {
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
	return operands[len(operands)-1]
}

func isNumericPrimitive(t symbols.ResolvedType) bool {
	if t.Tag != symbols.Primitive {
		return false
	}
	switch t.Name {
	case "bool", "void":
		return false
	default:
		return true
	}
}

// isAssignable reports whether a value of type actual may initialize a
// variable declared with type declared (spec.md §4.4 "check that the
// resulting type is convertible to the declared type"). Numeric primitives
// convert freely among each other; everything else requires a structural
// match.
func isAssignable(declared, actual symbols.ResolvedType) bool {
	if declared.Tag == symbols.Unresolved || actual.Tag == symbols.Unresolved {
		return true
	}
	if declared.Equal(actual) {
		return true
	}
	return isNumericPrimitive(declared) && isNumericPrimitive(actual)
}

// binaryAlias maps a math/bit operator to its opXxx alias (spec.md §6). The
// reflected variant is not stored here: dispatchOperatorAlias appends `_r`
// to the alias when it tries the RHS.
var binaryAlias = map[string]string{
	"+":   "opAdd",
	"-":   "opSub",
	"*":   "opMul",
	"/":   "opDiv",
	"%":   "opMod",
	"**":  "opPow",
	"&":   "opAnd",
	"|":   "opOr",
	"^":   "opXor",
	"<<":  "opShl",
	">>":  "opShr",
	">>>": "opShrU",
}

var assignAlias = map[string]string{
	"+=":   "opAddAssign",
	"-=":   "opSubAssign",
	"*=":   "opMulAssign",
	"/=":   "opDivAssign",
	"%=":   "opModAssign",
	"**=":  "opPowAssign",
	"&=":   "opAndAssign",
	"|=":   "opOrAssign",
	"^=":   "opXorAssign",
	"<<=":  "opShlAssign",
	">>=":  "opShrAssign",
	">>>=": "opShrUAssign",
}

// analyzeBinaryOp applies one EXPROP to its two already-analyzed operands
// (spec.md §4.5 "Binary operators").
func (a *Analyzer) analyzeBinaryOp(op token.Token, left, right symbols.ResolvedType, scope *symbols.Scope) symbols.ResolvedType {
	switch op.Text {
	case "&&", "||", "^^", "and", "or", "xor":
		return symbols.ResolvedType{Tag: symbols.Primitive, Name: "bool"}
	case "==", "!=", "is", "!is":
		if left.Tag == symbols.UserType || right.Tag == symbols.UserType {
			a.dispatchOperatorAlias(op, "opEquals", left, right, scope)
		}
		return symbols.ResolvedType{Tag: symbols.Primitive, Name: "bool"}
	case "<", "<=", ">", ">=":
		if left.Tag == symbols.UserType || right.Tag == symbols.UserType {
			a.dispatchOperatorAlias(op, "opCmp", left, right, scope)
		}
		return symbols.ResolvedType{Tag: symbols.Primitive, Name: "bool"}
	}

	if alias, ok := binaryAlias[op.Text]; ok {
		if isNumericPrimitive(left) && isNumericPrimitive(right) {
			return symbols.ResolvedType{Tag: symbols.Primitive, Name: "int"}
		}
		return a.dispatchOperatorAlias(op, alias, left, right, scope)
	}

	return symbols.ResolvedType{Tag: symbols.Unresolved}
}

// dispatchOperatorAlias rewrites a binary operator to a method call on the
// LHS's type, or (when the LHS is a primitive and the RHS is user-typed) on
// the RHS under the reflected `_r` alias, so user types can override
// operators from either side (spec.md §4.5).
func (a *Analyzer) dispatchOperatorAlias(op token.Token, alias string, left, right symbols.ResolvedType, scope *symbols.Scope) symbols.ResolvedType {
	if left.Tag == symbols.UserType && left.Decl != nil {
		if fn, ok := a.findMethod(left.Decl, alias); ok {
			if overload, ok := a.resolveOverload(fn, []symbols.ResolvedType{right}, op); ok {
				return overload.ReturnType
			}
		}
	}
	if right.Tag == symbols.UserType && right.Decl != nil {
		if fn, ok := a.findMethod(right.Decl, alias+"_r"); ok {
			if overload, ok := a.resolveOverload(fn, []symbols.ResolvedType{left}, op); ok {
				return overload.ReturnType
			}
		}
	}
	a.Diagnostics.Addf(diagnostics.Type, "A005", op, "Operator '"+op.Text+"' has no matching '"+alias+"' implementation.")
	return symbols.ResolvedType{Tag: symbols.Unresolved}
}

// analyzeAssignOp applies an ASSIGNOP between an already-analyzed LHS and
// RHS (spec.md §4.5 "Assignment operators"). `=` itself always yields the
// LHS type; compound operators rewrite to opXxxAssign the same way binary
// operators rewrite to opXxx.
func (a *Analyzer) analyzeAssignOp(op token.Token, head, tail symbols.ResolvedType, scope *symbols.Scope) symbols.ResolvedType {
	if op.Text == "=" {
		return head
	}
	if isNumericPrimitive(head) && isNumericPrimitive(tail) {
		return head
	}
	alias, ok := assignAlias[op.Text]
	if !ok {
		return head
	}
	if head.Tag == symbols.UserType && head.Decl != nil {
		if fn, ok := a.findMethod(head.Decl, alias); ok {
			if overload, ok := a.resolveOverload(fn, []symbols.ResolvedType{tail}, op); ok {
				return overload.ReturnType
			}
		}
	}
	a.Diagnostics.Addf(diagnostics.Type, "A006", op, "Assignment operator '"+op.Text+"' has no matching '"+alias+"' implementation.")
	return head
}

var preOpAlias = map[string]string{
	"-": "opNeg",
	"~": "opCom",
}

// applyPreOps applies `{preOp} ExprValue` prefix operators right-to-left,
// the closest operator to the value binding first. `!` forces bool and
// needs no alias; `++`/`--` as prefixes and `-`/`~` on user types rewrite to
// their opXxx alias.
func (a *Analyzer) applyPreOps(preOps []token.Token, value symbols.ResolvedType, scope *symbols.Scope) symbols.ResolvedType {
	for i := len(preOps) - 1; i >= 0; i-- {
		op := preOps[i]
		switch op.Text {
		case "!":
			value = symbols.ResolvedType{Tag: symbols.Primitive, Name: "bool"}
		case "++", "--":
			if isNumericPrimitive(value) {
				continue
			}
			alias := "opPreInc"
			if op.Text == "--" {
				alias = "opPreDec"
			}
			value = a.dispatchUnaryAlias(op, alias, value)
		default:
			if isNumericPrimitive(value) {
				continue
			}
			if alias, ok := preOpAlias[op.Text]; ok {
				value = a.dispatchUnaryAlias(op, alias, value)
			}
		}
	}
	return value
}

func (a *Analyzer) dispatchUnaryAlias(op token.Token, alias string, value symbols.ResolvedType) symbols.ResolvedType {
	if value.Tag == symbols.UserType && value.Decl != nil {
		if fn, ok := a.findMethod(value.Decl, alias); ok {
			if overload, ok := a.resolveOverload(fn, nil, op); ok {
				return overload.ReturnType
			}
		}
	}
	a.Diagnostics.Addf(diagnostics.Type, "A007", op, "Operator '"+op.Text+"' has no matching '"+alias+"' implementation.")
	return symbols.ResolvedType{Tag: symbols.Unresolved}
}

// analyzePostOp applies one PostOp to an already-analyzed value (spec.md
// §4.5 "Method call", "Field access", "Indexer").
func (a *Analyzer) analyzePostOp(op *ast.PostOp, value symbols.ResolvedType, scope *symbols.Scope) symbols.ResolvedType {
	switch op.Kind {
	case ast.PostMember:
		return a.analyzeFieldAccess(op, value, scope)
	case ast.PostMethodCall:
		return a.analyzeMethodCall(op, value, scope)
	case ast.PostIndex:
		return a.analyzeIndexer(op, value, scope)
	case ast.PostCall:
		argTypes := a.analyzeArgList(op.Args, scope)
		if value.Tag == symbols.UserType && value.Decl != nil {
			if fn, ok := a.findMethod(value.Decl, "opCall"); ok {
				if overload, ok := a.resolveOverload(fn, argTypes, op.Start); ok {
					return overload.ReturnType
				}
			}
		}
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	case ast.PostIncDec:
		if isNumericPrimitive(value) {
			return value
		}
		alias := "opPostInc"
		if op.Op.Text == "--" {
			alias = "opPostDec"
		}
		return a.dispatchUnaryAlias(op.Op, alias, value)
	default:
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
}

// analyzeFieldAccess resolves `value.name` against value's member scope,
// which must hold a SymbolVariable (spec.md §4.5 "Field access").
func (a *Analyzer) analyzeFieldAccess(op *ast.PostOp, value symbols.ResolvedType, scope *symbols.Scope) symbols.ResolvedType {
	if value.Tag != symbols.UserType || value.Decl == nil || value.Decl.Scope == nil {
		a.Diagnostics.Addf(diagnostics.Resolution, "A008", op.Name, "Member '"+op.Name.Text+"' requested on a type with no members.")
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
	sym, ok := value.Decl.Scope.FindLocal(op.Name.Text)
	if !ok {
		a.Diagnostics.Addf(diagnostics.Resolution, "A008", op.Name, "No member '"+op.Name.Text+"' on type '"+value.Decl.SymName+"'.")
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
	value.Decl.Scope.Record(sym)
	v, ok := sym.(*symbols.Variable)
	if !ok {
		a.Diagnostics.Addf(diagnostics.Type, "A008", op.Name, "'"+op.Name.Text+"' is not a field on type '"+value.Decl.SymName+"'.")
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
	if !isAllowedToAccessMember(scope, value.Decl, v.Access) {
		a.Diagnostics.Addf(diagnostics.Access, "A014", op.Name, "'"+op.Name.Text+"' is not accessible from here.")
	}
	return v.Type
}

// analyzeMethodCall resolves `value.name(args)` (spec.md §4.5 "Method
// call"): the LHS must be a SymbolType, its member scope is searched
// shallowly for a SymbolFunction named `name`, and the argument types are
// overload-resolved against its declared parameter types as written. The LHS
// type's TemplateTranslation is not applied, so template parameters in a
// method signature are not substituted with the LHS's template arguments.
func (a *Analyzer) analyzeMethodCall(op *ast.PostOp, value symbols.ResolvedType, scope *symbols.Scope) symbols.ResolvedType {
	argTypes := a.analyzeArgList(op.Args, scope)
	if value.Tag != symbols.UserType || value.Decl == nil {
		a.Diagnostics.Addf(diagnostics.Resolution, "A009", op.Name, "Method '"+op.Name.Text+"' requested on a type with no methods.")
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
	fn, ok := a.findMethod(value.Decl, op.Name.Text)
	if !ok {
		a.Diagnostics.Addf(diagnostics.Resolution, "A009", op.Name, "No method '"+op.Name.Text+"' on type '"+value.Decl.SymName+"'.")
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
	overload, ok := a.resolveOverload(fn, argTypes, op.Name)
	if !ok {
		a.Diagnostics.Addf(diagnostics.Type, "A003", op.Name, "No matching overload for call to '"+op.Name.Text+"'.")
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
	if !isAllowedToAccessMember(scope, value.Decl, overload.Access) {
		a.Diagnostics.Addf(diagnostics.Access, "A014", op.Name, "'"+op.Name.Text+"' is not accessible from here.")
	}
	return overload.ReturnType
}

// analyzeIndexer rewrites `value[args]` to an opIndex method call on
// value's type (spec.md §4.5 "Indexer").
func (a *Analyzer) analyzeIndexer(op *ast.PostOp, value symbols.ResolvedType, scope *symbols.Scope) symbols.ResolvedType {
	argTypes := a.analyzeArgList(op.Args, scope)
	if value.Tag != symbols.UserType || value.Decl == nil {
		a.Diagnostics.Addf(diagnostics.Resolution, "A009", op.Name, "Indexer requested on a type with no 'opIndex'.")
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
	fn, ok := a.findMethod(value.Decl, "opIndex")
	if !ok {
		a.Diagnostics.Addf(diagnostics.Resolution, "A009", op.Name, "No 'opIndex' on type '"+value.Decl.SymName+"'.")
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
	overload, ok := a.resolveOverload(fn, argTypes, op.Name)
	if !ok {
		a.Diagnostics.Addf(diagnostics.Type, "A003", op.Name, "No matching overload for 'opIndex'.")
		return symbols.ResolvedType{Tag: symbols.Unresolved}
	}
	return overload.ReturnType
}

// findMethod searches ty's member scope shallowly for a Function symbol
// named name (spec.md §4.5: method/field lookups never climb to the
// enclosing scope — a miss is a miss).
func (a *Analyzer) findMethod(ty *symbols.Type, name string) (*symbols.Function, bool) {
	if ty == nil || ty.Scope == nil {
		return nil, false
	}
	sym, ok := ty.Scope.FindLocal(name)
	if !ok {
		return nil, false
	}
	fn, ok := sym.(*symbols.Function)
	return fn, ok
}

// resolveOverload walks fn's NextOverload chain, scoring each candidate by
// exact-match vs. convertible-match argument types and returning the best
// (spec.md §4.5 "Overload resolution"). A candidate with a different
// parameter count never matches; an Unresolved argument type is treated as
// convertible to anything so that a prior lookup failure doesn't cascade
// into a second diagnostic. When more than one candidate ties for the best
// score, the choice is ambiguous (spec.md §4.5, testable property #6): the
// first-found candidate is still returned so analysis can proceed, but an
// A013 diagnostic is reported at at.
func (a *Analyzer) resolveOverload(fn *symbols.Function, argTypes []symbols.ResolvedType, at token.Token) (*symbols.Function, bool) {
	var best *symbols.Function
	bestScore := -1
	tieCount := 0
	for _, candidate := range fn.Overloads() {
		if len(candidate.Params) != len(argTypes) {
			continue
		}
		score := 0
		match := true
		for i, want := range candidate.Params {
			got := argTypes[i]
			switch {
			case got.Tag == symbols.Unresolved:
				score++
			case want.Equal(got):
				score += 2
			default:
				match = false
			}
			if !match {
				break
			}
		}
		if !match {
			continue
		}
		switch {
		case score > bestScore:
			best = candidate
			bestScore = score
			tieCount = 1
		case score == bestScore:
			tieCount++
		}
	}
	if best == nil {
		return nil, false
	}
	if tieCount > 1 {
		a.Diagnostics.Addf(diagnostics.Type, "A013", at,
			"Ambiguous overload for '"+best.SymName+"': "+strconv.Itoa(tieCount)+" candidates match equally well.")
	}
	return best, true
}
