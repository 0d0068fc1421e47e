package analyzer

import (
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/symbols"
)

// isAllowedToAccessMember reports whether a reference made from accessor may
// reach a member declared with access on owner (spec.md §4.5 "Field access"
// / "Method call"): public members are reachable from anywhere; private
// members only from within the declaring class's own scope (including its
// own method bodies); protected members additionally from any class whose
// Bases list names the declaring class directly.
func isAllowedToAccessMember(accessor *symbols.Scope, owner *symbols.Type, access ast.Access) bool {
	if access == ast.AccessDefault || owner == nil || owner.Scope == nil {
		return true
	}
	if withinScope(accessor, owner.Scope) {
		return true
	}
	if access != ast.AccessProtected {
		return false
	}
	enclosing := enclosingClassScope(accessor)
	if enclosing == nil {
		return false
	}
	class, ok := enclosing.LinkedNode.(*ast.Class)
	if !ok {
		return false
	}
	for _, base := range class.Bases {
		if base.Text == owner.SymName {
			return true
		}
	}
	return false
}

func withinScope(scope, target *symbols.Scope) bool {
	for cur := scope; cur != nil; cur = cur.Parent {
		if cur == target {
			return true
		}
	}
	return false
}

func enclosingClassScope(scope *symbols.Scope) *symbols.Scope {
	for cur := scope; cur != nil; cur = cur.Parent {
		if cur.Kind == symbols.ScopeClass {
			return cur
		}
	}
	return nil
}
