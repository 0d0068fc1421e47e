package hoist

import (
	"github.com/funvibe/angelscript-front/internal/ast"
	"github.com/funvibe/angelscript-front/internal/config"
	"github.com/funvibe/angelscript-front/internal/symbols"
)

// ResolveType turns a parsed *ast.Type into a symbols.ResolvedType by looking
// its base name up in scope (climbing enclosing scopes per spec.md §4.1).
// Names that don't resolve become Unresolved rather than an error: hoisting
// never reports diagnostics, that's the analyzer's job once bodies are
// walked (spec.md §7 "never-throw policy").
func ResolveType(scope *symbols.Scope, t *ast.Type) symbols.ResolvedType {
	if t == nil {
		return symbols.ResolvedType{Tag: symbols.Void}
	}

	var base symbols.ResolvedType
	switch t.DataType.Kind {
	case ast.DataTypePrimitive:
		if t.DataType.Token.Text == "void" {
			base = symbols.ResolvedType{Tag: symbols.Void}
		} else {
			base = symbols.ResolvedType{Tag: symbols.Primitive, Name: t.DataType.Token.Text}
		}
	case ast.DataTypeAuto:
		base = symbols.ResolvedType{Tag: symbols.Auto}
	case ast.DataTypeQuestion:
		base = symbols.ResolvedType{Tag: symbols.Unresolved, Name: "?"}
	case ast.DataTypeIdent:
		base = resolveIdent(scope, t)
	}
	base.IsConst = t.IsConst

	if t.IsArray {
		inner := base
		// spec.md §4.4: "Array syntax T[] rewrites the type into a template
		// instantiation of the configured built-in array type with T as its
		// single template argument."
		base = symbols.ResolvedType{Tag: symbols.ArrayOf, Name: config.ArrayTypeName, Inner: &inner}
	}
	if t.Ref != ast.RefNone {
		inner := base
		base = symbols.ResolvedType{Tag: symbols.HandleOf, Inner: &inner, IsConst: t.Ref == ast.RefAtConst}
	}
	return base
}

func resolveIdent(scope *symbols.Scope, t *ast.Type) symbols.ResolvedType {
	name := t.DataType.Token.Text
	lookupScope := scope
	if t.Scope != nil {
		if resolved, ok := resolveScopePrefix(scope, t.Scope); ok {
			lookupScope = resolved
		}
	}
	ty, ok := findTypeSymbol(lookupScope, name)
	if !ok {
		return symbols.ResolvedType{Tag: symbols.Unresolved, Name: name}
	}
	result := symbols.ResolvedType{Tag: symbols.UserType, Name: name, Decl: ty}
	if _, isHandler := ty.Node.(*ast.FuncDef); isHandler {
		result.IsHandler = true
	}
	if len(t.TemplateArgs) > 0 {
		result.Template = translateTemplateArgs(scope, ty, t.TemplateArgs)
	}
	return result
}

// findTypeSymbol walks the scope chain like Scope.Find, but a hit that is a
// constructor Function chained under the same name as its own owning class
// scope isn't a type and doesn't shadow one (spec.md §4.4): a class's own
// name, referenced from inside one of its own member bodies, must still
// resolve to the class's Type symbol instead of stopping at the constructor
// overload chain bound to that name in the same table. The lookup retries
// one level up in that case.
func findTypeSymbol(scope *symbols.Scope, name string) (*symbols.Type, bool) {
	for cur := scope; cur != nil; cur = cur.Parent {
		sym, ok := cur.FindLocal(name)
		if !ok {
			continue
		}
		if _, isFunc := sym.(*symbols.Function); isFunc && cur.Kind == symbols.ScopeClass && cur.Name == name {
			continue
		}
		ty, ok := sym.(*symbols.Type)
		return ty, ok
	}
	return nil, false
}

// resolveScopePrefix walks a `::`-qualified Scope down from the requesting
// scope, or from the global scope when the prefix starts with `::`
// (spec.md §3 Scope), stopping at the first segment that isn't itself a
// namespace/class scope. Every successfully resolved hop records a Namespace
// completion hint on the requesting scope (spec.md §2 "Completion-hint
// collector", §4.4).
func resolveScopePrefix(scope *symbols.Scope, sc *ast.Scope) (*symbols.Scope, bool) {
	cur := scope
	if sc.IsGlobal {
		for cur.Parent != nil {
			cur = cur.Parent
		}
	}
	for _, name := range sc.Names {
		var next *symbols.Scope
		for _, child := range cur.Children {
			if child.Name == name.Text {
				next = child
				break
			}
		}
		if next == nil {
			return scope, false
		}
		cur = next
		scope.Hint(symbols.HintNamespace, cur.LinkedNode)
	}
	return cur, true
}

// translateTemplateArgs builds the substitution a generic instantiation
// applies at this use site, keyed by the declaration's own template
// parameter names where available (spec.md §3 "TemplateTranslation").
func translateTemplateArgs(scope *symbols.Scope, decl *symbols.Type, args []*ast.Type) *symbols.TemplateTranslation {
	paramNames := templateParamNames(decl)
	translation := &symbols.TemplateTranslation{Params: make(map[string]symbols.ResolvedType, len(args))}
	for i, arg := range args {
		resolved := ResolveType(scope, arg)
		if i < len(paramNames) {
			translation.Params[paramNames[i]] = resolved
		}
	}
	return translation
}

func templateParamNames(decl *symbols.Type) []string {
	class, ok := decl.Node.(*ast.Class)
	if !ok {
		return nil
	}
	names := make([]string, len(class.TypeTemplates))
	for i, tok := range class.TypeTemplates {
		names[i] = tok.Text
	}
	return names
}
