package symbols

// TypeKindTag distinguishes the shapes a ResolvedType can take.
type TypeKindTag int

const (
	Primitive TypeKindTag = iota
	UserType
	ArrayOf
	HandleOf
	Auto
	Void
	Unresolved // name lookup failed; recorded so downstream checks degrade quietly rather than panic
)

// ResolvedType is the analyzer's concrete type value, distinct from
// ast.Type (the unresolved syntax tree node it is built from). Array and
// handle wrap an inner ResolvedType; UserType carries the Type symbol and,
// for template instantiations, the substitution applied to its parameters.
type ResolvedType struct {
	Tag       TypeKindTag
	Name      string // primitive keyword, or the user type's declared name
	IsConst   bool
	Inner     *ResolvedType // ArrayOf / HandleOf element type
	Decl      *Type         // UserType: the symbol this instantiates
	Template  *TemplateTranslation
	// IsHandler marks a UserType instantiated from a FuncDef symbol rather
	// than a Class/Interface/Enum: a function-pointer type (spec.md §3, §4.4
	// "FuncDef symbol -> handler of that function type").
	IsHandler bool
}

// TemplateTranslation maps a generic declaration's parameter tokens to the
// concrete ResolvedTypes substituted at one instantiation site (spec.md §3).
type TemplateTranslation struct {
	Params map[string]ResolvedType
}

func (t *TemplateTranslation) Lookup(param string) (ResolvedType, bool) {
	if t == nil {
		return ResolvedType{}, false
	}
	r, ok := t.Params[param]
	return r, ok
}

// Equal reports structural equality, ignoring IsConst (spec.md §4.6
// overload scoring treats const-qualification as a convertibility concern,
// not an identity one).
func (r ResolvedType) Equal(other ResolvedType) bool {
	if r.Tag != other.Tag || r.Name != other.Name {
		return false
	}
	switch r.Tag {
	case ArrayOf, HandleOf:
		if r.Inner == nil || other.Inner == nil {
			return r.Inner == other.Inner
		}
		return r.Inner.Equal(*other.Inner)
	}
	return true
}

func (r ResolvedType) String() string {
	switch r.Tag {
	case ArrayOf:
		return r.Inner.String() + "[]"
	case HandleOf:
		return r.Inner.String() + "@"
	case Void:
		return "void"
	case Auto:
		return "auto"
	case Unresolved:
		return "<unresolved>"
	default:
		return r.Name
	}
}
