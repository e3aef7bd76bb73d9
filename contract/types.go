package contract

import (
	"strings"
	"unicode"
)

// TypeKind classifies a type reference for default-value synthesis and
// identifier suffix derivation.
type TypeKind string

const (
	// TypeValue is a scalar with a well-known zero value (int32, bool, ...).
	TypeValue TypeKind = "value"

	// TypeReference is a concrete reference type; defaults to nil.
	TypeReference TypeKind = "reference"

	// TypeNullable wraps Elem and admits an explicit null/absent state.
	TypeNullable TypeKind = "nullable"

	// TypeDeferred is a deferred-computation wrapper around Elem,
	// modeling asynchronous or lazy result types.
	TypeDeferred TypeKind = "deferred"

	// TypeContainer has a canonical empty-instance form (map, set, list).
	TypeContainer TypeKind = "container"

	// TypeArray is a sequence of Elem with a canonical empty instance.
	TypeArray TypeKind = "array"

	// TypeTuple aggregates the Args element types.
	TypeTuple TypeKind = "tuple"

	// TypeOpaque is an interface or abstract type with no safe default.
	TypeOpaque TypeKind = "opaque"

	// TypeParam is an unbound type parameter of the enclosing generic
	// member or open-generic target.
	TypeParam TypeKind = "param"
)

// TypeDescriptor is a closed type reference.
//
// Name carries the base type name for value/reference/container/opaque/param
// kinds. Elem carries the wrapped or element type for nullable, deferred,
// array, and container kinds. Args carries tuple elements and generic
// arguments of Name.
type TypeDescriptor struct {
	Kind TypeKind
	Name string
	Elem *TypeDescriptor
	Args []TypeDescriptor
}

// Convenience constructors. These keep call sites in flatteners and tests
// readable; descriptors may also be built literally.

func Value(name string) TypeDescriptor     { return TypeDescriptor{Kind: TypeValue, Name: name} }
func Reference(name string) TypeDescriptor { return TypeDescriptor{Kind: TypeReference, Name: name} }
func Opaque(name string) TypeDescriptor    { return TypeDescriptor{Kind: TypeOpaque, Name: name} }
func Param(name string) TypeDescriptor     { return TypeDescriptor{Kind: TypeParam, Name: name} }

func Nullable(inner TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Kind: TypeNullable, Elem: &inner}
}

func Deferred(inner TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Kind: TypeDeferred, Elem: &inner}
}

func Array(elem TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Kind: TypeArray, Elem: &elem}
}

func Container(name string, args ...TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Kind: TypeContainer, Name: name, Args: args}
}

func Tuple(elems ...TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Kind: TypeTuple, Args: elems}
}

// Canonical returns the canonical string form of the type. Canonical strings
// are the unit of type identity everywhere in the pipeline: signature
// equality, overload ordering, and generic specialization keys all compare
// canonical forms, never source spellings.
func (t TypeDescriptor) Canonical() string {
	switch t.Kind {
	case TypeNullable:
		return "nullable<" + t.Elem.Canonical() + ">"
	case TypeDeferred:
		return "deferred<" + t.Elem.Canonical() + ">"
	case TypeArray:
		return t.Elem.Canonical() + "[]"
	case TypeTuple:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.Canonical()
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		if len(t.Args) == 0 {
			return t.Name
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.Canonical()
		}
		return t.Name + "<" + strings.Join(parts, ",") + ">"
	}
}

// SuffixName returns the identifier fragment used when a generated name must
// encode this type: indexer key suffixes (OfString, OfInt32) and generic
// type-argument suffixes. Arrays append Array, nullable types prefix
// Nullable, tuples prefix Tuple, and generic arguments concatenate.
func (t TypeDescriptor) SuffixName() string {
	switch t.Kind {
	case TypeNullable:
		return "Nullable" + t.Elem.SuffixName()
	case TypeDeferred:
		return "Deferred" + t.Elem.SuffixName()
	case TypeArray:
		return t.Elem.SuffixName() + "Array"
	case TypeTuple:
		var sb strings.Builder
		sb.WriteString("Tuple")
		for _, a := range t.Args {
			sb.WriteString(a.SuffixName())
		}
		return sb.String()
	default:
		base := ExportIdent(t.Name)
		for _, a := range t.Args {
			base += a.SuffixName()
		}
		return base
	}
}

// Equal reports deep structural equality.
func (t TypeDescriptor) Equal(o TypeDescriptor) bool {
	return t.Canonical() == o.Canonical() && t.Kind == o.Kind
}

// Substitute replaces type-parameter references by name according to bind,
// recursively. Unbound parameters pass through unchanged.
func (t TypeDescriptor) Substitute(bind map[string]TypeDescriptor) TypeDescriptor {
	switch t.Kind {
	case TypeParam:
		if concrete, ok := bind[t.Name]; ok {
			return concrete
		}
		return t
	default:
		out := t
		if t.Elem != nil {
			elem := t.Elem.Substitute(bind)
			out.Elem = &elem
		}
		if len(t.Args) > 0 {
			out.Args = make([]TypeDescriptor, len(t.Args))
			for i, a := range t.Args {
				out.Args[i] = a.Substitute(bind)
			}
		}
		return out
	}
}

// ExportIdent strips qualifiers and punctuation from a name and upper-cases
// the first rune of each remaining segment, so "pkg.user_record" becomes
// "UserRecord" and "int32" becomes "Int32".
func ExportIdent(name string) string {
	segments := strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '*'
	})
	var sb strings.Builder
	for _, seg := range segments {
		runes := []rune(seg)
		if len(runes) == 0 {
			continue
		}
		sb.WriteRune(unicode.ToUpper(runes[0]))
		sb.WriteString(string(runes[1:]))
	}
	return sb.String()
}
