// Package policy implements type-directed synthesis of safe fallback values.
//
// DefaultFor is a pure recursive function over type descriptors. It decides
// WHAT the safe default is (zero, null, empty instance, wrapped default) and
// leaves the host-language spelling of that value to the renderer. A type
// with no safe default is not a generation error; the outcome travels into
// the dispatch chain and only fails at runtime under strict mode.
package policy

import (
	"github.com/teranos/mimic/contract"
)

// OutcomeKind discriminates policy results.
type OutcomeKind string

const (
	// OutcomeValue is a concrete safe default.
	OutcomeValue OutcomeKind = "value"

	// OutcomeDeferred wraps the inner outcome in the deferred-computation
	// wrapper, so asynchronous contracts return an already-completed
	// result carrying the inner default.
	OutcomeDeferred OutcomeKind = "deferred"

	// OutcomeNone means the type cannot be defaulted safely.
	OutcomeNone OutcomeKind = "none"
)

// ValueForm says how a value outcome is realized in the host language.
type ValueForm string

const (
	FormZero  ValueForm = "zero"  // zero value of the type
	FormNull  ValueForm = "null"  // null / nil reference
	FormEmpty ValueForm = "empty" // canonical empty instance
)

// Outcome is the result of default synthesis for one type.
type Outcome struct {
	Kind  OutcomeKind
	Form  ValueForm
	Type  contract.TypeDescriptor
	Inner *Outcome
}

// Safe reports whether the outcome ultimately produces a value. A deferred
// outcome is safe iff its innermost outcome is.
func (o Outcome) Safe() bool {
	switch o.Kind {
	case OutcomeValue:
		return true
	case OutcomeDeferred:
		return o.Inner.Safe()
	default:
		return false
	}
}

// Equal reports deep structural equality between outcomes.
func (o Outcome) Equal(other Outcome) bool {
	if o.Kind != other.Kind || o.Form != other.Form || !o.Type.Equal(other.Type) {
		return false
	}
	if (o.Inner == nil) != (other.Inner == nil) {
		return false
	}
	if o.Inner != nil {
		return o.Inner.Equal(*other.Inner)
	}
	return true
}

// DefaultFor synthesizes the safe default outcome for a type. Rules apply in
// priority order: scalar zero values, null for nullable and concrete
// reference types, recursive unwrapping of deferred wrappers, canonical
// empty instances for containers and arrays, zero values for type
// parameters, and NoSafeDefault for opaque types.
func DefaultFor(t contract.TypeDescriptor) Outcome {
	switch t.Kind {
	case contract.TypeValue:
		return Outcome{Kind: OutcomeValue, Form: FormZero, Type: t}

	case contract.TypeNullable, contract.TypeReference:
		return Outcome{Kind: OutcomeValue, Form: FormNull, Type: t}

	case contract.TypeDeferred:
		inner := DefaultFor(*t.Elem)
		return Outcome{Kind: OutcomeDeferred, Type: t, Inner: &inner}

	case contract.TypeContainer, contract.TypeArray:
		return Outcome{Kind: OutcomeValue, Form: FormEmpty, Type: t}

	case contract.TypeTuple:
		// A tuple defaults element-wise; one undefaultable element
		// poisons the whole tuple.
		for _, elem := range t.Args {
			if !DefaultFor(elem).Safe() {
				return Outcome{Kind: OutcomeNone, Type: t}
			}
		}
		return Outcome{Kind: OutcomeValue, Form: FormZero, Type: t}

	case contract.TypeParam:
		// Every type parameter has a zero value in the host language,
		// so strict mode never fires for bare type-parameter returns.
		return Outcome{Kind: OutcomeValue, Form: FormZero, Type: t}

	default:
		return Outcome{Kind: OutcomeNone, Type: t}
	}
}
