// Package contract defines the member-surface model consumed by the mimic
// generation pipeline.
//
// A contract is the declared member surface of a type the generated tracking
// double must satisfy: methods, properties, indexers, events, and generic
// methods. Values in this package are immutable after construction and support
// deep structural equality via canonical signature strings and content
// fingerprints, which is what makes independent generation passes cacheable.
package contract

import (
	"strings"
)

// Kind discriminates the member variants a contract surface can declare.
type Kind string

const (
	KindMethod        Kind = "method"
	KindProperty      Kind = "property"
	KindIndexer       Kind = "indexer"
	KindEvent         Kind = "event"
	KindGenericMethod Kind = "generic-method"
)

// PassingMode describes how a parameter crosses the member boundary.
type PassingMode string

const (
	// ModeValue is plain by-value passing.
	ModeValue PassingMode = "value"

	// ModeRefIn is a read-only by-reference parameter.
	ModeRefIn PassingMode = "ref-in"

	// ModeRefInOut is a mutable by-reference parameter. Tracked with its
	// value at call time, before any mutation by the callee.
	ModeRefInOut PassingMode = "ref-inout"

	// ModeRefOut is an output-only parameter. Never tracked.
	ModeRefOut PassingMode = "ref-out"
)

// Tracked reports whether a parameter in this mode participates in
// call-history recording.
func (m PassingMode) Tracked() bool {
	return m != ModeRefOut
}

// ParameterDescriptor is one declared parameter of a member contract.
type ParameterDescriptor struct {
	Name string
	Type TypeDescriptor
	Mode PassingMode
}

// TypeParameter is one unbound type parameter of a generic method or an
// open-generic target surface.
type TypeParameter struct {
	Name        string
	Constraints []TypeDescriptor
}

// MemberContract is one declared member of a contract surface.
//
// Two contracts are signature-equal iff kind, name, parameter types and
// modes, settability, type-parameter arity, and return type all match.
// Signature-equal contracts declared on different surfaces collapse into one
// shared contract during flattening; DeclaringSurface then names the most
// derived declaring surface and Surfaces lists every surface that shares it.
type MemberContract struct {
	Kind       Kind
	Name       string
	Parameters []ParameterDescriptor

	// Returns is nil for void members and for events.
	Returns *TypeDescriptor

	// DeclaringSurface is the surface the member is attributed to for
	// naming and code-location purposes.
	DeclaringSurface string

	// Surfaces lists every declaring surface after flattening collapses
	// signature-equal duplicates. Empty before flattening.
	Surfaces []string

	// TypeParameters is populated for KindGenericMethod only.
	TypeParameters []TypeParameter

	// Instantiations lists the concrete type-argument combinations the
	// generation unit requests for a generic method. Not part of the
	// signature; merged by union when duplicates collapse.
	Instantiations [][]TypeDescriptor

	// Settable marks properties and indexers that carry a setter.
	Settable bool

	// HandlerType is the handler/delegate type of an event member.
	HandlerType *TypeDescriptor
}

// Signature returns the canonical signature string used for
// signature-equality. Declaring surfaces and requested instantiations are
// deliberately excluded.
func (m MemberContract) Signature() string {
	var sb strings.Builder
	sb.WriteString(string(m.Kind))
	sb.WriteByte('|')
	sb.WriteString(m.Name)
	if len(m.TypeParameters) > 0 {
		sb.WriteByte('<')
		for i, tp := range m.TypeParameters {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(tp.Name)
			for _, c := range tp.Constraints {
				sb.WriteByte(':')
				sb.WriteString(c.Canonical())
			}
		}
		sb.WriteByte('>')
	}
	sb.WriteByte('(')
	for i, p := range m.Parameters {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(string(p.Mode))
		sb.WriteByte(' ')
		sb.WriteString(p.Type.Canonical())
	}
	sb.WriteByte(')')
	if m.Settable {
		sb.WriteString("{set}")
	}
	if m.HandlerType != nil {
		sb.WriteString("~")
		sb.WriteString(m.HandlerType.Canonical())
	}
	if m.Returns != nil {
		sb.WriteString("->")
		sb.WriteString(m.Returns.Canonical())
	}
	return sb.String()
}

// OverloadKey returns the signature without the return type. Two methods
// sharing an overload key but not a full signature disagree on return type
// only, which is a conflict rather than an overload.
func (m MemberContract) OverloadKey() string {
	sig := m.Signature()
	if idx := strings.LastIndex(sig, "->"); idx >= 0 {
		return sig[:idx]
	}
	return sig
}

// SignatureEqual reports deep signature equality with another contract.
func (m MemberContract) SignatureEqual(o MemberContract) bool {
	return m.Signature() == o.Signature()
}

// TrackedParameters returns the parameters that participate in call-history
// recording, preserving declaration order.
func (m MemberContract) TrackedParameters() []ParameterDescriptor {
	out := make([]ParameterDescriptor, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		if p.Mode.Tracked() {
			out = append(out, p)
		}
	}
	return out
}

// IsVoid reports whether the member produces no value.
func (m MemberContract) IsVoid() bool {
	return m.Returns == nil
}
