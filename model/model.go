// Package model derives the interceptor model for every contract on a
// flattened surface: which tracking fields a member needs, its override-slot
// shape, the resolved default-value outcome, and the specialization plan for
// generic methods. Models are built once per generation pass and never
// mutated after construction.
package model

import (
	"github.com/teranos/mimic/contract"
	"github.com/teranos/mimic/diag"
	"github.com/teranos/mimic/naming"
	"github.com/teranos/mimic/policy"
)

// Instantiation is one concrete type-argument combination of a generic
// member within the unit.
type Instantiation struct {
	Args []contract.TypeDescriptor
	Key  string
	Name string

	// Params are the member's parameters with type parameters bound to
	// this combination's arguments.
	Params []contract.ParameterDescriptor

	// Returns is the member's return type with type parameters bound to
	// this combination's arguments; nil for void members.
	Returns *contract.TypeDescriptor

	// Default is the policy outcome for the bound return type.
	Default policy.Outcome
}

// Interceptor is the derived tracking/override shape for one (possibly
// shared) member contract.
type Interceptor struct {
	Contract contract.MemberContract

	// Name is the identifier assigned by the naming resolver.
	Name string

	// Tracked lists the parameters recorded in call history: ref-out
	// parameters are outputs and never appear here.
	Tracked []contract.ParameterDescriptor

	// Default is the policy outcome for the member's return type. Void
	// members and events carry a None outcome that is never consulted.
	Default policy.Outcome

	// Instantiations is the specialization plan for generic methods.
	Instantiations []Instantiation
}

// Unit bundles everything the renderer consumes for one generation unit.
type Unit struct {
	Surface      *contract.TypeSurface
	Names        *naming.Assignment
	Interceptors []Interceptor
	Strict       bool
}

// Options control model building for one unit.
type Options struct {
	Strict bool
}

// Build derives the interceptor models for a flattened surface. It validates
// the constructs generated code cannot express and fails with a structured
// diagnostic before any emission happens.
func Build(s *contract.TypeSurface, names *naming.Assignment, opts Options) (*Unit, error) {
	if err := validate(s); err != nil {
		return nil, err
	}

	interceptors := make([]Interceptor, 0, len(s.Members))
	for _, m := range s.Members {
		ic := Interceptor{
			Contract: m,
			Name:     names.Member(m),
			Tracked:  m.TrackedParameters(),
		}
		if m.Returns != nil {
			ic.Default = policy.DefaultFor(*m.Returns)
		}
		if m.Kind == contract.KindGenericMethod {
			ic.Instantiations = buildInstantiations(m, names)
		}
		interceptors = append(interceptors, ic)
	}

	return &Unit{
		Surface:      s,
		Names:        names,
		Interceptors: interceptors,
		Strict:       opts.Strict,
	}, nil
}

// buildInstantiations binds each requested type-argument combination and
// resolves its own default outcome, since the bound return type may default
// differently per combination.
func buildInstantiations(m contract.MemberContract, names *naming.Assignment) []Instantiation {
	out := make([]Instantiation, 0, len(m.Instantiations))
	for _, args := range m.Instantiations {
		bind := make(map[string]contract.TypeDescriptor, len(m.TypeParameters))
		for i, tp := range m.TypeParameters {
			if i < len(args) {
				bind[tp.Name] = args[i]
			}
		}
		inst := Instantiation{
			Args: args,
			Key:  contract.TypeArgKey(args),
			Name: names.Instantiation(m, args),
		}
		inst.Params = make([]contract.ParameterDescriptor, len(m.Parameters))
		for i, p := range m.Parameters {
			p.Type = p.Type.Substitute(bind)
			inst.Params[i] = p
		}
		if m.Returns != nil {
			bound := m.Returns.Substitute(bind)
			inst.Returns = &bound
			inst.Default = policy.DefaultFor(bound)
		}
		out = append(out, inst)
	}
	return out
}

// validate rejects contract shapes no strategy can express.
func validate(s *contract.TypeSurface) error {
	for _, m := range s.Members {
		switch m.Kind {
		case contract.KindProperty, contract.KindIndexer:
			if m.Returns == nil {
				return diag.UnsupportedConstruct(
					string(m.Kind)+" member declares no value type",
					diag.MemberRef{Surface: m.DeclaringSurface, Member: m.Name, Signature: m.Signature()},
				)
			}
		case contract.KindEvent:
			if m.HandlerType == nil {
				return diag.UnsupportedConstruct(
					"event member declares no handler type",
					diag.MemberRef{Surface: m.DeclaringSurface, Member: m.Name, Signature: m.Signature()},
				)
			}
		case contract.KindGenericMethod:
			for _, args := range m.Instantiations {
				if len(args) != len(m.TypeParameters) {
					return diag.ArityMismatch(m.DeclaringSurface+"."+m.Name, len(m.TypeParameters), len(args))
				}
			}
		}
		if s.Callable {
			for _, p := range m.Parameters {
				if p.Mode == contract.ModeRefOut {
					return diag.UnsupportedConstruct(
						"callable-type target has a ref-out parameter, which the generated override signature cannot express",
						diag.MemberRef{Surface: m.DeclaringSurface, Member: m.Name, Signature: m.Signature()},
					)
				}
			}
		}
	}
	return nil
}
