// Package naming assigns the stable, collision-resistant identifiers used
// for every generated artifact.
//
// Assignment is a pure function of the flattened surface: identifiers are
// deterministic given the same surface content, independent of source
// declaration order, and stable under addition of new non-conflicting
// members. The one documented exception is overload suffixing: a name with a
// single member stays bare, so adding a second overload later renames the
// first (Add becomes Add1/Add2). Indexers are always suffixed by key type for
// exactly this reason - adding a second indexer never renames the first.
package naming

import (
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/mimic/contract"
)

// Assignment maps members (and their generic instantiations) to generated
// identifiers within one generation unit.
type Assignment struct {
	unit           string
	members        map[string]string            // member signature -> identifier
	instantiations map[string]map[string]string // signature -> type-arg key -> identifier
	qualified      map[string]map[string]string // surface -> signature -> accessor
}

// Unit returns the generated stub type's identifier.
func (a *Assignment) Unit() string {
	return a.unit
}

// Member returns the identifier assigned to a member contract.
func (a *Assignment) Member(m contract.MemberContract) string {
	return a.members[m.Signature()]
}

// Instantiation returns the identifier for one concrete type-argument
// combination of a generic member. Single-instantiation members keep the
// bare member identifier.
func (a *Assignment) Instantiation(m contract.MemberContract, args []contract.TypeDescriptor) string {
	if insts, ok := a.instantiations[m.Signature()]; ok {
		if name, ok := insts[contract.TypeArgKey(args)]; ok {
			return name
		}
	}
	return a.Member(m)
}

// Qualified returns the per-surface accessor identifier for a member on a
// multi-surface unit, or false when the unit generates none.
func (a *Assignment) Qualified(surface string, m contract.MemberContract) (string, bool) {
	bySig, ok := a.qualified[surface]
	if !ok {
		return "", false
	}
	name, ok := bySig[m.Signature()]
	return name, ok
}

// QualifiedSurfaces lists the surfaces for which qualified accessors exist,
// sorted.
func (a *Assignment) QualifiedSurfaces() []string {
	out := make([]string, 0, len(a.qualified))
	for s := range a.qualified {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Resolve computes the name assignment for a flattened surface.
func Resolve(s *contract.TypeSurface) *Assignment {
	a := &Assignment{
		unit:           unitName(s),
		members:        make(map[string]string, len(s.Members)),
		instantiations: make(map[string]map[string]string),
		qualified:      make(map[string]map[string]string),
	}

	byName := make(map[string][]contract.MemberContract)
	for _, m := range s.Members {
		byName[m.Name] = append(byName[m.Name], m)
	}

	for name, group := range byName {
		assignGroup(a, name, group)
	}

	for _, m := range s.Members {
		assignInstantiations(a, m)
	}

	if len(s.Targets) > 1 {
		assignQualified(a, s)
	}
	return a
}

// assignGroup names every member sharing one declared name.
func assignGroup(a *Assignment, name string, group []contract.MemberContract) {
	switch group[0].Kind {
	case contract.KindIndexer:
		// Key-type suffix, applied even for a single indexer.
		for _, m := range group {
			a.members[m.Signature()] = name + "Of" + keySuffix(m)
		}
	default:
		if len(group) == 1 {
			a.members[group[0].Signature()] = name
			return
		}
		// Overloads: ordinal suffixes in lexical order of parameter
		// type names, not source order, so suffixes survive source
		// reordering.
		sorted := append([]contract.MemberContract(nil), group...)
		sort.Slice(sorted, func(i, j int) bool {
			return overloadSortKey(sorted[i]) < overloadSortKey(sorted[j])
		})
		for i, m := range sorted {
			a.members[m.Signature()] = name + strconv.Itoa(i+1)
		}
	}
}

// assignInstantiations suffixes generic instantiations by canonicalized
// type-argument names when a member has more than one within the unit.
func assignInstantiations(a *Assignment, m contract.MemberContract) {
	if m.Kind != contract.KindGenericMethod || len(m.Instantiations) < 2 {
		return
	}
	base := a.members[m.Signature()]
	bySig := make(map[string]string, len(m.Instantiations))
	for _, inst := range m.Instantiations {
		var sb strings.Builder
		sb.WriteString(base)
		for _, arg := range inst {
			sb.WriteString(arg.SuffixName())
		}
		bySig[contract.TypeArgKey(inst)] = sb.String()
	}
	a.instantiations[m.Signature()] = bySig
}

// assignQualified generates per-surface accessor names for multi-surface
// units, so same-named members shared across unrelated targets remain
// addressable per surface.
func assignQualified(a *Assignment, s *contract.TypeSurface) {
	targets := make(map[string]bool, len(s.Targets))
	for _, t := range s.Targets {
		targets[t] = true
	}
	for _, m := range s.Members {
		for _, surface := range m.Surfaces {
			if !targets[surface] {
				continue
			}
			if a.qualified[surface] == nil {
				a.qualified[surface] = make(map[string]string)
			}
			a.qualified[surface][m.Signature()] = contract.ExportIdent(surface) + a.members[m.Signature()]
		}
	}
}

func keySuffix(m contract.MemberContract) string {
	var sb strings.Builder
	for _, p := range m.Parameters {
		sb.WriteString(p.Type.SuffixName())
	}
	return sb.String()
}

// overloadSortKey orders overloads by their parameter type names only.
// Arity sorts shorter lists first because the joined canonical string of a
// prefix compares lower than any extension of it.
func overloadSortKey(m contract.MemberContract) string {
	parts := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		parts[i] = p.Type.Canonical()
	}
	return strings.Join(parts, ",")
}

// unitName derives the generated stub type's identifier from the sorted
// target list.
func unitName(s *contract.TypeSurface) string {
	var sb strings.Builder
	for _, t := range s.Targets {
		sb.WriteString(contract.ExportIdent(t))
	}
	sb.WriteString("Mimic")
	return sb.String()
}
