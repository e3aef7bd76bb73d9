// Package flatten walks a contract type's transitive supertype graph and
// produces the flattened, deduplicated, conflict-checked TypeSurface the rest
// of the generation pipeline consumes.
package flatten

import (
	"sort"

	"github.com/teranos/mimic/contract"
	"github.com/teranos/mimic/diag"
	"github.com/teranos/mimic/errors"
)

// Declaration is one contract surface as declared by the upstream
// collaborator: its name, the surfaces it extends, and its own members.
type Declaration struct {
	Surface        string
	Extends        []string
	TypeParameters []contract.TypeParameter
	Members        []contract.MemberContract

	// Callable marks a function-shaped target whose single member is its
	// invocation.
	Callable bool
}

// Registry holds the declarations reachable from a generation target.
type Registry struct {
	decls map[string]Declaration
}

// NewRegistry builds a registry from the given declarations.
func NewRegistry(decls ...Declaration) *Registry {
	r := &Registry{decls: make(map[string]Declaration, len(decls))}
	for _, d := range decls {
		r.decls[d.Surface] = d
	}
	return r
}

// Add registers a declaration, replacing any previous one with the same name.
func (r *Registry) Add(d Declaration) {
	r.decls[d.Surface] = d
}

// Lookup returns the declaration for a surface name.
func (r *Registry) Lookup(surface string) (Declaration, bool) {
	d, ok := r.decls[surface]
	return d, ok
}

// collected pairs a member with the BFS depth of its declaring surface, used
// to attribute collapsed members to the most derived declarer.
type collected struct {
	member contract.MemberContract
	depth  int
}

// Flatten traverses the supertype graph of the given root surfaces
// breadth-first, collapses signature-equal members declared on multiple
// surfaces into one shared contract, and rejects true signature conflicts.
//
// The result is normalized: member order is canonical and independent of
// declaration order, so flattening the same graph twice yields structurally
// equal surfaces.
func Flatten(reg *Registry, roots ...string) (*contract.TypeSurface, error) {
	if len(roots) == 0 {
		return nil, errors.New("flatten: no root surface given")
	}

	var all []collected
	var typeParams []contract.TypeParameter
	seenParam := make(map[string]bool)
	callable := false

	visited := make(map[string]bool)
	type queued struct {
		surface string
		depth   int
	}
	queue := make([]queued, 0, len(roots))
	for _, root := range roots {
		queue = append(queue, queued{root, 0})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur.surface] {
			continue
		}
		visited[cur.surface] = true

		decl, ok := reg.Lookup(cur.surface)
		if !ok {
			return nil, errors.NewNotFoundError("declaration %q", cur.surface)
		}

		if cur.depth == 0 {
			for _, tp := range decl.TypeParameters {
				if !seenParam[tp.Name] {
					seenParam[tp.Name] = true
					typeParams = append(typeParams, tp)
				}
			}
			if decl.Callable {
				callable = true
			}
		}

		for _, m := range decl.Members {
			m.DeclaringSurface = decl.Surface
			all = append(all, collected{member: m, depth: cur.depth})
		}
		for _, super := range decl.Extends {
			queue = append(queue, queued{super, cur.depth + 1})
		}
	}

	members, err := collapse(all)
	if err != nil {
		return nil, err
	}
	if err := checkConflicts(members); err != nil {
		return nil, err
	}

	surface := &contract.TypeSurface{
		Targets:        append([]string(nil), roots...),
		TypeParameters: typeParams,
		Members:        members,
		Callable:       callable,
	}
	surface.Normalize()
	return surface, nil
}

// collapse merges signature-equal members into one shared contract. The
// merged member is attributed to the most derived declaring surface (lowest
// BFS depth, surface name as tiebreaker) and carries the union of declaring
// surfaces and requested instantiations.
func collapse(all []collected) ([]contract.MemberContract, error) {
	bySig := make(map[string][]collected)
	var order []string
	for _, c := range all {
		sig := c.member.Signature()
		if _, ok := bySig[sig]; !ok {
			order = append(order, sig)
		}
		bySig[sig] = append(bySig[sig], c)
	}

	out := make([]contract.MemberContract, 0, len(order))
	for _, sig := range order {
		group := bySig[sig]
		sort.Slice(group, func(i, j int) bool {
			if group[i].depth != group[j].depth {
				return group[i].depth < group[j].depth
			}
			return group[i].member.DeclaringSurface < group[j].member.DeclaringSurface
		})

		merged := group[0].member
		surfaces := make(map[string]bool)
		instSeen := make(map[string]bool)
		var insts [][]contract.TypeDescriptor
		for _, c := range group {
			surfaces[c.member.DeclaringSurface] = true
			for _, inst := range c.member.Instantiations {
				key := contract.TypeArgKey(inst)
				if !instSeen[key] {
					instSeen[key] = true
					insts = append(insts, inst)
				}
			}
		}
		merged.Surfaces = make([]string, 0, len(surfaces))
		for s := range surfaces {
			merged.Surfaces = append(merged.Surfaces, s)
		}
		sort.Strings(merged.Surfaces)
		merged.Instantiations = insts
		out = append(out, merged)
	}
	return out, nil
}

// checkConflicts rejects member groups that share a name but cannot coexist.
// Method overloads (same name, different parameters) are legal; everything
// else sharing a name must be signature-equal. Conflicts are never resolved
// by widening: a double that silently narrows or widens types across
// unrelated supertypes produces runtime type confusion, so generation fails
// fast instead.
func checkConflicts(members []contract.MemberContract) error {
	byName := make(map[string][]contract.MemberContract)
	for _, m := range members {
		byName[m.Name] = append(byName[m.Name], m)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		group := byName[name]
		if len(group) < 2 {
			continue
		}
		if err := checkNameGroup(name, group); err != nil {
			return err
		}
	}
	return nil
}

func checkNameGroup(name string, group []contract.MemberContract) error {
	kind := group[0].Kind
	for _, m := range group[1:] {
		if m.Kind != kind {
			return conflict(name, group)
		}
	}

	switch kind {
	case contract.KindMethod, contract.KindGenericMethod:
		// Overloads may differ in parameters; two members with the same
		// parameter shape surviving collapse must have disagreed on
		// return type or settability.
		seen := make(map[string]bool)
		for _, m := range group {
			key := m.OverloadKey()
			if seen[key] {
				return conflict(name, group)
			}
			seen[key] = true
		}
	case contract.KindIndexer:
		// Indexers may differ in key type; duplicate key types mean a
		// value-type disagreement.
		seen := make(map[string]bool)
		for _, m := range group {
			key := indexerKey(m)
			if seen[key] {
				return conflict(name, group)
			}
			seen[key] = true
		}
	default:
		// Properties and events cannot overload at all; surviving
		// duplicates are conflicts by construction.
		return conflict(name, group)
	}
	return nil
}

func indexerKey(m contract.MemberContract) string {
	return contract.TypeArgKey(typesOf(m.Parameters))
}

func typesOf(params []contract.ParameterDescriptor) []contract.TypeDescriptor {
	out := make([]contract.TypeDescriptor, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

func conflict(name string, group []contract.MemberContract) error {
	refs := make([]diag.MemberRef, 0, len(group))
	for _, m := range group {
		refs = append(refs, diag.MemberRef{
			Surface:   m.DeclaringSurface,
			Member:    m.Name,
			Signature: m.Signature(),
		})
	}
	return diag.SignatureConflict(name, refs...)
}
