package contract

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// TypeSurface is the flattened, deduplicated, conflict-checked member set for
// one generation target. Created once per target by the flattener; immutable
// afterward; consumed by every downstream stage.
type TypeSurface struct {
	// Targets names the root contract surfaces the unit implements.
	// More than one entry makes this a multi-surface unit.
	Targets []string

	// TypeParameters is non-empty for open-generic targets; the renderer
	// threads these through every generated interceptor type unchanged.
	TypeParameters []TypeParameter

	// Members holds the flattened contracts in canonical order
	// (sorted by signature, independent of source declaration order).
	Members []MemberContract

	// Callable marks a callable-type target: the surface is a function
	// shape whose single member is its invocation. Callable targets
	// cannot express ref-out parameters in generated override
	// signatures.
	Callable bool
}

// Normalize sorts members and surface lists into canonical order. The
// flattener calls this once before publishing a surface; fingerprints and
// name assignment both assume it.
func (s *TypeSurface) Normalize() {
	sort.Strings(s.Targets)
	for i := range s.Members {
		sort.Strings(s.Members[i].Surfaces)
		sortInstantiations(s.Members[i].Instantiations)
	}
	sort.Slice(s.Members, func(i, j int) bool {
		return s.Members[i].Signature() < s.Members[j].Signature()
	})
}

func sortInstantiations(insts [][]TypeDescriptor) {
	sort.Slice(insts, func(i, j int) bool {
		return TypeArgKey(insts[i]) < TypeArgKey(insts[j])
	})
}

// Fingerprint returns a stable content hash of the surface. Structurally
// equal surfaces always produce the same fingerprint, independent of how they
// were constructed, which is the cache key for the incrementality contract:
// a repeated fingerprint means the whole generation pass is skippable.
func (s TypeSurface) Fingerprint() string {
	h := sha256.New()
	for _, t := range s.Targets {
		h.Write([]byte("target:" + t + "\n"))
	}
	if s.Callable {
		h.Write([]byte("callable\n"))
	}
	for _, tp := range s.TypeParameters {
		h.Write([]byte("typeparam:" + tp.Name))
		for _, c := range tp.Constraints {
			h.Write([]byte(":" + c.Canonical()))
		}
		h.Write([]byte("\n"))
	}
	for _, m := range s.Members {
		h.Write([]byte("member:" + m.Signature()))
		h.Write([]byte("@" + m.DeclaringSurface))
		h.Write([]byte("{" + strings.Join(m.Surfaces, ",") + "}"))
		for _, inst := range m.Instantiations {
			h.Write([]byte("!" + TypeArgKey(inst)))
		}
		h.Write([]byte("\n"))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Equal reports deep structural equality between two surfaces.
func (s TypeSurface) Equal(o TypeSurface) bool {
	return s.Fingerprint() == o.Fingerprint()
}

// MembersNamed returns the members sharing the given declared name, in
// canonical order.
func (s TypeSurface) MembersNamed(name string) []MemberContract {
	var out []MemberContract
	for _, m := range s.Members {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// TypeArgKey canonicalizes a type-argument combination into the key used for
// generic specialization maps and instantiation ordering.
func TypeArgKey(args []TypeDescriptor) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Canonical()
	}
	return strings.Join(parts, "|")
}
