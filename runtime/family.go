package runtime

import "sort"

// TypeKey is the canonicalized type-argument combination of one generic
// method specialization.
type TypeKey string

// Family aggregates the per-type-argument-combination interceptors of one
// generic method. Each combination owns its counters and override slots;
// the aggregate views here are computed by summation and union over the
// registered interceptors, never stored separately, so they cannot drift or
// double-count.
type Family struct {
	member  string
	surface string

	combos map[TypeKey]Tracker
	order  []TypeKey
}

// NewFamily creates the specialization family for the named generic member.
func NewFamily(member, surface string) *Family {
	return &Family{
		member:  member,
		surface: surface,
		combos:  make(map[TypeKey]Tracker),
	}
}

// Attach returns the tracker registered for a combination, creating it via
// make on first access. Generated code calls Attach from each specialized
// member, so a combination's interceptor exists from its first use onward.
func (f *Family) Attach(key TypeKey, make func() Tracker) Tracker {
	if t, ok := f.combos[key]; ok {
		return t
	}
	t := make()
	f.combos[key] = t
	f.order = append(f.order, key)
	return t
}

// Lookup returns the tracker for a combination, if one was ever attached.
func (f *Family) Lookup(key TypeKey) (Tracker, bool) {
	t, ok := f.combos[key]
	return t, ok
}

// TotalCalls sums the call counts of every registered combination.
func (f *Family) TotalCalls() int {
	total := 0
	for _, t := range f.combos {
		total += t.Calls()
	}
	return total
}

// Seen returns the combinations invoked at least once, sorted.
func (f *Family) Seen() []TypeKey {
	var out []TypeKey
	for key, t := range f.combos {
		if t.Calls() > 0 {
			out = append(out, key)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
