package runtime

// Property tracks a generated property: a getter interceptor, an optional
// setter interceptor, and a backing store.
//
// The getter chain consults the backing store between the override slots and
// the synthesized default: an explicitly assigned value beats the policy
// fallback. No reset operation ever clears the backing store; only Set
// writes it.
type Property[T any] struct {
	getter *Interceptor[Void, Void, T]
	setter *Interceptor[T, T, Void]

	backing    T
	hasBacking bool
}

// NewProperty creates a property double for the named member. Settable
// properties get a setter interceptor; get-only properties track reads only.
func NewProperty[T any](member, surface string, settable bool) *Property[T] {
	p := &Property[T]{
		getter: NewInterceptor[Void, Void, T](member+".get", surface),
	}
	if settable {
		p.setter = NewInterceptor[T, T, Void](member+".set", surface)
	}
	return p
}

// WithStrict enables strict mode on the getter.
func (p *Property[T]) WithStrict(strict bool) *Property[T] {
	p.getter.WithStrict(strict)
	return p
}

// WithDefault wires the value-policy outcome for the property type.
func (p *Property[T]) WithDefault(fn func() (T, bool)) *Property[T] {
	p.getter.WithDefault(fn)
	return p
}

// WithGetOverride wires the unit-level author override for reads.
func (p *Property[T]) WithGetOverride(fn func() T) *Property[T] {
	if fn != nil {
		p.getter.WithOverride(func(Void) T { return fn() })
	}
	return p
}

// WithSetOverride wires the unit-level author override for writes.
func (p *Property[T]) WithSetOverride(fn func(T)) *Property[T] {
	if fn != nil && p.setter != nil {
		p.setter.WithOverride(func(v T) Void {
			fn(v)
			return Void{}
		})
	}
	return p
}

// Get records the read and dispatches: callback, override, backing store,
// policy default, strict failure.
func (p *Property[T]) Get() T {
	if !p.getter.hasCallback && !p.getter.hasOverride && p.hasBacking {
		// Record the read, then short-circuit to the stored value.
		p.getter.calls++
		p.getter.history = append(p.getter.history, Void{})
		return p.backing
	}
	return p.getter.Invoke(Void{}, Void{})
}

// Set records the write, stores the value, and notifies any configured
// callback or override. The backing store updates unconditionally: explicit
// assignment always wins.
func (p *Property[T]) Set(v T) {
	p.backing = v
	p.hasBacking = true
	if p.setter != nil {
		p.setter.Invoke(v, v)
	}
}

// OnGet installs a per-instance read callback.
func (p *Property[T]) OnGet(fn func() T) {
	if fn == nil {
		p.getter.SetCallback(nil)
		return
	}
	p.getter.SetCallback(func(Void) T { return fn() })
}

// OnSet installs a per-instance write callback. Panics on get-only
// properties, which is a generation bug rather than a user error.
func (p *Property[T]) OnSet(fn func(T)) {
	if p.setter == nil {
		panic("mimic: OnSet on a get-only property")
	}
	if fn == nil {
		p.setter.SetCallback(nil)
		return
	}
	p.setter.SetCallback(func(v T) Void {
		fn(v)
		return Void{}
	})
}

// Gets returns the read count since the last tracking reset.
func (p *Property[T]) Gets() int { return p.getter.Calls() }

// Sets returns the write count since the last tracking reset.
func (p *Property[T]) Sets() int {
	if p.setter == nil {
		return 0
	}
	return p.setter.Calls()
}

// LastSet returns the most recent written value, if any.
func (p *Property[T]) LastSet() (T, bool) {
	if p.setter == nil {
		var zero T
		return zero, false
	}
	return p.setter.Last()
}

// SetHistory returns a copy of all written values in order.
func (p *Property[T]) SetHistory() []T {
	if p.setter == nil {
		return nil
	}
	return p.setter.History()
}

// Stored returns the backing-stored value, if one was ever assigned.
func (p *Property[T]) Stored() (T, bool) {
	return p.backing, p.hasBacking
}

// ResetTracking clears read/write counters and history. The backing store
// and override slots are untouched.
func (p *Property[T]) ResetTracking() {
	p.getter.ResetTracking()
	if p.setter != nil {
		p.setter.ResetTracking()
	}
}

// ResetCallback clears the per-instance callbacks only.
func (p *Property[T]) ResetCallback() {
	p.getter.ResetCallback()
	if p.setter != nil {
		p.setter.ResetCallback()
	}
}

// Reset clears tracking and callbacks. The backing store survives; clearing
// it requires an explicit assignment.
func (p *Property[T]) Reset() {
	p.ResetTracking()
	p.ResetCallback()
}
