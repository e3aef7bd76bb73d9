// Package runtime is the typed tracking and dispatch kernel that generated
// tracking doubles instantiate. It has no dependencies beyond the standard
// library so that generated code pulls in nothing else.
//
// Tracking objects follow a single-threaded usage model: no internal
// synchronization, and concurrent access to one instance from multiple
// goroutines is undefined behavior. Test doubles are assumed to live inside
// one test's execution context.
package runtime

import "fmt"

// Void is the args/result type for members that carry no tracked data.
type Void = struct{}

// UnconfiguredAccessError reports a strict-mode access with no callback, no
// override, and no safe default. It is raised synchronously as a panic at
// the point of access.
type UnconfiguredAccessError struct {
	Member  string
	Surface string
}

func (e *UnconfiguredAccessError) Error() string {
	return fmt.Sprintf("unconfigured access: %s.%s has no callback, no override, and no safe default (strict mode)", e.Surface, e.Member)
}

// Tracker is the aggregate-statistics view a specialization family holds on
// its per-combination interceptors.
type Tracker interface {
	Calls() int
}

// Interceptor records every interaction with one generated member and
// dispatches each access through the priority chain:
//
//  1. record the call, unconditionally, before branching
//  2. runtime callback, if set (per test instance, highest priority)
//  3. author-defined override, if wired (per generation unit)
//  4. safe default from the value policy
//  5. strict mode with no safe default: panic with UnconfiguredAccessError
//
// A is the tracked-argument record stored in history: by-value and ref-in
// parameters as values, ref-inout parameters as their value at call time.
// P is the full invocation record handed to callbacks and overrides; it
// additionally carries pointers for ref-out and ref-inout parameters so
// behavior overrides can write outputs. Members without reference
// parameters use the same type for both. R is the result type; void members
// use Void.
type Interceptor[A any, P any, R any] struct {
	member  string
	surface string
	strict  bool

	calls   int
	history []A

	callback    func(P) R
	hasCallback bool

	override    func(P) R
	hasOverride bool

	defaultFn func() (R, bool)
}

// NewInterceptor creates an interceptor for the named member. The zero
// default factory reports no safe default.
func NewInterceptor[A any, P any, R any](member, surface string) *Interceptor[A, P, R] {
	return &Interceptor[A, P, R]{member: member, surface: surface}
}

// WithStrict enables strict mode: unconfigured access fails loudly instead
// of returning a fallback value.
func (ic *Interceptor[A, P, R]) WithStrict(strict bool) *Interceptor[A, P, R] {
	ic.strict = strict
	return ic
}

// WithDefault wires the value-policy outcome for this member. The factory
// returns false when the member's type has no safe default.
func (ic *Interceptor[A, P, R]) WithDefault(fn func() (R, bool)) *Interceptor[A, P, R] {
	ic.defaultFn = fn
	return ic
}

// WithOverride wires the author-defined override, declared once per
// generation unit and shared by all instances of that unit.
func (ic *Interceptor[A, P, R]) WithOverride(fn func(P) R) *Interceptor[A, P, R] {
	if fn != nil {
		ic.override = fn
		ic.hasOverride = true
	}
	return ic
}

// SetCallback installs the runtime callback for this instance. It takes
// priority over the author override until ResetCallback clears it.
func (ic *Interceptor[A, P, R]) SetCallback(fn func(P) R) {
	ic.callback = fn
	ic.hasCallback = fn != nil
}

// Invoke records the call and dispatches it through the priority chain.
// Tracking is written before any branch, so counters and history advance
// even when strict mode ultimately panics. record holds the tracked
// snapshot; params the full invocation.
func (ic *Interceptor[A, P, R]) Invoke(record A, params P) R {
	ic.calls++
	ic.history = append(ic.history, record)

	switch {
	case ic.hasCallback:
		return ic.callback(params)
	case ic.hasOverride:
		return ic.override(params)
	}
	if ic.defaultFn != nil {
		if v, ok := ic.defaultFn(); ok {
			return v
		}
	}
	if ic.strict {
		panic(&UnconfiguredAccessError{Member: ic.member, Surface: ic.surface})
	}
	var zero R
	return zero
}

// Calls returns the invocation count since the last tracking reset.
func (ic *Interceptor[A, P, R]) Calls() int {
	return ic.calls
}

// WasInvoked reports whether the member was accessed at least once since the
// last tracking reset.
func (ic *Interceptor[A, P, R]) WasInvoked() bool {
	return ic.calls > 0
}

// Last returns the most recent tracked-argument record, if any call was
// recorded.
func (ic *Interceptor[A, P, R]) Last() (A, bool) {
	if len(ic.history) == 0 {
		var zero A
		return zero, false
	}
	return ic.history[len(ic.history)-1], true
}

// History returns a copy of the full ordered call history.
func (ic *Interceptor[A, P, R]) History() []A {
	out := make([]A, len(ic.history))
	copy(out, ic.history)
	return out
}

// ResetTracking clears counters and history only. Override slots and any
// backing-stored value are untouched.
func (ic *Interceptor[A, P, R]) ResetTracking() {
	ic.calls = 0
	ic.history = nil
}

// ResetCallback clears the runtime callback slot only.
func (ic *Interceptor[A, P, R]) ResetCallback() {
	ic.callback = nil
	ic.hasCallback = false
}

// Reset clears tracking and the runtime callback. The author override and
// backing-stored values survive every reset.
func (ic *Interceptor[A, P, R]) Reset() {
	ic.ResetTracking()
	ic.ResetCallback()
}
