package runtime

import "sync"

// Deferred is the deferred-computation wrapper generated code returns for
// asynchronous or lazy contract result types. A Deferred produced by the
// default value policy is already completed and carries the inner default;
// one produced by a callback or override keeps that function's own
// asynchronous semantics, evaluated at most once on first Await.
type Deferred[T any] struct {
	once  *sync.Once
	fn    func() (T, error)
	value *T
	err   *error
}

// Resolved returns an already-completed Deferred carrying v.
func Resolved[T any](v T) Deferred[T] {
	return Deferred[T]{value: &v, err: new(error)}
}

// Failed returns an already-completed Deferred carrying err.
func Failed[T any](err error) Deferred[T] {
	var zero T
	return Deferred[T]{value: &zero, err: &err}
}

// Defer wraps fn for lazy evaluation. fn runs at most once, on the first
// Await.
func Defer[T any](fn func() (T, error)) Deferred[T] {
	var v T
	var err error
	return Deferred[T]{once: new(sync.Once), fn: fn, value: &v, err: &err}
}

// Await yields the wrapped result, evaluating the computation if it has not
// run yet.
func (d Deferred[T]) Await() (T, error) {
	if d.once != nil {
		d.once.Do(func() {
			*d.value, *d.err = d.fn()
		})
	}
	if d.value == nil {
		var zero T
		return zero, nil
	}
	return *d.value, *d.err
}

// Done reports whether the result is available without evaluation.
func (d Deferred[T]) Done() bool {
	return d.once == nil
}
