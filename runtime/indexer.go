package runtime

// KeyValue is the tracked record of one indexer write.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Indexer tracks a generated indexer: keyed reads and writes with a
// per-key backing store. Multi-key indexers use a comparable struct as K.
//
// Like Property, the backing store sits between the override slots and the
// policy default in the read chain, and no reset ever clears it.
type Indexer[K comparable, V any] struct {
	getter *Interceptor[K, K, V]
	setter *Interceptor[KeyValue[K, V], KeyValue[K, V], Void]

	backing map[K]V
}

// NewIndexer creates an indexer double for the named member.
func NewIndexer[K comparable, V any](member, surface string, settable bool) *Indexer[K, V] {
	ix := &Indexer[K, V]{
		getter:  NewInterceptor[K, K, V](member+".get", surface),
		backing: make(map[K]V),
	}
	if settable {
		ix.setter = NewInterceptor[KeyValue[K, V], KeyValue[K, V], Void](member+".set", surface)
	}
	return ix
}

// WithStrict enables strict mode on the getter.
func (ix *Indexer[K, V]) WithStrict(strict bool) *Indexer[K, V] {
	ix.getter.WithStrict(strict)
	return ix
}

// WithDefault wires the value-policy outcome for the indexer's value type.
func (ix *Indexer[K, V]) WithDefault(fn func() (V, bool)) *Indexer[K, V] {
	ix.getter.WithDefault(fn)
	return ix
}

// WithGetOverride wires the unit-level author override for reads.
func (ix *Indexer[K, V]) WithGetOverride(fn func(K) V) *Indexer[K, V] {
	ix.getter.WithOverride(fn)
	return ix
}

// WithSetOverride wires the unit-level author override for writes.
func (ix *Indexer[K, V]) WithSetOverride(fn func(K, V)) *Indexer[K, V] {
	if fn != nil && ix.setter != nil {
		ix.setter.WithOverride(func(kv KeyValue[K, V]) Void {
			fn(kv.Key, kv.Value)
			return Void{}
		})
	}
	return ix
}

// Get records the keyed read and dispatches: callback, override, stored
// value for the key, policy default, strict failure.
func (ix *Indexer[K, V]) Get(key K) V {
	if !ix.getter.hasCallback && !ix.getter.hasOverride {
		if v, ok := ix.backing[key]; ok {
			ix.getter.calls++
			ix.getter.history = append(ix.getter.history, key)
			return v
		}
	}
	return ix.getter.Invoke(key, key)
}

// Set records the keyed write and stores the value unconditionally.
func (ix *Indexer[K, V]) Set(key K, value V) {
	ix.backing[key] = value
	if ix.setter != nil {
		kv := KeyValue[K, V]{Key: key, Value: value}
		ix.setter.Invoke(kv, kv)
	}
}

// OnGet installs a per-instance read callback.
func (ix *Indexer[K, V]) OnGet(fn func(K) V) {
	ix.getter.SetCallback(fn)
}

// OnSet installs a per-instance write callback.
func (ix *Indexer[K, V]) OnSet(fn func(K, V)) {
	if ix.setter == nil {
		panic("mimic: OnSet on a get-only indexer")
	}
	if fn == nil {
		ix.setter.SetCallback(nil)
		return
	}
	ix.setter.SetCallback(func(kv KeyValue[K, V]) Void {
		fn(kv.Key, kv.Value)
		return Void{}
	})
}

// Gets returns the read count since the last tracking reset.
func (ix *Indexer[K, V]) Gets() int { return ix.getter.Calls() }

// Sets returns the write count since the last tracking reset.
func (ix *Indexer[K, V]) Sets() int {
	if ix.setter == nil {
		return 0
	}
	return ix.setter.Calls()
}

// LastGetKey returns the most recently read key, if any.
func (ix *Indexer[K, V]) LastGetKey() (K, bool) {
	return ix.getter.Last()
}

// LastSet returns the most recently written key/value pair, if any.
func (ix *Indexer[K, V]) LastSet() (KeyValue[K, V], bool) {
	if ix.setter == nil {
		var zero KeyValue[K, V]
		return zero, false
	}
	return ix.setter.Last()
}

// Stored returns the backing-stored value for a key, if one was assigned.
func (ix *Indexer[K, V]) Stored(key K) (V, bool) {
	v, ok := ix.backing[key]
	return v, ok
}

// ResetTracking clears counters and history; stored values survive.
func (ix *Indexer[K, V]) ResetTracking() {
	ix.getter.ResetTracking()
	if ix.setter != nil {
		ix.setter.ResetTracking()
	}
}

// ResetCallback clears the per-instance callbacks only.
func (ix *Indexer[K, V]) ResetCallback() {
	ix.getter.ResetCallback()
	if ix.setter != nil {
		ix.setter.ResetCallback()
	}
}

// Reset clears tracking and callbacks; stored values survive.
func (ix *Indexer[K, V]) Reset() {
	ix.ResetTracking()
	ix.ResetCallback()
}
