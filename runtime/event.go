package runtime

// Handle identifies one subscribed event handler for later removal.
// Function values are not comparable, so subscription returns a handle.
type Handle int

// Event tracks a generated event member: handler adds and removes plus
// raise fan-out. Events carry no return value and no default policy;
// tracking is the whole contract.
type Event[H any] struct {
	member  string
	surface string

	next     Handle
	handlers map[Handle]H
	order    []Handle

	adds    int
	removes int
	raises  int
}

// NewEvent creates an event double for the named member.
func NewEvent[H any](member, surface string) *Event[H] {
	return &Event[H]{
		member:   member,
		surface:  surface,
		handlers: make(map[Handle]H),
	}
}

// Add subscribes a handler and returns its removal handle.
func (e *Event[H]) Add(h H) Handle {
	e.adds++
	e.next++
	e.handlers[e.next] = h
	e.order = append(e.order, e.next)
	return e.next
}

// Remove unsubscribes a previously added handler. Removing an unknown
// handle is recorded but otherwise a no-op.
func (e *Event[H]) Remove(h Handle) {
	e.removes++
	if _, ok := e.handlers[h]; !ok {
		return
	}
	delete(e.handlers, h)
	for i, id := range e.order {
		if id == h {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Raise invokes fire for every current handler in subscription order.
func (e *Event[H]) Raise(fire func(H)) {
	e.raises++
	for _, id := range e.order {
		fire(e.handlers[id])
	}
}

// Adds returns the subscription count since the last tracking reset.
func (e *Event[H]) Adds() int { return e.adds }

// Removes returns the unsubscription count since the last tracking reset.
func (e *Event[H]) Removes() int { return e.removes }

// Raises returns the raise count since the last tracking reset.
func (e *Event[H]) Raises() int { return e.raises }

// HandlerCount returns the number of currently subscribed handlers.
func (e *Event[H]) HandlerCount() int { return len(e.handlers) }

// ResetTracking clears counters only; current subscriptions survive.
func (e *Event[H]) ResetTracking() {
	e.adds = 0
	e.removes = 0
	e.raises = 0
}
