package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventRaisesInSubscriptionOrder(t *testing.T) {
	e := NewEvent[func()]("Changed", "Svc")
	var order []string

	e.Add(func() { order = append(order, "first") })
	e.Add(func() { order = append(order, "second") })
	e.Raise(func(h func()) { h() })

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 2, e.Adds())
	assert.Equal(t, 1, e.Raises())
	assert.Equal(t, 2, e.HandlerCount())
}

func TestEventRemove(t *testing.T) {
	e := NewEvent[func()]("Changed", "Svc")
	var fired int

	h := e.Add(func() { fired++ })
	e.Remove(h)
	e.Raise(func(h func()) { h() })

	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, e.Removes())
	assert.Equal(t, 0, e.HandlerCount())
}

func TestEventRemoveUnknownHandleIsRecordedNoOp(t *testing.T) {
	e := NewEvent[func()]("Changed", "Svc")
	e.Add(func() {})

	e.Remove(Handle(99))

	assert.Equal(t, 1, e.Removes())
	assert.Equal(t, 1, e.HandlerCount())
}

func TestEventResetTrackingKeepsSubscriptions(t *testing.T) {
	e := NewEvent[func()]("Changed", "Svc")
	var fired int
	e.Add(func() { fired++ })
	e.Raise(func(h func()) { h() })

	e.ResetTracking()

	assert.Equal(t, 0, e.Adds())
	assert.Equal(t, 0, e.Raises())
	assert.Equal(t, 1, e.HandlerCount())

	e.Raise(func(h func()) { h() })
	assert.Equal(t, 2, fired)
}
