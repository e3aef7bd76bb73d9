package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyAggregatesBySummation(t *testing.T) {
	f := NewFamily("Convert", "Conv")
	user := NewInterceptor[Void, Void, string]("ConvertUser", "Conv")
	order := NewInterceptor[Void, Void, string]("ConvertOrder", "Conv")
	f.Attach("User", func() Tracker { return user })
	f.Attach("Order", func() Tracker { return order })

	user.Invoke(Void{}, Void{})
	user.Invoke(Void{}, Void{})
	order.Invoke(Void{}, Void{})

	assert.Equal(t, 2, user.Calls())
	assert.Equal(t, 1, order.Calls())
	assert.Equal(t, 3, f.TotalCalls())
	assert.Equal(t, []TypeKey{"Order", "User"}, f.Seen())
}

func TestFamilyAttachIsIdempotent(t *testing.T) {
	f := NewFamily("Convert", "Conv")
	first := f.Attach("User", func() Tracker {
		return NewInterceptor[Void, Void, Void]("ConvertUser", "Conv")
	})
	second := f.Attach("User", func() Tracker {
		t.Fatal("factory must not run for a registered combination")
		return nil
	})

	assert.Same(t, first, second)
}

func TestFamilySeenExcludesUninvoked(t *testing.T) {
	f := NewFamily("Convert", "Conv")
	user := NewInterceptor[Void, Void, Void]("ConvertUser", "Conv")
	f.Attach("User", func() Tracker { return user })
	f.Attach("Order", func() Tracker {
		return NewInterceptor[Void, Void, Void]("ConvertOrder", "Conv")
	})

	assert.Empty(t, f.Seen())
	assert.Equal(t, 0, f.TotalCalls())

	user.Invoke(Void{}, Void{})
	assert.Equal(t, []TypeKey{"User"}, f.Seen())
}

func TestFamilyAggregatesFollowResets(t *testing.T) {
	f := NewFamily("Convert", "Conv")
	user := NewInterceptor[Void, Void, Void]("ConvertUser", "Conv")
	f.Attach("User", func() Tracker { return user })

	user.Invoke(Void{}, Void{})
	require.Equal(t, 1, f.TotalCalls())

	// Aggregates are computed, not stored: a combination reset is
	// immediately visible.
	user.ResetTracking()
	assert.Equal(t, 0, f.TotalCalls())
	assert.Empty(t, f.Seen())
}

func TestFamilyLookup(t *testing.T) {
	f := NewFamily("Convert", "Conv")
	_, ok := f.Lookup("User")
	assert.False(t, ok)

	user := NewInterceptor[Void, Void, Void]("ConvertUser", "Conv")
	f.Attach("User", func() Tracker { return user })
	got, ok := f.Lookup("User")
	require.True(t, ok)
	assert.Same(t, Tracker(user), got)
}
