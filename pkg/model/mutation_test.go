package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMutationView_NoOpWhenValuesEqual(t *testing.T) {
	v := NewMutationView("m1")
	v.Apply(GeometryMutation{
		EntityID:      1,
		ParameterPath: "Depth",
		OldValue:      ParamValue{Kind: ParamNumber, Number: 3.0},
		NewValue:      ParamValue{Kind: ParamNumber, Number: 3.0},
	})
	_, ok := v.Get(1, "Depth")
	assert.False(t, ok, "applying newValue == oldValue must be a no-op")
	assert.Empty(t, v.History())
}

func TestMutationView_AppliesAndOverwrites(t *testing.T) {
	v := NewMutationView("m1")
	v.Apply(GeometryMutation{
		EntityID:      1,
		ParameterPath: "Depth",
		OldValue:      ParamValue{Kind: ParamNumber, Number: 3.0},
		NewValue:      ParamValue{Kind: ParamNumber, Number: 4.0},
	})
	m, ok := v.Get(1, "Depth")
	assert.True(t, ok)
	assert.Equal(t, 4.0, m.NewValue.Number)

	v.Apply(GeometryMutation{
		EntityID:      1,
		ParameterPath: "Depth",
		OldValue:      ParamValue{Kind: ParamNumber, Number: 4.0},
		NewValue:      ParamValue{Kind: ParamNumber, Number: 5.0},
	})
	m, ok = v.Get(1, "Depth")
	assert.True(t, ok)
	assert.Equal(t, 5.0, m.NewValue.Number)
	assert.Len(t, v.History(), 2)
}

func TestMutationView_NeverTouchesBaseline(t *testing.T) {
	s := newTestStore()
	s.Add(NewRecord{ExpressID: 1, TypeTag: TagWall, Name: "Wall-01"})

	v := NewMutationView("m1")
	v.Apply(GeometryMutation{
		EntityID:      1,
		ParameterPath: "Depth",
		OldValue:      ParamValue{Kind: ParamNumber, Number: 3.0},
		NewValue:      ParamValue{Kind: ParamNumber, Number: 9.0},
	})

	// The EntityStore has no notion of mutations at all; it is a
	// different object, so there's nothing to assert other than that
	// GetName is untouched.
	assert.Equal(t, "Wall-01", s.GetName(1))
}
