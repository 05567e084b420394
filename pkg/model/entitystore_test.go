package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ifckit/pkg/intern"
)

func newTestStore() *EntityStore {
	return NewEntityStore(intern.New())
}

func TestEntityStore_AddAndLookup(t *testing.T) {
	s := newTestStore()
	idx := s.Add(NewRecord{
		ExpressID: 42,
		TypeTag:   TagWall,
		GlobalID:  "2O2Fr$t7X7Zf8NOew3FNr2",
		Name:      "Wall-01",
		ByteOffset: 100,
		ByteLength: 40,
	})
	require.Equal(t, 0, idx)

	assert.True(t, s.Exists(42))
	assert.Equal(t, TagWall, s.TypeTagOf(42))
	assert.Equal(t, "Wall-01", s.GetName(42))
	assert.Equal(t, "2O2Fr$t7X7Zf8NOew3FNr2", s.GetGlobalID(42))

	off, length, ok := s.ByteRange(42)
	assert.True(t, ok)
	assert.Equal(t, int64(100), off)
	assert.Equal(t, int32(40), length)
}

func TestEntityStore_UnknownIDReturnsSentinels(t *testing.T) {
	s := newTestStore()
	assert.False(t, s.Exists(999))
	assert.Equal(t, TagUnknown, s.TypeTagOf(999))
	assert.Equal(t, "", s.GetName(999))
	assert.False(t, s.HasGeometry(999))
	_, ok := s.GetExpressIDByGlobalID("doesnotexist000000000")
	assert.False(t, ok)
}

func TestEntityStore_GetByType_ExactEvenWhenInterleaved(t *testing.T) {
	s := newTestStore()
	s.Add(NewRecord{ExpressID: 1, TypeTag: TagWall})
	s.Add(NewRecord{ExpressID: 2, TypeTag: TagSlab})
	s.Add(NewRecord{ExpressID: 3, TypeTag: TagWall})
	s.Add(NewRecord{ExpressID: 4, TypeTag: TagDoor})
	s.Add(NewRecord{ExpressID: 5, TypeTag: TagWall})

	walls := s.GetByType(TagWall)
	assert.Equal(t, []uint32{1, 3, 5}, walls)
}

func TestEntityStore_FlagsAndLinks(t *testing.T) {
	s := newTestStore()
	s.Add(NewRecord{ExpressID: 1, TypeTag: TagWall})
	s.Add(NewRecord{ExpressID: 2, TypeTag: TagBuildingStorey})

	s.SetFlag(1, FlagHasOpenings)
	assert.True(t, s.HasFlag(1, FlagHasOpenings))
	assert.False(t, s.HasFlag(1, FlagHasGeometry))

	s.SetContainedInStorey(1, 2)
	storey, ok := s.ContainedInStorey(1)
	assert.True(t, ok)
	assert.Equal(t, uint32(2), storey)

	_, ok = s.ContainedInStorey(2)
	assert.False(t, ok)
}

func TestEntityStore_MaxExpressID(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, uint32(0), s.MaxExpressID())
	s.Add(NewRecord{ExpressID: 7, TypeTag: TagWall})
	s.Add(NewRecord{ExpressID: 3, TypeTag: TagSlab})
	assert.Equal(t, uint32(7), s.MaxExpressID())
}

func TestEntityStore_AddAfterFreezePanics(t *testing.T) {
	s := newTestStore()
	s.Freeze()
	assert.Panics(t, func() {
		s.Add(NewRecord{ExpressID: 1, TypeTag: TagWall})
	})
}
