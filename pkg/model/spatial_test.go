package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpatialHierarchy_StoreyHeights_SingleStorey(t *testing.T) {
	h := NewSpatialHierarchy()
	h.AddNode(SpatialNode{ExpressID: 1, Kind: SpatialStorey, Elevation: 0})
	h.ComputeStoreyHeights()
	assert.Equal(t, 0.0, h.StoreyHeight(1), "single-storey model has no computed height")
}

func TestSpatialHierarchy_StoreyHeights_MultipleStoreys(t *testing.T) {
	h := NewSpatialHierarchy()
	h.AddNode(SpatialNode{ExpressID: 1, Kind: SpatialStorey, Elevation: 0})
	h.AddNode(SpatialNode{ExpressID: 2, Kind: SpatialStorey, Elevation: 3})
	h.AddNode(SpatialNode{ExpressID: 3, Kind: SpatialStorey, Elevation: 6.5})
	h.ComputeStoreyHeights()

	assert.Equal(t, 3.0, h.StoreyHeight(1))
	assert.Equal(t, 3.5, h.StoreyHeight(2))
	// topmost defaults to the average of the observed heights
	assert.InDelta(t, 3.25, h.StoreyHeight(3), 1e-9)
}

func TestSpatialHierarchy_DefaultElevationIsZero(t *testing.T) {
	h := NewSpatialHierarchy()
	h.AddNode(SpatialNode{ExpressID: 1, Kind: SpatialStorey})
	assert.Equal(t, 0.0, h.Elevation(1))
}

func TestSpatialHierarchy_ReverseLookupConsistency(t *testing.T) {
	h := NewSpatialHierarchy()
	h.AddNode(SpatialNode{ExpressID: 1, Kind: SpatialStorey})
	h.AddContainment(1, 100)
	h.AddContainment(1, 101)

	assert.ElementsMatch(t, []uint32{100, 101}, h.ByStorey(1))
	assert.ElementsMatch(t, []uint32{100, 101}, h.Node(1).DirectlyContainedElements)
}
