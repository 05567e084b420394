package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelationshipGraph_ForwardAndInverse(t *testing.T) {
	g := NewRelationshipGraph()
	g.AddEdge(RelAggregates, 1, 2)
	g.AddEdge(RelAggregates, 1, 3)

	assert.ElementsMatch(t, []uint32{2, 3}, g.Neighbors(1, RelAggregates, Forward))
	assert.Equal(t, []uint32{1}, g.Neighbors(2, RelAggregates, Inverse))
	assert.Empty(t, g.Neighbors(1, RelAggregates, Inverse))
}

func TestRelationshipGraph_EdgesAndCount(t *testing.T) {
	g := NewRelationshipGraph()
	g.AddEdge(RelVoidsElement, 10, 20)
	g.AddEdge(RelFillsElement, 20, 30)

	assert.Equal(t, 2, g.EdgeCount())
	edges := g.Edges()
	assert.Len(t, edges, 2)
	assert.Equal(t, Edge{Kind: RelVoidsElement, Source: 10, Target: 20}, edges[0])
}
