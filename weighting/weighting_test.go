package weighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-routechoice/attr"
	"github.com/ttpr0/go-routechoice/graph"
	"github.com/ttpr0/go-routechoice/structs"
)

func buildNetwork(t *testing.T) *graph.Network {
	nodes := []graph.NodeData{
		{ID: 1},
		{ID: 2, Attribs: attr.NodeAttribs{Centroid: true}},
		{ID: 3},
	}
	edges := []graph.EdgeData{
		{From: 1, To: 2, Attribs: attr.EdgeAttribs{Length: 2, Cost: 4}},
		{From: 2, To: 3, Attribs: attr.EdgeAttribs{Length: 3, Cost: 999}},
	}
	traversals := []graph.TraversalData{
		{
			FromEdge: structs.NodePair{From: 1, To: 2},
			ToEdge:   structs.NodePair{From: 2, To: 3},
			Attribs:  attr.TraversalAttribs{Cost: 1.5, ThruCentroid: true},
		},
	}
	network, err := graph.BuildNetwork(nodes, edges, traversals)
	require.NoError(t, err)
	return network
}

func TestEdgeEvaluators(t *testing.T) {
	network := buildNetwork(t)
	e0, _ := network.GetEdgeHandle(1, 2)
	e1, _ := network.GetEdgeHandle(2, 3)

	length := NewEdgeLengthEvaluator(network)
	assert.Equal(t, 2.0, length.EdgeCost(e0))
	assert.Equal(t, 3.0, length.EdgeCost(e1))

	cost := NewEdgeAttributeCost(network)
	assert.Equal(t, 4.0, cost.EdgeCost(e0))

	accessible := NewAccessibleDistance(network)
	assert.Equal(t, 2.0, accessible.EdgeCost(e0))
	assert.Equal(t, 3.0+999, accessible.EdgeCost(e1))

	dyn := NewDynamicEdge(func(edge int32) float64 { return float64(edge) * 10 })
	assert.Equal(t, 10.0, dyn.EdgeCost(1))
}

func TestTraversalEvaluators(t *testing.T) {
	network := buildNetwork(t)

	assert.Equal(t, 0.0, NewZeroTraversal().TraversalCost(0))
	assert.Equal(t, 1.5, NewTraversalAttributeCost(network).TraversalCost(0))
	assert.Equal(t, 999.0, NewThruCentroidPenalty(network).TraversalCost(0))
	assert.Equal(t, 7.0, NewDynamicTraversal(func(int32) float64 { return 7 }).TraversalCost(0))
}

func TestRandomizedEdgeCost(t *testing.T) {
	base := NewDynamicEdge(func(edge int32) float64 { return 1 })
	length := NewDynamicEdge(func(edge int32) float64 { return 2 })

	a := NewRandomizedEdgeCost(base, length, 0.5, 42, 7, 2)
	b := NewRandomizedEdgeCost(base, length, 0.5, 42, 7, 2)
	c := NewRandomizedEdgeCost(base, length, 0.5, 42, 7, 3)

	differs := false
	for edge := int32(0); edge < 100; edge++ {
		ca := a.EdgeCost(edge)
		assert.Equal(t, ca, b.EdgeCost(edge))
		// cost + length * spread * U with U in [0,1)
		assert.GreaterOrEqual(t, ca, 1.0)
		assert.Less(t, ca, 2.0)
		if ca != c.EdgeCost(edge) {
			differs = true
		}
	}
	assert.True(t, differs)

	zero := NewRandomizedEdgeCost(base, length, 0, 42, 7, 2)
	assert.Equal(t, 1.0, zero.EdgeCost(3))
}

func TestRandomizedUniformMean(t *testing.T) {
	base := NewDynamicEdge(func(edge int32) float64 { return 0 })
	r := NewRandomizedEdgeCost(base, base, 1, 1, 1, 1)
	sum := 0.0
	n := 20000
	for edge := 0; edge < n; edge++ {
		u := r.Uniform(int32(edge))
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
		sum += u
	}
	assert.InDelta(t, 0.5, sum/float64(n), 0.02)
}

func TestCachedTraversalEvaluator(t *testing.T) {
	calls := 0
	base := NewDynamicTraversal(func(traversal int32) float64 {
		calls++
		return float64(traversal)
	})
	cache := NewCachedTraversalEvaluator(base, 4)

	assert.Equal(t, 2.0, cache.TraversalCost(2))
	assert.Equal(t, 2.0, cache.TraversalCost(2))
	assert.Equal(t, 1, calls)

	cache.Reset()
	assert.Equal(t, 2.0, cache.TraversalCost(2))
	assert.Equal(t, 2, calls)
}
