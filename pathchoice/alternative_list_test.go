package pathchoice

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-routechoice/attr"
	"github.com/ttpr0/go-routechoice/graph"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
)

// three routes from 1 to 5, the first two share the edge (1,2)
//
// Costs equal lengths except for (2,5), the cheapest route is [1,2,4,5].
func routesNetwork(t *testing.T) *graph.Network {
	nodes := []graph.NodeData{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	edge := func(from, to int32, length float64) graph.EdgeData {
		return graph.EdgeData{From: from, To: to, Attribs: attr.EdgeAttribs{Length: length, Cost: length}}
	}
	edges := []graph.EdgeData{
		edge(1, 2, 2),
		edge(2, 5, 2),
		edge(2, 4, 1),
		edge(4, 5, 1),
		edge(1, 3, 3),
		edge(3, 5, 3),
	}
	edges[1].Attribs.Cost = 2.5
	network, err := graph.BuildNetworkWithAllTraversals(nodes, edges)
	require.NoError(t, err)
	return network
}

func makePath(nodes ...int32) *graph.Path {
	path := graph.NewPath(nodes[0])
	for _, node := range nodes[1:] {
		path = path.Extend(node)
	}
	return path
}

func listEdges(list *PathAlternativeList) List[List[int32]] {
	edges := NewList[List[int32]](list.Count())
	for i := 0; i < list.Count(); i++ {
		edges.Add(list.GetEdges(i))
	}
	return edges
}

func routesList(t *testing.T, network *graph.Network) *PathAlternativeList {
	list := NewPathAlternativeList(structs.MakeNodePair(1, 5), network, weighting.NewEdgeLengthEvaluator(network))
	for _, path := range []*graph.Path{makePath(1, 2, 5), makePath(1, 2, 4, 5), makePath(1, 3, 5)} {
		added, err := list.Add(path)
		require.NoError(t, err)
		require.True(t, added)
	}
	return list
}

func TestPathSizeSharedEdge(t *testing.T) {
	network := routesNetwork(t)
	list := NewPathAlternativeList(structs.MakeNodePair(1, 5), network, weighting.NewEdgeLengthEvaluator(network))

	_, err := list.Add(makePath(1, 2, 5))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1}, list.SizeMeasures(), 1e-12)

	_, err = list.Add(makePath(1, 2, 4, 5))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.75, 0.75}, list.SizeMeasures(), 1e-12)

	_, err = list.Add(makePath(1, 3, 5))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.75, 0.75, 1}, list.SizeMeasures(), 1e-12)
	assert.InDelta(t, 2.5, list.SizeMeasureTotal(), 1e-12)
}

func TestPathSizeIncrementalEqualsRecomputed(t *testing.T) {
	network, err := graph.BuildGridNetwork(6, 7, 5)
	require.NoError(t, err)
	length := weighting.NewEdgeLengthEvaluator(network)
	list := NewPathAlternativeList(structs.MakeNodePair(1, 42), network, length)

	// every monotone staircase path from the top left to the bottom right corner
	paths := []*graph.Path{
		makePath(1, 2, 3, 4, 5, 6, 7, 14, 21, 28, 35, 42),
		makePath(1, 8, 15, 22, 29, 36, 37, 38, 39, 40, 41, 42),
		makePath(1, 2, 9, 10, 17, 18, 25, 26, 33, 34, 41, 42),
		makePath(1, 2, 3, 10, 17, 24, 25, 26, 27, 34, 41, 42),
		makePath(1, 8, 9, 10, 11, 12, 19, 26, 33, 34, 41, 42),
		makePath(1, 2, 9, 16, 23, 30, 37, 38, 39, 40, 41, 42),
	}
	for _, path := range paths {
		added, err := list.Add(path)
		require.NoError(t, err)
		require.True(t, added)
		assert.InDeltaSlice(t, ComputePathSizes(listEdges(list), length), list.SizeMeasures(), 1e-9)
	}
}

func TestAddRejectsDuplicatesAndForeignPaths(t *testing.T) {
	network := routesNetwork(t)
	list := NewPathAlternativeList(structs.MakeNodePair(1, 5), network, weighting.NewEdgeLengthEvaluator(network))

	added, err := list.Add(makePath(1, 2, 5))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = list.Add(makePath(1, 2, 5))
	require.NoError(t, err)
	assert.False(t, added)

	added, err = list.Add(nil)
	require.NoError(t, err)
	assert.False(t, added)

	_, err = list.Add(makePath(1, 2, 4))
	assert.True(t, errors.Is(err, ErrPathEndpoints))

	assert.Equal(t, 1, list.Count())
	assert.False(t, list.IsFrozen())

	list.ClearPathSizeCalculator()
	assert.True(t, list.IsFrozen())
	_, err = list.Add(makePath(1, 3, 5))
	assert.True(t, errors.Is(err, ErrFrozen))
	assert.InDeltaSlice(t, []float64{1}, list.SizeMeasures(), 1e-12)
}

func TestTrivialIntrazonalPathHasUnitSize(t *testing.T) {
	network := routesNetwork(t)
	list := NewPathAlternativeList(structs.MakeNodePair(1, 1), network, weighting.NewEdgeLengthEvaluator(network))

	added, err := list.Add(graph.NewPath(1))
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 1.0, list.SizeMeasureTotal())
}

func TestResampleKeepsSubset(t *testing.T) {
	network := routesNetwork(t)
	for seed := uint64(0); seed < 20; seed++ {
		list := routesList(t, network)
		original := list.Paths()
		rng := NewPairRand(list.Pair(), seed)

		list.Resample(rng, 1.5)

		assert.True(t, list.IsFrozen())
		assert.LessOrEqual(t, list.Count(), len(original))
		assert.GreaterOrEqual(t, list.Count(), 2)
		for _, path := range list.Paths() {
			found := false
			for _, other := range original {
				found = found || other.Equals(path)
			}
			assert.True(t, found, "path %s not in original set", path)
		}
		assert.InDeltaSlice(t, ComputePathSizes(listEdges(list), weighting.NewEdgeLengthEvaluator(network)), list.SizeMeasures(), 1e-12)
	}
}

func TestResampleBelowTargetKeepsAll(t *testing.T) {
	network := routesNetwork(t)
	list := routesList(t, network)

	list.Resample(NewPairRand(list.Pair(), 1), 10)

	assert.Equal(t, 3, list.Count())
	assert.InDelta(t, 2.5, list.SizeMeasureTotal(), 1e-12)
}

func TestSampleFrequencyProportionalToSize(t *testing.T) {
	network := routesNetwork(t)
	list := routesList(t, network)
	rng := NewPairRand(list.Pair(), 42)

	// a small target stops after the first draw
	const draws = 20000
	counts := make([]int, list.Count())
	for i := 0; i < draws; i++ {
		sample := list.NewPathSample(rng, 0.01)
		require.Equal(t, 1, sample.Length())
		counts[sample[0]] += 1
	}

	total := list.SizeMeasureTotal()
	for i, size := range list.SizeMeasures() {
		assert.InDelta(t, size/total, float64(counts[i])/draws, 0.02)
	}
	assert.Equal(t, 3, list.Count())
}

func TestPathSampleReproducible(t *testing.T) {
	network := routesNetwork(t)
	list := routesList(t, network)

	a := list.NewPathSample(NewPairRand(list.Pair(), 7), 1.2)
	b := list.NewPathSample(NewPairRand(list.Pair(), 7), 1.2)
	assert.Equal(t, a, b)
}
