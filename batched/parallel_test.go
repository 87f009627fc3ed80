package batched

import (
	"math"
	"runtime"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-routechoice/graph"
	"github.com/ttpr0/go-routechoice/routing"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
)

func setup(t *testing.T) (*graph.Network, routing.IShortestPath) {
	network, err := graph.BuildGridNetwork(8, 9, 11)
	require.NoError(t, err)
	edge_eval := weighting.NewEdgeAttributeCost(network)
	trav_eval := weighting.NewDynamicTraversal(func(traversal int32) float64 {
		return float64(traversal%4) * 0.05
	})
	return network, routing.NewDijkstra(network, edge_eval, trav_eval)
}

func assertSameResults(t *testing.T, expected, got *routing.ShortestPathResults) {
	require.Equal(t, expected.Length(), got.Length())
	for exp := range expected.All() {
		res, ok := got.Get(exp.Pair)
		require.True(t, ok, "missing pair %v", exp.Pair)
		assert.Equal(t, exp.Cost, res.Cost)
		assert.True(t, exp.Path.Equals(res.Path), "pair %v", exp.Pair)
	}
}

func TestParallelEqualsSerial(t *testing.T) {
	network, sp := setup(t)
	nodes := network.NodeIDs()
	expected, err := routing.GetShortestPaths(sp, nodes, nodes, 8)
	require.NoError(t, err)

	for _, method := range []ParallelMethod{FORK_JOIN, QUEUE} {
		for _, workers := range []int{1, 2, 7} {
			parallel := NewParallelShortestPath(sp, method, WithWorkers(workers))
			require.Equal(t, workers, parallel.Workers())
			results, err := parallel.GetShortestPaths(nodes, nodes, 8)
			require.NoError(t, err, "%v with %d workers", method, workers)
			assertSameResults(t, expected, results)
		}
	}
}

func TestWithWorkers(t *testing.T) {
	_, sp := setup(t)
	assert.Equal(t, runtime.GOMAXPROCS(0), NewParallelShortestPath(sp, QUEUE).Workers())
	assert.Equal(t, runtime.GOMAXPROCS(0), NewParallelShortestPath(sp, QUEUE, WithWorkers(0)).Workers())
	assert.Equal(t, runtime.GOMAXPROCS(0), NewParallelShortestPath(sp, QUEUE, WithWorkers(-3)).Workers())
	assert.Equal(t, 4, NewParallelShortestPath(sp, FORK_JOIN, WithWorkers(4)).Workers())
}

func TestParallelWithTargets(t *testing.T) {
	network, sp := setup(t)
	targets := NewDict[int32, Array[int32]](10)
	for _, origin := range network.NodeIDs() {
		if origin%3 != 0 {
			continue
		}
		targets[origin] = Array[int32]{origin, (origin % 72) + 1, ((origin + 17) % 72) + 1}
	}

	expected := routing.NewShortestPathResults(100)
	solver := sp.CreateSolver()
	for origin, dests := range targets {
		require.NoError(t, solver.CalcShortestPaths(origin, dests, math.Inf(1), expected))
	}

	for _, method := range []ParallelMethod{FORK_JOIN, QUEUE} {
		results, err := NewParallelShortestPath(sp, method).GetShortestPathsWithTargets(targets, math.Inf(1))
		require.NoError(t, err)
		assertSameResults(t, expected, results)
		_, ok := results.Get(structs.MakeNodePair(3, 1))
		assert.False(t, ok)
	}
}

func TestParallelEmpty(t *testing.T) {
	_, sp := setup(t)
	for _, method := range []ParallelMethod{FORK_JOIN, QUEUE} {
		results, err := NewParallelShortestPath(sp, method).GetShortestPaths(Array[int32]{}, Array[int32]{1}, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, results.Length())
	}
}

var errFailing = errors.New("failing origin")

type failingShortestPath struct {
	sp     routing.IShortestPath
	origin int32
}

func (self *failingShortestPath) CreateSolver() routing.ISolver {
	return &failingSolver{self.sp.CreateSolver(), self.origin}
}

type failingSolver struct {
	solver routing.ISolver
	origin int32
}

func (self *failingSolver) CalcShortestPaths(origin int32, destinations Array[int32], max_cost float64, results *routing.ShortestPathResults) error {
	if origin == self.origin {
		return errors.Wrapf(errFailing, "origin %d", origin)
	}
	return self.solver.CalcShortestPaths(origin, destinations, max_cost, results)
}

func TestParallelFailFast(t *testing.T) {
	network, sp := setup(t)
	nodes := network.NodeIDs()
	failing := &failingShortestPath{sp: sp, origin: 40}
	for _, method := range []ParallelMethod{FORK_JOIN, QUEUE} {
		results, err := NewParallelShortestPath(failing, method).GetShortestPaths(nodes, nodes, 5)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errFailing), "%v: %v", method, err)
		assert.Nil(t, results)
	}

	// unknown destination fails every origin
	for _, method := range []ParallelMethod{FORK_JOIN, QUEUE} {
		_, err := NewParallelShortestPath(sp, method).GetShortestPaths(nodes, Array[int32]{1000}, 5)
		assert.True(t, errors.Is(err, graph.ErrUnknownNode))
	}
}

func TestParallelMethodFromString(t *testing.T) {
	for _, method := range []ParallelMethod{FORK_JOIN, QUEUE} {
		parsed, ok := ParallelMethodFromString(method.String())
		require.True(t, ok)
		assert.Equal(t, method, parsed)
	}
	_, ok := ParallelMethodFromString("threads")
	assert.False(t, ok)
}
