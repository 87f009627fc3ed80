package routing

import (
	"math"

	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/graph"
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
)

//*******************************************
// repeated dijkstra
//*******************************************

type RepeatedOption func(*RepeatedDijkstra)

// Sets how a search treats its origin as destination.
func WithIntrazonal(mode IntrazonalMode) RepeatedOption {
	return func(d *RepeatedDijkstra) {
		d.mode = mode
	}
}

// Memoizes traversal costs per origin.
func WithTraversalCache() RepeatedOption {
	return func(d *RepeatedDijkstra) {
		d.cache_traversals = true
	}
}

// Dijkstra for repeated searches with changing edge costs.
//
// Negative edge or traversal costs abort the search with ErrNegativeCost.
func NewRepeatedDijkstra(network *graph.Network, edge_eval weighting.IEdgeEvaluator, trav_eval weighting.ITraversalEvaluator, opts ...RepeatedOption) *RepeatedDijkstra {
	d := &RepeatedDijkstra{
		network:   network,
		edge_eval: edge_eval,
		trav_eval: trav_eval,
		mode:      INTRAZONAL_TRIVIAL,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type RepeatedDijkstra struct {
	network          *graph.Network
	edge_eval        weighting.IEdgeEvaluator
	trav_eval        weighting.ITraversalEvaluator
	mode             IntrazonalMode
	cache_traversals bool
}

func (self *RepeatedDijkstra) CreateSolver() ISolver {
	return self.CreateRepeatedSolver()
}

func (self *RepeatedDijkstra) CreateRepeatedSolver() *RepeatedDijkstraSolver {
	var cache *weighting.CachedTraversalEvaluator
	trav_eval := self.trav_eval
	if self.cache_traversals {
		cache = weighting.NewCachedTraversalEvaluator(self.trav_eval, self.network.TraversalCount())
		trav_eval = cache
	}
	return &RepeatedDijkstraSolver{
		network:   self.network,
		edge_eval: self.edge_eval,
		trav_eval: trav_eval,
		cache:     cache,
		mode:      self.mode,
		flags:     NewFlags[_EdgeFlag](int32(self.network.EdgeCount()), _EdgeFlag{cost: math.Inf(1)}),
	}
}

var _ IRepeatedSolver = &RepeatedDijkstraSolver{}

type RepeatedDijkstraSolver struct {
	network   *graph.Network
	edge_eval weighting.IEdgeEvaluator
	trav_eval weighting.ITraversalEvaluator
	cache     *weighting.CachedTraversalEvaluator
	mode      IntrazonalMode
	flags     Flags[_EdgeFlag]
}

// SetEdgeEvaluator implements IRepeatedSolver.
func (self *RepeatedDijkstraSolver) SetEdgeEvaluator(eval weighting.IEdgeEvaluator) {
	self.edge_eval = eval
}

// CalcShortestPaths implements ISolver.
func (self *RepeatedDijkstraSolver) CalcShortestPaths(origin int32, destinations Array[int32], max_cost float64, results *ShortestPathResults) error {
	origin_handle, ok := self.network.GetNodeHandle(origin)
	if !ok {
		return errors.Wrapf(graph.ErrUnknownNode, "origin %d", origin)
	}
	targets, err := _NewTargets(self.network, destinations)
	if err != nil {
		return err
	}
	self.flags.Reset()
	if self.cache != nil {
		self.cache.Reset()
	}
	search := _EdgeSearch{
		network:     self.network,
		edge_eval:   self.edge_eval,
		trav_eval:   self.trav_eval,
		flags:       self.flags,
		max_cost:    max_cost,
		mode:        self.mode,
		check_costs: true,
	}
	if err := search.Run(origin_handle, targets); err != nil {
		return err
	}
	return targets.AddResults(origin, results)
}
