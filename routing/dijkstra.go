package routing

import (
	"math"

	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/graph"
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
)

var ErrNegativeCost = errors.New("negative cost")

type IntrazonalMode byte

const (
	// Origin reached as destination yields a zero cost single node path.
	INTRAZONAL_TRIVIAL IntrazonalMode = 0
	// Origin reached as destination yields the cheapest loop back to the origin.
	INTRAZONAL_LOOP IntrazonalMode = 1
)

func (self IntrazonalMode) String() string {
	switch self {
	case INTRAZONAL_TRIVIAL:
		return "trivial"
	case INTRAZONAL_LOOP:
		return "loop"
	}
	return ""
}

//*******************************************
// dijkstra
//*******************************************

func NewDijkstra(network *graph.Network, edge_eval weighting.IEdgeEvaluator, trav_eval weighting.ITraversalEvaluator) *Dijkstra {
	return &Dijkstra{
		network:   network,
		edge_eval: edge_eval,
		trav_eval: trav_eval,
	}
}

// Edge based dijkstra with turn costs.
type Dijkstra struct {
	network   *graph.Network
	edge_eval weighting.IEdgeEvaluator
	trav_eval weighting.ITraversalEvaluator
}

func (self *Dijkstra) CreateSolver() ISolver {
	return &DijkstraSolver{
		network:   self.network,
		edge_eval: self.edge_eval,
		trav_eval: self.trav_eval,
		flags:     NewFlags[_EdgeFlag](int32(self.network.EdgeCount()), _EdgeFlag{cost: math.Inf(1)}),
	}
}

type DijkstraSolver struct {
	network   *graph.Network
	edge_eval weighting.IEdgeEvaluator
	trav_eval weighting.ITraversalEvaluator
	flags     Flags[_EdgeFlag]
}

// CalcShortestPaths implements ISolver.
func (self *DijkstraSolver) CalcShortestPaths(origin int32, destinations Array[int32], max_cost float64, results *ShortestPathResults) error {
	origin_handle, ok := self.network.GetNodeHandle(origin)
	if !ok {
		return errors.Wrapf(graph.ErrUnknownNode, "origin %d", origin)
	}
	targets, err := _NewTargets(self.network, destinations)
	if err != nil {
		return err
	}
	self.flags.Reset()
	search := _EdgeSearch{
		network:   self.network,
		edge_eval: self.edge_eval,
		trav_eval: self.trav_eval,
		flags:     self.flags,
		max_cost:  max_cost,
		mode:      INTRAZONAL_TRIVIAL,
	}
	if err := search.Run(origin_handle, targets); err != nil {
		return err
	}
	return targets.AddResults(origin, results)
}

//*******************************************
// edge based search
//*******************************************

type _EdgeFlag struct {
	cost    float64
	path    *graph.Path
	settled bool
}

type _EdgeSearch struct {
	network   *graph.Network
	edge_eval weighting.IEdgeEvaluator
	trav_eval weighting.ITraversalEvaluator
	flags     Flags[_EdgeFlag]
	max_cost  float64
	mode      IntrazonalMode
	// fail on negative edge or traversal costs
	check_costs bool
}

// Settles edges in order of cost until all targets are found.
//
// Moving from edge a onto edge b costs edgeCost(b) + traversalCost(a,b), only
// costs below max_cost are enqueued. U-turns are skipped except for the loop
// back into the origin in INTRAZONAL_LOOP mode.
func (self *_EdgeSearch) Run(origin int32, targets *_Targets) error {
	network := self.network
	heap := NewPriorityQueue[int32, float64](100)

	start := graph.NewPath(network.GetNodeID(origin))
	if idx, ok := targets.Open(origin); ok && self.mode == INTRAZONAL_TRIVIAL {
		targets.Settle(idx, start, 0)
	}
	if targets.Done() {
		return nil
	}

	var err error
	network.ForOutEdges(origin, func(edge, other int32) {
		if err != nil {
			return
		}
		cost := self.edge_eval.EdgeCost(edge)
		if self.check_costs && cost < 0 {
			err = _NegativeEdgeError(network, edge, cost)
			return
		}
		if !(cost < self.max_cost) {
			return
		}
		flag := self.flags.Get(edge)
		if cost < flag.cost {
			flag.cost = cost
			flag.path = start.Extend(network.GetNodeID(other))
			heap.Enqueue(edge, cost)
		}
	})
	if err != nil {
		return err
	}

	for {
		curr_id, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_flag := self.flags.Get(curr_id)
		if curr_flag.settled {
			continue
		}
		curr_flag.settled = true
		curr_edge := network.GetEdge(curr_id)
		if idx, ok := targets.Open(curr_edge.NodeB); ok {
			if targets.Settle(idx, curr_flag.path, curr_flag.cost) {
				break
			}
		}
		network.ForOutTraversals(curr_id, func(traversal, next_id int32) {
			if err != nil {
				return
			}
			next_edge := network.GetEdge(next_id)
			if next_edge.NodeB == curr_edge.NodeA {
				if !(self.mode == INTRAZONAL_LOOP && next_edge.NodeB == origin) {
					return
				}
			}
			next_flag := self.flags.Get(next_id)
			if next_flag.settled {
				return
			}
			edge_cost := self.edge_eval.EdgeCost(next_id)
			trav_cost := self.trav_eval.TraversalCost(traversal)
			if self.check_costs {
				if edge_cost < 0 {
					err = _NegativeEdgeError(network, next_id, edge_cost)
					return
				}
				if trav_cost < 0 {
					err = _NegativeTraversalError(network, traversal, trav_cost)
					return
				}
			}
			new_cost := curr_flag.cost + edge_cost + trav_cost
			if !(new_cost < self.max_cost) {
				return
			}
			if new_cost < next_flag.cost {
				next_flag.cost = new_cost
				next_flag.path = curr_flag.path.Extend(network.GetNodeID(next_edge.NodeB))
				heap.Enqueue(next_id, new_cost)
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func _NegativeEdgeError(network *graph.Network, edge int32, cost float64) error {
	return errors.Wrapf(ErrNegativeCost, "edge %v has cost %v", network.GetEdgeNodes(edge), cost)
}

func _NegativeTraversalError(network *graph.Network, traversal int32, cost float64) error {
	t := network.GetTraversal(traversal)
	return errors.Wrapf(ErrNegativeCost, "traversal %v -> %v has cost %v", network.GetEdgeNodes(t.EdgeA), network.GetEdgeNodes(t.EdgeB), cost)
}
