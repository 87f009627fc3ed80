package routing

import (
	"math"

	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/graph"
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
)

//*******************************************
// adjacency network
//*******************************************

// Flat array encoding of a network for one pair of evaluators.
//
// Edges are renumbered into positions grouped by their from node. Every edge
// position owns a range of traversal slots, the first slot of the range is the
// start slot used when the search begins on that edge, the following slots are
// the turns onto successor edges with edge and turn cost baked in. U-turns are
// not encoded.
type AdjacencyNetwork struct {
	network *graph.Network
	// node -> first edge position, length node count + 1
	from_node_list Array[int32]
	// edge position -> first traversal slot, length edge count + 1
	edge_list Array[int32]
	// edge position -> to node
	to_node_list Array[int32]
	// slot -> from node
	traversal_from_list Array[int32]
	// slot -> edge position
	traversal_to_list Array[int32]
	// slot -> edge cost + turn cost
	traversal_costs Array[float64]
}

// Builds the encoding, fails with ErrNegativeCost on any negative cost.
func NewAdjacencyNetwork(network *graph.Network, edge_eval weighting.IEdgeEvaluator, trav_eval weighting.ITraversalEvaluator) (*AdjacencyNetwork, error) {
	node_count := network.NodeCount()
	edge_count := network.EdgeCount()

	from_node_list := NewArray[int32](node_count + 1)
	to_node_list := NewArray[int32](edge_count)
	edge_pos := NewArray[int32](edge_count)
	pos_edge := NewArray[int32](edge_count)
	counter := int32(0)
	for f := int32(0); f < int32(node_count); f++ {
		from_node_list[f] = counter
		network.ForOutEdges(f, func(edge, other int32) {
			to_node_list[counter] = other
			edge_pos[edge] = counter
			pos_edge[counter] = edge
			counter += 1
		})
	}
	from_node_list[node_count] = counter

	edge_costs := NewArray[float64](edge_count)
	for edge := int32(0); edge < int32(edge_count); edge++ {
		cost := edge_eval.EdgeCost(edge)
		if cost < 0 {
			return nil, _NegativeEdgeError(network, edge, cost)
		}
		edge_costs[edge] = cost
	}

	edge_list := NewArray[int32](edge_count + 1)
	traversal_from_list := NewList[int32](edge_count + network.TraversalCount())
	traversal_to_list := NewList[int32](edge_count + network.TraversalCount())
	traversal_costs := NewList[float64](edge_count + network.TraversalCount())
	var err error
	for pos := int32(0); pos < int32(edge_count); pos++ {
		edge := pos_edge[pos]
		e := network.GetEdge(edge)
		edge_list[pos] = int32(traversal_costs.Length())
		traversal_from_list.Add(e.NodeA)
		traversal_to_list.Add(pos)
		traversal_costs.Add(edge_costs[edge])
		network.ForOutTraversals(edge, func(traversal, next int32) {
			if err != nil {
				return
			}
			next_edge := network.GetEdge(next)
			if next_edge.NodeB == e.NodeA {
				return
			}
			trav_cost := trav_eval.TraversalCost(traversal)
			if trav_cost < 0 {
				err = _NegativeTraversalError(network, traversal, trav_cost)
				return
			}
			traversal_from_list.Add(e.NodeB)
			traversal_to_list.Add(edge_pos[next])
			traversal_costs.Add(edge_costs[next] + trav_cost)
		})
		if err != nil {
			return nil, err
		}
	}
	edge_list[edge_count] = int32(traversal_costs.Length())

	return &AdjacencyNetwork{
		network:             network,
		from_node_list:      from_node_list,
		edge_list:           edge_list,
		to_node_list:        to_node_list,
		traversal_from_list: Array[int32](traversal_from_list),
		traversal_to_list:   Array[int32](traversal_to_list),
		traversal_costs:     Array[float64](traversal_costs),
	}, nil
}

func (self *AdjacencyNetwork) EdgeCount() int {
	return self.to_node_list.Length()
}
func (self *AdjacencyNetwork) SlotCount() int {
	return self.traversal_costs.Length()
}

//*******************************************
// array dijkstra
//*******************************************

func NewDijkstraArray(encoding *AdjacencyNetwork) *DijkstraArray {
	return &DijkstraArray{
		encoding: encoding,
	}
}

// Dijkstra over an AdjacencyNetwork, many solvers share one encoding.
type DijkstraArray struct {
	encoding *AdjacencyNetwork
}

func (self *DijkstraArray) CreateSolver() ISolver {
	return &DijkstraArraySolver{
		encoding:    self.encoding,
		final_costs: NewArray[float64](self.encoding.EdgeCount()),
		temp_costs:  NewArray[float64](self.encoding.SlotCount()),
		temp_parent: NewArray[int32](self.encoding.SlotCount()),
		heap:        NewPriorityQueue[int32, float64](100),
	}
}

type DijkstraArraySolver struct {
	encoding *AdjacencyNetwork
	// settled cost per edge position, +Inf if unsettled
	final_costs Array[float64]
	temp_costs  Array[float64]
	// previous slot on the path, -1 for start slots
	temp_parent Array[int32]
	heap        PriorityQueue[int32, float64]
}

// CalcShortestPaths implements ISolver.
func (self *DijkstraArraySolver) CalcShortestPaths(origin int32, destinations Array[int32], max_cost float64, results *ShortestPathResults) error {
	enc := self.encoding
	network := enc.network
	origin_handle, ok := network.GetNodeHandle(origin)
	if !ok {
		return errors.Wrapf(graph.ErrUnknownNode, "origin %d", origin)
	}
	targets, err := _NewTargets(network, destinations)
	if err != nil {
		return err
	}
	target_slots := NewArray[int32](targets.ids.Length())

	// full reset, scratch is reused across origins
	self.final_costs.Fill(math.Inf(1))
	self.heap.Clear()
	heap := &self.heap

	if idx, ok := targets.Open(origin_handle); ok {
		targets.Settle(idx, graph.NewPath(origin), 0)
		target_slots[idx] = -1
	}

	for pos := enc.from_node_list[origin_handle]; pos < enc.from_node_list[origin_handle+1]; pos++ {
		slot := enc.edge_list[pos]
		cost := enc.traversal_costs[slot]
		if cost < max_cost {
			self.temp_costs[slot] = cost
			self.temp_parent[slot] = -1
			heap.Enqueue(slot, cost)
		}
	}

	for !targets.Done() {
		slot, ok := heap.Dequeue()
		if !ok {
			break
		}
		edge := enc.traversal_to_list[slot]
		if self.final_costs[edge] < math.Inf(1) {
			continue
		}
		cost := self.temp_costs[slot]
		self.final_costs[edge] = cost
		to_node := enc.to_node_list[edge]
		if idx, ok := targets.Open(to_node); ok {
			targets.Settle(idx, nil, cost)
			target_slots[idx] = slot
		}

		// skip the start slot
		end := enc.edge_list[edge+1]
		for next := enc.edge_list[edge] + 1; next < end; next++ {
			if self.final_costs[enc.traversal_to_list[next]] < math.Inf(1) {
				continue
			}
			c := cost + enc.traversal_costs[next]
			if c < max_cost {
				self.temp_costs[next] = c
				self.temp_parent[next] = slot
				heap.Enqueue(next, c)
			}
		}
	}

	for i, slot := range target_slots {
		if targets.found[i] && slot >= 0 {
			targets.paths[i] = self._BuildPath(origin, slot)
		}
	}
	return targets.AddResults(origin, results)
}

// Materializes the path ending with slot.
func (self *DijkstraArraySolver) _BuildPath(origin int32, slot int32) *graph.Path {
	enc := self.encoding
	network := enc.network
	nodes := NewList[int32](16)
	for s := slot; s >= 0; s = self.temp_parent[s] {
		nodes.Add(network.GetNodeID(enc.to_node_list[enc.traversal_to_list[s]]))
	}
	path := graph.NewPath(origin)
	for i := nodes.Length() - 1; i >= 0; i-- {
		path = path.Extend(nodes[i])
	}
	return path
}
