package graph

import (
	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/attr"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
)

//*******************************************
// network input
//*******************************************

type NodeData struct {
	ID      int32
	Attribs attr.NodeAttribs
}

// Directed edge between two node ids.
type EdgeData struct {
	From    int32
	To      int32
	Attribs attr.EdgeAttribs
}

// Turn between two edges, each given by its (from,to) node ids.
type TraversalData struct {
	FromEdge structs.NodePair
	ToEdge   structs.NodePair
	Attribs  attr.TraversalAttribs
}

//*******************************************
// build network
//*******************************************

// Builds the network from node, edge and traversal collections.
//
// Fails on duplicate node ids, duplicate (from,to) edges, edges or traversals
// referencing unknown nodes and duplicate traversals.
func BuildNetwork(nodes []NodeData, edges []EdgeData, traversals []TraversalData) (*Network, error) {
	network, err := _BuildNodesAndEdges(nodes, edges)
	if err != nil {
		return nil, err
	}

	trav_list := NewList[structs.Traversal](len(traversals))
	trav_attribs := NewList[attr.TraversalAttribs](len(traversals))
	for _, t := range traversals {
		edge_a, ok := network.GetEdgeHandle(t.FromEdge.From, t.FromEdge.To)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownEdge, "traversal edge %v", t.FromEdge)
		}
		edge_b, ok := network.GetEdgeHandle(t.ToEdge.From, t.ToEdge.To)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownEdge, "traversal edge %v", t.ToEdge)
		}
		trav_list.Add(structs.Traversal{EdgeA: edge_a, EdgeB: edge_b})
		trav_attribs.Add(t.Attribs)
	}
	if err := network._SetTraversals(trav_list, trav_attribs); err != nil {
		return nil, err
	}
	return network, nil
}

// Builds the network deriving a traversal for every pair of in- and out-edge at each node.
//
// Turn types are classified from node locations, the thru-centroid flag is set
// for traversals via centroids.
func BuildNetworkWithAllTraversals(nodes []NodeData, edges []EdgeData) (*Network, error) {
	network, err := _BuildNodesAndEdges(nodes, edges)
	if err != nil {
		return nil, err
	}

	trav_list := NewList[structs.Traversal](len(edges))
	trav_attribs := NewList[attr.TraversalAttribs](len(edges))
	for edge_a := int32(0); edge_a < int32(network.EdgeCount()); edge_a++ {
		via := network.edges[edge_a].NodeB
		network.ForOutEdges(via, func(edge_b, other int32) {
			trav_list.Add(structs.Traversal{EdgeA: edge_a, EdgeB: edge_b})
			trav_attribs.Add(_DeriveTraversalAttribs(network, edge_a, edge_b))
		})
	}
	if err := network._SetTraversals(trav_list, trav_attribs); err != nil {
		return nil, err
	}
	return network, nil
}

func _BuildNodesAndEdges(nodes []NodeData, edges []EdgeData) (*Network, error) {
	node_ids := NewArray[int32](len(nodes))
	node_handles := NewDict[int32, int32](len(nodes))
	node_attribs := NewArray[attr.NodeAttribs](len(nodes))
	for i, n := range nodes {
		if node_handles.ContainsKey(n.ID) {
			return nil, errors.Wrapf(ErrDuplicateNode, "node %d", n.ID)
		}
		node_ids[i] = n.ID
		node_handles[n.ID] = int32(i)
		node_attribs[i] = n.Attribs
	}

	edge_list := NewArray[structs.Edge](len(edges))
	edge_handles := NewDict[structs.Edge, int32](len(edges))
	edge_attribs := NewArray[attr.EdgeAttribs](len(edges))
	edge_nodes := NewArray[[2]int32](len(edges))
	dyn := structs.NewAdjacencyList(len(nodes))
	for i, e := range edges {
		a, ok := node_handles[e.From]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownNode, "node %d of edge (%d,%d)", e.From, e.From, e.To)
		}
		b, ok := node_handles[e.To]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownNode, "node %d of edge (%d,%d)", e.To, e.From, e.To)
		}
		edge := structs.Edge{NodeA: a, NodeB: b}
		if edge_handles.ContainsKey(edge) {
			return nil, errors.Wrapf(ErrDuplicateEdge, "edge (%d,%d)", e.From, e.To)
		}
		edge_list[i] = edge
		edge_handles[edge] = int32(i)
		edge_attribs[i] = e.Attribs
		edge_nodes[i] = [2]int32{a, b}
		dyn.AddFWDEntry(a, b, int32(i))
		dyn.AddBWDEntry(a, b, int32(i))
	}

	return &Network{
		node_ids:     node_ids,
		node_handles: node_handles,
		edges:        edge_list,
		edge_handles: edge_handles,
		topology:     structs.AdjacencyListToArray(&dyn),
		attributes:   attr.New(node_attribs, edge_attribs, nil, edge_nodes),
	}, nil
}

func (self *Network) _SetTraversals(traversals List[structs.Traversal], attribs List[attr.TraversalAttribs]) error {
	handles := NewDict[structs.Traversal, int32](traversals.Length())
	dyn := structs.NewAdjacencyList(self.EdgeCount())
	for i, t := range traversals {
		if self.edges[t.EdgeA].NodeB != self.edges[t.EdgeB].NodeA {
			pair_a := self.GetEdgeNodes(t.EdgeA)
			pair_b := self.GetEdgeNodes(t.EdgeB)
			return errors.Wrapf(ErrTraversalNode, "traversal %v -> %v", pair_a, pair_b)
		}
		if handles.ContainsKey(t) {
			pair_a := self.GetEdgeNodes(t.EdgeA)
			pair_b := self.GetEdgeNodes(t.EdgeB)
			return errors.Wrapf(ErrDuplicateEdge, "traversal %v -> %v", pair_a, pair_b)
		}
		handles[t] = int32(i)
		dyn.AddFWDEntry(t.EdgeA, t.EdgeB, int32(i))
		dyn.AddBWDEntry(t.EdgeA, t.EdgeB, int32(i))
	}
	self.traversals = Array[structs.Traversal](traversals)
	self.traversal_handles = handles
	self.turn_topology = structs.AdjacencyListToArray(&dyn)
	self.attributes.SetTraversalAttribs(Array[attr.TraversalAttribs](attribs))
	return nil
}
