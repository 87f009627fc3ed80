package graph

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/attr"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
)

//*******************************************
// network
//*******************************************

type Node struct {
	ID      int32
	Handle  int32
	Attribs attr.NodeAttribs
}

// Static directed network with turn aware traversals.
//
// Nodes, edges and traversals are addressed by dense handles (their index),
// node ids are only used at the boundary.
// Immutable after construction, safe to share between goroutines.
type Network struct {
	node_ids          Array[int32]
	node_handles      Dict[int32, int32]
	edges             Array[structs.Edge]
	edge_handles      Dict[structs.Edge, int32]
	traversals        Array[structs.Traversal]
	traversal_handles Dict[structs.Traversal, int32]

	// node -> edges
	topology *structs.AdjacencyArray
	// edge -> traversals
	turn_topology *structs.AdjacencyArray

	attributes *attr.GraphAttributes
}

func (self *Network) NodeCount() int {
	return self.node_ids.Length()
}
func (self *Network) EdgeCount() int {
	return self.edges.Length()
}
func (self *Network) TraversalCount() int {
	return self.traversals.Length()
}

//*******************************************
// nodes
//*******************************************

func (self *Network) ContainsNode(id int32) bool {
	return self.node_handles.ContainsKey(id)
}
func (self *Network) GetNodeHandle(id int32) (int32, bool) {
	handle, ok := self.node_handles[id]
	return handle, ok
}
func (self *Network) GetNodeID(handle int32) int32 {
	return self.node_ids[handle]
}
func (self *Network) GetNode(id int32) Optional[Node] {
	handle, ok := self.node_handles[id]
	if !ok {
		return None[Node]()
	}
	return Some(Node{
		ID:      id,
		Handle:  handle,
		Attribs: self.attributes.GetNodeAttribs(handle),
	})
}

// Returns all node ids in handle order.
func (self *Network) NodeIDs() Array[int32] {
	return self.node_ids
}

//*******************************************
// edges
//*******************************************

func (self *Network) GetEdge(edge int32) structs.Edge {
	return self.edges[edge]
}

// Returns the edge handle of the arc between two node ids.
func (self *Network) GetEdgeHandle(from, to int32) (int32, bool) {
	a, ok := self.node_handles[from]
	if !ok {
		return -1, false
	}
	b, ok := self.node_handles[to]
	if !ok {
		return -1, false
	}
	edge, ok := self.edge_handles[structs.Edge{NodeA: a, NodeB: b}]
	if !ok {
		return -1, false
	}
	return edge, true
}
func (self *Network) ContainsEdge(from, to int32) bool {
	_, ok := self.GetEdgeHandle(from, to)
	return ok
}

// Returns the node ids of both ends of the edge.
func (self *Network) GetEdgeNodes(edge int32) structs.NodePair {
	e := self.edges[edge]
	return structs.NodePair{
		From: self.node_ids[e.NodeA],
		To:   self.node_ids[e.NodeB],
	}
}

//*******************************************
// traversals
//*******************************************

func (self *Network) GetTraversal(traversal int32) structs.Traversal {
	return self.traversals[traversal]
}
func (self *Network) GetTraversalHandle(edge_a, edge_b int32) (int32, bool) {
	traversal, ok := self.traversal_handles[structs.Traversal{EdgeA: edge_a, EdgeB: edge_b}]
	if !ok {
		return -1, false
	}
	return traversal, true
}

//*******************************************
// adjacency
//*******************************************

// Calls the callback for every edge leaving the node (handle).
func (self *Network) ForOutEdges(node int32, callback func(edge, other int32)) {
	accessor := self.topology.GetAccessor()
	accessor.SetBaseNode(node, true)
	for accessor.Next() {
		callback(accessor.GetEdgeID(), accessor.GetOtherID())
	}
}

// Calls the callback for every edge entering the node (handle).
func (self *Network) ForInEdges(node int32, callback func(edge, other int32)) {
	accessor := self.topology.GetAccessor()
	accessor.SetBaseNode(node, false)
	for accessor.Next() {
		callback(accessor.GetEdgeID(), accessor.GetOtherID())
	}
}

// Calls the callback for every traversal starting on the edge.
func (self *Network) ForOutTraversals(edge int32, callback func(traversal, next_edge int32)) {
	accessor := self.turn_topology.GetAccessor()
	accessor.SetBaseNode(edge, true)
	for accessor.Next() {
		callback(accessor.GetEdgeID(), accessor.GetOtherID())
	}
}

func (self *Network) GetNodeDegree(node int32, forward bool) int32 {
	return self.topology.GetDegree(node, forward)
}

// Returns the ids of all nodes reachable over a single edge.
func (self *Network) Successors(id int32) (List[int32], error) {
	handle, ok := self.node_handles[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNode, "node %d", id)
	}
	nodes := NewList[int32](int(self.topology.GetDegree(handle, true)))
	self.ForOutEdges(handle, func(edge, other int32) {
		nodes.Add(self.node_ids[other])
	})
	return nodes, nil
}

// Returns the ids of all nodes with an edge into the node.
func (self *Network) Predecessors(id int32) (List[int32], error) {
	handle, ok := self.node_handles[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNode, "node %d", id)
	}
	nodes := NewList[int32](int(self.topology.GetDegree(handle, false)))
	self.ForInEdges(handle, func(edge, other int32) {
		nodes.Add(self.node_ids[other])
	})
	return nodes, nil
}

//*******************************************
// attributes
//*******************************************

func (self *Network) GetAttributes() attr.IAttributes {
	return self.attributes
}
func (self *Network) GetNodeAttribs(node int32) attr.NodeAttribs {
	return self.attributes.GetNodeAttribs(node)
}
func (self *Network) GetEdgeAttribs(edge int32) attr.EdgeAttribs {
	return self.attributes.GetEdgeAttribs(edge)
}
func (self *Network) GetTraversalAttribs(traversal int32) attr.TraversalAttribs {
	return self.attributes.GetTraversalAttribs(traversal)
}
func (self *Network) GetNodeGeom(node int32) orb.Point {
	return self.attributes.GetNodeGeom(node)
}
func (self *Network) HasGeometry() bool {
	return self.attributes.HasGeometry()
}

//*******************************************
// paths
//*******************************************

// Returns the edge handles along the path.
func (self *Network) GetPathEdges(path *Path) (List[int32], error) {
	nodes := path.Nodes()
	edges := NewList[int32](nodes.Length())
	for i := 1; i < nodes.Length(); i++ {
		edge, ok := self.GetEdgeHandle(nodes[i-1], nodes[i])
		if !ok {
			return nil, errors.Wrapf(ErrUnknownEdge, "edge (%d,%d)", nodes[i-1], nodes[i])
		}
		edges.Add(edge)
	}
	return edges, nil
}
