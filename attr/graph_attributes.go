package attr

import (
	"github.com/paulmach/orb"
	. "github.com/ttpr0/go-routechoice/util"
)

// Attributes indexed by node, edge and traversal handles.
type IAttributes interface {
	GetNodeAttribs(node int32) NodeAttribs
	GetEdgeAttribs(edge int32) EdgeAttribs
	GetTraversalAttribs(traversal int32) TraversalAttribs
	GetNodeGeom(node int32) orb.Point
	GetEdgeGeom(edge int32) orb.LineString
}

var _ IAttributes = &GraphAttributes{}

type GraphAttributes struct {
	node_attribs      Array[NodeAttribs]
	edge_attribs      Array[EdgeAttribs]
	traversal_attribs Array[TraversalAttribs]
	// node handle of both ends of every edge
	edge_nodes Array[[2]int32]
}

func New(nodes Array[NodeAttribs], edges Array[EdgeAttribs], traversals Array[TraversalAttribs], edge_nodes Array[[2]int32]) *GraphAttributes {
	return &GraphAttributes{
		node_attribs:      nodes,
		edge_attribs:      edges,
		traversal_attribs: traversals,
		edge_nodes:        edge_nodes,
	}
}

func (self *GraphAttributes) GetNodeAttribs(node int32) NodeAttribs {
	return self.node_attribs[node]
}
func (self *GraphAttributes) GetEdgeAttribs(edge int32) EdgeAttribs {
	return self.edge_attribs[edge]
}
func (self *GraphAttributes) GetTraversalAttribs(traversal int32) TraversalAttribs {
	return self.traversal_attribs[traversal]
}
func (self *GraphAttributes) GetNodeGeom(node int32) orb.Point {
	return self.node_attribs[node].Loc
}
func (self *GraphAttributes) GetEdgeGeom(edge int32) orb.LineString {
	nodes := self.edge_nodes[edge]
	return orb.LineString{
		self.GetNodeGeom(nodes[0]),
		self.GetNodeGeom(nodes[1]),
	}
}

// Returns true if any node carries a location.
func (self *GraphAttributes) HasGeometry() bool {
	for _, n := range self.node_attribs {
		if n.Loc != (orb.Point{}) {
			return true
		}
	}
	return false
}

// Only used while building the network.
func (self *GraphAttributes) SetTraversalAttribs(traversals Array[TraversalAttribs]) {
	self.traversal_attribs = traversals
}
