package structs

import (
	"fmt"
)

//*******************************************
// graph structs
//*******************************************

// Directed arc between two node handles.
type Edge struct {
	NodeA int32
	NodeB int32
}

// Turn from EdgeA onto EdgeB at their shared node.
//
// EdgeA is -1 for the start of a search (no incoming edge).
type Traversal struct {
	EdgeA int32
	EdgeB int32
}

func StartTraversal(edge int32) Traversal {
	return Traversal{
		EdgeA: -1,
		EdgeB: edge,
	}
}

func (self Traversal) IsStart() bool {
	return self.EdgeA < 0
}

//*******************************************
// node pair
//*******************************************

// Origin-destination key over node ids.
type NodePair struct {
	From int32
	To   int32
}

func MakeNodePair(from, to int32) NodePair {
	return NodePair{
		From: from,
		To:   to,
	}
}

func (self NodePair) Reverse() NodePair {
	return NodePair{
		From: self.To,
		To:   self.From,
	}
}
func (self NodePair) IsIntrazonal() bool {
	return self.From == self.To
}
func (self NodePair) String() string {
	return fmt.Sprintf("(%d,%d)", self.From, self.To)
}
