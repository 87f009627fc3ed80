package graph

import (
	"strconv"
	"strings"

	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
)

//*******************************************
// path
//*******************************************

// Immutable path over node ids.
//
// Extending a path shares the receiver as prefix, paths of one search form a
// tree rooted at the origin.
type Path struct {
	prev   *Path
	node   int32
	length int32
}

func NewPath(node int32) *Path {
	return &Path{
		prev:   nil,
		node:   node,
		length: 1,
	}
}

// Returns a new path ending in node with the receiver as prefix.
func (self *Path) Extend(node int32) *Path {
	return &Path{
		prev:   self,
		node:   node,
		length: self.length + 1,
	}
}

func (self *Path) Node() int32 {
	return self.node
}
func (self *Path) Prev() *Path {
	return self.prev
}

// Number of nodes in the path.
func (self *Path) Length() int {
	return int(self.length)
}
func (self *Path) Origin() int32 {
	curr := self
	for curr.prev != nil {
		curr = curr.prev
	}
	return curr.node
}
func (self *Path) Endpoints() structs.NodePair {
	return structs.NodePair{
		From: self.Origin(),
		To:   self.node,
	}
}

// Returns the node ids from origin to destination.
func (self *Path) Nodes() List[int32] {
	nodes := List[int32](NewArray[int32](int(self.length)))
	i := self.length - 1
	for curr := self; curr != nil; curr = curr.prev {
		nodes[i] = curr.node
		i -= 1
	}
	return nodes
}

func (self *Path) Equals(other *Path) bool {
	if self == other {
		return true
	}
	if self == nil || other == nil || self.length != other.length {
		return false
	}
	a, b := self, other
	for a != nil {
		if a == b {
			return true
		}
		if a.node != b.node {
			return false
		}
		a, b = a.prev, b.prev
	}
	return true
}

func (self *Path) String() string {
	builder := strings.Builder{}
	builder.WriteByte('[')
	for i, node := range self.Nodes() {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(strconv.Itoa(int(node)))
	}
	builder.WriteByte(']')
	return builder.String()
}
