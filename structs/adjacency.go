package structs

import (
	. "github.com/ttpr0/go-routechoice/util"
)

//*******************************************
// adjacency list
//*******************************************

type _AdjEntry struct {
	EdgeID  int32
	OtherID int32
}

// Dynamic adjacency used while building, convert to AdjacencyArray afterwards.
type AdjacencyList struct {
	fwd_entries Array[List[_AdjEntry]]
	bwd_entries Array[List[_AdjEntry]]
}

func NewAdjacencyList(node_count int) AdjacencyList {
	fwd := NewArray[List[_AdjEntry]](node_count)
	bwd := NewArray[List[_AdjEntry]](node_count)
	for i := 0; i < node_count; i++ {
		fwd[i] = NewList[_AdjEntry](2)
		bwd[i] = NewList[_AdjEntry](2)
	}
	return AdjacencyList{
		fwd_entries: fwd,
		bwd_entries: bwd,
	}
}

func (self *AdjacencyList) NodeCount() int {
	return self.fwd_entries.Length()
}

// Adds an outgoing entry at node_a.
func (self *AdjacencyList) AddFWDEntry(node_a, node_b, edge_id int32) {
	self.fwd_entries[node_a].Add(_AdjEntry{EdgeID: edge_id, OtherID: node_b})
}

// Adds an ingoing entry at node_b.
func (self *AdjacencyList) AddBWDEntry(node_a, node_b, edge_id int32) {
	self.bwd_entries[node_b].Add(_AdjEntry{EdgeID: edge_id, OtherID: node_a})
}

//*******************************************
// adjacency array
//*******************************************

// Compressed (CSR) adjacency, entries of node i are stored at [start[i], start[i+1]).
type AdjacencyArray struct {
	fwd_start   Array[int32]
	fwd_entries Array[_AdjEntry]
	bwd_start   Array[int32]
	bwd_entries Array[_AdjEntry]
}

func AdjacencyListToArray(dyn *AdjacencyList) *AdjacencyArray {
	fwd_start, fwd_entries := _Compress(dyn.fwd_entries)
	bwd_start, bwd_entries := _Compress(dyn.bwd_entries)
	return &AdjacencyArray{
		fwd_start:   fwd_start,
		fwd_entries: fwd_entries,
		bwd_start:   bwd_start,
		bwd_entries: bwd_entries,
	}
}

func _Compress(entries Array[List[_AdjEntry]]) (Array[int32], Array[_AdjEntry]) {
	start := NewArray[int32](entries.Length() + 1)
	count := 0
	for i, list := range entries {
		start[i] = int32(count)
		count += list.Length()
	}
	start[entries.Length()] = int32(count)
	flat := NewArray[_AdjEntry](count)
	for i, list := range entries {
		copy(flat[start[i]:], list)
	}
	return start, flat
}

func (self *AdjacencyArray) NodeCount() int {
	return self.fwd_start.Length() - 1
}
func (self *AdjacencyArray) EntryCount() int {
	return self.fwd_entries.Length()
}

func (self *AdjacencyArray) GetDegree(node int32, forward bool) int32 {
	if forward {
		return self.fwd_start[node+1] - self.fwd_start[node]
	} else {
		return self.bwd_start[node+1] - self.bwd_start[node]
	}
}

// Returns the offset of the first forward entry of node, entries are ordered by node.
func (self *AdjacencyArray) GetFWDOffset(node int32) int32 {
	return self.fwd_start[node]
}

func (self *AdjacencyArray) GetAccessor() AdjArrayAccessor {
	return AdjArrayAccessor{
		topology: self,
	}
}

//*******************************************
// accessor
//*******************************************

// Iterates the adjacency of a single node.
//
// not thread safe, use only one instance per thread
type IAdjAccessor interface {
	SetBaseNode(node int32, forward bool)
	Next() bool
	GetEdgeID() int32
	GetOtherID() int32
}

var _ IAdjAccessor = &AdjArrayAccessor{}

type AdjArrayAccessor struct {
	topology *AdjacencyArray
	entries  Array[_AdjEntry]
	state    int32
	end      int32

	edge_id  int32
	other_id int32
}

func (self *AdjArrayAccessor) SetBaseNode(node int32, forward bool) {
	if forward {
		self.entries = self.topology.fwd_entries
		self.state = self.topology.fwd_start[node]
		self.end = self.topology.fwd_start[node+1]
	} else {
		self.entries = self.topology.bwd_entries
		self.state = self.topology.bwd_start[node]
		self.end = self.topology.bwd_start[node+1]
	}
}
func (self *AdjArrayAccessor) Next() bool {
	if self.state >= self.end {
		return false
	}
	entry := self.entries[self.state]
	self.edge_id = entry.EdgeID
	self.other_id = entry.OtherID
	self.state += 1
	return true
}
func (self *AdjArrayAccessor) GetEdgeID() int32 {
	return self.edge_id
}
func (self *AdjArrayAccessor) GetOtherID() int32 {
	return self.other_id
}
