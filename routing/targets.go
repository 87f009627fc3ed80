package routing

import (
	"math"

	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/graph"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
)

// Destinations of a single search.
type _Targets struct {
	index     Dict[int32, int32]
	ids       List[int32]
	paths     Array[*graph.Path]
	costs     Array[float64]
	found     Array[bool]
	remaining int
}

// Collects the destinations by node handle, duplicates are dropped.
func _NewTargets(network *graph.Network, destinations Array[int32]) (*_Targets, error) {
	index := NewDict[int32, int32](destinations.Length())
	ids := NewList[int32](destinations.Length())
	for _, id := range destinations {
		handle, ok := network.GetNodeHandle(id)
		if !ok {
			return nil, errors.Wrapf(graph.ErrUnknownNode, "destination %d", id)
		}
		if index.ContainsKey(handle) {
			continue
		}
		index[handle] = int32(ids.Length())
		ids.Add(id)
	}
	costs := NewArray[float64](ids.Length())
	costs.Fill(math.Inf(1))
	return &_Targets{
		index:     index,
		ids:       ids,
		paths:     NewArray[*graph.Path](ids.Length()),
		costs:     costs,
		found:     NewArray[bool](ids.Length()),
		remaining: ids.Length(),
	}, nil
}

// Returns the target position of the node if it is an unreached target.
func (self *_Targets) Open(node int32) (int32, bool) {
	idx, ok := self.index[node]
	if !ok || self.found[idx] {
		return -1, false
	}
	return idx, true
}

// Records the result for target idx, returns true once all targets are found.
func (self *_Targets) Settle(idx int32, path *graph.Path, cost float64) bool {
	self.found[idx] = true
	self.paths[idx] = path
	self.costs[idx] = cost
	self.remaining -= 1
	return self.remaining <= 0
}

func (self *_Targets) Done() bool {
	return self.remaining <= 0
}

func (self *_Targets) AddResults(origin int32, results *ShortestPathResults) error {
	for i, id := range self.ids {
		if err := results.Add(structs.NodePair{From: origin, To: id}, self.paths[i], self.costs[i]); err != nil {
			return err
		}
	}
	return nil
}
