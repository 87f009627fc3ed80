package routing

import (
	"math"

	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/graph"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
)

var ErrDuplicateResult = errors.New("duplicate shortest path result")

//*******************************************
// shortest path results
//*******************************************

type ShortestPathResult struct {
	Pair structs.NodePair
	// nil if the destination was not reached
	Path *graph.Path
	// +Inf if the destination was not reached
	Cost float64
}

func (self ShortestPathResult) IsReached() bool {
	return self.Path != nil
}

// Results keyed by node pair, at most one result per pair.
type ShortestPathResults struct {
	results Dict[structs.NodePair, ShortestPathResult]
}

func NewShortestPathResults(cap int) *ShortestPathResults {
	return &ShortestPathResults{
		results: NewDict[structs.NodePair, ShortestPathResult](cap),
	}
}

func (self *ShortestPathResults) Add(pair structs.NodePair, path *graph.Path, cost float64) error {
	if self.results.ContainsKey(pair) {
		return errors.Wrapf(ErrDuplicateResult, "node pair %v", pair)
	}
	if path == nil {
		cost = math.Inf(1)
	}
	self.results[pair] = ShortestPathResult{
		Pair: pair,
		Path: path,
		Cost: cost,
	}
	return nil
}

func (self *ShortestPathResults) Get(pair structs.NodePair) (ShortestPathResult, bool) {
	result, ok := self.results[pair]
	return result, ok
}
func (self *ShortestPathResults) Length() int {
	return self.results.Length()
}
func (self *ShortestPathResults) Pairs() List[structs.NodePair] {
	return self.results.Keys()
}

// Iterates over all results in no particular order.
func (self *ShortestPathResults) All() func(yield func(ShortestPathResult) bool) {
	return func(yield func(ShortestPathResult) bool) {
		for _, result := range self.results {
			if !yield(result) {
				return
			}
		}
	}
}

// Adds all results of other, fails on the first pair present in both.
func (self *ShortestPathResults) AddAll(other *ShortestPathResults) error {
	for pair, result := range other.results {
		if err := self.Add(pair, result.Path, result.Cost); err != nil {
			return err
		}
	}
	return nil
}

// Merges two containers by absorbing the smaller one into the larger one.
func MergeResults(a, b *ShortestPathResults) (*ShortestPathResults, error) {
	if a.Length() < b.Length() {
		a, b = b, a
	}
	if err := a.AddAll(b); err != nil {
		return nil, err
	}
	return a, nil
}
