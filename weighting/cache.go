package weighting

import (
	. "github.com/ttpr0/go-routechoice/util"
)

//*******************************************
// cached traversal evaluator
//*******************************************

// Memoizes traversal costs for the duration of one search.
//
// not thread safe, every solver owns its own cache
type CachedTraversalEvaluator struct {
	base   ITraversalEvaluator
	costs  Array[float64]
	stamps Array[int32]
	gen    int32
}

func NewCachedTraversalEvaluator(base ITraversalEvaluator, traversal_count int) *CachedTraversalEvaluator {
	return &CachedTraversalEvaluator{
		base:   base,
		costs:  NewArray[float64](traversal_count),
		stamps: NewArray[int32](traversal_count),
		gen:    1,
	}
}

func (self *CachedTraversalEvaluator) TraversalCost(traversal int32) float64 {
	if self.stamps[traversal] == self.gen {
		return self.costs[traversal]
	}
	cost := self.base.TraversalCost(traversal)
	self.costs[traversal] = cost
	self.stamps[traversal] = self.gen
	return cost
}

// Invalidates all cached values, called at the start of every origin.
func (self *CachedTraversalEvaluator) Reset() {
	self.gen += 1
	if self.gen == 0 {
		self.stamps.Fill(0)
		self.gen = 1
	}
}
