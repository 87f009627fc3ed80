package weighting

import (
	"math/rand/v2"
)

//*******************************************
// randomized edge cost
//*******************************************

// Perturbs a base cost by length * spread * U with U uniform in [0,1).
//
// U is a hash of (seed, origin, iteration, edge), instances hold no mutable
// state and can be shared between goroutines.
type RandomizedEdgeCost struct {
	base   IEdgeEvaluator
	length IEdgeEvaluator
	spread float64
	key    uint64
}

// Creates a reproducible evaluator, equal arguments give equal costs across runs.
func NewRandomizedEdgeCost(base, length IEdgeEvaluator, spread float64, seed uint64, origin int32, iteration int32) *RandomizedEdgeCost {
	key := _Mix(seed ^ 0x9e3779b97f4a7c15)
	key = _Mix(key ^ uint64(uint32(origin)))
	key = _Mix(key ^ uint64(uint32(iteration))<<32)
	return &RandomizedEdgeCost{
		base:   base,
		length: length,
		spread: spread,
		key:    key,
	}
}

// Creates an evaluator with a randomly drawn seed.
func NewUnseededRandomizedEdgeCost(base, length IEdgeEvaluator, spread float64) *RandomizedEdgeCost {
	return &RandomizedEdgeCost{
		base:   base,
		length: length,
		spread: spread,
		key:    rand.Uint64(),
	}
}

func (self *RandomizedEdgeCost) EdgeCost(edge int32) float64 {
	cost := self.base.EdgeCost(edge)
	if self.spread == 0 {
		return cost
	}
	return cost + self.length.EdgeCost(edge)*self.spread*self.Uniform(edge)
}

// Returns the perturbation draw of the edge in [0,1).
func (self *RandomizedEdgeCost) Uniform(edge int32) float64 {
	h := _Mix(self.key ^ uint64(uint32(edge)))
	return float64(h>>11) / (1 << 53)
}

// splitmix64 finalizer
func _Mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
