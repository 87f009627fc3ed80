package pathchoice

import (
	"hash/fnv"
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/graph"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
)

var (
	ErrFrozen        = errors.New("path alternative list is frozen")
	ErrPathEndpoints = errors.New("path does not connect the node pair")
)

// Tolerance used when comparing a size total against its target.
const PATHSIZE_TOLERANCE = 0.001

//*******************************************
// path alternative list
//*******************************************

// Distinct paths of one node pair together with their path sizes.
//
// Sizes are kept up to date on every insertion until the list is frozen by
// ClearPathSizeCalculator, no paths can be added afterwards.
type PathAlternativeList struct {
	pair       structs.NodePair
	network    *graph.Network
	length     weighting.IEdgeEvaluator
	paths      List[*graph.Path]
	edges      List[List[int32]]
	sizes      List[float64]
	lengths    List[float64]
	calculator *PathSizeCalculator
	// count and size total when frozen, before any resampling
	generated_count int
	generated_total float64
}

func NewPathAlternativeList(pair structs.NodePair, network *graph.Network, length weighting.IEdgeEvaluator) *PathAlternativeList {
	calculator := NewPathSizeCalculator(length)
	return &PathAlternativeList{
		pair:       pair,
		network:    network,
		length:     length,
		paths:      NewList[*graph.Path](8),
		edges:      NewList[List[int32]](8),
		calculator: calculator,
	}
}

// Adds the path if it is not already contained.
//
// Returns false for nil paths and duplicates.
func (self *PathAlternativeList) Add(path *graph.Path) (bool, error) {
	if self.calculator == nil {
		return false, errors.Wrapf(ErrFrozen, "pair %s", self.pair)
	}
	if path == nil {
		return false, nil
	}
	if path.Endpoints() != self.pair {
		return false, errors.Wrapf(ErrPathEndpoints, "path %s for pair %s", path, self.pair)
	}
	for _, other := range self.paths {
		if other.Equals(path) {
			return false, nil
		}
	}
	edges, err := self.network.GetPathEdges(path)
	if err != nil {
		return false, err
	}
	self.paths.Add(path)
	self.edges.Add(edges)
	self.calculator.Add(edges)
	return true, nil
}

// Detaches the size calculator and freezes the list.
func (self *PathAlternativeList) ClearPathSizeCalculator() {
	if self.calculator == nil {
		return
	}
	self.sizes = self.calculator.Sizes()
	self.lengths = self.calculator.Lengths()
	self.calculator = nil
	self.generated_count = self.paths.Length()
	self.generated_total = self.SizeMeasureTotal()
}

func (self *PathAlternativeList) IsFrozen() bool {
	return self.calculator == nil
}

func (self *PathAlternativeList) Pair() structs.NodePair {
	return self.pair
}

func (self *PathAlternativeList) Count() int {
	return self.paths.Length()
}

func (self *PathAlternativeList) Get(index int) *graph.Path {
	return self.paths[index]
}

func (self *PathAlternativeList) Paths() List[*graph.Path] {
	return self.paths
}

// Edge handles of the path at index.
func (self *PathAlternativeList) GetEdges(index int) List[int32] {
	return self.edges[index]
}

func (self *PathAlternativeList) SizeMeasures() List[float64] {
	if self.calculator != nil {
		return self.calculator.Sizes()
	}
	return self.sizes
}

// Lengths of the paths as measured by the length evaluator.
func (self *PathAlternativeList) Lengths() List[float64] {
	if self.calculator != nil {
		return self.calculator.Lengths()
	}
	return self.lengths
}

// Number of paths generated before resampling.
func (self *PathAlternativeList) GeneratedCount() int {
	if self.calculator != nil {
		return self.Count()
	}
	return self.generated_count
}

// Path size total before resampling.
func (self *PathAlternativeList) GeneratedSizeTotal() float64 {
	if self.calculator != nil {
		return self.SizeMeasureTotal()
	}
	return self.generated_total
}

func (self *PathAlternativeList) SizeMeasureTotal() float64 {
	total := 0.0
	for _, size := range self.SizeMeasures() {
		total += size
	}
	return total
}

//*******************************************
// resampling
//*******************************************

// Draws path indices by size share without replacement.
//
// Drawing stops once the sizes of the drawn paths reach target or all paths
// are drawn. If the total size does not exceed target all indices are returned
// in order. The list is not modified.
func (self *PathAlternativeList) NewPathSample(rng *rand.Rand, target float64) List[int] {
	sizes := self.SizeMeasures()
	count := sizes.Length()
	sample := NewList[int](count)
	if self.SizeMeasureTotal() <= target {
		for i := 0; i < count; i++ {
			sample.Add(i)
		}
		return sample
	}

	remaining := NewList[int](count)
	for i := 0; i < count; i++ {
		remaining.Add(i)
	}
	cumulative := NewList[float64](count)
	total := 0.0
	for remaining.Length() > 0 && total < target-PATHSIZE_TOLERANCE {
		cumulative.Clear()
		mass := 0.0
		for _, index := range remaining {
			mass += sizes[index]
			cumulative.Add(mass)
		}
		var pick int
		if mass <= 0 {
			pick = 0
		} else {
			for i := range cumulative {
				cumulative[i] /= mass
			}
			pick = BinarySearchFirstGE(cumulative, rng.Float64())
			if pick >= remaining.Length() {
				pick = remaining.Length() - 1
			}
		}
		index := remaining[pick]
		sample.Add(index)
		total += sizes[index]
		remaining.Remove(pick)
	}
	return sample
}

// Freezes the list and reduces it to a weighted sample reaching target.
//
// The sample is drawn from the sizes before freezing, sizes of the kept paths
// are recomputed over the sample.
func (self *PathAlternativeList) Resample(rng *rand.Rand, target float64) {
	sample := self.NewPathSample(rng, target)
	self.ClearPathSizeCalculator()
	if sample.Length() == self.paths.Length() {
		return
	}
	paths := NewList[*graph.Path](sample.Length())
	edges := NewList[List[int32]](sample.Length())
	lengths := NewList[float64](sample.Length())
	for _, index := range sample {
		paths.Add(self.paths[index])
		edges.Add(self.edges[index])
		lengths.Add(self.lengths[index])
	}
	self.paths = paths
	self.edges = edges
	self.lengths = lengths
	self.sizes = ComputePathSizes(edges, self.length)
}

// Random source seeded from the node pair identity.
func NewPairRand(pair structs.NodePair, seed uint64) *rand.Rand {
	h := fnv.New64a()
	var buf [8]byte
	for i, v := range [2]int32{pair.From, pair.To} {
		for j := 0; j < 4; j++ {
			buf[i*4+j] = byte(uint32(v) >> (8 * j))
		}
	}
	h.Write(buf[:])
	return rand.New(rand.NewPCG(seed, h.Sum64()))
}
