package pathchoice

import (
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
)

//*******************************************
// path size
//*******************************************

// Incremental path size accounting.
//
// The size of path i is sum over its edges e of (l_e / L_i) / N_e, with N_e
// the number of paths using e. Adding a path only touches the paths sharing
// one of its edges.
type PathSizeCalculator struct {
	length weighting.IEdgeEvaluator
	// edge -> indices of paths using it
	incidence Dict[int32, List[int32]]
	lengths   List[float64]
	sizes     List[float64]
}

func NewPathSizeCalculator(length weighting.IEdgeEvaluator) *PathSizeCalculator {
	return &PathSizeCalculator{
		length:    length,
		incidence: NewDict[int32, List[int32]](64),
		lengths:   NewList[float64](8),
		sizes:     NewList[float64](8),
	}
}

// Adds the path given by its edges and updates the sizes of all paths.
func (self *PathSizeCalculator) Add(edges List[int32]) {
	index := int32(self.sizes.Length())
	path_length := 0.0
	for _, edge := range edges {
		path_length += self.length.EdgeCost(edge)
	}
	self.lengths.Add(path_length)
	self.sizes.Add(0)

	size := 0.0
	for _, edge := range edges {
		users := self.incidence[edge]
		users.Add(index)
		self.incidence[edge] = users
		incidence := float64(users.Length())
		edge_length := self.length.EdgeCost(edge)
		size += edge_length / incidence
		if users.Length() < 2 {
			continue
		}
		for _, prior := range users[:users.Length()-1] {
			prior_length := self.lengths[prior]
			if prior_length == 0 {
				continue
			}
			self.sizes[prior] -= edge_length / prior_length / incidence / (incidence - 1)
		}
	}
	if path_length == 0 {
		self.sizes[index] = 1
	} else {
		self.sizes[index] = size / path_length
	}
}

func (self *PathSizeCalculator) Sizes() List[float64] {
	return self.sizes
}

func (self *PathSizeCalculator) Lengths() List[float64] {
	return self.lengths
}

// Recomputes the sizes of all paths from scratch.
//
// Quadratic in the number of paths, used to check the incremental values.
func ComputePathSizes(paths List[List[int32]], length weighting.IEdgeEvaluator) List[float64] {
	counts := NewDict[int32, int](64)
	for _, edges := range paths {
		for _, edge := range edges {
			counts[edge] += 1
		}
	}
	sizes := NewList[float64](paths.Length())
	for _, edges := range paths {
		path_length := 0.0
		for _, edge := range edges {
			path_length += length.EdgeCost(edge)
		}
		if path_length == 0 {
			sizes.Add(1)
			continue
		}
		size := 0.0
		for _, edge := range edges {
			size += length.EdgeCost(edge) / path_length / float64(counts[edge])
		}
		sizes.Add(size)
	}
	return sizes
}
