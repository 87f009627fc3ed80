package weighting

import (
	"github.com/ttpr0/go-routechoice/attr"
	"github.com/ttpr0/go-routechoice/graph"
)

//*******************************************
// evaluator interfaces
//*******************************************

// Cost of an edge (handle).
//
// Must be deterministic and safe for concurrent use.
type IEdgeEvaluator interface {
	EdgeCost(edge int32) float64
}

// Cost of a traversal (handle), +Inf forbids the turn.
type ITraversalEvaluator interface {
	TraversalCost(traversal int32) float64
}

//*******************************************
// edge evaluators
//*******************************************

type EdgeLengthEvaluator struct {
	network *graph.Network
}

func NewEdgeLengthEvaluator(network *graph.Network) *EdgeLengthEvaluator {
	return &EdgeLengthEvaluator{
		network: network,
	}
}

func (self *EdgeLengthEvaluator) EdgeCost(edge int32) float64 {
	return self.network.GetEdgeAttribs(edge).Length
}

// Generalized cost stored on the edge.
type EdgeAttributeCost struct {
	network *graph.Network
}

func NewEdgeAttributeCost(network *graph.Network) *EdgeAttributeCost {
	return &EdgeAttributeCost{
		network: network,
	}
}

func (self *EdgeAttributeCost) EdgeCost(edge int32) float64 {
	return self.network.GetEdgeAttribs(edge).Cost
}

// Penalty added to the length of inaccessible edges.
const INACCESSIBLE_PENALTY = 999

// Edge length, inaccessible edges are penalized.
type AccessibleDistance struct {
	network *graph.Network
}

func NewAccessibleDistance(network *graph.Network) *AccessibleDistance {
	return &AccessibleDistance{
		network: network,
	}
}

func (self *AccessibleDistance) EdgeCost(edge int32) float64 {
	attribs := self.network.GetEdgeAttribs(edge)
	if attribs.Cost > attr.INACCESSIBLE_COST {
		return attribs.Length + INACCESSIBLE_PENALTY
	}
	return attribs.Length
}

type DynamicEdge struct {
	cost_func func(int32) float64
}

func NewDynamicEdge(cost_func func(edge int32) float64) *DynamicEdge {
	return &DynamicEdge{
		cost_func: cost_func,
	}
}

func (self *DynamicEdge) EdgeCost(edge int32) float64 {
	return self.cost_func(edge)
}

//*******************************************
// traversal evaluators
//*******************************************

type ZeroTraversal struct{}

func NewZeroTraversal() *ZeroTraversal {
	return &ZeroTraversal{}
}

func (self *ZeroTraversal) TraversalCost(traversal int32) float64 {
	return 0
}

// Turn cost stored on the traversal.
type TraversalAttributeCost struct {
	network *graph.Network
}

func NewTraversalAttributeCost(network *graph.Network) *TraversalAttributeCost {
	return &TraversalAttributeCost{
		network: network,
	}
}

func (self *TraversalAttributeCost) TraversalCost(traversal int32) float64 {
	return self.network.GetTraversalAttribs(traversal).Cost
}

// Penalty for routing through a centroid.
const THRU_CENTROID_PENALTY = 999

// Zero turn cost except through centroids.
type ThruCentroidPenalty struct {
	network *graph.Network
}

func NewThruCentroidPenalty(network *graph.Network) *ThruCentroidPenalty {
	return &ThruCentroidPenalty{
		network: network,
	}
}

func (self *ThruCentroidPenalty) TraversalCost(traversal int32) float64 {
	if self.network.GetTraversalAttribs(traversal).ThruCentroid {
		return THRU_CENTROID_PENALTY
	}
	return 0
}

type DynamicTraversal struct {
	cost_func func(int32) float64
}

func NewDynamicTraversal(cost_func func(traversal int32) float64) *DynamicTraversal {
	return &DynamicTraversal{
		cost_func: cost_func,
	}
}

func (self *DynamicTraversal) TraversalCost(traversal int32) float64 {
	return self.cost_func(traversal)
}
