package routing

import (
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
)

//*******************************************
// shortest path interfaces
//*******************************************

// Factory for per-goroutine solvers sharing one network.
type IShortestPath interface {
	CreateSolver() ISolver
}

// not thread safe, use only one instance per goroutine
type ISolver interface {
	// Computes shortest paths from origin to all destinations (node ids).
	//
	// Every destination gets exactly one result in the container, unreached
	// destinations get a nil path and +Inf.
	CalcShortestPaths(origin int32, destinations Array[int32], max_cost float64, results *ShortestPathResults) error
}

// Solver whose edge evaluator can be swapped between searches.
type IRepeatedSolver interface {
	ISolver
	SetEdgeEvaluator(eval weighting.IEdgeEvaluator)
}

// Runs independent single origin searches one after another.
func GetShortestPaths(sp IShortestPath, origins Array[int32], destinations Array[int32], max_cost float64) (*ShortestPathResults, error) {
	results := NewShortestPathResults(origins.Length() * destinations.Length())
	solver := sp.CreateSolver()
	for _, origin := range origins {
		if err := solver.CalcShortestPaths(origin, destinations, max_cost, results); err != nil {
			return nil, err
		}
	}
	return results, nil
}
