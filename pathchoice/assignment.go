package pathchoice

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/routing"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

var ErrProbabilities = errors.New("probabilities do not match the alternatives")

// trips between progress log lines
const TRIP_PROGRESS_INTERVAL = 1000

type Trip struct {
	ID          int32
	Origin      int32
	Destination int32
	Weight      float64
}

// Choice model evaluated on the alternatives of a trip.
type IPathProbabilities interface {
	// Returns one probability per path of the list.
	PathProbabilities(trip Trip, list *PathAlternativeList) ([]float64, error)
}

//*******************************************
// edge assignment
//*******************************************

// Distributes trips onto edges by the probabilities of their path alternatives.
//
// Every trip gets its own list built with the minimum iteration count of its
// distance class. Returned volumes are indexed by edge handle.
func (self *Generator) AssignTrips(trips []Trip, model IPathProbabilities) (Array[float64], error) {
	start := time.Now()
	slog.Info("start trip assignment", "trips", len(trips), "workers", self.config.Workers)

	group, ctx := errgroup.WithContext(context.Background())
	var next atomic.Int64
	var done atomic.Int64
	partials := NewArray[Array[float64]](self.config.Workers)
	for w := 0; w < self.config.Workers; w++ {
		group.Go(func() error {
			worker := self._NewAssignmentWorker()
			volumes := NewArray[float64](self.network.EdgeCount())
			partials[w] = volumes
			for {
				i := int(next.Add(1) - 1)
				if i >= len(trips) {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				trip := trips[i]
				list, err := worker.GenerateTrip(trip)
				if err != nil {
					return err
				}
				if err := _AssignTrip(trip, list, model, volumes); err != nil {
					return err
				}
				if c := done.Add(1); c%TRIP_PROGRESS_INTERVAL == 0 {
					slog.Info("trip assignment progress", "trips", c, "total", len(trips), "time", time.Since(start))
				}
			}
		})
	}
	if err := group.Wait(); err != nil {
		slog.Error("trip assignment failed", "error", err)
		return nil, err
	}

	volumes := NewArray[float64](self.network.EdgeCount())
	for _, partial := range partials {
		for edge, volume := range partial {
			volumes[edge] += volume
		}
	}
	slog.Info("finished trip assignment", "trips", len(trips), "time", time.Since(start))
	return volumes, nil
}

func _AssignTrip(trip Trip, list *PathAlternativeList, model IPathProbabilities, volumes Array[float64]) error {
	if list.Count() == 0 {
		return nil
	}
	probabilities, err := model.PathProbabilities(trip, list)
	if err != nil {
		return errors.Wrapf(err, "trip %d", trip.ID)
	}
	if len(probabilities) != list.Count() {
		return errors.Wrapf(ErrProbabilities, "trip %d: %d probabilities for %d paths", trip.ID, len(probabilities), list.Count())
	}
	for i, probability := range probabilities {
		for _, edge := range list.GetEdges(i) {
			volumes[edge] += probability * trip.Weight
		}
	}
	return nil
}

type _AssignmentWorker struct {
	_GenerationWorker
	distance routing.ISolver
}

func (self *Generator) _NewAssignmentWorker() *_AssignmentWorker {
	distance := routing.NewRepeatedDijkstra(self.network, self.length, weighting.NewZeroTraversal())
	return &_AssignmentWorker{
		_GenerationWorker: *self._NewWorker(),
		distance:          distance.CreateSolver(),
	}
}

// Builds the list of a single trip with the minimum iteration count.
func (self *_AssignmentWorker) GenerateTrip(trip Trip) (*PathAlternativeList, error) {
	gen := self.generator
	pair := structs.MakeNodePair(trip.Origin, trip.Destination)
	dests := Array[int32]{trip.Destination}

	results := routing.NewShortestPathResults(1)
	if err := self.distance.CalcShortestPaths(trip.Origin, dests, math.Inf(1), results); err != nil {
		return nil, errors.Wrapf(err, "trip %d", trip.ID)
	}
	result, _ := results.Get(pair)
	index := gen.config.DistanceIndex(result.Cost)

	list := NewPathAlternativeList(pair, gen.network, gen.length)
	for iteration := 1; iteration <= gen.config.MinCounts[index]; iteration++ {
		self.solver.SetEdgeEvaluator(self._EdgeEvaluator(trip.ID, iteration))
		results := routing.NewShortestPathResults(1)
		if err := self.solver.CalcShortestPaths(trip.Origin, dests, gen.config.MaxCost, results); err != nil {
			return nil, errors.Wrapf(err, "trip %d iteration %d", trip.ID, iteration)
		}
		result, _ := results.Get(pair)
		if _, err := list.Add(result.Path); err != nil {
			return nil, err
		}
	}
	list.ClearPathSizeCalculator()
	return list, nil
}
