package pathchoice

import (
	"context"
	"math/rand/v2"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/graph"
	"github.com/ttpr0/go-routechoice/metrics"
	"github.com/ttpr0/go-routechoice/routing"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidConfig = errors.New("invalid generation config")

// origins between progress log lines
const ORIGIN_PROGRESS_INTERVAL = 50

//*******************************************
// generation config
//*******************************************

// Distance stratified stopping rules of the generation.
//
// PathSizes, MinCounts and MaxCounts hold one entry more than DistanceBreaks,
// the entry for distances above the last break.
type GeneratorConfig struct {
	DistanceBreaks []float64
	PathSizes      []float64
	MinCounts      []int
	MaxCounts      []int
	// cost spread per iteration, the last entry is used for all later ones
	RandomScales []float64
	RandomSeeded bool
	Seed         uint64
	MaxCost      float64
	Intrazonal   bool
	TraceOrigins []int32
	OutputDir    string
	Workers      int
}

func (self GeneratorConfig) Validate() error {
	count := len(self.DistanceBreaks) + 1
	if len(self.PathSizes) != count {
		return errors.Wrapf(ErrInvalidConfig, "expected %d path sizes, got %d", count, len(self.PathSizes))
	}
	if len(self.MinCounts) != count {
		return errors.Wrapf(ErrInvalidConfig, "expected %d minimum counts, got %d", count, len(self.MinCounts))
	}
	if len(self.MaxCounts) != count {
		return errors.Wrapf(ErrInvalidConfig, "expected %d maximum counts, got %d", count, len(self.MaxCounts))
	}
	if len(self.RandomScales) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no random scales")
	}
	for i := range self.MinCounts {
		if self.MinCounts[i] < 1 || self.MaxCounts[i] < self.MinCounts[i] {
			return errors.Wrapf(ErrInvalidConfig, "invalid counts [%d,%d] at %d", self.MinCounts[i], self.MaxCounts[i], i)
		}
	}
	if !slices.IsSorted(self.DistanceBreaks) {
		return errors.Wrap(ErrInvalidConfig, "distance breaks not sorted")
	}
	return nil
}

// Index of the distance class, the first break not below distance.
func (self GeneratorConfig) DistanceIndex(distance float64) int {
	return BinarySearchFirstGE(self.DistanceBreaks, distance)
}

func (self GeneratorConfig) _Spread(iteration int) float64 {
	return self.RandomScales[min(iteration, len(self.RandomScales)-1)]
}

//*******************************************
// generator
//*******************************************

type GenerationResult struct {
	Lists Dict[structs.NodePair, *PathAlternativeList]
	// pairs stopped by the maximum iteration count
	InsufficientSamples List[structs.NodePair]
}

// Builds path alternative lists by repeated searches with randomized costs.
type Generator struct {
	network   *graph.Network
	edge_cost weighting.IEdgeEvaluator
	trav_cost weighting.ITraversalEvaluator
	length    weighting.IEdgeEvaluator
	nearby    NearbyDistances
	config    GeneratorConfig
}

func NewGenerator(network *graph.Network, edge_cost weighting.IEdgeEvaluator, trav_cost weighting.ITraversalEvaluator, nearby NearbyDistances, config GeneratorConfig) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	return &Generator{
		network:   network,
		edge_cost: edge_cost,
		trav_cost: trav_cost,
		length:    weighting.NewEdgeLengthEvaluator(network),
		nearby:    nearby,
		config:    config,
	}, nil
}

// Generates the lists of all nearby pairs of the origins.
//
// Origins without nearby zones are skipped. The first failing origin cancels
// the generation.
func (self *Generator) Generate(origins Array[int32]) (*GenerationResult, error) {
	start := time.Now()
	slog.Info("start path alternative generation", "origins", origins.Length(), "workers", self.config.Workers)

	group, ctx := errgroup.WithContext(context.Background())
	queue := make(chan int32)
	group.Go(func() error {
		defer close(queue)
		for _, origin := range origins {
			select {
			case queue <- origin:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var mu sync.Mutex
	result := &GenerationResult{
		Lists:               NewDict[structs.NodePair, *PathAlternativeList](origins.Length() * 8),
		InsufficientSamples: NewList[structs.NodePair](16),
	}
	var done atomic.Int64
	for w := 0; w < self.config.Workers; w++ {
		group.Go(func() error {
			worker := self._NewWorker()
			for origin := range queue {
				if err := ctx.Err(); err != nil {
					return err
				}
				lists, insufficient, err := worker.GenerateOrigin(origin)
				if err != nil {
					return err
				}
				if slices.Contains(self.config.TraceOrigins, origin) {
					if err := WriteTrace(self.network, self.config.OutputDir, origin, lists); err != nil {
						return err
					}
				}
				mu.Lock()
				for _, list := range lists {
					result.Lists[list.Pair()] = list
				}
				result.InsufficientSamples = append(result.InsufficientSamples, insufficient...)
				mu.Unlock()
				if c := done.Add(1); c%ORIGIN_PROGRESS_INTERVAL == 0 {
					slog.Info("path alternative progress", "origins", c, "total", origins.Length(), "time", time.Since(start))
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		slog.Error("path alternative generation failed", "error", err)
		return nil, err
	}

	self._ReportInsufficient(result.InsufficientSamples)
	self._ReportMissing(origins, result.Lists)
	metrics.AlternativeLists.Add(float64(result.Lists.Length()))
	slog.Info("finished path alternative generation", "pairs", result.Lists.Length(), "insufficient", result.InsufficientSamples.Length(), "time", time.Since(start))
	return result, nil
}

func (self *Generator) _ReportInsufficient(pairs List[structs.NodePair]) {
	by_origin := NewDict[int32, List[int32]](16)
	for _, pair := range pairs {
		dests := by_origin[pair.From]
		dests.Add(pair.To)
		by_origin[pair.From] = dests
	}
	for origin, dests := range by_origin {
		slices.Sort(dests)
		slog.Warn("sample insufficient", "origin", origin, "destinations", dests)
	}
	if pairs.Length() > 0 {
		slog.Warn("total insufficient sample pairs", "count", pairs.Length())
	}
}

func (self *Generator) _ReportMissing(origins Array[int32], lists Dict[structs.NodePair, *PathAlternativeList]) {
	for _, origin := range origins {
		for dest := range self.nearby[origin] {
			pair := structs.MakeNodePair(origin, dest)
			if !lists.ContainsKey(pair) {
				slog.Warn("alternative lists do not include nearby pair", "origin", origin, "destination", dest)
			}
		}
	}
}

//*******************************************
// generation worker
//*******************************************

func (self *Generator) _NewWorker() *_GenerationWorker {
	mode := routing.INTRAZONAL_TRIVIAL
	if self.config.Intrazonal {
		mode = routing.INTRAZONAL_LOOP
	}
	sp := routing.NewRepeatedDijkstra(self.network, self.edge_cost, self.trav_cost, routing.WithIntrazonal(mode), routing.WithTraversalCache())
	return &_GenerationWorker{
		generator: self,
		solver:    sp.CreateRepeatedSolver(),
	}
}

// Owns the solver of one goroutine.
type _GenerationWorker struct {
	generator *Generator
	solver    routing.IRepeatedSolver
}

type _Destination struct {
	id        int32
	target    float64
	min_count int
	max_count int
	list      *PathAlternativeList
}

// Generates the lists of all nearby destinations of the origin.
func (self *_GenerationWorker) GenerateOrigin(origin int32) (List[*PathAlternativeList], List[structs.NodePair], error) {
	gen := self.generator
	config := gen.config
	nearby, ok := gen.nearby[origin]
	if !ok {
		return nil, nil, nil
	}
	dest_ids := NewList[int32](nearby.Length())
	for dest := range nearby {
		dest_ids.Add(dest)
	}
	slices.Sort(dest_ids)

	active := NewList[*_Destination](dest_ids.Length())
	for _, dest := range dest_ids {
		index := config.DistanceIndex(nearby[dest])
		pair := structs.MakeNodePair(origin, dest)
		active.Add(&_Destination{
			id:        dest,
			target:    config.PathSizes[index],
			min_count: config.MinCounts[index],
			max_count: config.MaxCounts[index],
			list:      NewPathAlternativeList(pair, gen.network, gen.length),
		})
	}

	lists := NewList[*PathAlternativeList](active.Length())
	insufficient := NewList[structs.NodePair](0)
	targets := NewArray[int32](active.Length())
	for iteration := 1; active.Length() > 0; iteration++ {
		self.solver.SetEdgeEvaluator(self._EdgeEvaluator(origin, iteration))
		targets = targets[:0]
		for _, dest := range active {
			targets = append(targets, dest.id)
		}
		results := routing.NewShortestPathResults(targets.Length())
		if err := self.solver.CalcShortestPaths(origin, targets, config.MaxCost, results); err != nil {
			return nil, nil, errors.Wrapf(err, "origin %d iteration %d", origin, iteration)
		}

		next := active[:0]
		for _, dest := range active {
			result, _ := results.Get(dest.list.Pair())
			if _, err := dest.list.Add(result.Path); err != nil {
				return nil, nil, err
			}
			switch {
			case dest.list.SizeMeasureTotal() >= dest.target-PATHSIZE_TOLERANCE && iteration >= dest.min_count:
				self._Finalize(dest)
				lists.Add(dest.list)
				metrics.GenerationIterations.Observe(float64(iteration))
			case iteration >= dest.max_count:
				self._Finalize(dest)
				lists.Add(dest.list)
				insufficient.Add(dest.list.Pair())
				metrics.GenerationIterations.Observe(float64(iteration))
				metrics.InsufficientSamples.Inc()
			default:
				next = append(next, dest)
			}
		}
		active = next
	}
	return lists, insufficient, nil
}

// Resamples the list down to its target path size, which freezes it.
func (self *_GenerationWorker) _Finalize(dest *_Destination) {
	dest.list.Resample(self.generator._PairRand(dest.list.Pair()), dest.target)
}

// Reproducible per pair if seeded.
func (self *Generator) _PairRand(pair structs.NodePair) *rand.Rand {
	if self.config.RandomSeeded {
		return NewPairRand(pair, self.config.Seed)
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// The unrandomized cost for the first iteration, randomized costs afterwards.
func (self *_GenerationWorker) _EdgeEvaluator(origin int32, iteration int) weighting.IEdgeEvaluator {
	gen := self.generator
	if iteration == 1 {
		return gen.edge_cost
	}
	spread := gen.config._Spread(iteration)
	if gen.config.RandomSeeded {
		return weighting.NewRandomizedEdgeCost(gen.edge_cost, gen.length, spread, gen.config.Seed, origin, int32(iteration))
	}
	return weighting.NewUnseededRandomizedEdgeCost(gen.edge_cost, gen.length, spread)
}
