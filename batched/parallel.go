package batched

import (
	"context"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/metrics"
	"github.com/ttpr0/go-routechoice/routing"
	. "github.com/ttpr0/go-routechoice/util"
	"golang.org/x/exp/slog"
)

type ParallelMethod byte

const (
	// recursive splitting of the origins
	FORK_JOIN ParallelMethod = 0
	// fixed pool of workers pulling origin batches
	QUEUE ParallelMethod = 1
)

func (self ParallelMethod) String() string {
	switch self {
	case FORK_JOIN:
		return "fork-join"
	case QUEUE:
		return "queue"
	}
	return ""
}

func ParallelMethodFromString(method string) (ParallelMethod, bool) {
	switch method {
	case "fork-join":
		return FORK_JOIN, true
	case "queue":
		return QUEUE, true
	}
	return FORK_JOIN, false
}

const (
	// origins below this count are not split any further
	SPLIT_THRESHOLD = 5
	// origins per queue batch
	BATCH_SIZE = 5
	// outstanding forks per processor before splitting stops
	SURPLUS_FACTOR = 3
	// origins between progress log lines
	PROGRESS_INTERVAL = 500
)

//*******************************************
// parallel shortest path
//*******************************************

// Distributes single origin searches over all processors.
//
// Results equal those of a serial run. The first failing search cancels the
// remaining work and its error is returned, no partial results are kept.
type ParallelShortestPath struct {
	sp      routing.IShortestPath
	method  ParallelMethod
	workers int
}

type ParallelOption func(*ParallelShortestPath)

// Sets the number of concurrent searches, values below 1 keep GOMAXPROCS.
func WithWorkers(n int) ParallelOption {
	return func(p *ParallelShortestPath) {
		if n > 0 {
			p.workers = n
		}
	}
}

func NewParallelShortestPath(sp routing.IShortestPath, method ParallelMethod, opts ...ParallelOption) *ParallelShortestPath {
	parallel := &ParallelShortestPath{
		sp:      sp,
		method:  method,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(parallel)
	}
	return parallel
}

func (self *ParallelShortestPath) Method() ParallelMethod {
	return self.method
}

func (self *ParallelShortestPath) Workers() int {
	return self.workers
}

// Computes shortest paths from every origin to every destination.
func (self *ParallelShortestPath) GetShortestPaths(origins Array[int32], destinations Array[int32], max_cost float64) (*routing.ShortestPathResults, error) {
	return self._Run(origins, func(origin int32) Array[int32] {
		return destinations
	}, max_cost)
}

// Computes shortest paths from every origin to its own destinations.
func (self *ParallelShortestPath) GetShortestPathsWithTargets(targets Dict[int32, Array[int32]], max_cost float64) (*routing.ShortestPathResults, error) {
	origins := Array[int32](targets.Keys())
	slices.Sort(origins)
	return self._Run(origins, func(origin int32) Array[int32] {
		return targets[origin]
	}, max_cost)
}

func (self *ParallelShortestPath) _Run(origins Array[int32], dests func(int32) Array[int32], max_cost float64) (*routing.ShortestPathResults, error) {
	start := time.Now()
	slog.Info("start shortest path batch", "method", self.method.String(), "origins", origins.Length())
	job := &_Job{
		dests:    dests,
		max_cost: max_cost,
		total:    origins.Length(),
		solvers: sync.Pool{
			New: func() any { return self.sp.CreateSolver() },
		},
	}

	var results *routing.ShortestPathResults
	var err error
	switch self.method {
	case FORK_JOIN:
		forkjoin := &_ForkJoin{
			job:   job,
			limit: int32(SURPLUS_FACTOR * self.workers),
		}
		results, err = forkjoin.Compute(context.Background(), origins)
	case QUEUE:
		results, err = _RunQueue(context.Background(), job, origins, self.workers)
	default:
		err = errors.Errorf("unknown parallel method %d", self.method)
	}
	metrics.ObserveBatch(self.method.String(), start, origins.Length(), err)
	if err != nil {
		slog.Error("shortest path batch failed", "method", self.method.String(), "error", err)
		return nil, err
	}
	slog.Info("finished shortest path batch", "method", self.method.String(), "origins", origins.Length(), "time", time.Since(start))
	return results, nil
}

//*******************************************
// shared job state
//*******************************************

type _Job struct {
	dests    func(int32) Array[int32]
	max_cost float64
	solvers  sync.Pool
	done     atomic.Int64
	total    int
}

// Searches the origins one after another into a new container.
func (self *_Job) Solve(ctx context.Context, origins Array[int32]) (*routing.ShortestPathResults, error) {
	solver := self.solvers.Get().(routing.ISolver)
	defer self.solvers.Put(solver)

	results := routing.NewShortestPathResults(origins.Length() * 8)
	for _, origin := range origins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := solver.CalcShortestPaths(origin, self.dests(origin), self.max_cost, results); err != nil {
			return nil, err
		}
		if done := self.done.Add(1); done%PROGRESS_INTERVAL == 0 {
			slog.Info("shortest path progress", "origins", done, "total", self.total)
		}
	}
	return results, nil
}

// Prefers the error that caused a cancellation over the cancellation itself.
func _FirstError(errs ...error) error {
	var canceled error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) {
			canceled = err
			continue
		}
		return err
	}
	return canceled
}
