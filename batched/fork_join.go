package batched

import (
	"context"
	"sync/atomic"

	"github.com/ttpr0/go-routechoice/routing"
	. "github.com/ttpr0/go-routechoice/util"
	"golang.org/x/sync/errgroup"
)

//*******************************************
// fork join
//*******************************************

type _ForkJoin struct {
	job *_Job
	// forks currently running
	outstanding atomic.Int32
	limit       int32
}

// Splits the origins in halves until they are small enough or enough forks
// are outstanding, merges the halves by absorbing the smaller container.
func (self *_ForkJoin) Compute(ctx context.Context, origins Array[int32]) (*routing.ShortestPathResults, error) {
	if origins.Length() <= SPLIT_THRESHOLD || self.outstanding.Load() > self.limit {
		return self.job.Solve(ctx, origins)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, group_ctx := errgroup.WithContext(ctx)

	mid := origins.Length() / 2
	var left *routing.ShortestPathResults
	self.outstanding.Add(1)
	group.Go(func() error {
		defer self.outstanding.Add(-1)
		res, err := self.Compute(group_ctx, origins[:mid])
		left = res
		return err
	})
	right, err := self.Compute(group_ctx, origins[mid:])
	if err != nil {
		cancel()
	}
	group_err := group.Wait()
	if err := _FirstError(group_err, err); err != nil {
		return nil, err
	}
	return routing.MergeResults(left, right)
}
