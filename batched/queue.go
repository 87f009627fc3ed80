package batched

import (
	"context"

	"github.com/ttpr0/go-routechoice/routing"
	. "github.com/ttpr0/go-routechoice/util"
	"golang.org/x/sync/errgroup"
)

//*******************************************
// worker queue
//*******************************************

// Runs a fixed number of workers pulling batches of origins from a channel.
//
// Every worker collects into a private container, containers are merged after
// all workers finished.
func _RunQueue(ctx context.Context, job *_Job, origins Array[int32], workers int) (*routing.ShortestPathResults, error) {
	group, ctx := errgroup.WithContext(ctx)

	batches := make(chan Array[int32], workers)
	group.Go(func() error {
		defer close(batches)
		for i := 0; i < origins.Length(); i += BATCH_SIZE {
			end := min(i+BATCH_SIZE, origins.Length())
			select {
			case batches <- origins[i:end]:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	containers := NewArray[*routing.ShortestPathResults](workers)
	for w := 0; w < workers; w++ {
		group.Go(func() error {
			container := routing.NewShortestPathResults(100)
			for batch := range batches {
				results, err := job.Solve(ctx, batch)
				if err != nil {
					return err
				}
				if container, err = routing.MergeResults(container, results); err != nil {
					return err
				}
			}
			containers[w] = container
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := containers[0]
	for _, container := range containers[1:] {
		var err error
		if merged, err = routing.MergeResults(merged, container); err != nil {
			return nil, err
		}
	}
	return merged, nil
}
