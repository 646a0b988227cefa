// Pool bounds concurrent search jobs (spec.md section 5: "each search runs
// as an independent job on a worker pool"). Grounded on the teacher's own
// cmd/pathprofile load-test fan-out, but built on golang.org/x/sync/
// semaphore rather than a hand-rolled channel/WaitGroup pool: the pack
// already depends on golang.org/x/sync (niceyeti-tabular) and a weighted
// semaphore is the idiomatic way to bound concurrent work with
// context-aware acquisition.
package pathing

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool runs Jobs with at most `workers` concurrently in flight.
type Pool struct {
	sem *semaphore.Weighted
}

func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(workers))}
}

// Submit acquires a pool slot, runs the job, and returns its result. If ctx
// is canceled while the job is running, the job's own cooperative
// interruption token is set and Submit waits for it to unwind before
// returning ctx.Err().
func (p *Pool) Submit(ctx context.Context, job *Job) (*Result, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)

	done := make(chan *Result, 1)
	go func() {
		done <- Search(ctx, job)
	}()

	select {
	case <-ctx.Done():
		job.Interrupted.Cancel()
		<-done
		return nil, ctx.Err()
	case result := <-done:
		return result, nil
	}
}
