// Package worker provides the index-tagged worker pool and the
// per-domain rate limiter used when fetching and scoring batches of
// candidate articles.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work tagged with its input index. The tag lets the
// pool reassemble results in input order no matter which worker
// finished first.
type Job interface {
	Index() int
	Execute(ctx context.Context) Result
}

// Result is what a job produces.
type Result interface {
	Err() error
}

// Pool executes batches of jobs with bounded concurrency.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns their results indexed by
// Job.Index. The slice always has len(jobs) entries; a job cancelled
// before execution leaves a nil entry.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))

	queue := make(chan Job)
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				select {
				case <-ctx.Done():
					continue
				default:
				}
				results[job.Index()] = job.Execute(ctx)
			}
		}()
	}

	for _, job := range jobs {
		queue <- job
	}
	close(queue)
	wg.Wait()

	return results
}
