// Package worker runs bounded concurrent jobs against the content store.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by a Pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a Job
type Result interface {
	GetError() error
}

// Pool executes jobs on a fixed number of goroutines
type Pool struct {
	workers int
}

// NewPool creates a pool. Non-positive worker counts fall back to one.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Workers returns the pool size
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes jobs and returns their results in job order. Jobs not yet
// started when ctx is cancelled report the context error instead of running.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	indexes := make(chan int)
	var wg sync.WaitGroup

	workers := min(p.workers, len(jobs))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = jobs[i].Execute(ctx)
			}
		}()
	}

feed:
	for i := range jobs {
		select {
		case <-ctx.Done():
			for j := i; j < len(jobs); j++ {
				results[j] = skipped{err: ctx.Err()}
			}
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	return results
}

type skipped struct {
	err error
}

func (s skipped) GetError() error { return s.err }

// Errors returns the non-nil errors among results
func Errors(results []Result) []error {
	var errs []error
	for _, r := range results {
		if r == nil {
			continue
		}
		if err := r.GetError(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
