package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type mockResult struct {
	id  int
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

type mockJob struct {
	id        int
	duration  time.Duration
	shouldErr bool
	executed  *int32
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &mockResult{id: j.id, err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &mockResult{id: j.id, err: errors.New("job error")}
	}
	return &mockResult{id: j.id}
}

func TestNewPool(t *testing.T) {
	if p := NewPool(5); p.Workers() != 5 {
		t.Errorf("expected 5 workers, got %d", p.Workers())
	}
	if p := NewPool(0); p.Workers() != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p.Workers())
	}
	if p := NewPool(-1); p.Workers() != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p.Workers())
	}
}

func TestPool_RunKeepsJobOrder(t *testing.T) {
	var executed int32
	count := 40

	jobs := make([]Job, count)
	for i := range jobs {
		// Later jobs finish first
		jobs[i] = &mockJob{id: i, duration: time.Duration(count-i) * time.Millisecond / 4, executed: &executed}
	}

	results := NewPool(4).Run(context.Background(), jobs)

	if len(results) != count {
		t.Fatalf("expected %d results, got %d", count, len(results))
	}
	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("expected %d executed jobs, got %d", count, executed)
	}
	for i, r := range results {
		if got := r.(*mockResult).id; got != i {
			t.Errorf("result %d belongs to job %d", i, got)
		}
	}
}

// More jobs than any internal buffer must not deadlock
func TestPool_RunManyJobs(t *testing.T) {
	jobs := make([]Job, 500)
	for i := range jobs {
		jobs[i] = &mockJob{id: i}
	}

	done := make(chan []Result)
	go func() { done <- NewPool(2).Run(context.Background(), jobs) }()

	select {
	case results := <-done:
		if len(results) != 500 {
			t.Errorf("expected 500 results, got %d", len(results))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not finish")
	}
}

type concurrencyJob struct {
	start    func()
	end      func()
	duration time.Duration
}

func (j *concurrencyJob) Execute(ctx context.Context) Result {
	if j.start != nil {
		j.start()
	}
	time.Sleep(j.duration)
	if j.end != nil {
		j.end()
	}
	return &mockResult{}
}

func TestPool_Concurrency(t *testing.T) {
	workers := 10

	var current int32
	var maxConcurrent int32
	var completed int32
	var mu sync.Mutex

	jobs := make([]Job, 50)
	for i := range jobs {
		jobs[i] = &concurrencyJob{
			start: func() {
				curr := atomic.AddInt32(&current, 1)
				mu.Lock()
				if curr > maxConcurrent {
					maxConcurrent = curr
				}
				mu.Unlock()
			},
			end: func() {
				atomic.AddInt32(&current, -1)
				atomic.AddInt32(&completed, 1)
			},
			duration: 10 * time.Millisecond,
		}
	}

	NewPool(workers).Run(context.Background(), jobs)

	if atomic.LoadInt32(&completed) != int32(len(jobs)) {
		t.Errorf("expected %d completed jobs, got %d", len(jobs), completed)
	}

	mu.Lock()
	peak := maxConcurrent
	mu.Unlock()

	if peak > int32(workers) {
		t.Errorf("max concurrency %d exceeded workers %d", peak, workers)
	}
}

func TestPool_ErrorHandling(t *testing.T) {
	results := NewPool(2).Run(context.Background(), []Job{
		&mockJob{shouldErr: true},
		&mockJob{},
	})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if errs := Errors(results); len(errs) != 1 {
		t.Errorf("expected 1 error, got %d", len(errs))
	}
	if results[0].GetError() == nil {
		t.Error("expected first job to fail")
	}
}

func TestPool_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var executed int32
	jobs := []Job{&mockJob{executed: &executed}, &mockJob{executed: &executed}}

	results := NewPool(1).Run(ctx, jobs)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("result %d is nil", i)
		}
	}
	// A job may win the race with cancellation, but every skipped job
	// carries the context error
	skippedCount := 0
	for _, r := range results {
		if _, ok := r.(skipped); ok {
			skippedCount++
			if !errors.Is(r.GetError(), context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", r.GetError())
			}
		}
	}
	if int(atomic.LoadInt32(&executed))+skippedCount != 2 {
		t.Errorf("executed %d + skipped %d should cover both jobs", executed, skippedCount)
	}
}

func TestPool_RunEmpty(t *testing.T) {
	if results := NewPool(3).Run(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
