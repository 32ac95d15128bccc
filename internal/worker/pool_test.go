package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type testJob struct {
	index int
	fn    func() error
}

func (j *testJob) Index() int { return j.index }

func (j *testJob) Execute(context.Context) Result {
	return &testResult{err: j.fn()}
}

type testResult struct {
	err error
}

func (r *testResult) Err() error { return r.err }

func TestPool_ResultsLandAtInputIndex(t *testing.T) {
	jobs := make([]Job, 8)
	for i := range jobs {
		i := i
		jobs[i] = &testJob{index: i, fn: func() error {
			// Stagger completion so later jobs can finish first.
			time.Sleep(time.Duration(8-i) * time.Millisecond)
			if i%3 == 0 {
				return errors.New("planned failure")
			}
			return nil
		}}
	}

	pool := NewPool(4)
	results := pool.Run(context.Background(), jobs)

	if len(results) != len(jobs) {
		t.Fatalf("Expected %d results, got %d", len(jobs), len(results))
	}
	for i, res := range results {
		if res == nil {
			t.Fatalf("Result %d is nil", i)
		}
		wantErr := i%3 == 0
		if (res.Err() != nil) != wantErr {
			t.Errorf("Result %d: expected error=%v, got %v", i, wantErr, res.Err())
		}
	}
}

func TestPool_RunsAllJobs(t *testing.T) {
	var executed int32
	jobs := make([]Job, 20)
	for i := range jobs {
		jobs[i] = &testJob{index: i, fn: func() error {
			atomic.AddInt32(&executed, 1)
			return nil
		}}
	}

	NewPool(3).Run(context.Background(), jobs)

	if got := atomic.LoadInt32(&executed); got != 20 {
		t.Errorf("Expected all 20 jobs executed, got %d", got)
	}
}

func TestPool_CancelledContextSkipsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{&testJob{index: 0, fn: func() error { return nil }}}
	results := NewPool(1).Run(ctx, jobs)

	if results[0] != nil {
		t.Error("Expected skipped job to leave a nil result")
	}
}

func TestNewPool_ClampsWorkerCount(t *testing.T) {
	p := NewPool(0)
	results := p.Run(context.Background(), []Job{
		&testJob{index: 0, fn: func() error { return nil }},
	})
	if results[0] == nil || results[0].Err() != nil {
		t.Error("Expected a zero-worker pool to fall back to one worker")
	}
}
