// Package workerpool runs jobs on a bounded set of goroutines and streams
// their results back. It is used to fan out work such as classifying a
// directory of log files without spawning one goroutine per file.
package workerpool

import (
	"context"
	"runtime"
	"sync"
)

// Result pairs a job with the value or error it produced.
type Result[J, R any] struct {
	Job   J
	Value R
	Err   error
}

// ExecutorFunc processes a single job.
type ExecutorFunc[J, R any] func(ctx context.Context, job J) (R, error)

// Pool processes submitted jobs with at most concurrency workers.
type Pool[J, R any] struct {
	concurrency int
	executor    ExecutorFunc[J, R]
	jobs        chan J
	results     chan Result[J, R]
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	startOnce   sync.Once
}

// NewPool creates a pool. If concurrency <= 0 it defaults to runtime.NumCPU().
func NewPool[J, R any](concurrency int, executor ExecutorFunc[J, R]) *Pool[J, R] {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool[J, R]{
		concurrency: concurrency,
		executor:    executor,
		jobs:        make(chan J, concurrency*2),
		results:     make(chan Result[J, R], concurrency*2),
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (p *Pool[J, R]) start() {
	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}

func (p *Pool[J, R]) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		if err := p.ctx.Err(); err != nil {
			p.results <- Result[J, R]{Job: job, Err: err}
			continue
		}
		value, err := p.executor(p.ctx, job)
		p.results <- Result[J, R]{Job: job, Value: value, Err: err}
	}
}

// Submit queues a job, starting the workers on first use. It blocks while
// the job buffer is full, so results must be drained concurrently.
func (p *Pool[J, R]) Submit(job J) {
	p.startOnce.Do(p.start)
	p.jobs <- job
}

// Results returns the result stream. It is closed once Shutdown has been
// called and every queued job has finished.
func (p *Pool[J, R]) Results() <-chan Result[J, R] {
	p.startOnce.Do(p.start)
	return p.results
}

// Shutdown declares that no more jobs will be submitted and waits for the
// workers to finish.
func (p *Pool[J, R]) Shutdown() {
	p.startOnce.Do(p.start)
	close(p.jobs)
	p.wg.Wait()
}

// Cancel aborts pending jobs; they are reported with the context error.
func (p *Pool[J, R]) Cancel() {
	p.cancel()
}

// Map runs fn over jobs with the given concurrency and returns the results
// in completion order.
func Map[J, R any](ctx context.Context, concurrency int, jobs []J, fn ExecutorFunc[J, R]) []Result[J, R] {
	pool := NewPool(concurrency, func(pctx context.Context, job J) (R, error) {
		if err := ctx.Err(); err != nil {
			var zero R
			return zero, err
		}
		return fn(pctx, job)
	})
	go func() {
		for _, job := range jobs {
			pool.Submit(job)
		}
		pool.Shutdown()
	}()

	out := make([]Result[J, R], 0, len(jobs))
	for r := range pool.Results() {
		out = append(out, r)
	}
	return out
}
