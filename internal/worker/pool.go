// Package worker runs indexed jobs on a bounded set of goroutines with an
// optional start rate.
package worker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Job func(ctx context.Context) error

type Result struct {
	Index int
	Err   error
}

type job struct {
	index int
	fn    Job
}

type Pool struct {
	workers int
	jobs    chan job
	next    int
	wg      sync.WaitGroup
	mu      sync.RWMutex
	limiter *rate.Limiter
}

func NewPool(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		jobs:    make(chan job, buffer),
	}
}

// SetRateLimit caps job starts across all workers at rps per second. A value
// of zero or less removes the cap.
func (p *Pool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	var l *rate.Limiter
	if rps > 0 {
		l = rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1)
	}
	p.mu.Lock()
	p.limiter = l
	p.mu.Unlock()
}

// Submit queues fn and returns its index. It blocks while the buffer is full
// and must not be called after Close.
func (p *Pool) Submit(fn Job) int {
	if p == nil || fn == nil {
		return -1
	}
	p.mu.Lock()
	i := p.next
	p.next++
	p.mu.Unlock()
	p.jobs <- job{index: i, fn: fn}
	return i
}

func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.jobs)
}

// Run starts the workers. The returned channel closes after Close has been
// called and every queued job finished, or when ctx is cancelled.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-p.jobs:
					if !ok {
						return
					}
					p.mu.RLock()
					l := p.limiter
					p.mu.RUnlock()
					var err error
					if l != nil {
						// Wait fails early when the next slot lies past the ctx deadline.
						err = l.Wait(ctx)
					}
					if err == nil {
						err = j.fn(ctx)
					}
					select {
					case <-ctx.Done():
						return
					case out <- Result{Index: j.index, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

// Map runs fn for every index in [0, n) on a pool of the given size and
// returns the per-index errors. Indexes never reached because ctx ended carry
// ctx.Err().
func Map(ctx context.Context, workers, rps, n int, fn func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)
	if n == 0 {
		return errs
	}
	if workers > n {
		workers = n
	}
	done := make([]bool, n)

	p := NewPool(workers, n)
	p.SetRateLimit(rps)
	results := p.Run(ctx)
	for i := 0; i < n; i++ {
		i := i
		p.Submit(func(ctx context.Context) error { return fn(ctx, i) })
	}
	p.Close()

	for r := range results {
		errs[r.Index] = r.Err
		done[r.Index] = true
	}
	for i := range done {
		if !done[i] {
			if err := ctx.Err(); err != nil {
				errs[i] = err
			}
		}
	}
	return errs
}
