package resilience

import (
	"context"
	"errors"
	"sync"
)

var ErrWorkerPoolClosed = errors.New("worker pool is closed")

// Job is a unit of work run by the pool.
type Job func(ctx context.Context) error

// WorkerPool runs jobs on a fixed number of goroutines. The first job error
// cancels the pool context and is returned by Wait.
type WorkerPool struct {
	jobs   chan Job
	ctx    context.Context
	cancel context.CancelFunc

	closed bool
	mu     sync.RWMutex
	once   sync.Once
	wg     sync.WaitGroup

	errOnce sync.Once
	err     error
}

func NewWorkerPool(ctx context.Context, workers, queueSize int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}

	poolCtx, cancel := context.WithCancel(ctx)
	p := &WorkerPool{
		jobs:   make(chan Job, queueSize),
		ctx:    poolCtx,
		cancel: cancel,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job == nil || p.ctx.Err() != nil {
					continue
				}
				if err := job(p.ctx); err != nil {
					p.fail(err)
				}
			}
		}()
	}

	return p
}

func (p *WorkerPool) Submit(ctx context.Context, job Job) error {
	if job == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrWorkerPoolClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return p.ctx.Err()
	case p.jobs <- job:
		return nil
	}
}

func (p *WorkerPool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})
}

// Wait closes the pool, waits for queued jobs and returns the first error.
func (p *WorkerPool) Wait() error {
	p.Close()
	p.wg.Wait()
	p.cancel()
	return p.err
}

func (p *WorkerPool) fail(err error) {
	p.errOnce.Do(func() {
		p.err = err
		p.cancel()
	})
}
