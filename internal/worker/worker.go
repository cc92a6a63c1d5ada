package worker

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Do once Stop has been called.
var ErrStopped = errors.New("worker pool stopped")

// Task represents a unit of work executed by the pool.
type Task func()

// Pool bounds how many tasks run at once. Password hashing runs here so a
// burst of logins cannot pin every CPU.
type Pool interface {
	Do(ctx context.Context, t Task) error
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task), quit: make(chan struct{})}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case job := <-p.jobs:
					job()
				case <-p.quit:
					return
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan Task
	quit chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// Do runs t on a worker and waits for it. If ctx ends first, Do returns
// ctx.Err(); a task already picked up still runs to completion.
// After Stop, Do returns ErrStopped without running t.
func (p *pool) Do(ctx context.Context, t Task) error {
	done := make(chan struct{})
	job := func() {
		defer close(done)
		t()
	}
	select {
	case <-p.quit:
		return ErrStopped
	default:
	}
	select {
	case p.jobs <- job:
	case <-p.quit:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop lets running tasks finish and shuts the workers down. It is safe to
// call more than once.
func (p *pool) Stop() {
	p.once.Do(func() { close(p.quit) })
	p.wg.Wait()
}
