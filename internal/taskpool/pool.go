// Package taskpool runs blocking units of work on a bounded pool of worker
// goroutines.
//
// Password hashing is deliberately CPU- and memory-expensive and store access
// is blocking I/O; neither should occupy a request-serving goroutine without
// bound. Handlers submit a closure and await its result. Cancellation of the
// await is surfaced as ErrCanceled so it can be mapped to an internal-error
// response instead of being lost.
package taskpool

import (
	"context"
	"errors"
	"sync"
)

// ErrCanceled is returned when the submitting context is canceled before the
// task result is delivered.
var ErrCanceled = errors.New("taskpool: task canceled")

// ErrClosed is returned when a task is submitted to a closed pool.
var ErrClosed = errors.New("taskpool: pool closed")

// Pool is a fixed-size worker pool with a bounded submission queue.
type Pool struct {
	tasks     chan func()
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Config configures the pool.
type Config struct {
	// Workers is the number of worker goroutines (default: 8).
	Workers int `mapstructure:"workers"`
	// QueueSize is the submission queue capacity (default: 64).
	QueueSize int `mapstructure:"queue_size"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Workers <= 0 {
		c.Workers = 8
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 64
	}
}

// New creates a pool and starts its workers.
func New(cfg Config) *Pool {
	cfg.ApplyDefaults()

	p := &Pool{
		tasks: make(chan func(), cfg.QueueSize),
		done:  make(chan struct{}),
	}

	for i := 0; i < cfg.Workers; i++ {
		p.wg.Add(1)
		go p.run()
	}

	return p
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case task := <-p.tasks:
			task()
		case <-p.done:
			// Drain queued tasks so no submitted work is silently dropped.
			for {
				select {
				case task := <-p.tasks:
					task()
				default:
					return
				}
			}
		}
	}
}

// Close stops the workers after draining queued tasks. It blocks until all
// workers have exited. Safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

// submit enqueues a task, blocking until queue space is available.
func (p *Pool) submit(ctx context.Context, task func()) error {
	select {
	case <-p.done:
		return ErrClosed
	default:
	}

	select {
	case p.tasks <- task:
		return nil
	case <-p.done:
		return ErrClosed
	case <-ctx.Done():
		return ErrCanceled
	}
}

type result[T any] struct {
	val T
	err error
}

// Do runs fn on the pool and blocks until its result is available or ctx is
// canceled. A canceled await returns ErrCanceled; the task itself still runs
// to completion on its worker.
func Do[T any](ctx context.Context, p *Pool, fn func() (T, error)) (T, error) {
	var zero T

	// Buffered so a worker never blocks delivering to an abandoned await.
	out := make(chan result[T], 1)

	err := p.submit(ctx, func() {
		val, err := fn()
		out <- result[T]{val: val, err: err}
	})
	if err != nil {
		return zero, err
	}

	select {
	case r := <-out:
		return r.val, r.err
	case <-ctx.Done():
		return zero, ErrCanceled
	}
}
