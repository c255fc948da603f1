package worker

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrPoolClosed = errors.New("worker pool closed")
	ErrPoolFull   = errors.New("worker pool queue full")
)

type Task func(ctx context.Context) error

type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

type job struct {
	name string
	fn   Task
}

// Pool runs submitted tasks on a fixed number of goroutines, optionally paced
// to a maximum rate.
type Pool struct {
	workers int
	tasks   chan job
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
	rate   <-chan time.Time
	ticker *time.Ticker

	// sending counts submitters between the closed check and their send;
	// tasks is closed only once it drops to zero.
	sending sync.WaitGroup
	wg      sync.WaitGroup
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
		tasks:   make(chan job, buffer),
		done:    make(chan struct{}),
	}
}

// SetRateLimit paces task starts to rps per second across all workers. Zero
// removes the limit.
func (p *Pool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	if rps <= 0 {
		return
	}
	p.ticker = time.NewTicker(time.Second / time.Duration(rps))
	p.rate = p.ticker.C
}

// Submit queues a task, blocking while the buffer is full until ctx is done or
// the pool is closed.
func (p *Pool) Submit(ctx context.Context, name string, t Task) error {
	if p == nil || t == nil {
		return nil
	}
	if !p.enter() {
		return ErrPoolClosed
	}
	defer p.sending.Done()

	select {
	case p.tasks <- job{name: name, fn: t}:
		return nil
	case <-p.done:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySubmit queues a task without waiting. It returns ErrPoolFull when the
// buffer has no room.
func (p *Pool) TrySubmit(name string, t Task) error {
	if p == nil || t == nil {
		return nil
	}
	if !p.enter() {
		return ErrPoolClosed
	}
	defer p.sending.Done()

	select {
	case p.tasks <- job{name: name, fn: t}:
		return nil
	case <-p.done:
		return ErrPoolClosed
	default:
		return ErrPoolFull
	}
}

func (p *Pool) enter() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	p.sending.Add(1)
	return true
}

// Close stops accepting tasks and wakes blocked submitters. Workers drain what
// is already queued.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()

	p.sending.Wait()
	close(p.tasks)
}

// Run starts the workers. The returned channel is closed once every worker has
// exited, which happens after Close and a full drain, or when ctx is done.
// Callers must keep reading results.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-p.tasks:
					if !ok {
						return
					}
					if !p.wait(ctx) {
						return
					}
					start := time.Now()
					err := j.fn(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Name: j.name, Err: err, Duration: time.Since(start)}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		p.SetRateLimit(0)
		close(out)
	}()

	return out
}

func (p *Pool) wait(ctx context.Context) bool {
	p.mu.RLock()
	rate := p.rate
	p.mu.RUnlock()
	if rate == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-rate:
		return true
	}
}
