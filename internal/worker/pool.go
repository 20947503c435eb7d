package worker

import "sync"

type task func()

// Pool is a fixed-size worker pool with a buffered job queue.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
	once sync.Once
}

// NewPool starts n workers draining a queue of the given depth.
func NewPool(n, queue int) *Pool {
	if n < 1 {
		n = 1
	}
	if queue < 1 {
		queue = 1
	}
	p := &Pool{jobs: make(chan task, queue)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

// Submit enqueues f, blocking while the queue is full.
func (p *Pool) Submit(f task) { p.jobs <- f }

// Stop drains the queue and waits for in-flight jobs. Safe to call twice.
func (p *Pool) Stop() {
	p.once.Do(func() { close(p.jobs) })
	p.wg.Wait()
}
