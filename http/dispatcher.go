package http

import (
	"sync"

	"github.com/eapache/queue"
)

// Dispatcher runs a task concurrently with the caller. The server uses one
// task for its accept loop and one per accepted connection, so a bounded
// implementation can be swapped in without touching the connection handler.
type Dispatcher interface {
	Run(task func())
}

// GoDispatcher launches every task on its own goroutine. Unbounded, no
// queue, no backpressure.
type GoDispatcher struct{}

func (GoDispatcher) Run(task func()) {
	go task()
}

// PoolDispatcher runs tasks on a fixed set of workers fed from a queue.
// With every worker busy, tasks wait in the queue; connections then see
// accept-to-serve latency instead of unbounded goroutine growth.
type PoolDispatcher struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  *queue.Queue
	closed bool
}

func NewPoolDispatcher(workers int) *PoolDispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &PoolDispatcher{
		tasks: queue.New(),
	}
	d.cond = sync.NewCond(&d.mu)
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

// Run enqueues task. Tasks submitted after Close are dropped.
func (d *PoolDispatcher) Run(task func()) {
	d.mu.Lock()
	if !d.closed {
		d.tasks.Add(task)
		d.cond.Signal()
	}
	d.mu.Unlock()
}

// Close stops the workers after the queue drains.
func (d *PoolDispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.cond.Broadcast()
	d.mu.Unlock()
}

func (d *PoolDispatcher) worker() {
	for {
		d.mu.Lock()
		for d.tasks.Length() == 0 && !d.closed {
			d.cond.Wait()
		}
		if d.tasks.Length() == 0 && d.closed {
			d.mu.Unlock()
			return
		}
		task := d.tasks.Remove().(func())
		d.mu.Unlock()

		task()
	}
}
