package http

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGoDispatcherRunsConcurrently(t *testing.T) {
	done := make(chan struct{})

	GoDispatcher{}.Run(func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
}

func TestPoolDispatcherRunsAllTasks(t *testing.T) {
	const tasks = 100

	d := NewPoolDispatcher(4)
	defer d.Close()

	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(tasks)
	for i := 0; i < tasks; i++ {
		d.Run(func() {
			count.Add(1)
			wg.Done()
		})
	}
	wg.Wait()

	if count.Load() != tasks {
		t.Errorf("expected %d tasks, ran %d", tasks, count.Load())
	}
}

func TestPoolDispatcherBoundedWorkers(t *testing.T) {
	const workers = 2

	d := NewPoolDispatcher(workers)
	defer d.Close()

	var running, peak atomic.Int64
	var wg sync.WaitGroup
	wg.Add(16)
	for i := 0; i < 16; i++ {
		d.Run(func() {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			wg.Done()
		})
	}
	wg.Wait()

	if peak.Load() > workers {
		t.Errorf("expected at most %d concurrent tasks, saw %d", workers, peak.Load())
	}
}

func TestPoolDispatcherDropsAfterClose(t *testing.T) {
	d := NewPoolDispatcher(1)
	d.Close()

	ran := make(chan struct{}, 1)
	d.Run(func() { ran <- struct{}{} })

	select {
	case <-ran:
		t.Error("task submitted after Close must not run")
	case <-time.After(50 * time.Millisecond):
	}
}
