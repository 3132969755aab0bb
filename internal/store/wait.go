package store

import (
	"sync"
	"time"
)

// completion is a one-shot result slot for callback-style native APIs. The
// producing callback fills it exactly once; consumers poll done or block on
// wait. Late or duplicate callbacks are ignored.
type completion[T any] struct {
	once sync.Once
	ch   chan struct{}

	mu    sync.Mutex
	value T
	ok    bool
}

func newCompletion[T any]() *completion[T] {
	return &completion[T]{ch: make(chan struct{})}
}

// complete stores the result. Only the first call has any effect.
func (c *completion[T]) complete(v T) {
	c.once.Do(func() {
		c.mu.Lock()
		c.value = v
		c.ok = true
		c.mu.Unlock()
		close(c.ch)
	})
}

// done reports whether the result has arrived.
func (c *completion[T]) done() bool {
	select {
	case <-c.ch:
		return true
	default:
		return false
	}
}

// result returns the stored value and whether one arrived.
func (c *completion[T]) result() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.ok
}

// awaitAll polls until every completion is done or the timeout elapses,
// sleeping poll between rounds. It reports whether all completed in time.
func awaitAll(timeout, poll time.Duration, sleep func(time.Duration), cs ...interface{ done() bool }) bool {
	var waited time.Duration
	for {
		all := true
		for _, c := range cs {
			if !c.done() {
				all = false
				break
			}
		}
		if all {
			return true
		}
		if waited >= timeout {
			return false
		}
		sleep(poll)
		waited += poll
	}
}
