package queue

import (
	"container/list"
	"context"
	"math"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Queue is a thread-safe FIFO of heterogeneous Jobs with priority
// insert and blocking wait (spec.md §4.1).
//
// Two primitives do the work: a mutex-protected FIFO for the elements
// themselves, and a weighted semaphore used purely as a wake-token
// counter. The mutex is never held across the blocking Acquire, and at
// most one of {fifoMu} is ever held at a time from this package's own
// code — nothing here blocks while holding it.
type Queue struct {
	fifoMu sync.Mutex
	fifo   *list.List

	// wake counts posts that have not yet been matched by a Wait.
	// semaphore.Weighted starts with its full weight already available,
	// which is backwards for a wake-token counter that must start at
	// zero, so New drains it to empty before handing it out; from then
	// on Post's Release(1) and Wait's Acquire(1) model a zero-initialized
	// counting semaphore.
	wake *semaphore.Weighted
}

// New creates an initialized, empty Queue ready to accept posts and
// waits.
func New() *Queue {
	wake := semaphore.NewWeighted(math.MaxInt32)
	_ = wake.Acquire(context.Background(), math.MaxInt32)
	return &Queue{
		fifo: list.New(),
		wake: wake,
	}
}

// Ready reports whether the queue structure has been initialized. Other
// subsystems use this to gate posting during startup/shutdown windows.
func (q *Queue) Ready() bool {
	return q != nil && q.fifo != nil
}

// Post atomically inserts job at the front (urgent) or back (normal),
// then releases one wake token. A sentinel job is not enqueued: it only
// releases its wake token, and the waiter it wakes finds the queue
// empty and gets a sentinel back from Wait. Post is total: it never
// blocks and never fails.
func (q *Queue) Post(job Job, urgent bool) {
	q.fifoMu.Lock()
	if q.fifo != nil && job.Kind != KindSentinel {
		if urgent {
			q.fifo.PushFront(job)
		} else {
			q.fifo.PushBack(job)
		}
	}
	q.fifoMu.Unlock()

	q.wake.Release(1)
}

// Wait acquires one wake token (blocking), then atomically removes and
// returns the front element. A spurious wake-up with nothing to
// dequeue returns the shutdown sentinel; callers must treat that as a
// terminate signal.
func (q *Queue) Wait() Job {
	// Acquire never returns an error for a context that is never
	// cancelled and a semaphore sized far above any realistic backlog.
	_ = q.wake.Acquire(context.Background(), 1)

	q.fifoMu.Lock()
	defer q.fifoMu.Unlock()

	if q.fifo == nil {
		return Sentinel()
	}

	front := q.fifo.Front()
	if front == nil {
		return Sentinel()
	}
	q.fifo.Remove(front)
	return front.Value.(Job)
}

// Len reports the number of elements currently queued, not counting
// outstanding wake tokens that have not yet been posted as elements.
// Used by metrics only; never used for control flow.
func (q *Queue) Len() int {
	q.fifoMu.Lock()
	defer q.fifoMu.Unlock()
	if q.fifo == nil {
		return 0
	}
	return q.fifo.Len()
}

// Close releases the job FIFO under the queue mutex (spec.md §4.7
// shutdown step 5). Safe to call once, after all workers have joined.
func (q *Queue) Close() {
	q.fifoMu.Lock()
	q.fifo = nil
	q.fifoMu.Unlock()
}
