// Package worker implements the bounded pool of symmetric workers that
// pull Jobs from the queue and dispatch them by kind (spec.md §4.2).
package worker

import (
	"context"
	"runtime"
	"sync"

	"github.com/grunfink/snac-core/internal/collab"
	"github.com/grunfink/snac-core/internal/connhandler"
	"github.com/grunfink/snac-core/internal/metrics"
	"github.com/grunfink/snac-core/internal/queue"
	"github.com/grunfink/snac-core/pkg/logger"
)

// MaxThreads is the implementation-defined ceiling on worker count
// (spec.md §4.2), carried over from the source's MAX_THREADS.
const MaxThreads = 256

// MinThreads is the floor applied when num_threads is unconfigured or
// too low (spec.md §4.7 step 5).
const MinThreads = 4

// ResolveCount applies the spec's clamp: configured value, else CPU
// count, clamped to [MinThreads, MaxThreads].
func ResolveCount(configured int) int {
	n := configured
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n < MinThreads {
		n = MinThreads
	}
	if n > MaxThreads {
		n = MaxThreads
	}
	return n
}

// Pool is N-1 symmetric workers (slot #0 in spec.md's thread array is
// the background driver, not a worker) pulling from a shared Queue.
// Workers do not steal work from each other and have no affinity.
type Pool struct {
	count int
	q     *queue.Queue
	conn  *connhandler.Handler
	proc  collab.QueueProcessor
	wg    sync.WaitGroup
}

// New creates a Pool of count workers reading from q.
func New(count int, q *queue.Queue, conn *connhandler.Handler, proc collab.QueueProcessor) *Pool {
	return &Pool{count: count, q: q, conn: conn, proc: proc}
}

// Start spawns all worker goroutines. Each loops: wait, dispatch by
// kind, loop; a sentinel job ends the loop (spec.md §4.2).
func (p *Pool) Start() {
	for i := 1; i <= p.count; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
}

// Join blocks until every worker has exited, i.e. every worker has
// consumed its sentinel (spec.md §4.7 shutdown step 4).
func (p *Pool) Join() {
	p.wg.Wait()
}

func (p *Pool) run(id int) {
	defer p.wg.Done()

	logger.Debug(1, "worker %d started", id)

	for {
		job := p.q.Wait()
		metrics.QueueDepthGauge.Set(float64(p.q.Len()))

		logger.Debug(2, "worker %d wake up", id)

		switch job.Kind {
		case queue.KindSentinel:
			logger.Debug(1, "worker %d stopped", id)
			return
		case queue.KindConnection:
			metrics.ActiveWorkersGauge.Inc()
			p.conn.Handle(job.Conn)
			metrics.ActiveWorkersGauge.Dec()
			metrics.JobsProcessedCounter.WithLabelValues("connection").Inc()
		case queue.KindQueueItem:
			metrics.ActiveWorkersGauge.Inc()
			if err := p.proc.ProcessItem(context.Background(), job.Item); err != nil {
				logger.Error("worker %d: process queue item %s: %v", id, job.Item.Type, err)
				metrics.JobsFailedCounter.WithLabelValues("queue_item").Inc()
			} else {
				metrics.JobsProcessedCounter.WithLabelValues("queue_item").Inc()
			}
			metrics.ActiveWorkersGauge.Dec()
		}
	}
}
