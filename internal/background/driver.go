// Package background implements the long-lived driver that scans
// per-user persistent queues and the global queue, promotes due items
// into the job queue, and schedules the daily purge (spec.md §4.6).
package background

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"github.com/grunfink/snac-core/internal/collab"
	"github.com/grunfink/snac-core/internal/metrics"
	"github.com/grunfink/snac-core/internal/queue"
	"github.com/grunfink/snac-core/internal/queueitem"
	"github.com/grunfink/snac-core/pkg/logger"
)

// IdleSleep is how long the driver waits when a scan processed nothing,
// matching the source's 3-second poll (spec.md §4.6 step 4).
const IdleSleep = 3 * time.Second

// PurgeInterval is the daily housekeeping cadence (spec.md §4.6 step 3).
const PurgeInterval = 24 * time.Hour

// FirstPurgeDelay is how long after startup the first purge is due
// (spec.md §4.6: "startup + 10 minutes").
const FirstPurgeDelay = 10 * time.Minute

// Driver is the single background thread. One Driver exists per
// server.
type Driver struct {
	Users     collab.Users
	Proc      collab.QueueProcessor
	Queue     *queue.Queue
	running   *atomic.Bool
	wake      chan struct{}
	nextPurge time.Time
}

// New creates a Driver. running must be the same flag the Lifecycle
// clears on shutdown (spec.md §4.6: "executed while running").
func New(users collab.Users, proc collab.QueueProcessor, q *queue.Queue, running *atomic.Bool) *Driver {
	return &Driver{
		Users:     users,
		Proc:      proc,
		Queue:     q,
		running:   running,
		wake:      make(chan struct{}, 1),
		nextPurge: time.Now().Add(FirstPurgeDelay),
	}
}

// Wake cuts short an idle sleep, used by shutdown so the driver notices
// running has gone false without waiting out the full idle period.
func (d *Driver) Wake() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Run is the driver loop. It exits as soon as running observes false,
// not by receiving a sentinel job — the background thread is not a
// worker and has no slot in the sentinel count (spec.md §9 open
// question).
func (d *Driver) Run(ctx context.Context) {
	logger.Info("background driver started")

	for d.running.Load() {
		cnt := d.scanUsers(ctx)
		cnt += d.scanGlobalQueue(ctx)

		if time.Now().After(d.nextPurge) {
			d.nextPurge = time.Now().Add(PurgeInterval)
			d.Queue.Post(queue.Item(queueitem.Purge()), false)
			metrics.PurgePostedCounter.Inc()
		}

		if cnt == 0 {
			d.sleep()
		}
	}

	logger.Info("background driver stopped")
}

func (d *Driver) scanUsers(ctx context.Context) int {
	uids, err := d.Users.List(ctx)
	if err != nil {
		logger.Error("background driver: list users: %v", err)
		return 0
	}

	cnt := 0
	for _, uid := range uids {
		u, err := d.Users.Open(ctx, uid)
		if err != nil {
			logger.Error("background driver: open user %s: %v", uid, err)
			continue
		}
		n, err := d.Proc.ProcessUserQueue(ctx, u)
		if err != nil {
			logger.Error("background driver: process queue for %s: %v", uid, err)
			continue
		}
		metrics.BackgroundScanCounter.Add(float64(n))
		cnt += n
	}
	return cnt
}

func (d *Driver) scanGlobalQueue(ctx context.Context) int {
	n, err := d.Proc.ProcessQueue(ctx)
	if err != nil {
		logger.Error("background driver: process global queue: %v", err)
		return 0
	}
	metrics.BackgroundScanCounter.Add(float64(n))
	return n
}

// sleep waits IdleSleep or until Wake is called, whichever comes first.
func (d *Driver) sleep() {
	t := time.NewTimer(IdleSleep)
	defer t.Stop()
	select {
	case <-t.C:
	case <-d.wake:
	}
}
