// Package queueproc is a minimal collab.QueueProcessor. Actual delivery
// retry and per-user queue persistence are out of scope for the core
// (spec.md §1, §6); this implementation lets the background driver and
// worker pool exercise the full dispatch path against something real
// instead of a test double.
package queueproc

import (
	"context"

	"github.com/grunfink/snac-core/internal/collab"
	"github.com/grunfink/snac-core/internal/queueitem"
	"github.com/grunfink/snac-core/pkg/logger"
)

// Processor logs every unit of work it's handed and reports zero items
// processed from the scan methods, since there is no persistent queue
// behind it to drain.
type Processor struct{}

// New creates a Processor.
func New() *Processor { return &Processor{} }

// ProcessUserQueue implements collab.QueueProcessor.
func (p *Processor) ProcessUserQueue(_ context.Context, u collab.User) (int, error) {
	logger.Debug(2, "queueproc: scanned user queue for %s (nothing to do)", u.Handle())
	return 0, nil
}

// ProcessQueue implements collab.QueueProcessor.
func (p *Processor) ProcessQueue(_ context.Context) (int, error) {
	return 0, nil
}

// ProcessItem implements collab.QueueProcessor. A purge item is the
// only kind currently posted by the core itself (spec.md §4.6); any
// other type is logged and dropped.
func (p *Processor) ProcessItem(_ context.Context, item queueitem.QueueItem) error {
	switch item.Type {
	case queueitem.TypePurge:
		logger.Info("queueproc: running daily purge")
	default:
		logger.Debug(1, "queueproc: dropping unhandled queue item type %q", item.Type)
	}
	return nil
}
