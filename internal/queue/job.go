// Package queue implements the in-memory job queue that multiplexes
// inbound HTTP connections and deferred queue items over one pool of
// workers.
package queue

import (
	"net"

	"github.com/grunfink/snac-core/internal/queueitem"
)

// Kind discriminates the Job variants. Jobs are a tagged sum, not an
// interface: Connection jobs own a net.Conn that must be closed on every
// exit path, and erasing that behind a common interface would hide the
// ownership transfer.
type Kind int

const (
	// KindSentinel carries no payload; it exists only to wake one
	// blocked worker so it can observe shutdown and exit.
	KindSentinel Kind = iota
	KindConnection
	KindQueueItem
)

// Job is one unit of work dequeued by exactly one worker.
type Job struct {
	Kind Kind
	Conn net.Conn
	Item queueitem.QueueItem
}

// Sentinel returns a wake token carrying no payload.
func Sentinel() Job {
	return Job{Kind: KindSentinel}
}

// Connection wraps an accepted connection into a Job.
func Connection(c net.Conn) Job {
	return Job{Kind: KindConnection, Conn: c}
}

// Item wraps a deferred queue item into a Job.
func Item(it queueitem.QueueItem) Job {
	return Job{Kind: KindQueueItem, Item: it}
}
