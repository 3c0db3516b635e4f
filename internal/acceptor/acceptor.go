// Package acceptor implements the socket listener that turns accepted
// connections into urgent jobs (spec.md §4.3).
package acceptor

import (
	"fmt"
	"net"
	"sync/atomic"

	"github.com/grunfink/snac-core/internal/queue"
	"github.com/grunfink/snac-core/pkg/logger"
)

// Acceptor binds one TCP listener and feeds every accepted connection
// into the job queue as an urgent job.
type Acceptor struct {
	listener net.Listener
	q        *queue.Queue
	stopping atomic.Bool
}

// Bind opens the listening socket. Startup aborts if this fails
// (spec.md §4.7 step 2, §7 error kind 4).
func Bind(address string, port int) (*Acceptor, error) {
	l, err := net.Listen("tcp", fmt.Sprintf("%s:%d", address, port))
	if err != nil {
		return nil, fmt.Errorf("cannot bind socket to %s:%d: %w", address, port, err)
	}
	return &Acceptor{listener: l}, nil
}

// Addr returns the bound address, useful when port 0 was requested.
func (a *Acceptor) Addr() net.Addr {
	return a.listener.Addr()
}

// Run accepts connections until Stop is called or Accept fails for any
// other reason, posting each as an urgent Connection job. This replaces
// the source's signal-driven setjmp/longjmp exit (spec.md §9 design
// note): Stop closes the listener, which makes the blocked Accept
// return an error, and Run exits normally instead of unwinding the
// stack from a signal handler.
func (a *Acceptor) Run(q *queue.Queue) {
	a.q = q
	for {
		conn, err := a.listener.Accept()
		if err != nil {
			if a.stopping.Load() {
				return
			}
			logger.Warn("acceptor: accept error: %v", err)
			return
		}
		a.q.Post(queue.Connection(conn), true)
	}
}

// Stop closes the listening socket so a blocked Run unblocks and
// returns.
func (a *Acceptor) Stop() {
	a.stopping.Store(true)
	_ = a.listener.Close()
}
