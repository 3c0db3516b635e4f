// Package collab defines the narrow interfaces the core consumes from
// subsystems that are deliberately out of scope (spec.md §1, §6): user
// storage, queue processing, diagnostics archiving, and the per-protocol
// cascade handlers. The core depends only on these contracts.
package collab

import (
	"context"
	"net/http"

	"github.com/grunfink/snac-core/internal/cascade"
	"github.com/grunfink/snac-core/internal/httpcore"
	"github.com/grunfink/snac-core/internal/queueitem"
)

// User is one local actor.
type User interface {
	Handle() string
	DisplayName() string
	ActorURL() string
}

// Users enumerates and opens local user handles.
type Users interface {
	List(ctx context.Context) ([]string, error)
	Open(ctx context.Context, uid string) (User, error)
}

// QueueProcessor performs pending deferred work. ProcessUserQueue and
// ProcessQueue return the count of items actually processed, which the
// Background Driver uses to decide whether to sleep (spec.md §4.6).
type QueueProcessor interface {
	ProcessUserQueue(ctx context.Context, u User) (int, error)
	ProcessQueue(ctx context.Context) (int, error)
	ProcessItem(ctx context.Context, item queueitem.QueueItem) error
}

// Archiver records (request, response) pairs and named error events for
// operator review (spec.md §7).
type Archiver interface {
	Archive(req *httpcore.Request, payload []byte, status int, headers http.Header, body []byte)
	ArchiveError(kind, message string, req *httpcore.Request, payload []byte)
}

// GetHandlers names the per-subsystem handlers that make up the GET/HEAD
// cascade, in the order spec.md §4.5 requires.
type GetHandlers struct {
	Statics     cascade.Handler
	Webfinger   cascade.Handler
	ActivityPub cascade.Handler
	OAuth       cascade.Handler // nil when the feature is disabled
	MastoAPI    cascade.Handler // nil when the feature is disabled
	HTML        cascade.Handler
}

// Chain assembles the GET cascade in spec.md §4.5 order, skipping any
// handler left nil by a disabled feature gate.
func (g GetHandlers) Chain() cascade.Chain {
	return appendNonNil(nil, g.Statics, g.Webfinger, g.ActivityPub, g.OAuth, g.MastoAPI, g.HTML)
}

// PostHandlers names the POST cascade, spec.md §4.5.
type PostHandlers struct {
	OAuth       cascade.Handler // nil when disabled
	MastoAPI    cascade.Handler // nil when disabled
	ActivityPub cascade.Handler
	HTML        cascade.Handler
}

// Chain assembles the POST cascade in spec.md §4.5 order.
func (p PostHandlers) Chain() cascade.Chain {
	return appendNonNil(nil, p.OAuth, p.MastoAPI, p.ActivityPub, p.HTML)
}

// PutHandlers names the PUT cascade, spec.md §4.5.
type PutHandlers struct {
	MastoAPI cascade.Handler // nil when disabled
}

// Chain assembles the PUT cascade, spec.md §4.5.
func (p PutHandlers) Chain() cascade.Chain {
	return appendNonNil(nil, p.MastoAPI)
}

func appendNonNil(chain cascade.Chain, handlers ...cascade.Handler) cascade.Chain {
	for _, h := range handlers {
		if h != nil {
			chain = append(chain, h)
		}
	}
	return chain
}
