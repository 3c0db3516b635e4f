// Package federation stands in for the ActivityPub GET/POST handlers
// (actor documents, inbox/outbox delivery, object fetch). Federation
// semantics are explicitly out of scope for this core (spec.md §1,
// §6) — the core only guarantees that *some* handler occupies this
// cascade slot so ordering and fallthrough are exercised end to end.
package federation

import "github.com/grunfink/snac-core/internal/httpcore"

// Handler declines every request; a real implementation would parse
// actor/object paths here and serve Activity Streams documents.
type Handler struct{}

// Get implements cascade.Handler for the GET cascade slot.
func (Handler) Get(*httpcore.Request, string) (httpcore.Response, bool) {
	return httpcore.Response{}, false
}

// Post implements cascade.Handler for the POST cascade slot.
func (Handler) Post(*httpcore.Request, string) (httpcore.Response, bool) {
	return httpcore.Response{}, false
}
