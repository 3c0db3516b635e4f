// Package cascade implements the ordered handler chain that routes each
// request through ordered subsystem handlers until one claims it
// (spec.md §4.5).
package cascade

import "github.com/grunfink/snac-core/internal/httpcore"

// Handler matches a request against one subsystem's routes. It returns
// (response, true) when it claims the request, or (zero, false) to
// decline and let the cascade try the next handler.
//
// spec.md's design notes prefer this explicit Option-style boolean over
// the source's in-band "status 0 means decline" convention, while
// keeping the same semantics: the cascade stops at the first non-zero
// status (here: first true).
type Handler func(req *httpcore.Request, path string) (httpcore.Response, bool)

// Chain is an ordered, fixed list of handlers. Order is semantically
// significant (spec.md §4.5) and is therefore always an explicit slice,
// never a registry that could silently reorder itself.
type Chain []Handler

// Run executes the chain in order and returns the first claimed
// response. ok is false if every handler declined.
func (c Chain) Run(req *httpcore.Request, path string) (httpcore.Response, bool) {
	for _, h := range c {
		if h == nil {
			continue
		}
		if resp, claimed := h(req, path); claimed {
			return resp, true
		}
	}
	return httpcore.Response{}, false
}
