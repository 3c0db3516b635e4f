// Package htmlui stands in for the human-facing HTML views (user
// timelines, post permalinks, the web login form) that
// original_source/html.c renders. Out of scope for the core (spec.md
// §1, §6); it is last in both the GET and POST cascades, so any
// request nothing else claims reaches here before the connection
// handler turns a decline into a 404.
package htmlui

import "github.com/grunfink/snac-core/internal/httpcore"

// Handler declines every request.
type Handler struct{}

// Get implements cascade.Handler.
func (Handler) Get(*httpcore.Request, string) (httpcore.Response, bool) {
	return httpcore.Response{}, false
}

// Post implements cascade.Handler.
func (Handler) Post(*httpcore.Request, string) (httpcore.Response, bool) {
	return httpcore.Response{}, false
}
