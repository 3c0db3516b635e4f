// Package oauth stands in for the OAuth 2.0 authorization endpoints the
// Mastodon-compatible API needs (/oauth/authorize, /oauth/token). This
// is explicitly out of scope for the core (spec.md §1, §6); the cascade
// only needs a handler occupying the slot when enable_oauth is set.
package oauth

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
