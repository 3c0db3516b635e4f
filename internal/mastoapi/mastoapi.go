// Package mastoapi stands in for the Mastodon-compatible client API
// (statuses, timelines, accounts, media). Out of scope for the core
// (spec.md §1, §6); present so the cascade slot enabled by
// enable_mastodon_api has a concrete, always-declining occupant.
package mastoapi

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

// Put implements cascade.Handler for media uploads / account updates.
func (Handler) Put(*httpcore.Request, string) (httpcore.Response, bool) {
	return httpcore.Response{}, false
}
