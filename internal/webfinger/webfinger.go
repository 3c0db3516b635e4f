// Package webfinger answers the one WebFinger route actor discovery
// needs (RFC 7033 acct: resource lookup). Everything else WebFinger
// related (subscription, remote lookup) is out of scope for the core
// (spec.md §1, §6); this is the minimal piece needed so the GET cascade
// has somewhere real to route "/.well-known/webfinger".
package webfinger

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/grunfink/snac-core/internal/collab"
	"github.com/grunfink/snac-core/internal/httpcore"
)

type link struct {
	Rel  string `json:"rel"`
	Type string `json:"type,omitempty"`
	Href string `json:"href,omitempty"`
}

type jrd struct {
	Subject string `json:"subject"`
	Links   []link `json:"links"`
}

// Handler resolves acct:handle@host to an actor's JRD document.
type Handler struct {
	Host  string
	Users collab.Users
}

// Get implements cascade.Handler.
func (h *Handler) Get(req *httpcore.Request, path string) (httpcore.Response, bool) {
	if path != "/.well-known/webfinger" {
		return httpcore.Response{}, false
	}

	resource, ok := queryParam(req, "resource")
	if !ok || !strings.HasPrefix(resource, "acct:") {
		return httpcore.NewResponse(400, nil), true
	}

	acct := strings.TrimPrefix(resource, "acct:")
	handle, host, found := strings.Cut(acct, "@")
	if !found || !strings.EqualFold(host, h.Host) {
		return httpcore.NewResponse(404, nil), true
	}

	u, err := h.Users.Open(context.Background(), handle)
	if err != nil {
		return httpcore.NewResponse(404, nil), true
	}

	doc := jrd{
		Subject: resource,
		Links: []link{
			{Rel: "self", Type: "application/activity+json", Href: u.ActorURL()},
		},
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return httpcore.NewResponse(500, nil), true
	}

	resp := httpcore.NewResponse(200, body)
	resp.ContentType = "application/jrd+json; charset=utf-8"
	return resp, true
}

// queryParam pulls a value out of the request's raw query string. The
// connection handler hands the cascade the normalized path only, so the
// raw query string is recovered from the X-Snac-Query header the
// connection handler sets during normalization (see connhandler).
func queryParam(req *httpcore.Request, key string) (string, bool) {
	raw, ok := req.Header("x-snac-query")
	if !ok {
		return "", false
	}
	for _, pair := range strings.Split(raw, "&") {
		k, v, found := strings.Cut(pair, "=")
		if found && k == key {
			return v, true
		}
	}
	return "", false
}
