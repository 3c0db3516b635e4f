// Package httpcore holds the parsed request/response records shared
// between the connection handler and the handler cascade, independent
// of net/http's server machinery (the core owns its own HTTP/1 framing,
// spec.md §3/§4.4).
package httpcore

import "strings"

// Request is a parsed HTTP request: method, a path already normalized
// by the connection handler (trailing slash and prefix stripped),
// headers keyed by lowercased name, and an optional payload.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Payload []byte
}

// Header looks up a header by name, case-insensitively.
func (r *Request) Header(name string) (string, bool) {
	if r.Headers == nil {
		return "", false
	}
	v, ok := r.Headers[strings.ToLower(name)]
	return v, ok
}
