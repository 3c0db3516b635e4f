package connhandler

import (
	"bufio"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/grunfink/snac-core/internal/cascade"
	"github.com/grunfink/snac-core/internal/httpcore"
)

type fakeArchiver struct {
	errors []string
}

func (f *fakeArchiver) Archive(req *httpcore.Request, payload []byte, status int, headers http.Header, body []byte) {
}

func (f *fakeArchiver) ArchiveError(kind, message string, req *httpcore.Request, payload []byte) {
	f.errors = append(f.errors, kind)
}

func declineHandler(*httpcore.Request, string) (httpcore.Response, bool) {
	return httpcore.Response{}, false
}

func robotsHandler(req *httpcore.Request, path string) (httpcore.Response, bool) {
	if path != "/robots.txt" {
		return httpcore.Response{}, false
	}
	return httpcore.Response{
		Status:      http.StatusOK,
		ContentType: "text/plain",
		Body:        []byte("User-agent: *\nDisallow: /\n"),
	}, true
}

func exchange(t *testing.T, h *Handler, raw string) *http.Response {
	t.Helper()

	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		h.Handle(server)
		close(done)
	}()

	if _, err := client.Write([]byte(raw)); err != nil {
		t.Fatalf("write request: %v", err)
	}

	resp, err := http.ReadResponse(bufio.NewReader(client), nil)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	<-done
	client.Close()
	return resp
}

// TestHandle_ServesClaimedRoute verifies a GET cascade hit is written
// back with the handler's body and content-type.
func TestHandle_ServesClaimedRoute(t *testing.T) {
	arch := &fakeArchiver{}
	h := &Handler{
		Host:     "example.test",
		Cascades: Cascades{GET: cascade.Chain{robotsHandler}},
		Archiver: arch,
	}

	resp := exchange(t, h, "GET /robots.txt HTTP/1.1\r\nHost: example.test\r\n\r\n")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/plain" {
		t.Errorf("expected text/plain, got %q", ct)
	}
	if cors := resp.Header.Get("Access-Control-Allow-Origin"); cors != "*" {
		t.Errorf("expected CORS header set, got %q", cors)
	}
}

// TestHandle_UnattendedMethodBecomes404 verifies an all-declining
// cascade produces a 404 with the minimal HTML body and one archived
// unattended_method error (spec.md S4).
func TestHandle_UnattendedMethodBecomes404(t *testing.T) {
	arch := &fakeArchiver{}
	h := &Handler{
		Host:     "example.test",
		Cascades: Cascades{GET: cascade.Chain{declineHandler}},
		Archiver: arch,
	}

	resp := exchange(t, h, "GET /anything HTTP/1.1\r\nHost: example.test\r\n\r\n")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	if len(arch.errors) != 1 || arch.errors[0] != "unattended_method" {
		t.Errorf("expected exactly one unattended_method archive entry, got %v", arch.errors)
	}
}

// TestHandle_Options200Empty verifies OPTIONS always returns 200 with
// an empty body, regardless of the configured cascades.
func TestHandle_Options200Empty(t *testing.T) {
	arch := &fakeArchiver{}
	h := &Handler{Host: "example.test", Archiver: arch}

	resp := exchange(t, h, "OPTIONS /whatever HTTP/1.1\r\nHost: example.test\r\n\r\n")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if cl := resp.Header.Get("Content-Length"); cl != "0" {
		t.Errorf("expected empty body, content-length %q", cl)
	}
}

// TestHandle_PrefixStripping verifies a request under the configured
// prefix dispatches identically to the same path without it (spec.md
// S6).
func TestHandle_PrefixStripping(t *testing.T) {
	arch := &fakeArchiver{}
	h := &Handler{
		Host:     "example.test",
		Prefix:   "/snac",
		Cascades: Cascades{GET: cascade.Chain{robotsHandler}},
		Archiver: arch,
	}

	resp := exchange(t, h, "GET /snac/robots.txt HTTP/1.1\r\nHost: example.test\r\n\r\n")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected prefixed request to dispatch to robots handler, got %d", resp.StatusCode)
	}
}

// TestHandle_TrailingSlashStripped verifies a trailing slash does not
// change dispatch.
func TestHandle_TrailingSlashStripped(t *testing.T) {
	arch := &fakeArchiver{}
	h := &Handler{
		Host:     "example.test",
		Cascades: Cascades{GET: cascade.Chain{robotsHandler}},
		Archiver: arch,
	}

	resp := exchange(t, h, "GET /robots.txt/ HTTP/1.1\r\nHost: example.test\r\n\r\n")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected trailing slash stripped before dispatch, got %d", resp.StatusCode)
	}
}

// TestHandle_HeadMatchesGetHeadersEmptyBody verifies HEAD gets the same
// headers as GET but with no body (spec.md universal property 6).
func TestHandle_HeadMatchesGetHeadersEmptyBody(t *testing.T) {
	arch := &fakeArchiver{}
	h := &Handler{
		Host:     "example.test",
		Cascades: Cascades{GET: cascade.Chain{robotsHandler}},
		Archiver: arch,
	}

	getResp := exchange(t, h, "GET /robots.txt HTTP/1.1\r\nHost: example.test\r\n\r\n")
	defer getResp.Body.Close()
	headResp := exchange(t, h, "HEAD /robots.txt HTTP/1.1\r\nHost: example.test\r\n\r\n")
	defer headResp.Body.Close()

	if headResp.Header.Get("Content-Type") != getResp.Header.Get("Content-Type") {
		t.Error("expected HEAD and GET content-type headers to match")
	}
	if cl := headResp.Header.Get("Content-Length"); cl != getResp.Header.Get("Content-Length") {
		t.Errorf("expected HEAD content-length to match GET's %q, got %q", getResp.Header.Get("Content-Length"), cl)
	}
}

// TestHandle_MalformedRequestClosesSilently verifies garbage input
// closes the connection without writing a response or archiving
// anything (spec.md §7 error kind 1).
func TestHandle_MalformedRequestClosesSilently(t *testing.T) {
	arch := &fakeArchiver{}
	h := &Handler{Host: "example.test", Archiver: arch}

	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		h.Handle(server)
		close(done)
	}()

	_, _ = client.Write([]byte("not an http request\r\n\r\n"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Handle did not return for a malformed request")
	}

	if len(arch.errors) != 0 {
		t.Errorf("expected no archive entries for a parse failure, got %v", arch.errors)
	}

	buf := make([]byte, 1)
	client.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := client.Read(buf); err == nil {
		t.Error("expected connection to be closed with no response written")
	}
}
