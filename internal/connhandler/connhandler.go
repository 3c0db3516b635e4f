// Package connhandler processes exactly one HTTP/1 request per
// connection: parse, normalize, cascade, shape, write, archive
// (spec.md §4.4).
package connhandler

import (
	"bufio"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/grunfink/snac-core/internal/cascade"
	"github.com/grunfink/snac-core/internal/collab"
	"github.com/grunfink/snac-core/internal/httpcore"
	"github.com/grunfink/snac-core/internal/metrics"
	"github.com/grunfink/snac-core/pkg/logger"
)

// ReadTimeout bounds how long the handler waits for a complete request
// line and headers before treating the connection as dead.
const ReadTimeout = 10 * time.Second

// MaxBodyBytes caps the request payload the core will buffer.
const MaxBodyBytes = 10 << 20 // 10 MiB

// Cascades bundles the three method-keyed handler chains (spec.md §4.5).
type Cascades struct {
	GET  cascade.Chain
	POST cascade.Chain
	PUT  cascade.Chain
}

// Handler owns the config and collaborators needed to process one
// connection at a time. It carries no per-connection state, so one
// Handler is shared by every worker.
type Handler struct {
	Host     string
	Prefix   string
	Cascades Cascades
	Archiver collab.Archiver
}

// Handle parses one HTTP/1 request off conn, dispatches it through the
// handler cascade, writes the response, and archives the result. conn is
// always closed before Handle returns, on every exit path.
func (h *Handler) Handle(conn net.Conn) {
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(ReadTimeout))

	br := bufio.NewReader(conn)
	httpReq, err := http.ReadRequest(br)
	if err != nil {
		// Parse failure or client timeout: close silently, no archive
		// entry (spec.md §7, error kind 1).
		return
	}

	var payload []byte
	if httpReq.Body != nil {
		payload, _ = io.ReadAll(io.LimitReader(httpReq.Body, MaxBodyBytes))
		httpReq.Body.Close()
	}

	headers := make(map[string]string, len(httpReq.Header)+1)
	for k, v := range httpReq.Header {
		if len(v) > 0 {
			headers[strings.ToLower(k)] = v[0]
		}
	}
	if httpReq.URL.RawQuery != "" {
		headers["x-snac-query"] = httpReq.URL.RawQuery
	}

	req := &httpcore.Request{
		Method:  httpReq.Method,
		Path:    normalizePath(httpReq.URL.Path, h.Prefix),
		Headers: headers,
		Payload: payload,
	}

	resp := h.dispatch(req)
	h.shape(req, &resp)

	h.write(conn, resp)

	h.Archiver.Archive(req, payload, resp.Status, nil, resp.Body)
	h.validateJSON(req, payload, resp)
}

// normalizePath strips a trailing "/" and then the configured prefix,
// so that every downstream matcher sees a prefix-free,
// trailing-slash-free path (spec.md §4.4 step 2, §6).
func normalizePath(path, prefix string) string {
	path = strings.TrimSuffix(path, "/")
	if prefix != "" && strings.HasPrefix(path, prefix) {
		path = path[len(prefix):]
	}
	return path
}

// dispatch runs the method-appropriate cascade (spec.md §4.4 step 3).
func (h *Handler) dispatch(req *httpcore.Request) httpcore.Response {
	switch req.Method {
	case http.MethodGet, http.MethodHead:
		if resp, ok := h.Cascades.GET.Run(req, req.Path); ok {
			return resp
		}
	case http.MethodPost:
		if resp, ok := h.Cascades.POST.Run(req, req.Path); ok {
			return resp
		}
	case http.MethodPut:
		if resp, ok := h.Cascades.PUT.Run(req, req.Path); ok {
			return resp
		}
	case http.MethodOptions:
		return httpcore.Response{Status: http.StatusOK, Headers: map[string]string{}}
	default:
		return httpcore.Response{Status: 0}
	}

	return httpcore.Response{Status: 0}
}

// shape applies the status-conditioned response transformations of
// spec.md §4.4 steps 4-8.
func (h *Handler) shape(req *httpcore.Request, resp *httpcore.Response) {
	if resp.Headers == nil {
		resp.Headers = map[string]string{}
	}

	if resp.Status == 0 {
		h.Archiver.ArchiveError("unattended_method", "unattended method", req, req.Payload)
		logger.Debug(1, "connhandler: unattended %s %s", req.Method, req.Path)
		resp.Status = http.StatusNotFound
	}

	switch resp.Status {
	case http.StatusNotFound:
		resp.Body = []byte("<h1>404 Not Found</h1>")
	case http.StatusBadRequest:
		if resp.Body != nil {
			resp.Body = []byte("<h1>400 Bad Request</h1>")
		}
	case http.StatusSeeOther:
		resp.Headers["location"] = resp.Location
	case http.StatusUnauthorized:
		resp.Headers["WWW-Authenticate"] = `Basic realm="@` + resp.AuthHint + `@` + h.Host + ` snac login"`
	}

	if resp.ContentType == "" {
		resp.ContentType = "text/html; charset=utf-8"
	}
	resp.Headers["content-type"] = resp.ContentType
	resp.Headers["x-creator"] = "snac-core"
	resp.Headers["access-control-allow-origin"] = "*"
	resp.Headers["access-control-allow-headers"] = "*"
	if resp.ETag != "" {
		resp.Headers["etag"] = resp.ETag
	}

	resp.ContentLength = len(resp.Body)
	if req.Method == http.MethodHead {
		resp.Body = nil
	}

	metrics.CascadeDispatchCounter.WithLabelValues(req.Method, strconv.Itoa(resp.Status)).Inc()
}

func (h *Handler) write(conn net.Conn, resp httpcore.Response) {
	bw := bufio.NewWriter(conn)

	statusLine := http.StatusText(resp.Status)
	if statusLine == "" {
		statusLine = "Status"
	}
	bw.WriteString("HTTP/1.1 ")
	bw.WriteString(strconv.Itoa(resp.Status))
	bw.WriteString(" ")
	bw.WriteString(statusLine)
	bw.WriteString("\r\n")

	bw.WriteString("content-length: ")
	bw.WriteString(strconv.Itoa(resp.ContentLength))
	bw.WriteString("\r\n")
	bw.WriteString("connection: close\r\n")

	for k, v := range resp.Headers {
		bw.WriteString(k)
		bw.WriteString(": ")
		bw.WriteString(v)
		bw.WriteString("\r\n")
	}
	bw.WriteString("\r\n")

	if len(resp.Body) > 0 {
		bw.Write(resp.Body)
	}

	bw.Flush()
}

// validateJSON is the diagnostic-only check of spec.md §4.4 step 10 /
// §7 error kind 6: a response claiming JSON content-type that does not
// actually parse is archived but still sent as-is.
func (h *Handler) validateJSON(req *httpcore.Request, payload []byte, resp httpcore.Response) {
	if !strings.Contains(resp.ContentType, "json") {
		return
	}
	var v any
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		logger.Warn("connhandler: bad JSON response for %s %s", req.Method, req.Path)
		h.Archiver.ArchiveError("bad_json", "bad JSON", req, payload)
	}
}
