// Package archive implements the diagnostics sinks the core writes
// request/response pairs and named error events to (spec.md §6:
// srv_archive, srv_archive_error).
package archive

import (
	"net/http"
	"sync"

	"github.com/grunfink/snac-core/internal/httpcore"
	"github.com/grunfink/snac-core/pkg/logger"
)

// Entry is one archived (request, response) pair.
type Entry struct {
	Method     string
	Path       string
	Status     int
	BodySize   int
	ErrorKind  string
	ErrorMsg   string
}

// Log is an in-process archive: it keeps a bounded ring of recent
// entries for inspection (e.g. by an admin endpoint or tests) and logs
// every entry through pkg/logger, mirroring the source's practice of
// writing archived entries to a log file.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	cap     int
}

// NewLog creates an archive log retaining at most capacity entries.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = 1000
	}
	return &Log{cap: capacity}
}

// Archive records a successfully dispatched (request, response) pair.
func (l *Log) Archive(req *httpcore.Request, payload []byte, status int, headers http.Header, body []byte) {
	e := Entry{Method: req.Method, Path: req.Path, Status: status, BodySize: len(body)}
	l.push(e)
	logger.Debug(1, "RECV %s %s -> %d (%d bytes)", req.Method, req.Path, status, len(body))
}

// ArchiveError records a named diagnostic error, such as
// "unattended_method" or "bad_json".
func (l *Log) ArchiveError(kind, message string, req *httpcore.Request, payload []byte) {
	e := Entry{Method: req.Method, Path: req.Path, ErrorKind: kind, ErrorMsg: message}
	l.push(e)
	logger.Info("%s: %s", kind, message)
}

func (l *Log) push(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	if len(l.entries) > l.cap {
		l.entries = l.entries[len(l.entries)-l.cap:]
	}
}

// Recent returns a copy of the most recently archived entries, oldest
// first. Used by tests and could back an admin introspection route.
func (l *Log) Recent() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
