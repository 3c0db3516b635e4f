// Package memuser is a minimal in-memory implementation of the
// collab.Users/collab.User contracts. Persistent user storage is out of
// scope for the core (spec.md §1, §6), but the binary still needs a
// concrete collaborator to link against and to exercise the background
// driver's per-user scan end to end.
package memuser

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/grunfink/snac-core/internal/collab"
)

// Record is one local actor.
type Record struct {
	Handle      string
	DisplayName string
}

type user struct {
	handle   string
	display  string
	actorURL string
}

func (u user) Handle() string      { return u.handle }
func (u user) DisplayName() string { return u.display }
func (u user) ActorURL() string    { return u.actorURL }

// Store holds Records keyed by handle, guarded by a mutex since it's
// read by both the federation listener's worker goroutines and the
// background driver's goroutine.
type Store struct {
	mu      sync.RWMutex
	baseURL string
	records map[string]Record
}

// NewStore creates an empty Store. baseURL is used to build each user's
// ActorURL (host/users/handle).
func NewStore(baseURL string) *Store {
	return &Store{baseURL: baseURL, records: make(map[string]Record)}
}

// Add registers a user, overwriting any existing record with the same
// handle.
func (s *Store) Add(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.Handle] = r
}

// List implements collab.Users.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	handles := make([]string, 0, len(s.records))
	for h := range s.records {
		handles = append(handles, h)
	}
	sort.Strings(handles)
	return handles, nil
}

// Open implements collab.Users.
func (s *Store) Open(_ context.Context, handle string) (collab.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[handle]
	if !ok {
		return nil, fmt.Errorf("memuser: no such user %q", handle)
	}
	return user{handle: r.Handle, display: r.DisplayName, actorURL: fmt.Sprintf("%s/users/%s", s.baseURL, r.Handle)}, nil
}
