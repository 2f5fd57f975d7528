// Package store contains the domain stores: one per backend resource, each
// holding a collection (or single-entity) cache plus request lifecycle state,
// and exposing the operations that keep it synchronized with the backend.
//
// Every operation issues exactly one facade call. Shared collection state is
// only written by the latest dispatched operation of a store: overlapping
// invocations race on the wire, so stale responses are discarded instead of
// overwriting fresher data. Each caller still receives its own operation's
// result.
package store

import (
	"sync"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
)

// requestState is embedded in every domain store.
type requestState struct {
	mu       sync.Mutex
	seq      uint64
	inflight int
	lastErr  string
}

// begin marks a new dispatched operation and returns its sequence number.
// The last error is reset, as every original store did on entry.
func (s *requestState) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.inflight++
	s.lastErr = ""
	return s.seq
}

// finish marks an operation complete. Deferred on every exit path so
// Loading() can never stick.
func (s *requestState) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
}

// ifLatest runs fn under the state lock iff op is still the most recently
// dispatched operation. All shared collection writes go through here; reads
// take the same lock.
func (s *requestState) ifLatest(op uint64, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if op == s.seq {
		fn()
	}
}

// Loading reports whether at least one operation is in flight.
func (s *requestState) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// LastError returns the human-readable message of the most recent failure,
// or "" after a clean operation.
func (s *requestState) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// fail records the failure message derived from err (backend payload when
// present, fallback otherwise) and passes err through to the caller.
func (s *requestState) fail(err error, fallback string) error {
	msg := apiclient.MessageFor(err, fallback)
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
	return err
}
