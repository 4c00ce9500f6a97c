package service

import (
	"sync"
	"time"

	"engagement-service/internal/domain"
)

// recordStore holds the client-side copy of each content record the
// engagement and QA services are working on, together with the mutation
// sequencing that decides which server response becomes the visible truth.
//
// Every mutation takes a stamp before issuing; a response only replaces
// the held record when no later-stamped response has been applied. This
// upgrades the naive "last network response wins" policy: back-to-back
// toggles can still race on the wire, but a straggling response to a
// superseded request is discarded instead of overwriting newer state.
//
// Held copies carry the same validity window as the detail cache. An
// expired copy is treated as absent, so changes made by other users or
// instances become visible within one ttl. Entries untouched for a full
// window are swept, keeping the map bounded on a long-running service.
type recordStore struct {
	mu        sync.Mutex
	entries   map[string]*recordEntry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type recordEntry struct {
	mu         sync.Mutex
	store      *recordStore
	record     *domain.ContentRecord
	heldAt     time.Time
	touchedAt  time.Time
	issuedSeq  uint64
	appliedSeq uint64
}

func newRecordStore(ttl time.Duration) *recordStore {
	return &recordStore{
		entries: make(map[string]*recordEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *recordStore) entry(contentID string) *recordEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.ttl {
		s.sweepLocked(now)
		s.lastSweep = now
	}

	e, ok := s.entries[contentID]
	if !ok {
		e = &recordEntry{store: s, touchedAt: now}
		s.entries[contentID] = e
	}
	return e
}

// forget drops the held copy, e.g. after the record is deleted upstream.
func (s *recordStore) forget(contentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, contentID)
}

// sweepLocked removes entries no write has touched for a full window.
// A sweep can drop an entry with a mutation still on the wire; the
// straggling response then lands on the orphaned entry, and the next
// read starts clean. Staleness stays bounded either way because every
// mutation evicts the detail cache key regardless of sequencing.
func (s *recordStore) sweepLocked(now time.Time) {
	for id, e := range s.entries {
		e.mu.Lock()
		idle := now.Sub(e.touchedAt) >= s.ttl
		e.mu.Unlock()
		if idle {
			delete(s.entries, id)
		}
	}
}

// stamp reserves the next mutation sequence number for this record.
func (e *recordEntry) stamp() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.issuedSeq++
	e.touchedAt = e.store.now()
	return e.issuedSeq
}

// apply replaces the held record with a mutation response. Returns false
// when a later-stamped response has already been applied, in which case
// the held record is left untouched.
func (e *recordEntry) apply(stamp uint64, record *domain.ContentRecord) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.store.now()
	e.touchedAt = now

	if stamp <= e.appliedSeq {
		return false
	}
	e.appliedSeq = stamp
	e.record = record
	e.heldAt = now
	return true
}

// setFromRead installs a freshly fetched record when nothing is held.
// A mutation response landing between the caller's miss and this call
// wins; reads never clobber mutation truth.
func (e *recordEntry) setFromRead(record *domain.ContentRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.record != nil {
		return
	}
	now := e.store.now()
	e.record = record
	e.heldAt = now
	e.touchedAt = now
}

// current returns the held record copy. A copy past its validity window
// is dropped and reported as absent, forcing the caller back through the
// cache and upstream.
func (e *recordEntry) current() *domain.ContentRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.record == nil {
		return nil
	}
	if e.store.now().Sub(e.heldAt) >= e.store.ttl {
		e.record = nil
		return nil
	}
	return e.record
}
