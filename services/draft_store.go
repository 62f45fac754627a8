package services

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"productconsole/models"
)

type draftEntry struct {
	draft   Draft
	expires time.Time
}

// DraftStore keeps in-progress forms between requests. Entries expire after ttl of inactivity.
type DraftStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	drafts map[string]draftEntry
	now    func() time.Time
}

// NewDraftStore creates an empty store.
func NewDraftStore(ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &DraftStore{
		ttl:    ttl,
		drafts: make(map[string]draftEntry),
		now:    time.Now,
	}
}

// New creates and stores a create-form draft.
func (s *DraftStore) New() *Draft {
	d := NewDraft(ulid.Make().String())
	s.Save(d)
	return d
}

// ForProduct creates and stores an edit-form draft for p.
func (s *DraftStore) ForProduct(p models.Product) *Draft {
	d := DraftFromProduct(ulid.Make().String(), p)
	s.Save(d)
	return d
}

// Get returns a copy of the draft with id, if it exists and has not expired.
func (s *DraftStore) Get(id string) (*Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.drafts[id]
	if !ok {
		return nil, false
	}
	if s.now().After(entry.expires) {
		delete(s.drafts, id)
		return nil, false
	}
	d := entry.draft
	return &d, true
}

// Save stores a copy of d and refreshes its expiry.
func (s *DraftStore) Save(d *Draft) {
	if d == nil || d.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = draftEntry{draft: *d, expires: s.now().Add(s.ttl)}
}

// Delete drops the draft with id.
func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

// Sweep removes expired drafts and returns how many were dropped.
func (s *DraftStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.drafts {
		if now.After(entry.expires) {
			delete(s.drafts, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored drafts, expired ones included.
func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}
