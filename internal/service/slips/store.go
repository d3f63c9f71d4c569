package slips

import (
	"sync"

	"github.com/bmscold/slipdesk/internal/domain/models"
)

// Store holds the client-side copy of the ledger's slip list. The
// ledger stays the source of truth; this copy is transient and possibly
// stale. Exactly two writers exist: a full replace after a successful
// refresh and a single-field archive URL patch after lazy generation.
// Both only ever add information, so last-writer-wins is acceptable.
type Store struct {
	mu      sync.RWMutex
	records []models.SlipRecord
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a freshly fetched list.
func (s *Store) Replace(records []models.SlipRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
}

// Snapshot returns a copy of the current list.
func (s *Store) Snapshot() []models.SlipRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SlipRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Get looks a record up by its client-side id.
func (s *Store) Get(id int64) (models.SlipRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.SlipRecord{}, false
}

// PatchArchiveURL writes the archive URL onto one record in place. This
// is the read-path fix-up after a lazy generation; it deliberately does
// not trigger a refresh.
func (s *Store) PatchArchiveURL(id int64, url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].ArchiveURL = url
			return true
		}
	}
	return false
}

// Len reports the current list size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
