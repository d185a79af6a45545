package services

import (
	"sync"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

// entryRemover is implemented by every local collection that must drop
// an entry once its remote delete succeeds.
type entryRemover interface {
	RemoveEntry(id int)
}

// Tombstones records entry ids whose remote delete succeeded.
// Fetch and aggregation results are filtered through it so an in-flight
// response never resurrects a deleted entry.
type Tombstones struct {
	mu  sync.RWMutex
	ids map[int]struct{}
}

// NewTombstones creates an empty tombstone set.
func NewTombstones() *Tombstones {
	return &Tombstones{ids: make(map[int]struct{})}
}

// Add marks id as deleted. It reports false if id was already marked.
func (t *Tombstones) Add(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.ids[id]; ok {
		return false
	}
	t.ids[id] = struct{}{}
	return true
}

// Has reports whether id has been deleted.
func (t *Tombstones) Has(id int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.ids[id]
	return ok
}

// Filter returns entries without any deleted ids.
// The input slice is returned unchanged when nothing is filtered.
func (t *Tombstones) Filter(entries []domain.Entry) []domain.Entry {
	if t == nil {
		return entries
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.ids) == 0 {
		return entries
	}
	drop := false
	for _, e := range entries {
		if _, ok := t.ids[e.ID]; ok {
			drop = true
			break
		}
	}
	if !drop {
		return entries
	}
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := t.ids[e.ID]; !ok {
			out = append(out, e)
		}
	}
	return out
}
