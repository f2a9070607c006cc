// Package memory is an in-process entry store used by tests and ephemeral servers.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/purplebook-dev/purplebook/internal/model"
)

// Store keeps entries in memory. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	nextID  int64
	entries []model.JournalEntry
	now     func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{nextID: 1, now: time.Now}
}

// List returns the owner's entries in insertion order.
func (s *Store) List(_ context.Context, owner string) ([]model.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.JournalEntry
	for _, e := range s.entries {
		if e.OwnerID == owner {
			out = append(out, e)
		}
	}
	return out, nil
}

// Append assigns the next id and a creation time, then stores e.
func (s *Store) Append(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return model.JournalEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextID
	s.nextID++
	e.CreatedAt = s.now().UTC()
	s.entries = append(s.entries, e)
	return e, nil
}

// Owners returns every owner id with at least one entry, sorted.
func (s *Store) Owners(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owners := []string{}
	for _, e := range s.entries {
		if !slices.Contains(owners, e.OwnerID) {
			owners = append(owners, e.OwnerID)
		}
	}
	slices.Sort(owners)
	return owners, nil
}
