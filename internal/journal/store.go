package journal

import (
	"context"

	"github.com/purplebook-dev/purplebook/internal/model"
)

// Store is an append-only record store of journal entries.
type Store interface {
	// List returns the owner's entries in insertion order.
	List(ctx context.Context, owner string) ([]model.JournalEntry, error)
	// Append stores e and returns it with its id and creation time assigned.
	Append(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error)
}
