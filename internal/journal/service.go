package journal

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/metrics"
	"github.com/purplebook-dev/purplebook/internal/model"
)

// ConflictPolicy decides what happens when an entry's category disagrees with the
// category its account is already bound to.
type ConflictPolicy string

const (
	ConflictReject ConflictPolicy = "reject"
	ConflictWarn   ConflictPolicy = "warn"
)

// Options configures a Service.
type Options struct {
	StrictCalendar bool
	Conflicts      ConflictPolicy
}

// Service provides business logic for journal entries.
type Service struct {
	store  Store
	chart  *accounts.Registry
	opts   Options
	logger *slog.Logger

	// mu keeps the conflict check and the insert it guards together.
	mu sync.Mutex
}

// NewService creates a journal Service. chart may be nil when no chart is declared.
func NewService(store Store, chart *accounts.Registry, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Conflicts == "" {
		opts.Conflicts = ConflictReject
	}
	return &Service{store: store, chart: chart, opts: opts, logger: logger}
}

// Append validates e and stores it. Rejections return a *ValidationError.
func (s *Service) Append(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error) {
	e.OwnerID = strings.TrimSpace(e.OwnerID)
	e.DebitAccount = strings.TrimSpace(e.DebitAccount)
	e.CreditAccount = strings.TrimSpace(e.CreditAccount)

	s.mu.Lock()
	defer s.mu.Unlock()

	violations := ValidateEntry(e, ValidateOptions{StrictCalendar: s.opts.StrictCalendar})
	if len(violations) == 0 {
		history, err := s.store.List(ctx, e.OwnerID)
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("listing entries for %s: %w", e.OwnerID, err)
		}
		clashes := CheckCategories(e, s.chart, accounts.Classify(history))
		if len(clashes) > 0 {
			metrics.CategoryConflicts.Inc()
			for _, c := range clashes {
				s.logger.WarnContext(ctx, "category conflict",
					"owner", e.OwnerID, "detail", c.Description, "policy", string(s.opts.Conflicts))
			}
			if s.opts.Conflicts == ConflictReject {
				violations = append(violations, clashes...)
			}
		}
	}

	if len(violations) > 0 {
		metrics.EntriesRejected.WithLabelValues(string(violations[0].Rule)).Inc()
		verr := &ValidationError{EntryID: e.ID, Violations: violations}
		s.logger.InfoContext(ctx, "entry rejected", "owner", e.OwnerID, "error", verr.Error())
		return model.JournalEntry{}, verr
	}

	stored, err := s.store.Append(ctx, e)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("appending entry: %w", err)
	}
	metrics.EntriesAppended.Inc()
	s.logger.InfoContext(ctx, "entry appended",
		"owner", stored.OwnerID,
		"entry_id", stored.ID,
		"debit", stored.DebitAccount,
		"credit", stored.CreditAccount,
		"amount", stored.DebitAmount.StringFixed(2))
	return stored, nil
}

// List returns the owner's entries in insertion order.
func (s *Service) List(ctx context.Context, owner string) ([]model.JournalEntry, error) {
	entries, err := s.store.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("listing entries for %s: %w", owner, err)
	}
	return entries, nil
}

// History returns the owner's entries newest first: by date descending, then id
// descending.
func (s *Service) History(ctx context.Context, owner string) ([]model.JournalEntry, error) {
	entries, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if c := entries[i].Date.Compare(entries[j].Date); c != 0 {
			return c > 0
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

// Import appends entries for owner in order, ignoring the ids and owners they carry.
// It stops at the first rejected entry and returns how many were stored.
//
// Older books recorded owner withdrawals as equity. A side marked equity on an
// account the chart declares as draw is imported as draw; report figures are the
// same either way.
func (s *Service) Import(ctx context.Context, owner string, entries []model.JournalEntry) (int, error) {
	for i, e := range entries {
		e.ID = 0
		e.OwnerID = owner
		e.DebitCategory = s.legacyDraw(ctx, e.DebitAccount, e.DebitCategory)
		e.CreditCategory = s.legacyDraw(ctx, e.CreditAccount, e.CreditCategory)
		if _, err := s.Append(ctx, e); err != nil {
			return i, fmt.Errorf("importing entry %d: %w", i+1, err)
		}
	}
	return len(entries), nil
}

func (s *Service) legacyDraw(ctx context.Context, name string, cat model.Category) model.Category {
	if cat != model.CategoryEquity {
		return cat
	}
	if bound, ok := s.chart.Resolve(strings.TrimSpace(name), accounts.Classification{}); ok && bound == model.CategoryDraw {
		s.logger.InfoContext(ctx, "importing equity side as draw", "account", name)
		return model.CategoryDraw
	}
	return cat
}
