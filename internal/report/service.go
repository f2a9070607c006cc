package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/metrics"
	"github.com/purplebook-dev/purplebook/internal/model"
)

// EntryLister lists an owner's entries in insertion order.
type EntryLister interface {
	List(ctx context.Context, owner string) ([]model.JournalEntry, error)
}

// Service computes reports from stored entries on every call.
type Service struct {
	entries EntryLister
	policy  EquityPolicy
	logger  *slog.Logger
}

// NewService creates a report Service.
func NewService(entries EntryLister, policy EquityPolicy, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{entries: entries, policy: policy, logger: logger}
}

// Generate builds the owner's full report set. Failed balance checks are logged and
// counted, never returned as errors.
func (s *Service) Generate(ctx context.Context, owner string) (*Reports, error) {
	start := time.Now()

	entries, err := s.entries.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("listing entries for %s: %w", owner, err)
	}

	r, err := Generate(owner, entries, s.policy)
	if err != nil {
		s.logger.ErrorContext(ctx, "report generation failed", "owner", owner, "error", err)
		return nil, fmt.Errorf("generating reports for %s: %w", owner, err)
	}

	metrics.ReportsGenerated.WithLabelValues("full").Inc()
	metrics.ReportDuration.Observe(time.Since(start).Seconds())
	s.observe(ctx, r)

	s.logger.DebugContext(ctx, "reports generated", "owner", owner, "entries", len(entries))
	return r, nil
}

// observe logs conflicts and counts failed balance checks. It never changes r.
func (s *Service) observe(ctx context.Context, r *Reports) {
	for _, c := range r.Conflicts {
		s.logger.WarnContext(ctx, "account observed with several categories",
			"owner", r.Owner, "account", c.Account, "resolved", string(c.Resolved))
	}
	if !r.TrialBalance.Balanced {
		metrics.ReportImbalances.WithLabelValues("trial_balance").Inc()
		s.logger.WarnContext(ctx, "trial balance does not balance",
			"owner", r.Owner, "difference", r.TrialBalance.Difference.String())
	}
	if !r.BalanceSheet.Balanced {
		metrics.ReportImbalances.WithLabelValues("balance_sheet").Inc()
		s.logger.WarnContext(ctx, "balance sheet does not balance",
			"owner", r.Owner, "discrepancy", r.BalanceSheet.Discrepancy.String())
	}
}

// Ledger builds the ledger of one account. An account without activity yields an
// empty ledger.
func (s *Service) Ledger(ctx context.Context, owner, account string) (Ledger, error) {
	entries, err := s.entries.List(ctx, owner)
	if err != nil {
		return Ledger{}, fmt.Errorf("listing entries for %s: %w", owner, err)
	}
	if err := checkEntries(owner, entries); err != nil {
		return Ledger{}, fmt.Errorf("building ledger of %s: %w", account, err)
	}

	c := accounts.Classify(entries)
	cat, ok := c.Category(account)
	normal := model.Debit
	if ok {
		normal = cat.NormalSide()
	}

	l := BuildLedger(account, normal, entries)
	l.Category = cat
	metrics.ReportsGenerated.WithLabelValues("ledger").Inc()
	return l, nil
}
