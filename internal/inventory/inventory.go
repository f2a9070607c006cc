// Package inventory turns stock movements into journal entries.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/purplebook-dev/purplebook/internal/metrics"
	"github.com/purplebook-dev/purplebook/internal/model"
)

// Accounts names the accounts stock movements post to.
type Accounts struct {
	Stock       string `yaml:"stock_account" json:"stock_account"`
	Cash        string `yaml:"cash_account" json:"cash_account"`
	CostOfStock string `yaml:"cost_account" json:"cost_account"`
}

// DefaultAccounts returns the account names of the bundled farm chart.
func DefaultAccounts() Accounts {
	return Accounts{
		Stock:       "Persediaan Barang",
		Cash:        "Kas",
		CostOfStock: "Beban Persediaan",
	}
}

// Movement is a quantity of an item entering or leaving stock.
type Movement struct {
	OwnerID   string
	Date      model.EntryDate
	Item      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Value returns quantity x unit price rounded to cents, halves away from zero, so
// 3 x 0.335 books 1.01. The entry amount is this rounded value.
func (m Movement) Value() decimal.Decimal {
	return m.Quantity.Mul(m.UnitPrice).Round(2)
}

func (m Movement) check() error {
	var problems []string
	if strings.TrimSpace(m.Item) == "" {
		problems = append(problems, "item is empty")
	}
	if !m.Quantity.IsPositive() {
		problems = append(problems, fmt.Sprintf("quantity %s must be positive", m.Quantity))
	}
	if m.UnitPrice.IsNegative() {
		problems = append(problems, fmt.Sprintf("unit price %s is negative", m.UnitPrice))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", model.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

// StockIn returns the entry for stock bought with cash: debit stock, credit cash.
func (a Accounts) StockIn(m Movement) (model.JournalEntry, error) {
	if err := m.check(); err != nil {
		return model.JournalEntry{}, err
	}
	return a.entry(m, "Stock in", a.Stock, model.CategoryAsset, a.Cash, model.CategoryAsset), nil
}

// StockOut returns the entry for stock used or sold: debit cost of stock, credit stock.
func (a Accounts) StockOut(m Movement) (model.JournalEntry, error) {
	if err := m.check(); err != nil {
		return model.JournalEntry{}, err
	}
	return a.entry(m, "Stock out", a.CostOfStock, model.CategoryExpense, a.Stock, model.CategoryAsset), nil
}

func (a Accounts) entry(m Movement, verb, debit string, debitCat model.Category, credit string, creditCat model.Category) model.JournalEntry {
	value := m.Value()
	return model.JournalEntry{
		OwnerID:        m.OwnerID,
		Date:           m.Date,
		Description:    fmt.Sprintf("%s: %s (%s x %s)", verb, m.Item, m.Quantity, m.UnitPrice.StringFixed(2)),
		DebitAccount:   debit,
		DebitCategory:  debitCat,
		DebitAmount:    value,
		CreditAccount:  credit,
		CreditCategory: creditCat,
		CreditAmount:   value,
	}
}

// Appender stores validated entries.
type Appender interface {
	Append(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error)
}

// Service records stock movements in the journal.
type Service struct {
	journal  Appender
	accounts Accounts
	logger   *slog.Logger
}

// NewService creates an inventory Service.
func NewService(journal Appender, accounts Accounts, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{journal: journal, accounts: accounts, logger: logger}
}

// In records stock entering inventory.
func (s *Service) In(ctx context.Context, m Movement) (model.JournalEntry, error) {
	e, err := s.accounts.StockIn(m)
	if err != nil {
		return model.JournalEntry{}, err
	}
	return s.record(ctx, "in", m, e)
}

// Out records stock leaving inventory.
func (s *Service) Out(ctx context.Context, m Movement) (model.JournalEntry, error) {
	e, err := s.accounts.StockOut(m)
	if err != nil {
		return model.JournalEntry{}, err
	}
	return s.record(ctx, "out", m, e)
}

func (s *Service) record(ctx context.Context, direction string, m Movement, e model.JournalEntry) (model.JournalEntry, error) {
	stored, err := s.journal.Append(ctx, e)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("recording stock %s of %s: %w", direction, m.Item, err)
	}
	metrics.InventoryMovements.WithLabelValues(direction).Inc()
	s.logger.InfoContext(ctx, "stock movement recorded",
		"owner", stored.OwnerID, "entry_id", stored.ID, "direction", direction,
		"item", m.Item, "quantity", m.Quantity.String(), "value", stored.DebitAmount.StringFixed(2))
	return stored, nil
}
