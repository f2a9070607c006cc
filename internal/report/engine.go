// Package report derives ledgers and financial statements from journal entries.
// Every builder is a pure function of the entry set.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/model"
)

// Tolerance returns the balance-check threshold: differences strictly below it are
// ignored, so a difference of exactly 0.01 fails.
func Tolerance() decimal.Decimal {
	return decimal.New(1, -2)
}

func withinTolerance(d decimal.Decimal) bool {
	return d.Abs().LessThan(Tolerance())
}

// Reports is the full report set of one owner.
type Reports struct {
	Owner           string              `json:"owner"`
	Conflicts       []accounts.Conflict `json:"conflicts,omitempty"`
	Ledgers         []Ledger            `json:"ledgers"`
	TrialBalance    TrialBalance        `json:"trial_balance"`
	IncomeStatement IncomeStatement     `json:"income_statement"`
	EquityStatement EquityStatement     `json:"equity_statement"`
	BalanceSheet    BalanceSheet        `json:"balance_sheet"`
}

// Balanced reports whether both balance checks pass.
func (r *Reports) Balanced() bool {
	return r.TrialBalance.Balanced && r.BalanceSheet.Balanced
}

// Generate classifies the owner's entries and derives every report from them. Net
// income feeds the equity statement, whose ending equity feeds the balance sheet.
// Entries of another owner or with debit != credit are refused.
func Generate(owner string, entries []model.JournalEntry, policy EquityPolicy) (*Reports, error) {
	if err := checkEntries(owner, entries); err != nil {
		return nil, err
	}

	c := accounts.Classify(entries)
	income := BuildIncomeStatement(entries, c)
	equity := BuildEquityStatement(entries, c, income.NetIncome, policy)

	return &Reports{
		Owner:           owner,
		Conflicts:       c.Conflicts(),
		Ledgers:         BuildLedgers(entries, c),
		TrialBalance:    BuildTrialBalance(entries, c),
		IncomeStatement: income,
		EquityStatement: equity,
		BalanceSheet:    BuildBalanceSheet(entries, c, equity.EndingEquity),
	}, nil
}

// checkEntries refuses entries of another owner or with debit != credit.
func checkEntries(owner string, entries []model.JournalEntry) error {
	for _, e := range entries {
		if e.OwnerID != owner {
			return fmt.Errorf("entry %d of %q: %w", e.ID, e.OwnerID, model.ErrForeignOwner)
		}
		if !e.Balanced() {
			return fmt.Errorf("entry %d (%s != %s): %w",
				e.ID, e.DebitAmount.StringFixed(2), e.CreditAmount.StringFixed(2), model.ErrUnbalancedEntry)
		}
	}
	return nil
}
