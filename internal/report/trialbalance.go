package report

import (
	"github.com/shopspring/decimal"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/model"
)

// TrialBalanceRow is the net balance of one account. The net sits in the normal-side
// column when non-negative and in the opposite column otherwise.
type TrialBalanceRow struct {
	Account     string          `json:"account"`
	Category    model.Category  `json:"category"`
	DebitTotal  decimal.Decimal `json:"debit_total"`
	CreditTotal decimal.Decimal `json:"credit_total"`
	Net         decimal.Decimal `json:"net"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists every account's net balance with the column totals.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
	Difference  decimal.Decimal   `json:"difference"`
	Balanced    bool              `json:"balanced"`
}

type sideTotals struct {
	debit, credit decimal.Decimal
}

// net returns the balance of t seen from the normal side of cat.
func (t sideTotals) net(cat model.Category) decimal.Decimal {
	if cat.NormalSide() == model.Debit {
		return t.debit.Sub(t.credit)
	}
	return t.credit.Sub(t.debit)
}

func totalsByAccount(entries []model.JournalEntry) map[string]sideTotals {
	totals := make(map[string]sideTotals)
	for _, e := range entries {
		d := totals[e.DebitAccount]
		d.debit = d.debit.Add(e.DebitAmount)
		totals[e.DebitAccount] = d

		c := totals[e.CreditAccount]
		c.credit = c.credit.Add(e.CreditAmount)
		totals[e.CreditAccount] = c
	}
	return totals
}

// BuildTrialBalance computes per-account net balances and the balance check. Rows
// follow the classification order: category, then account name.
func BuildTrialBalance(entries []model.JournalEntry, c accounts.Classification) TrialBalance {
	totals := totalsByAccount(entries)

	tb := TrialBalance{Rows: []TrialBalanceRow{}, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, name := range c.Accounts() {
		cat, _ := c.Category(name)
		t := totals[name]
		row := TrialBalanceRow{
			Account:     name,
			Category:    cat,
			DebitTotal:  t.debit,
			CreditTotal: t.credit,
			Net:         t.net(cat),
		}

		column := cat.NormalSide()
		amount := row.Net
		if row.Net.IsNegative() {
			column = column.Opposite()
			amount = row.Net.Abs()
		}
		if column == model.Debit {
			row.Debit = amount
		} else {
			row.Credit = amount
		}

		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
		tb.Rows = append(tb.Rows, row)
	}

	tb.Difference = tb.TotalDebit.Sub(tb.TotalCredit).Abs()
	tb.Balanced = withinTolerance(tb.Difference)
	return tb
}
