package report

import (
	"github.com/shopspring/decimal"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/model"
)

// AccountAmount is one account's contribution to a report section.
type AccountAmount struct {
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// IncomeStatement summarizes revenue and expense into net income.
type IncomeStatement struct {
	Revenues     []AccountAmount `json:"revenues"`
	Expenses     []AccountAmount `json:"expenses"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	// NetIncome is negative for a net loss.
	NetIncome decimal.Decimal `json:"net_income"`
}

// BuildIncomeStatement computes revenue (credits - debits) and expense (debits -
// credits) per account and the resulting net income.
func BuildIncomeStatement(entries []model.JournalEntry, c accounts.Classification) IncomeStatement {
	totals := totalsByAccount(entries)

	is := IncomeStatement{
		Revenues:     []AccountAmount{},
		Expenses:     []AccountAmount{},
		TotalRevenue: decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, name := range c.ByCategory(model.CategoryRevenue) {
		amt := totals[name].net(model.CategoryRevenue)
		is.Revenues = append(is.Revenues, AccountAmount{Account: name, Amount: amt})
		is.TotalRevenue = is.TotalRevenue.Add(amt)
	}
	for _, name := range c.ByCategory(model.CategoryExpense) {
		amt := totals[name].net(model.CategoryExpense)
		is.Expenses = append(is.Expenses, AccountAmount{Account: name, Amount: amt})
		is.TotalExpense = is.TotalExpense.Add(amt)
	}
	is.NetIncome = is.TotalRevenue.Sub(is.TotalExpense)
	return is
}
