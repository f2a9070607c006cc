package report

import (
	"github.com/shopspring/decimal"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/model"
)

// BalanceSheet states assets against liabilities and ending equity.
type BalanceSheet struct {
	Assets                    []AccountAmount `json:"assets"`
	Liabilities               []AccountAmount `json:"liabilities"`
	TotalAssets               decimal.Decimal `json:"total_assets"`
	TotalLiabilities          decimal.Decimal `json:"total_liabilities"`
	EndingEquity              decimal.Decimal `json:"ending_equity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"total_liabilities_and_equity"`
	// Discrepancy is total assets - (total liabilities + ending equity).
	Discrepancy decimal.Decimal `json:"discrepancy"`
	Balanced    bool            `json:"balanced"`
}

// BuildBalanceSheet totals asset (debit - credit) and liability (credit - debit)
// accounts and checks them against endingEquity.
func BuildBalanceSheet(entries []model.JournalEntry, c accounts.Classification, endingEquity decimal.Decimal) BalanceSheet {
	totals := totalsByAccount(entries)

	bs := BalanceSheet{
		Assets:           []AccountAmount{},
		Liabilities:      []AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		EndingEquity:     endingEquity,
	}
	for _, name := range c.ByCategory(model.CategoryAsset) {
		amt := totals[name].net(model.CategoryAsset)
		bs.Assets = append(bs.Assets, AccountAmount{Account: name, Amount: amt})
		bs.TotalAssets = bs.TotalAssets.Add(amt)
	}
	for _, name := range c.ByCategory(model.CategoryLiability) {
		amt := totals[name].net(model.CategoryLiability)
		bs.Liabilities = append(bs.Liabilities, AccountAmount{Account: name, Amount: amt})
		bs.TotalLiabilities = bs.TotalLiabilities.Add(amt)
	}

	bs.TotalLiabilitiesAndEquity = bs.TotalLiabilities.Add(endingEquity)
	bs.Discrepancy = bs.TotalAssets.Sub(bs.TotalLiabilitiesAndEquity)
	bs.Balanced = withinTolerance(bs.Discrepancy)
	return bs
}
