package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/model"
)

// LedgerRow is one movement of an account. Exactly one of Debit and Credit is set.
type LedgerRow struct {
	Date    model.EntryDate     `json:"date"`
	EntryID int64               `json:"entry_id"`
	Label   string              `json:"label"`
	Debit   decimal.NullDecimal `json:"debit"`
	Credit  decimal.NullDecimal `json:"credit"`
	Balance decimal.Decimal     `json:"balance"`
}

// Ledger is the chronological movement history of one account.
type Ledger struct {
	Account    string          `json:"account"`
	Category   model.Category  `json:"category,omitempty"`
	NormalSide model.Side      `json:"normal_side"`
	Rows       []LedgerRow     `json:"rows"`
	Balance    decimal.Decimal `json:"balance"`
}

// BuildLedger selects the entries touching account, orders them by date (ties keep
// input order) and computes the running balance on the account's normal side.
// No matching entries yields an empty ledger with a zero balance.
func BuildLedger(account string, normal model.Side, entries []model.JournalEntry) Ledger {
	var selected []model.JournalEntry
	for _, e := range entries {
		if e.Touches(account) {
			selected = append(selected, e)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Date.Compare(selected[j].Date) < 0
	})

	l := Ledger{Account: account, NormalSide: normal, Rows: []LedgerRow{}, Balance: decimal.Zero}
	post := func(e model.JournalEntry, side model.Side) {
		_, _, amount := e.Leg(side)
		delta := amount
		if side != normal {
			delta = amount.Neg()
		}
		l.Balance = l.Balance.Add(delta)

		row := LedgerRow{Date: e.Date, EntryID: e.ID, Balance: l.Balance}
		if side == model.Debit {
			row.Label = "from " + e.CreditAccount
			row.Debit = decimal.NewNullDecimal(amount)
		} else {
			row.Label = "to " + e.DebitAccount
			row.Credit = decimal.NewNullDecimal(amount)
		}
		l.Rows = append(l.Rows, row)
	}

	for _, e := range selected {
		// An entry naming the account on both sides posts twice, debit first.
		if e.DebitAccount == account {
			post(e, model.Debit)
		}
		if e.CreditAccount == account {
			post(e, model.Credit)
		}
	}
	return l
}

// BuildLedgers builds a ledger for every classified account, in category then name
// order.
func BuildLedgers(entries []model.JournalEntry, c accounts.Classification) []Ledger {
	names := c.Accounts()
	ledgers := make([]Ledger, 0, len(names))
	for _, name := range names {
		cat, _ := c.Category(name)
		l := BuildLedger(name, cat.NormalSide(), entries)
		l.Category = cat
		ledgers = append(ledgers, l)
	}
	return ledgers
}
