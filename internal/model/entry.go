package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Accepted ranges for the fields of an EntryDate.
const (
	MinYear = 2000
	MaxYear = 2100
)

// EntryDate is the booking date of an entry. Each field is range-checked on its own;
// the triple is not required to be a real calendar date.
type EntryDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewEntryDate returns the EntryDate of t.
func NewEntryDate(t time.Time) EntryDate {
	return EntryDate{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// Compare orders dates by (year, month, day).
func (d EntryDate) Compare(o EntryDate) int {
	switch {
	case d.Year != o.Year:
		return d.Year - o.Year
	case d.Month != o.Month:
		return d.Month - o.Month
	default:
		return d.Day - o.Day
	}
}

// IsCalendarDate reports whether d names a day that exists, e.g. not 31 April.
func (d EntryDate) IsCalendarDate() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Day() == d.Day && int(t.Month()) == d.Month
}

// String formats d as DD/MM/YYYY.
func (d EntryDate) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// JournalEntry is one recorded transaction: a single debit paired with a single credit.
// Entries are immutable once stored.
type JournalEntry struct {
	ID             int64           `json:"id"`
	OwnerID        string          `json:"owner_id"`
	Date           EntryDate       `json:"date"`
	Description    string          `json:"description,omitempty"`
	DebitAccount   string          `json:"debit_account"`
	DebitCategory  Category        `json:"debit_category"`
	DebitAmount    decimal.Decimal `json:"debit_amount"`
	CreditAccount  string          `json:"credit_account"`
	CreditCategory Category        `json:"credit_category"`
	CreditAmount   decimal.Decimal `json:"credit_amount"`
	Contribution   bool            `json:"contribution,omitempty"` // owner capital contribution
	CreatedAt      time.Time       `json:"created_at"`
}

// Balanced reports whether the debit amount equals the credit amount exactly.
func (e JournalEntry) Balanced() bool {
	return e.DebitAmount.Equal(e.CreditAmount)
}

// Touches reports whether account participates on either side of e.
func (e JournalEntry) Touches(account string) bool {
	return e.DebitAccount == account || e.CreditAccount == account
}

// Leg returns the account, category and amount on the given side.
func (e JournalEntry) Leg(side Side) (string, Category, decimal.Decimal) {
	if side == Debit {
		return e.DebitAccount, e.DebitCategory, e.DebitAmount
	}
	return e.CreditAccount, e.CreditCategory, e.CreditAmount
}
