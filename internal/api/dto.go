package api

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/purplebook-dev/purplebook/internal/inventory"
	"github.com/purplebook-dev/purplebook/internal/model"
)

// createEntryRequest is the body of POST /entries. Shape is checked here; bookkeeping
// rules are checked by the journal service.
type createEntryRequest struct {
	Day            int              `json:"day" validate:"required"`
	Month          int              `json:"month" validate:"required"`
	Year           int              `json:"year" validate:"required"`
	Description    string           `json:"description" validate:"max=500"`
	DebitAccount   string           `json:"debit_account" validate:"required,max=200"`
	DebitCategory  string           `json:"debit_category" validate:"required"`
	DebitAmount    *decimal.Decimal `json:"debit_amount" validate:"required"`
	CreditAccount  string           `json:"credit_account" validate:"required,max=200"`
	CreditCategory string           `json:"credit_category" validate:"required"`
	CreditAmount   *decimal.Decimal `json:"credit_amount" validate:"required"`
	Contribution   bool             `json:"contribution"`
}

func (r createEntryRequest) toEntry(owner string) model.JournalEntry {
	return model.JournalEntry{
		OwnerID:        owner,
		Date:           model.EntryDate{Day: r.Day, Month: r.Month, Year: r.Year},
		Description:    r.Description,
		DebitAccount:   r.DebitAccount,
		DebitCategory:  category(r.DebitCategory),
		DebitAmount:    *r.DebitAmount,
		CreditAccount:  r.CreditAccount,
		CreditCategory: category(r.CreditCategory),
		CreditAmount:   *r.CreditAmount,
		Contribution:   r.Contribution,
	}
}

// category parses legacy labels too; an unknown name is passed through so the
// journal service reports it with the entry's other violations.
func category(s string) model.Category {
	if c, err := model.ParseCategory(s); err == nil {
		return c
	}
	return model.Category(strings.ToLower(strings.TrimSpace(s)))
}

// stockRequest is the body of POST /stock/in and /stock/out.
type stockRequest struct {
	Day       int              `json:"day" validate:"required"`
	Month     int              `json:"month" validate:"required"`
	Year      int              `json:"year" validate:"required"`
	Item      string           `json:"item" validate:"required,max=200"`
	Quantity  *decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"required"`
}

func (r stockRequest) toMovement(owner string) inventory.Movement {
	return inventory.Movement{
		OwnerID:   owner,
		Date:      model.EntryDate{Day: r.Day, Month: r.Month, Year: r.Year},
		Item:      r.Item,
		Quantity:  *r.Quantity,
		UnitPrice: *r.UnitPrice,
	}
}
