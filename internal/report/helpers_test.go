package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/purplebook-dev/purplebook/internal/model"
)

const owner = "owner-1"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

// book builds a balanced entry; ids follow the order of calls within one test.
type book struct {
	nextID  int64
	entries []model.JournalEntry
}

func (b *book) add(date model.EntryDate, debit string, debitCat model.Category, credit string, creditCat model.Category, amount string) *model.JournalEntry {
	b.nextID++
	b.entries = append(b.entries, model.JournalEntry{
		ID:             b.nextID,
		OwnerID:        owner,
		Date:           date,
		DebitAccount:   debit,
		DebitCategory:  debitCat,
		DebitAmount:    dec(amount),
		CreditAccount:  credit,
		CreditCategory: creditCat,
		CreditAmount:   dec(amount),
	})
	return &b.entries[len(b.entries)-1]
}

func day(y, m, d int) model.EntryDate {
	return model.EntryDate{Day: d, Month: m, Year: y}
}

func reversed(entries []model.JournalEntry) []model.JournalEntry {
	out := make([]model.JournalEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

// farmBook is a small mixed history covering every category.
func farmBook() []model.JournalEntry {
	var b book
	b.add(day(2025, 1, 1), "Kas", model.CategoryAsset, "Modal", model.CategoryEquity, "100000.00")
	b.add(day(2025, 1, 3), "Peralatan", model.CategoryAsset, "Utang Usaha", model.CategoryLiability, "35000.00")
	b.add(day(2025, 1, 5), "Beban Sewa", model.CategoryExpense, "Kas", model.CategoryAsset, "20000.00")
	b.add(day(2025, 1, 10), "Persediaan Barang", model.CategoryAsset, "Kas", model.CategoryAsset, "12500.50")
	b.add(day(2025, 2, 1), "Kas", model.CategoryAsset, "Pendapatan Penjualan", model.CategoryRevenue, "45000.00")
	b.add(day(2025, 2, 2), "Beban Persediaan", model.CategoryExpense, "Persediaan Barang", model.CategoryAsset, "4000.25")
	b.add(day(2025, 2, 3), "Prive", model.CategoryDraw, "Kas", model.CategoryAsset, "5000.00")
	b.add(day(2025, 2, 4), "Utang Usaha", model.CategoryLiability, "Kas", model.CategoryAsset, "10000.00")
	c := b.add(day(2025, 2, 5), "Kas", model.CategoryAsset, "Tambahan Modal", model.CategoryEquity, "15000.00")
	c.Contribution = true
	b.add(day(2025, 1, 20), "Piutang Usaha", model.CategoryAsset, "Pendapatan Penjualan", model.CategoryRevenue, "7000.00")
	return b.entries
}
