package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"asset", CategoryAsset},
		{"Liability", CategoryLiability},
		{" EQUITY ", CategoryEquity},
		{"draw", CategoryDraw},
		{"Aktiva", CategoryAsset},
		{"Utang", CategoryLiability},
		{"Modal", CategoryEquity},
		{"Pendapatan", CategoryRevenue},
		{"Beban", CategoryExpense},
		{"Prive", CategoryDraw},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		require.NoError(t, err, "ParseCategory(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseCategory(%q)", tt.in)
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	_, err := ParseCategory("inventory")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestNormalSide(t *testing.T) {
	debitNormal := []Category{CategoryAsset, CategoryExpense, CategoryDraw}
	creditNormal := []Category{CategoryLiability, CategoryEquity, CategoryRevenue}
	for _, c := range debitNormal {
		assert.Equal(t, Debit, c.NormalSide(), "%s", c)
	}
	for _, c := range creditNormal {
		assert.Equal(t, Credit, c.NormalSide(), "%s", c)
	}
	assert.Equal(t, Credit, Debit.Opposite())
	assert.Equal(t, Debit, Credit.Opposite())
}

func TestCategoryRank(t *testing.T) {
	assert.Less(t, CategoryAsset.Rank(), CategoryLiability.Rank())
	assert.Less(t, CategoryRevenue.Rank(), CategoryExpense.Rank())
	assert.Equal(t, len(Categories), Category("bogus").Rank())
}

func TestEntryDateCompare(t *testing.T) {
	a := EntryDate{Day: 31, Month: 1, Year: 2025}
	b := EntryDate{Day: 1, Month: 2, Year: 2025}
	c := EntryDate{Day: 1, Month: 1, Year: 2026}
	assert.Negative(t, a.Compare(b))
	assert.Negative(t, b.Compare(c))
	assert.Positive(t, c.Compare(a))
	assert.Zero(t, a.Compare(a))
}

func TestEntryDateIsCalendarDate(t *testing.T) {
	assert.True(t, EntryDate{Day: 29, Month: 2, Year: 2024}.IsCalendarDate())
	assert.False(t, EntryDate{Day: 29, Month: 2, Year: 2025}.IsCalendarDate())
	assert.False(t, EntryDate{Day: 31, Month: 4, Year: 2025}.IsCalendarDate())
	assert.True(t, EntryDate{Day: 31, Month: 12, Year: 2025}.IsCalendarDate())
}

func TestNewEntryDate(t *testing.T) {
	d := NewEntryDate(time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, EntryDate{Day: 7, Month: 3, Year: 2025}, d)
	assert.Equal(t, "07/03/2025", d.String())
}

func TestJournalEntryLeg(t *testing.T) {
	e := JournalEntry{
		DebitAccount:   "Kas",
		DebitCategory:  CategoryAsset,
		DebitAmount:    decimal.RequireFromString("100.00"),
		CreditAccount:  "Modal",
		CreditCategory: CategoryEquity,
		CreditAmount:   decimal.RequireFromString("100"),
	}
	assert.True(t, e.Balanced())
	assert.True(t, e.Touches("Kas"))
	assert.False(t, e.Touches("Utang"))

	name, cat, amt := e.Leg(Credit)
	assert.Equal(t, "Modal", name)
	assert.Equal(t, CategoryEquity, cat)
	assert.Equal(t, "100.00", amt.StringFixed(2))
}
