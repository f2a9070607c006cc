package journal

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplebook-dev/purplebook/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y, m, d int) model.EntryDate {
	return model.EntryDate{Day: d, Month: m, Year: y}
}

func newEntry(owner string, date model.EntryDate, debit string, debitCat model.Category, credit string, creditCat model.Category, amount string) model.JournalEntry {
	return model.JournalEntry{
		OwnerID:        owner,
		Date:           date,
		DebitAccount:   debit,
		DebitCategory:  debitCat,
		DebitAmount:    dec(amount),
		CreditAccount:  credit,
		CreditCategory: creditCat,
		CreditAmount:   dec(amount),
	}
}

func TestRoundTrip(t *testing.T) {
	created := time.Date(2025, 1, 3, 9, 30, 0, 0, time.UTC)
	entries := []model.JournalEntry{
		{
			ID:             1,
			OwnerID:        "owner-1",
			Date:           day(2025, 1, 3),
			Description:    "Setoran modal, awal tahun",
			DebitAccount:   "Kas",
			DebitCategory:  model.CategoryAsset,
			DebitAmount:    dec("100000.00"),
			CreditAccount:  "Modal",
			CreditCategory: model.CategoryEquity,
			CreditAmount:   dec("100000.00"),
			Contribution:   true,
			CreatedAt:      created,
		},
		{
			ID:             2,
			OwnerID:        "owner-1",
			Date:           day(2025, 1, 4),
			DebitAccount:   "Prive",
			DebitCategory:  model.CategoryDraw,
			DebitAmount:    dec("2500.50"),
			CreditAccount:  "Kas",
			CreditCategory: model.CategoryAsset,
			CreditAmount:   dec("2500.50"),
			CreatedAt:      created,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, entries))

	got, err := ReadEntries(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range entries {
		assert.Equal(t, entries[i].ID, got[i].ID)
		assert.Equal(t, entries[i].OwnerID, got[i].OwnerID)
		assert.Equal(t, entries[i].Date, got[i].Date)
		assert.Equal(t, entries[i].Description, got[i].Description)
		assert.Equal(t, entries[i].DebitAccount, got[i].DebitAccount)
		assert.Equal(t, entries[i].DebitCategory, got[i].DebitCategory)
		assert.True(t, entries[i].DebitAmount.Equal(got[i].DebitAmount))
		assert.Equal(t, entries[i].CreditAccount, got[i].CreditAccount)
		assert.Equal(t, entries[i].CreditCategory, got[i].CreditCategory)
		assert.True(t, entries[i].CreditAmount.Equal(got[i].CreditAmount))
		assert.Equal(t, entries[i].Contribution, got[i].Contribution)
		assert.True(t, entries[i].CreatedAt.Equal(got[i].CreatedAt))
	}
}

func TestMarshalEntry(t *testing.T) {
	e := newEntry("o", day(2025, 2, 9), "Kas", model.CategoryAsset, "Modal", model.CategoryEquity, "5")
	row := MarshalEntry(e)

	require.Len(t, row, numFields)
	assert.Empty(t, row[colID], "unsaved entries have no id")
	assert.Equal(t, "9", row[colDay])
	assert.Equal(t, "5.00", row[colDebitAmt])
	assert.Equal(t, "false", row[colContrib])
	assert.Empty(t, row[colCreatedAt])
}

func TestReadTestdata(t *testing.T) {
	f, err := os.Open("../../testdata/entries.csv")
	require.NoError(t, err)
	defer f.Close()

	entries, err := ReadEntries(f)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Legacy labels are normalized.
	assert.Equal(t, model.CategoryAsset, entries[0].DebitCategory)
	assert.Equal(t, model.CategoryEquity, entries[0].CreditCategory)
	assert.Equal(t, model.CategoryExpense, entries[1].DebitCategory)
	assert.Equal(t, model.CategoryRevenue, entries[2].CreditCategory)
	assert.True(t, entries[2].DebitAmount.Equal(dec("45000")))
	assert.Equal(t, day(2025, 1, 10), entries[2].Date)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	valid := []string{"", "o", "1", "2", "2025", "", "Kas", "asset", "10", "Modal", "equity", "10", "", ""}

	tests := []struct {
		name string
		col  int
		val  string
		want string
	}{
		{"bad id", colID, "x", "parsing id"},
		{"bad day", colDay, "first", "parsing day"},
		{"bad debit category", colDebitCat, "harta", "parsing debit category"},
		{"bad credit amount", colCreditAmt, "ten", "parsing credit amount"},
		{"bad contribution", colContrib, "maybe", "parsing contribution"},
		{"bad created_at", colCreatedAt, "yesterday", "parsing created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := append([]string(nil), valid...)
			rec[tt.col] = tt.val
			_, err := UnmarshalEntry(rec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := UnmarshalEntry(valid)
	require.NoError(t, err)
}

func TestReadEntries_WrongFieldCount(t *testing.T) {
	_, err := ReadEntries(strings.NewReader("id,owner_id\n1,o\n"))
	require.Error(t, err)
}

func TestReadEntries_Empty(t *testing.T) {
	entries, err := ReadEntries(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
