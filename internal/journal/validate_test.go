package journal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/model"
)

func rules(vs []Violation) []Rule {
	var out []Rule
	for _, v := range vs {
		out = append(out, v.Rule)
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	e := newEntry("o", day(2025, 1, 15), "Beban Sewa", model.CategoryExpense, "Kas", model.CategoryAsset, "100.00")
	assert.Empty(t, ValidateEntry(e, ValidateOptions{}))
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.JournalEntry)
		want   Rule
	}{
		{"unbalanced", func(e *model.JournalEntry) { e.CreditAmount = dec("99.99") }, RuleBalanced},
		{"empty owner", func(e *model.JournalEntry) { e.OwnerID = " " }, RuleOwner},
		{"empty debit name", func(e *model.JournalEntry) { e.DebitAccount = "" }, RuleAccountName},
		{"empty credit name", func(e *model.JournalEntry) { e.CreditAccount = "  " }, RuleAccountName},
		{"same account", func(e *model.JournalEntry) { e.CreditAccount = e.DebitAccount }, RuleSameAccount},
		{"day zero", func(e *model.JournalEntry) { e.Date.Day = 0 }, RuleDate},
		{"day 32", func(e *model.JournalEntry) { e.Date.Day = 32 }, RuleDate},
		{"month 13", func(e *model.JournalEntry) { e.Date.Month = 13 }, RuleDate},
		{"year 1999", func(e *model.JournalEntry) { e.Date.Year = 1999 }, RuleDate},
		{"year 2101", func(e *model.JournalEntry) { e.Date.Year = 2101 }, RuleDate},
		{"bad debit category", func(e *model.JournalEntry) { e.DebitCategory = "harta" }, RuleCategory},
		{"bad credit category", func(e *model.JournalEntry) { e.CreditCategory = "" }, RuleCategory},
		{"negative", func(e *model.JournalEntry) {
			e.DebitAmount = dec("-5")
			e.CreditAmount = dec("-5")
		}, RuleAmount},
		{"three decimals", func(e *model.JournalEntry) {
			e.DebitAmount = dec("1.005")
			e.CreditAmount = dec("1.005")
		}, RulePrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEntry("o", day(2025, 1, 15), "Beban Sewa", model.CategoryExpense, "Kas", model.CategoryAsset, "100.00")
			tt.mutate(&e)
			vs := ValidateEntry(e, ValidateOptions{})
			assert.Contains(t, rules(vs), tt.want)
		})
	}
}

func TestValidate_BoundaryDates(t *testing.T) {
	for _, d := range []model.EntryDate{day(2000, 1, 1), day(2100, 12, 31)} {
		e := newEntry("o", d, "Kas", model.CategoryAsset, "Modal", model.CategoryEquity, "1")
		assert.Empty(t, ValidateEntry(e, ValidateOptions{}), "date %s", d)
	}
}

func TestValidate_ZeroAmountAccepted(t *testing.T) {
	e := newEntry("o", day(2025, 1, 1), "Kas", model.CategoryAsset, "Modal", model.CategoryEquity, "0")
	assert.Empty(t, ValidateEntry(e, ValidateOptions{}))
}

func TestValidate_Calendar(t *testing.T) {
	e := newEntry("o", day(2025, 4, 31), "Kas", model.CategoryAsset, "Modal", model.CategoryEquity, "1")

	assert.Empty(t, ValidateEntry(e, ValidateOptions{}), "lenient by default")

	vs := ValidateEntry(e, ValidateOptions{StrictCalendar: true})
	require.Len(t, vs, 1)
	assert.Equal(t, RuleDate, vs[0].Rule)
	assert.Contains(t, vs[0].Description, "31/04/2025")
}

func TestValidate_CollectsAll(t *testing.T) {
	e := newEntry("o", day(1990, 0, 40), "", model.CategoryAsset, "Kas", "x", "1")
	e.CreditAmount = dec("2")

	got := rules(ValidateEntry(e, ValidateOptions{}))
	assert.Contains(t, got, RuleAccountName)
	assert.Contains(t, got, RuleDate)
	assert.Contains(t, got, RuleCategory)
	assert.Contains(t, got, RuleBalanced)
}

func TestValidationError(t *testing.T) {
	err := error(&ValidationError{EntryID: 7, Violations: []Violation{
		{Rule: RuleBalanced, Description: "debit (1.00) != credit (2.00)"},
		{Rule: RuleDate, Description: "month 13 out of range 1-12"},
	}})

	assert.True(t, errors.Is(err, model.ErrValidation))
	assert.Equal(t, "invalid entry 7: balanced: debit (1.00) != credit (2.00); date: month 13 out of range 1-12", err.Error())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 2)
}

func TestCheckCategories(t *testing.T) {
	chart := accounts.NewRegistry([]model.Account{{Name: "Kas", Category: model.CategoryAsset}})
	history := accounts.Classify([]model.JournalEntry{
		newEntry("o", day(2025, 1, 1), "Kas", model.CategoryAsset, "Terong", model.CategoryRevenue, "1"),
	})

	ok := newEntry("o", day(2025, 1, 2), "Kas", model.CategoryAsset, "Terong", model.CategoryRevenue, "1")
	assert.Empty(t, CheckCategories(ok, chart, history))

	fresh := newEntry("o", day(2025, 1, 2), "Peralatan", model.CategoryAsset, "Utang Bank", model.CategoryLiability, "1")
	assert.Empty(t, CheckCategories(fresh, chart, history), "new accounts never conflict")

	bad := newEntry("o", day(2025, 1, 2), "Terong", model.CategoryAsset, "Kas", model.CategoryRevenue, "1")
	vs := CheckCategories(bad, chart, history)
	require.Len(t, vs, 2)
	assert.Equal(t, RuleCategoryClash, vs[0].Rule)
	assert.Contains(t, vs[0].Description, `"Terong" is revenue`)
	assert.Contains(t, vs[1].Description, `"Kas" is asset`)

	assert.Empty(t, CheckCategories(ok, nil, accounts.Classify(nil)))
}
