package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/model"
)

// Rule names an entry invariant.
type Rule string

// Entry rules checked before an entry is accepted.
const (
	RuleBalanced      Rule = "balanced"
	RuleOwner         Rule = "owner"
	RuleAccountName   Rule = "account_name"
	RuleSameAccount   Rule = "same_account"
	RuleDate          Rule = "date"
	RuleCategory      Rule = "category"
	RuleAmount        Rule = "amount"
	RulePrecision     Rule = "precision"
	RuleCategoryClash Rule = "category_conflict"
)

// Violation describes a single broken rule.
type Violation struct {
	Rule        Rule   `json:"rule"`
	Description string `json:"description"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Description)
}

// ValidationError reports every rule an entry breaks. It unwraps to model.ErrValidation.
type ValidationError struct {
	EntryID    int64
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	if e.EntryID != 0 {
		return fmt.Sprintf("invalid entry %d: %s", e.EntryID, strings.Join(msgs, "; "))
	}
	return "invalid entry: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return model.ErrValidation
}

// ValidateOptions tunes the checks of ValidateEntry.
type ValidateOptions struct {
	// StrictCalendar rejects dates that do not exist, such as 31 April.
	StrictCalendar bool
}

var hundred = decimal.NewFromInt(100)

// ValidateEntry checks the intrinsic rules of a single entry.
func ValidateEntry(e model.JournalEntry, opts ValidateOptions) []Violation {
	var vs []Violation
	add := func(r Rule, format string, args ...any) {
		vs = append(vs, Violation{Rule: r, Description: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(e.OwnerID) == "" {
		add(RuleOwner, "owner id is empty")
	}

	debitName := strings.TrimSpace(e.DebitAccount)
	creditName := strings.TrimSpace(e.CreditAccount)
	if debitName == "" {
		add(RuleAccountName, "debit account name is empty")
	}
	if creditName == "" {
		add(RuleAccountName, "credit account name is empty")
	}
	if debitName != "" && debitName == creditName {
		add(RuleSameAccount, "account %q is on both sides", debitName)
	}

	d := e.Date
	if d.Day < 1 || d.Day > 31 {
		add(RuleDate, "day %d out of range 1-31", d.Day)
	}
	if d.Month < 1 || d.Month > 12 {
		add(RuleDate, "month %d out of range 1-12", d.Month)
	}
	if d.Year < model.MinYear || d.Year > model.MaxYear {
		add(RuleDate, "year %d out of range %d-%d", d.Year, model.MinYear, model.MaxYear)
	}
	if opts.StrictCalendar && len(vs) == 0 && !d.IsCalendarDate() {
		add(RuleDate, "%s is not a calendar date", d)
	}

	if !e.DebitCategory.Valid() {
		add(RuleCategory, "invalid debit category %q", e.DebitCategory)
	}
	if !e.CreditCategory.Valid() {
		add(RuleCategory, "invalid credit category %q", e.CreditCategory)
	}

	checkAmount := func(side string, amt decimal.Decimal) {
		if amt.IsNegative() {
			add(RuleAmount, "%s amount %s is negative", side, amt)
		}
		if !amt.Mul(hundred).Equal(amt.Mul(hundred).Floor()) {
			add(RulePrecision, "%s amount %s has more than 2 decimal places", side, amt)
		}
	}
	checkAmount("debit", e.DebitAmount)
	checkAmount("credit", e.CreditAmount)

	if !e.Balanced() {
		add(RuleBalanced, "debit (%s) != credit (%s)", e.DebitAmount.StringFixed(2), e.CreditAmount.StringFixed(2))
	}

	return vs
}

// CheckCategories compares the categories of e with the ones its accounts are already
// bound to, by the declared chart or by the owner's history.
func CheckCategories(e model.JournalEntry, chart *accounts.Registry, history accounts.Classification) []Violation {
	var vs []Violation
	for _, side := range []model.Side{model.Debit, model.Credit} {
		name, cat, _ := e.Leg(side)
		bound, ok := chart.Resolve(name, history)
		if !ok || bound == cat {
			continue
		}
		vs = append(vs, Violation{
			Rule:        RuleCategoryClash,
			Description: fmt.Sprintf("%s account %q is %s, entry says %s", side, name, bound, cat),
		})
	}
	return vs
}
