package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/model"
)

// EquityKind says which line of the equity statement an account feeds.
type EquityKind string

const (
	EquityBeginning  EquityKind = "beginning"
	EquityAdditional EquityKind = "additional_capital"
	EquityDraw       EquityKind = "draw"
)

// EquityLine is one account's contribution to a line of the equity statement.
type EquityLine struct {
	Account string          `json:"account"`
	Kind    EquityKind      `json:"kind"`
	Amount  decimal.Decimal `json:"amount"`
}

// EquityStatement reconciles beginning and ending owner's equity.
type EquityStatement struct {
	Lines             []EquityLine    `json:"lines"`
	BeginningEquity   decimal.Decimal `json:"beginning_equity"`
	AdditionalCapital decimal.Decimal `json:"additional_capital"`
	NetIncome         decimal.Decimal `json:"net_income"`
	Draws             decimal.Decimal `json:"draws"`
	EndingEquity      decimal.Decimal `json:"ending_equity"`
}

// BuildEquityStatement sorts every equity and draw side into beginning equity,
// additional capital or draws:
//
//   - draw accounts, and equity accounts matching a draw pattern, count as draws
//     (debit - credit);
//   - equity sides of contribution entries, and equity accounts matching a
//     contribution pattern, count as additional capital (credit - debit);
//   - every other equity side is beginning equity (credit - debit).
//
// Ending equity = beginning + additional capital + net income - draws.
func BuildEquityStatement(entries []model.JournalEntry, c accounts.Classification, netIncome decimal.Decimal, policy EquityPolicy) EquityStatement {
	type key struct {
		account string
		kind    EquityKind
	}
	amounts := make(map[key]decimal.Decimal)
	var order []key

	for _, e := range entries {
		for _, side := range []model.Side{model.Debit, model.Credit} {
			name, _, amount := e.Leg(side)
			cat, _ := c.Category(name)

			var kind EquityKind
			switch {
			case cat == model.CategoryDraw:
				kind = EquityDraw
			case cat != model.CategoryEquity:
				continue
			case policy.IsDraw(name):
				kind = EquityDraw
			case e.Contribution || policy.IsContribution(name):
				kind = EquityAdditional
			default:
				kind = EquityBeginning
			}

			// Draws accumulate debit - credit, the others credit - debit.
			signed := amount
			if (kind == EquityDraw) != (side == model.Debit) {
				signed = amount.Neg()
			}

			k := key{account: name, kind: kind}
			if _, ok := amounts[k]; !ok {
				order = append(order, k)
			}
			amounts[k] = amounts[k].Add(signed)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].kind != order[j].kind {
			return kindRank(order[i].kind) < kindRank(order[j].kind)
		}
		return order[i].account < order[j].account
	})

	es := EquityStatement{
		Lines:             make([]EquityLine, 0, len(order)),
		BeginningEquity:   decimal.Zero,
		AdditionalCapital: decimal.Zero,
		NetIncome:         netIncome,
		Draws:             decimal.Zero,
	}
	for _, k := range order {
		amt := amounts[k]
		es.Lines = append(es.Lines, EquityLine{Account: k.account, Kind: k.kind, Amount: amt})
		switch k.kind {
		case EquityBeginning:
			es.BeginningEquity = es.BeginningEquity.Add(amt)
		case EquityAdditional:
			es.AdditionalCapital = es.AdditionalCapital.Add(amt)
		case EquityDraw:
			es.Draws = es.Draws.Add(amt)
		}
	}
	es.EndingEquity = es.BeginningEquity.Add(es.AdditionalCapital).Add(netIncome).Sub(es.Draws)
	return es
}

func kindRank(k EquityKind) int {
	switch k {
	case EquityBeginning:
		return 0
	case EquityAdditional:
		return 1
	default:
		return 2
	}
}
