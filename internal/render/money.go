package render

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats amounts in one currency.
type Money struct {
	code string
	cur  *money.Currency
}

// NewMoney returns a formatter for an ISO 4217 currency code. Unknown codes fall back
// to plain two-decimal numbers.
func NewMoney(code string) Money {
	return Money{code: code, cur: money.GetCurrency(code)}
}

// Format renders d with the currency's symbol and separators.
func (m Money) Format(d decimal.Decimal) string {
	if m.cur == nil {
		return d.StringFixed(2)
	}
	minor := d.Shift(int32(m.cur.Fraction)).Round(0)
	return m.cur.Formatter().Format(minor.IntPart())
}

// FormatNull renders d, or an empty cell when d is unset.
func (m Money) FormatNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return m.Format(d.Decimal)
}

// FormatNonZero renders d, or an empty cell when d is zero.
func (m Money) FormatNonZero(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return m.Format(d)
}
