package model

import (
	"fmt"
	"strings"
)

// Category classifies an account in the books.
type Category string

const (
	CategoryAsset     Category = "asset"
	CategoryLiability Category = "liability"
	CategoryEquity    Category = "equity"
	CategoryRevenue   Category = "revenue"
	CategoryExpense   Category = "expense"
	CategoryDraw      Category = "draw"
)

// Categories lists every category in presentation order.
var Categories = []Category{
	CategoryAsset,
	CategoryLiability,
	CategoryEquity,
	CategoryDraw,
	CategoryRevenue,
	CategoryExpense,
}

// Side is one side of a double entry.
type Side string

const (
	Debit  Side = "debit"
	Credit Side = "credit"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// legacyLabels maps the labels found in older books to categories.
var legacyLabels = map[string]Category{
	"aktiva":     CategoryAsset,
	"aset":       CategoryAsset,
	"utang":      CategoryLiability,
	"kewajiban":  CategoryLiability,
	"modal":      CategoryEquity,
	"ekuitas":    CategoryEquity,
	"pendapatan": CategoryRevenue,
	"beban":      CategoryExpense,
	"prive":      CategoryDraw,
}

// ParseCategory accepts a canonical category name or a legacy label, case-insensitively.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	c := Category(key)
	if c.Valid() {
		return c, nil
	}
	if c, ok := legacyLabels[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c is one of the six categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryAsset, CategoryLiability, CategoryEquity, CategoryRevenue, CategoryExpense, CategoryDraw:
		return true
	}
	return false
}

// NormalSide returns the side on which increases to c are recorded.
// Asset, Expense and Draw are debit-normal; the rest are credit-normal.
func (c Category) NormalSide() Side {
	switch c {
	case CategoryAsset, CategoryExpense, CategoryDraw:
		return Debit
	default:
		return Credit
	}
}

// Rank orders categories for presentation; unknown categories sort last.
func (c Category) Rank() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return len(Categories)
}
