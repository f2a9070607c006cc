package accounts

import (
	"slices"
	"sort"

	"github.com/purplebook-dev/purplebook/internal/model"
)

// Conflict records an account name observed with more than one category.
type Conflict struct {
	Account    string           `json:"account"`
	Categories []model.Category `json:"categories"` // distinct, in order of first observation
	Resolved   model.Category   `json:"resolved"`   // the category every report uses
}

// Classification maps account names to categories.
type Classification struct {
	categories map[string]model.Category
	seen       map[string][]model.Category
}

// Classify derives each account's category from the entries. Every entry yields a
// debit-side and a credit-side observation, applied in input order; the last
// observation for a name wins.
func Classify(entries []model.JournalEntry) Classification {
	c := Classification{
		categories: make(map[string]model.Category),
		seen:       make(map[string][]model.Category),
	}
	for _, e := range entries {
		c.observe(e.DebitAccount, e.DebitCategory)
		c.observe(e.CreditAccount, e.CreditCategory)
	}
	return c
}

func (c *Classification) observe(name string, cat model.Category) {
	c.categories[name] = cat
	if !slices.Contains(c.seen[name], cat) {
		c.seen[name] = append(c.seen[name], cat)
	}
}

// Category returns the resolved category of an account.
func (c Classification) Category(name string) (model.Category, bool) {
	cat, ok := c.categories[name]
	return cat, ok
}

// Len returns the number of distinct accounts.
func (c Classification) Len() int {
	return len(c.categories)
}

// Accounts returns every account name ordered by category, then name.
func (c Classification) Accounts() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := c.categories[names[i]].Rank(), c.categories[names[j]].Rank()
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

// ByCategory returns the account names resolved to cat, sorted by name.
func (c Classification) ByCategory(cat model.Category) []string {
	var names []string
	for name, got := range c.categories {
		if got == cat {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Conflicts returns the accounts observed with more than one category, sorted by name.
func (c Classification) Conflicts() []Conflict {
	var out []Conflict
	for name, cats := range c.seen {
		if len(cats) < 2 {
			continue
		}
		out = append(out, Conflict{
			Account:    name,
			Categories: slices.Clone(cats),
			Resolved:   c.categories[name],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account < out[j].Account })
	return out
}
