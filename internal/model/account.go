package model

// Account is a declared row of the chart of accounts.
type Account struct {
	Name        string
	Category    Category
	Description string
}
