package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/purplebook-dev/purplebook/internal/model"
)

// ChartFile is the chart of accounts path relative to the books directory.
const ChartFile = "chart-of-accounts.csv"

// Registry provides in-memory lookup over the declared chart of accounts.
type Registry struct {
	accounts []model.Account
	byName   map[string]model.Account
}

// NewRegistry creates a Registry from a slice of accounts.
func NewRegistry(accounts []model.Account) *Registry {
	byName := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byName[a.Name] = a
	}
	return &Registry{accounts: accounts, byName: byName}
}

// Load reads a chart of accounts CSV file and returns a Registry.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewRegistry(accts), nil
}

// All returns all declared accounts.
func (r *Registry) All() []model.Account {
	return r.accounts
}

// Get returns a declared account by name.
func (r *Registry) Get(name string) (model.Account, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Exists reports whether an account name is declared.
func (r *Registry) Exists(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// ByCategory returns all declared accounts of the given category.
func (r *Registry) ByCategory(cat model.Category) []model.Account {
	var result []model.Account
	for _, a := range r.accounts {
		if a.Category == cat {
			result = append(result, a)
		}
	}
	return result
}

// Resolve returns the category name is already bound to. The declared chart wins
// over the category observed in history.
func (r *Registry) Resolve(name string, history Classification) (model.Category, bool) {
	if r != nil {
		if a, ok := r.byName[name]; ok {
			return a.Category, true
		}
	}
	return history.Category(name)
}

// Save writes the chart of accounts to path, creating parent directories.
func (r *Registry) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, r.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
