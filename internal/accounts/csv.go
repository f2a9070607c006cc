package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/purplebook-dev/purplebook/internal/model"
)

const (
	numFields   = 3
	colName     = 0
	colCategory = 1
	colDesc     = 2
)

// ReadAccounts reads a chart of accounts CSV.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes a chart of accounts CSV.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"account_name", "category", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colName] = acct.Name
	row[colCategory] = string(acct.Category)
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	name := strings.TrimSpace(record[colName])
	if name == "" {
		return model.Account{}, fmt.Errorf("empty account name")
	}

	cat, err := model.ParseCategory(record[colCategory])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing category for %q: %w", name, err)
	}

	return model.Account{
		Name:        name,
		Category:    cat,
		Description: record[colDesc],
	}, nil
}
