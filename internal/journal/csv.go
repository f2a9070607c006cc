package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/purplebook-dev/purplebook/internal/model"
)

// Header is the CSV header for exported entries.
const Header = "id,owner_id,day,month,year,description,debit_account,debit_category,debit_amount,credit_account,credit_category,credit_amount,contribution,created_at"

const (
	numFields     = 14
	colID         = 0
	colOwner      = 1
	colDay        = 2
	colMonth      = 3
	colYear       = 4
	colDesc       = 5
	colDebitAcct  = 6
	colDebitCat   = 7
	colDebitAmt   = 8
	colCreditAcct = 9
	colCreditCat  = 10
	colCreditAmt  = 11
	colContrib    = 12
	colCreatedAt  = 13
)

// ReadEntries reads entries from a CSV reader. The header row is required.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading entries CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.JournalEntry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteEntries writes entries to a CSV writer, including the header.
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEntry converts an entry to a CSV row.
func MarshalEntry(e model.JournalEntry) []string {
	row := make([]string, numFields)
	if e.ID != 0 {
		row[colID] = strconv.FormatInt(e.ID, 10)
	}
	row[colOwner] = e.OwnerID
	row[colDay] = strconv.Itoa(e.Date.Day)
	row[colMonth] = strconv.Itoa(e.Date.Month)
	row[colYear] = strconv.Itoa(e.Date.Year)
	row[colDesc] = e.Description
	row[colDebitAcct] = e.DebitAccount
	row[colDebitCat] = string(e.DebitCategory)
	row[colDebitAmt] = e.DebitAmount.StringFixed(2)
	row[colCreditAcct] = e.CreditAccount
	row[colCreditCat] = string(e.CreditCategory)
	row[colCreditAmt] = e.CreditAmount.StringFixed(2)
	row[colContrib] = strconv.FormatBool(e.Contribution)
	if !e.CreatedAt.IsZero() {
		row[colCreatedAt] = e.CreatedAt.UTC().Format(time.RFC3339)
	}
	return row
}

// UnmarshalEntry converts a CSV row to an entry. Categories accept legacy labels; an
// empty id or created_at is left zero for the store to assign.
func UnmarshalEntry(record []string) (model.JournalEntry, error) {
	if len(record) != numFields {
		return model.JournalEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var (
		e   model.JournalEntry
		err error
	)

	if s := strings.TrimSpace(record[colID]); s != "" {
		e.ID, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("parsing id %q: %w", s, err)
		}
	}
	e.OwnerID = strings.TrimSpace(record[colOwner])

	ints := []struct {
		name string
		col  int
		dst  *int
	}{
		{"day", colDay, &e.Date.Day},
		{"month", colMonth, &e.Date.Month},
		{"year", colYear, &e.Date.Year},
	}
	for _, f := range ints {
		*f.dst, err = strconv.Atoi(strings.TrimSpace(record[f.col]))
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("parsing %s %q: %w", f.name, record[f.col], err)
		}
	}

	e.Description = record[colDesc]
	e.DebitAccount = strings.TrimSpace(record[colDebitAcct])
	e.CreditAccount = strings.TrimSpace(record[colCreditAcct])

	if e.DebitCategory, err = model.ParseCategory(record[colDebitCat]); err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing debit category: %w", err)
	}
	if e.CreditCategory, err = model.ParseCategory(record[colCreditCat]); err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing credit category: %w", err)
	}

	if e.DebitAmount, err = decimal.NewFromString(strings.TrimSpace(record[colDebitAmt])); err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing debit amount %q: %w", record[colDebitAmt], err)
	}
	if e.CreditAmount, err = decimal.NewFromString(strings.TrimSpace(record[colCreditAmt])); err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing credit amount %q: %w", record[colCreditAmt], err)
	}

	if s := strings.TrimSpace(record[colContrib]); s != "" {
		if e.Contribution, err = strconv.ParseBool(s); err != nil {
			return model.JournalEntry{}, fmt.Errorf("parsing contribution %q: %w", s, err)
		}
	}

	if s := strings.TrimSpace(record[colCreatedAt]); s != "" {
		if e.CreatedAt, err = time.Parse(time.RFC3339, s); err != nil {
			return model.JournalEntry{}, fmt.Errorf("parsing created_at %q: %w", s, err)
		}
	}

	return e, nil
}
