// Package sqlite is the durable entry store backed by modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/purplebook-dev/purplebook/internal/model"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

// Store persists journal entries in a SQLite database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens or creates the database at dbPath and runs pending migrations.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Debug("sqlite store opened", "path", dbPath)
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const selectEntries = `SELECT id, owner_id, day, month, year, description,
	debit_account, debit_category, debit_amount,
	credit_account, credit_category, credit_amount,
	contribution, created_at
FROM entries WHERE owner_id = ? ORDER BY id`

// List returns the owner's entries in insertion order.
func (s *Store) List(ctx context.Context, owner string) ([]model.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, selectEntries, owner)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []model.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

const insertEntry = `INSERT INTO entries (
	owner_id, day, month, year, description,
	debit_account, debit_category, debit_amount,
	credit_account, credit_category, credit_amount,
	contribution, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Append inserts e inside its own transaction and returns it with id and creation
// time assigned.
func (s *Store) Append(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	e.CreatedAt = s.now().UTC()
	res, err := tx.ExecContext(ctx, insertEntry,
		e.OwnerID, e.Date.Day, e.Date.Month, e.Date.Year, e.Description,
		e.DebitAccount, string(e.DebitCategory), e.DebitAmount.String(),
		e.CreditAccount, string(e.CreditCategory), e.CreditAmount.String(),
		e.Contribution, e.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("read entry id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.JournalEntry{}, fmt.Errorf("commit entry: %w", err)
	}

	e.ID = id
	s.logger.DebugContext(ctx, "entry saved to sqlite", "owner", e.OwnerID, "entry_id", id)
	return e, nil
}

// Owners returns every owner id with at least one entry.
func (s *Store) Owners(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT owner_id FROM entries ORDER BY owner_id`)
	if err != nil {
		return nil, fmt.Errorf("query owners: %w", err)
	}
	defer rows.Close()

	owners := []string{}
	for rows.Next() {
		var o string
		if err := rows.Scan(&o); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, o)
	}
	return owners, rows.Err()
}

func scanEntry(rows *sql.Rows) (model.JournalEntry, error) {
	var (
		e                         model.JournalEntry
		debitCat, creditCat       string
		debitAmount, creditAmount string
		createdAt                 string
	)
	err := rows.Scan(
		&e.ID, &e.OwnerID, &e.Date.Day, &e.Date.Month, &e.Date.Year, &e.Description,
		&e.DebitAccount, &debitCat, &debitAmount,
		&e.CreditAccount, &creditCat, &creditAmount,
		&e.Contribution, &createdAt,
	)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("scan entry: %w", err)
	}

	e.DebitCategory = model.Category(debitCat)
	e.CreditCategory = model.Category(creditCat)

	if e.DebitAmount, err = decimal.NewFromString(debitAmount); err != nil {
		return model.JournalEntry{}, fmt.Errorf("entry %d: parse debit amount %q: %w", e.ID, debitAmount, err)
	}
	if e.CreditAmount, err = decimal.NewFromString(creditAmount); err != nil {
		return model.JournalEntry{}, fmt.Errorf("entry %d: parse credit amount %q: %w", e.ID, creditAmount, err)
	}
	if e.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return model.JournalEntry{}, fmt.Errorf("entry %d: parse created_at %q: %w", e.ID, createdAt, err)
	}
	return e, nil
}
