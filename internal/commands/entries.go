package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/journal"
	"github.com/purplebook-dev/purplebook/internal/model"
)

func newAddCommand(a *app) *cobra.Command {
	var (
		date           string
		description    string
		debit          string
		debitCategory  string
		credit         string
		creditCategory string
		amount         string
		contribution   bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a journal entry",
		Long: `Record one debit and one credit of the same amount.

Categories may be omitted for accounts in the chart of accounts or already used
in earlier entries.`,
		Example: `  purplebook add --debit Kas --credit Modal --credit-category equity --amount 100000 --description "Initial capital"
  purplebook add --date 15/01/2025 --debit "Beban Sewa" --credit Kas --amount 250000`,
		Args: cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			d, err := parseDate(date, time.Now())
			if err != nil {
				return err
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}

			owner := a.cfg.Owner.ID
			history, err := a.journal.List(ctx, owner)
			if err != nil {
				return err
			}
			c := accounts.Classify(history)

			debitCat, err := a.category(debit, debitCategory, c)
			if err != nil {
				return err
			}
			creditCat, err := a.category(credit, creditCategory, c)
			if err != nil {
				return err
			}

			stored, err := a.journal.Append(ctx, model.JournalEntry{
				OwnerID:        owner,
				Date:           d,
				Description:    description,
				DebitAccount:   debit,
				DebitCategory:  debitCat,
				DebitAmount:    amt,
				CreditAccount:  credit,
				CreditCategory: creditCat,
				CreditAmount:   amt,
				Contribution:   contribution,
			})
			if err != nil {
				return err
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Entry(stored)
		}),
	}

	f := cmd.Flags()
	f.StringVar(&date, "date", "", "entry date as DD/MM/YYYY (default today)")
	f.StringVarP(&description, "description", "m", "", "what the entry is for")
	f.StringVar(&debit, "debit", "", "debit account (required)")
	f.StringVar(&debitCategory, "debit-category", "", "debit account category")
	f.StringVar(&credit, "credit", "", "credit account (required)")
	f.StringVar(&creditCategory, "credit-category", "", "credit account category")
	f.StringVar(&amount, "amount", "", "amount for both sides (required)")
	f.BoolVar(&contribution, "contribution", false, "mark the entry as an owner capital contribution")
	_ = cmd.MarkFlagRequired("debit")
	_ = cmd.MarkFlagRequired("credit")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// category returns the explicit category, or the one name is already bound to.
func (a *app) category(name, explicit string, history accounts.Classification) (model.Category, error) {
	if explicit != "" {
		return model.ParseCategory(explicit)
	}
	if c, ok := a.chart.Resolve(strings.TrimSpace(name), history); ok {
		return c, nil
	}
	return "", fmt.Errorf("account %q is not in the chart of accounts: give its category", name)
}

// parseDate reads DD/MM/YYYY. An empty string means the day of now.
func parseDate(s string, now time.Time) (model.EntryDate, error) {
	if s == "" {
		return model.NewEntryDate(now), nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return model.EntryDate{}, fmt.Errorf("invalid date %q: want DD/MM/YYYY", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return model.EntryDate{}, fmt.Errorf("invalid date %q: want DD/MM/YYYY", s)
		}
		nums[i] = n
	}
	return model.EntryDate{Day: nums[0], Month: nums[1], Year: nums[2]}, nil
}

func newHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recorded entries, newest first",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			entries, err := a.journal.History(ctx, a.cfg.Owner.ID)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.History(entries)
		}),
	}
}

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Append entries from a CSV export",
		Long: `Append entries from a CSV file written by 'purplebook export'.

Ids and owners in the file are ignored; every row is validated like a new entry.
Import stops at the first rejected row.`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			entries, err := journal.ReadEntries(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			n, err := a.journal.Import(ctx, a.cfg.Owner.ID, entries)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d entries\n", n, len(entries))
			return err
		}),
	}
}

func newExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.csv]",
		Short: "Write all entries as CSV, to stdout by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			entries, err := a.journal.List(ctx, a.cfg.Owner.ID)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return journal.WriteEntries(cmd.OutOrStdout(), entries)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			if err := journal.WriteEntries(f, entries); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entries to %s\n", len(entries), args[0])
			return nil
		}),
	}
}

func newOwnersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "owners",
		Short: "List the owners with entries in the store",
		Long: `List every owner id with at least one entry in the configured store.
The owner of the current config is marked; switch with --owner.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			owners, err := a.store.Owners(ctx)
			if err != nil {
				return fmt.Errorf("listing owners: %w", err)
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Owners(owners, a.cfg.Owner.ID)
		}),
	}
}
