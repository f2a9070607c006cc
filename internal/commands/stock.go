package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/purplebook-dev/purplebook/internal/inventory"
	"github.com/purplebook-dev/purplebook/internal/model"
)

func newStockCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Record stock entering or leaving inventory",
	}
	cmd.AddCommand(
		stockMoveCommand(a, "in", "Record stock bought with cash",
			func(s *inventory.Service) func(context.Context, inventory.Movement) (model.JournalEntry, error) { return s.In }),
		stockMoveCommand(a, "out", "Record stock used or sold",
			func(s *inventory.Service) func(context.Context, inventory.Movement) (model.JournalEntry, error) { return s.Out }),
	)
	return cmd
}

// stockMoveCommand takes the service method lazily because services exist only
// once the command runs.
func stockMoveCommand(a *app, use, short string, method func(*inventory.Service) func(context.Context, inventory.Movement) (model.JournalEntry, error)) *cobra.Command {
	var date, quantity, unitPrice string

	cmd := &cobra.Command{
		Use:     use + " <item>",
		Short:   short,
		Example: fmt.Sprintf("  purplebook stock %s Pupuk --quantity 10 --unit-price 15000", use),
		Args:    cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			d, err := parseDate(date, time.Now())
			if err != nil {
				return err
			}
			qty, err := decimal.NewFromString(quantity)
			if err != nil {
				return fmt.Errorf("parsing quantity %q: %w", quantity, err)
			}
			price, err := decimal.NewFromString(unitPrice)
			if err != nil {
				return fmt.Errorf("parsing unit price %q: %w", unitPrice, err)
			}

			stored, err := method(a.stock)(ctx, inventory.Movement{
				OwnerID:   a.cfg.Owner.ID,
				Date:      d,
				Item:      args[0],
				Quantity:  qty,
				UnitPrice: price,
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

	cmd.Flags().StringVar(&date, "date", "", "movement date as DD/MM/YYYY (default today)")
	cmd.Flags().StringVar(&quantity, "quantity", "", "quantity moved (required)")
	cmd.Flags().StringVar(&unitPrice, "unit-price", "", "price per unit (required)")
	_ = cmd.MarkFlagRequired("quantity")
	_ = cmd.MarkFlagRequired("unit-price")

	return cmd
}
