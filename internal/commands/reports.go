package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/purplebook-dev/purplebook/internal/render"
	"github.com/purplebook-dev/purplebook/internal/report"
)

// reportCommand builds a command that renders one part of the owner's reports.
func reportCommand(a *app, use, short string, show func(*render.Renderer, *report.Reports) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			rep, err := a.reports.Generate(ctx, a.cfg.Owner.ID)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			if err := show(r, rep); err != nil {
				return err
			}
			for _, c := range rep.Conflicts {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: account %q used as %v, reported as %s\n",
					c.Account, c.Categories, c.Resolved)
			}
			return nil
		}),
	}
}

func newTrialBalanceCommand(a *app) *cobra.Command {
	return reportCommand(a, "trial-balance", "Show the trial balance",
		func(r *render.Renderer, rep *report.Reports) error { return r.TrialBalance(rep.TrialBalance) })
}

func newIncomeCommand(a *app) *cobra.Command {
	return reportCommand(a, "income", "Show the income statement",
		func(r *render.Renderer, rep *report.Reports) error { return r.IncomeStatement(rep.IncomeStatement) })
}

func newEquityCommand(a *app) *cobra.Command {
	return reportCommand(a, "equity", "Show the statement of changes in equity",
		func(r *render.Renderer, rep *report.Reports) error { return r.EquityStatement(rep.EquityStatement) })
}

func newBalanceSheetCommand(a *app) *cobra.Command {
	return reportCommand(a, "balance-sheet", "Show the balance sheet",
		func(r *render.Renderer, rep *report.Reports) error { return r.BalanceSheet(rep.BalanceSheet) })
}

func newReportCommand(a *app) *cobra.Command {
	return reportCommand(a, "report", "Show all four financial statements",
		func(r *render.Renderer, rep *report.Reports) error { return r.Reports(rep) })
}

func newLedgerCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ledger [account]",
		Short: "Show the ledger of one account, or of every account",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			owner := a.cfg.Owner.ID

			if len(args) == 1 {
				l, err := a.reports.Ledger(ctx, owner, args[0])
				if err != nil {
					return err
				}
				return r.Ledger(l)
			}

			rep, err := a.reports.Generate(ctx, owner)
			if err != nil {
				return err
			}
			return r.Ledgers(rep.Ledgers)
		}),
	}
}
