package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/config"
	"github.com/purplebook-dev/purplebook/internal/inventory"
	"github.com/purplebook-dev/purplebook/internal/journal"
	"github.com/purplebook-dev/purplebook/internal/logging"
	"github.com/purplebook-dev/purplebook/internal/render"
	"github.com/purplebook-dev/purplebook/internal/report"
	"github.com/purplebook-dev/purplebook/internal/storage/memory"
	"github.com/purplebook-dev/purplebook/internal/storage/sqlite"
)

// store is an entry store the CLI can list owners of and close.
type store interface {
	journal.Store
	Owners(ctx context.Context) ([]string, error)
	Close() error
}

type memoryStore struct{ *memory.Store }

func (memoryStore) Close() error { return nil }

// app carries the global flags and the services built from the config.
type app struct {
	configPath string
	envFile    string
	owner      string
	format     string

	cfg     *config.Config
	logger  *slog.Logger
	store   store
	chart   *accounts.Registry
	journal *journal.Service
	reports *report.Service
	stock   *inventory.Service
}

// open loads configuration and wires the services.
func (a *app) open() error {
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s not found: run 'purplebook init' first", a.configPath)
		}
		return err
	}
	cfg.ApplyEnv()
	if a.owner != "" {
		cfg.Owner.ID = a.owner
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.Log, os.Stderr)

	chart, err := a.loadChart()
	if err != nil {
		return err
	}
	a.chart = chart

	switch cfg.Database.Driver {
	case "memory":
		a.store = memoryStore{memory.New()}
	default:
		s, err := sqlite.Open(a.resolve(cfg.Database.Path), a.logger)
		if err != nil {
			return err
		}
		a.store = s
	}

	a.journal = journal.NewService(a.store, chart, journal.Options{
		StrictCalendar: cfg.Dates.StrictCalendar,
		Conflicts:      journal.ConflictPolicy(cfg.Accounts.CategoryConflicts),
	}, a.logger)
	a.reports = report.NewService(a.store, cfg.Equity, a.logger)
	a.stock = inventory.NewService(a.journal, cfg.Inventory, a.logger)
	return nil
}

// loadChart reads the chart of accounts. Without a chart file the books run on
// entry history alone.
func (a *app) loadChart() (*accounts.Registry, error) {
	if a.cfg.Accounts.ChartFile == "" {
		return accounts.NewRegistry(nil), nil
	}
	chart, err := accounts.Load(a.resolve(a.cfg.Accounts.ChartFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.logger.Warn("chart of accounts not found, using entry history only",
				"path", a.cfg.Accounts.ChartFile)
			return accounts.NewRegistry(nil), nil
		}
		return nil, err
	}
	return chart, nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error("closing store", "error", err)
	}
}

// resolve makes p relative to the config file's directory.
func (a *app) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(a.configPath), p)
}

func (a *app) renderer(cmd *cobra.Command) (*render.Renderer, error) {
	f, err := render.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	return render.New(cmd.OutOrStdout(), f, a.cfg.Currency.Code), nil
}

// run wraps a command body with open/close.
func (a *app) run(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.open(); err != nil {
			return err
		}
		defer a.close()
		return fn(cmd.Context(), cmd, args)
	}
}
