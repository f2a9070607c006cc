package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/config"
)

func newInitCommand() *cobra.Command {
	var name string
	var business string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new set of books",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := runInit(absDir, name, business, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized books for %s at %s (owner %s)\n", name, absDir, cfg.Owner.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&business, "business", "farm", "business kind for the default chart of accounts")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	return cmd
}

func runInit(dir, name, business string, force bool) (*config.Config, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return nil, fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}

	cfg := config.Default(name)
	if err := os.MkdirAll(filepath.Join(dir, filepath.Dir(cfg.Database.Path)), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	chart := accounts.NewRegistry(accounts.DefaultChart(business))
	if err := chart.Save(filepath.Join(dir, cfg.Accounts.ChartFile)); err != nil {
		return nil, fmt.Errorf("writing chart of accounts: %w", err)
	}

	gitignore := "data/\n.env\nexports/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return nil, fmt.Errorf("writing .gitignore: %w", err)
	}

	return cfg, nil
}
