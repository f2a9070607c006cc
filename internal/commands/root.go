package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/purplebook-dev/purplebook/internal/buildinfo"
	"github.com/purplebook-dev/purplebook/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "purplebook",
		Short:   "Double-entry bookkeeping for small businesses",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.FileName, "path to the config file")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the config")
	flags.StringVar(&a.owner, "owner", "", "owner id (overrides config)")
	flags.StringVarP(&a.format, "format", "f", "table", "output format: table, markdown, pretty or json")

	rootCmd.AddCommand(
		newInitCommand(),
		newAddCommand(a),
		newHistoryCommand(a),
		newOwnersCommand(a),
		newLedgerCommand(a),
		newTrialBalanceCommand(a),
		newIncomeCommand(a),
		newEquityCommand(a),
		newBalanceSheetCommand(a),
		newReportCommand(a),
		newStockCommand(a),
		newImportCommand(a),
		newExportCommand(a),
		newServeCommand(a),
	)

	return rootCmd
}
