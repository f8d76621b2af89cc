package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketfin-dev/pocketfin/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "pocketfin",
		Short:   "Local-first personal finance tracking",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "pocketfin.yaml", "path to the config file")

	rootCmd.AddCommand(
		newInitCommand(),
		newAddCommand(),
		newEditCommand(),
		newDeleteCommand(),
		newSweepCommand(),
		newBalanceCommand(),
		newHistoryCommand(),
		newReportCommand(),
		newImportCommand(),
	)

	return rootCmd
}
