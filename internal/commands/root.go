package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var booksDir string

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Double-entry ledger and financial statements",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&booksDir, "books", ".", "books directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newAccountsCommand(&booksDir),
		newPostCommand(&booksDir),
		newBalanceCommand(&booksDir),
		newReportCommand(&booksDir),
		newTrialBalanceCommand(&booksDir),
		newCheckCommand(&booksDir),
		newServeCommand(&booksDir),
		newSyncCommand(&booksDir),
	)

	return rootCmd
}
