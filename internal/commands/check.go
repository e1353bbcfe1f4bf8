package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

func newCheckCommand(booksDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the chart of accounts, the journal and the accounting equation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), *booksDir)
		},
	}
}

func runCheck(ctx context.Context, dir string) error {
	b, err := openBooks(ctx, dir)
	if err != nil {
		return err
	}
	defer b.close()

	// Validate sees the raw catalog so duplicates are reported.
	raw, err := b.catalog.LoadAccounts(ctx)
	if err != nil {
		return err
	}
	txns, err := b.journal.LoadTransactions(ctx)
	if err != nil {
		return err
	}

	problems := checkBooks(raw, txns)

	accts := accounts.NewService(raw).All()
	for _, w := range accounts.CheckConventions(accts) {
		fmt.Printf("note: %s\n", w)
	}

	if problems != nil {
		errs := multierr.Errors(problems)
		for _, e := range errs {
			fmt.Printf("error: %v\n", e)
		}
		return fmt.Errorf("%d problem(s) found", len(errs))
	}

	st, err := b.reports.Statement(ctx, ledger.Period{})
	if err != nil {
		return err
	}
	if !st.Totals.IsBalanced {
		return fmt.Errorf("books are not balanced: difference %s", money(st.Totals.Difference))
	}

	fmt.Printf("OK: %d accounts, %d transactions, books balanced\n", len(accts), len(txns))
	return nil
}

// checkBooks collects every catalog and journal problem into one error.
func checkBooks(accts []model.Account, txns []model.Transaction) error {
	var errs error
	for _, e := range accounts.Validate(accts) {
		errs = multierr.Append(errs, e)
	}
	catalog := accounts.NewService(accts)
	for _, ve := range journal.ValidateTransactions(txns, catalog) {
		errs = multierr.Append(errs, ve)
	}
	return errs
}
