package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newTrialBalanceCommand(booksDir *string) *cobra.Command {
	var pf periodFlags

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print account balances in debit and credit columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrialBalance(cmd.Context(), *booksDir, pf)
		},
	}
	addPeriodFlags(cmd, &pf)

	return cmd
}

func runTrialBalance(ctx context.Context, dir string, pf periodFlags) error {
	b, err := openBooks(ctx, dir)
	if err != nil {
		return err
	}
	defer b.close()

	p, err := pf.resolve(b.cfg)
	if err != nil {
		return err
	}

	tb, err := b.reports.TrialBalance(ctx, p)
	if err != nil {
		return err
	}

	fmt.Printf("Trial balance: %s\n\n", p)
	tw := newTable()
	fmt.Fprintln(tw, "ACCOUNT\tNAME\tDEBIT\tCREDIT\t")
	for _, row := range tb.Rows {
		debit, credit := "", ""
		if !row.Debit.IsZero() {
			debit = money(row.Debit)
		}
		if !row.Credit.IsZero() {
			credit = money(row.Credit)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", row.Account.ID, row.Account.Name, debit, credit)
	}
	fmt.Fprintf(tw, "\tTotal\t%s\t%s\t\n", money(tb.TotalDebit), money(tb.TotalCredit))
	if err := tw.Flush(); err != nil {
		return err
	}

	if !tb.Balanced() {
		return fmt.Errorf("trial balance does not balance: debits %s, credits %s", money(tb.TotalDebit), money(tb.TotalCredit))
	}
	return nil
}
