package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountsCommand(booksDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccounts(cmd.Context(), *booksDir)
		},
	}
}

func runAccounts(ctx context.Context, dir string) error {
	b, err := openBooks(ctx, dir)
	if err != nil {
		return err
	}
	defer b.close()

	accts, err := b.reports.Accounts(ctx)
	if err != nil {
		return err
	}

	tw := newLeftTable()
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tNORMAL\tCATEGORY")
	for _, a := range accts {
		normal := string(a.NormalBalance)
		if a.IsContra() {
			normal += " (contra)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type, normal, a.Category)
	}
	return tw.Flush()
}
