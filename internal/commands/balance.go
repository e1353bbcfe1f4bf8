package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newBalanceCommand(booksDir *string) *cobra.Command {
	var pf periodFlags

	cmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show one account's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(cmd.Context(), *booksDir, args[0], pf)
		},
	}
	addPeriodFlags(cmd, &pf)

	return cmd
}

func runBalance(ctx context.Context, dir, accountID string, pf periodFlags) error {
	b, err := openBooks(ctx, dir)
	if err != nil {
		return err
	}
	defer b.close()

	p, err := pf.resolve(b.cfg)
	if err != nil {
		return err
	}

	bal, err := b.reports.Balance(ctx, accountID, p)
	if err != nil {
		return err
	}

	note := ""
	if !bal.OnNormalSide() {
		note = fmt.Sprintf(" (against normal %s balance)", bal.Account.NormalBalance)
	}
	fmt.Printf("%s %s: %s %s %s%s\n", bal.Account.ID, bal.Account.Name, money(bal.Amount), b.cfg.Reporting.Currency, bal.Side, note)
	fmt.Printf("Period: %s\n", p)
	return nil
}
