package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/model"
)

func newReportCommand(booksDir *string) *cobra.Command {
	var pf periodFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the income statement and balance sheet totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), *booksDir, pf)
		},
	}
	addPeriodFlags(cmd, &pf)

	return cmd
}

func runReport(ctx context.Context, dir string, pf periodFlags) error {
	b, err := openBooks(ctx, dir)
	if err != nil {
		return err
	}
	defer b.close()

	p, err := pf.resolve(b.cfg)
	if err != nil {
		return err
	}

	st, err := b.reports.Statement(ctx, p)
	if err != nil {
		return err
	}
	t := st.Totals

	fmt.Printf("%s: %s (%s)\n\n", b.cfg.Business.Name, p, b.cfg.Reporting.Currency)

	tw := newTable()
	fmt.Fprintln(tw, "Income statement\t\t")
	fmt.Fprintf(tw, "  Revenue\t%s\t\n", money(t.Revenue))
	fmt.Fprintf(tw, "  Expenses\t%s\t\n", money(t.Expenses))
	fmt.Fprintf(tw, "  Net profit\t%s\t\n", money(t.NetProfit))
	fmt.Fprintln(tw, "\t\t")
	fmt.Fprintln(tw, "Balance sheet\t\t")
	fmt.Fprintf(tw, "  Assets\t%s\t\n", money(t.Assets))
	fmt.Fprintf(tw, "  Liabilities\t%s\t\n", money(t.Liabilities))
	fmt.Fprintf(tw, "  Equity\t%s\t\n", money(t.Equity))
	fmt.Fprintf(tw, "  Net profit\t%s\t\n", money(t.NetProfit))
	fmt.Fprintf(tw, "  Difference\t%s\t\n", money(t.Difference))
	if err := tw.Flush(); err != nil {
		return err
	}

	if t.IsBalanced {
		fmt.Println("\nBooks are balanced.")
	} else {
		fmt.Printf("\nBooks are NOT balanced: assets differ from liabilities + equity + net profit by %s.\n", money(t.Difference))
	}

	if len(t.AccountBalances) == 0 {
		return nil
	}
	fmt.Println()
	lw := newLeftTable()
	fmt.Fprintln(lw, "ACCOUNT\tNAME\tTYPE\tBALANCE\tSIDE")
	for _, ab := range t.AccountBalances {
		fmt.Fprintf(lw, "%s\t%s\t%s\t%s\t%s\n", ab.Account.ID, ab.Account.Name, ab.Account.Type, money(ab.Amount), sideLabel(ab))
	}
	return lw.Flush()
}

func sideLabel(b model.AccountBalance) string {
	if b.OnNormalSide() {
		return string(b.Side)
	}
	return string(b.Side) + " (abnormal)"
}
