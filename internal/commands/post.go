package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/period"
)

type postOptions struct {
	date        string
	description string
	debit       string
	credit      string
	amount      string
}

func newPostCommand(booksDir *string) *cobra.Command {
	var opts postOptions

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a transaction to the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPost(cmd.Context(), *booksDir, opts)
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&opts.description, "description", "", "description")
	cmd.Flags().StringVar(&opts.debit, "debit", "", "account to debit (required)")
	cmd.Flags().StringVar(&opts.credit, "credit", "", "account to credit (required)")
	cmd.Flags().StringVar(&opts.amount, "amount", "", "amount, e.g. 125.50 (required)")
	_ = cmd.MarkFlagRequired("debit")
	_ = cmd.MarkFlagRequired("credit")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runPost(ctx context.Context, dir string, opts postOptions) error {
	b, err := openBooks(ctx, dir)
	if err != nil {
		return err
	}
	defer b.close()

	if b.cfg.Storage.Driver != config.DriverFile {
		return fmt.Errorf("post writes the file journal; storage driver is %q", b.cfg.Storage.Driver)
	}

	y, m, d := time.Now().Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if opts.date != "" {
		date, err = time.Parse(period.DateFormat, opts.date)
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}
	}
	amount, err := decimal.NewFromString(opts.amount)
	if err != nil {
		return fmt.Errorf("parsing --amount: %w", err)
	}

	catalog, err := accounts.Load(b.root)
	if err != nil {
		return err
	}

	svc := journal.NewService(b.root, catalog)
	id, err := svc.Post(journal.PostParams{
		Date:          date,
		Description:   opts.description,
		DebitAccount:  opts.debit,
		CreditAccount: opts.credit,
		Amount:        amount,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Posted %s: %s debit %s / credit %s\n", id, money(amount), opts.debit, opts.credit)
	return nil
}
