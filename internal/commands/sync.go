package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/store/postgres"
)

func newSyncCommand(booksDir *string) *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy the file books into PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), *booksDir, dsn)
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "postgres connection string (default from tally.yaml or "+config.EnvDSN+")")

	return cmd
}

func runSync(ctx context.Context, dir, dsn string) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Load(config.Path(root))
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(root); err != nil {
		return err
	}
	if dsn == "" {
		dsn = cfg.Storage.DSN
	}
	if dsn == "" {
		return fmt.Errorf("no postgres dsn: pass --dsn or set %s", config.EnvDSN)
	}

	catalog, err := accounts.Load(root)
	if err != nil {
		return err
	}
	txns, err := journal.NewService(root, catalog).ReadAll(ctx)
	if err != nil {
		return err
	}
	if problems := checkBooks(catalog.All(), txns); problems != nil {
		return fmt.Errorf("refusing to sync invalid books: %w", problems)
	}

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	if err := store.Replace(ctx, catalog.All(), txns); err != nil {
		return err
	}

	fmt.Printf("Synced %d accounts and %d transactions\n", catalog.Len(), len(txns))
	return nil
}
