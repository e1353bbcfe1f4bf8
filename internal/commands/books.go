package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/logging"
	"github.com/cleared-dev/tally/internal/period"
	"github.com/cleared-dev/tally/internal/report"
	"github.com/cleared-dev/tally/internal/store/postgres"
)

// books is everything a command needs to read one set of books.
type books struct {
	root    string
	cfg     *config.Config
	logger  *zap.Logger
	catalog report.CatalogSource
	journal report.JournalSource
	reports *report.Service
	close   func()
}

// openBooks loads tally.yaml under dir, applies environment overrides and
// wires the report service to the configured storage.
func openBooks(ctx context.Context, dir string) (*books, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(config.Path(root))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(root); err != nil {
		return nil, err
	}
	tolerance, err := cfg.Tolerance()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	b := &books{root: root, cfg: cfg, logger: logger, close: func() { _ = logger.Sync() }}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		store, err := postgres.Open(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		b.catalog, b.journal = store, store
		b.close = func() {
			store.Close()
			_ = logger.Sync()
		}
	default:
		b.catalog = accounts.FileSource{Root: root}
		b.journal = journal.NewService(root, nil)
	}

	b.reports = report.NewService(b.catalog, b.journal, report.NewCache(cfg.Reporting.CacheTTL), logger, tolerance)
	logger.Debug("books opened", zap.String("root", root), zap.String("storage", cfg.Storage.Driver))
	return b, nil
}

// periodFlags are the shared --period/--from/--to flags.
type periodFlags struct {
	preset string
	from   string
	to     string
}

func addPeriodFlags(cmd *cobra.Command, f *periodFlags) {
	cmd.Flags().StringVar(&f.preset, "period", "", "named period (today, this-month, last-month, this-quarter, last-quarter, this-year, last-year, fiscal-year, year-to-date, all)")
	cmd.Flags().StringVar(&f.from, "from", "", "first day of the period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "last day of the period (YYYY-MM-DD)")
}

func (f periodFlags) resolve(cfg *config.Config) (ledger.Period, error) {
	return period.Select(f.preset, f.from, f.to, time.Now(), cfg.Fiscal.YearStart)
}
