// Package report serves ledger statements from a catalog source and a
// journal source, caching results per data snapshot.
package report

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

const (
	DefaultCacheExpiration = 5 * time.Minute
	CacheCleanupInterval   = 10 * time.Minute

	ckStatement = "statement:%016x"
)

// CatalogSource supplies the chart of accounts.
type CatalogSource interface {
	LoadAccounts(ctx context.Context) ([]model.Account, error)
}

// JournalSource supplies the posted transactions.
type JournalSource interface {
	LoadTransactions(ctx context.Context) ([]model.Transaction, error)
}

// SnapshotSource supplies the catalog and the journal read together, so both
// reflect the same state of the books. When the catalog source implements it,
// the service reads through it instead of the two separate ports.
type SnapshotSource interface {
	LoadSnapshot(ctx context.Context) ([]model.Account, []model.Transaction, error)
}

// Statement is an aggregation over one period.
type Statement struct {
	Period   ledger.Period
	Totals   ledger.StatementTotals
	Warnings []accounts.ConventionWarning
	Snapshot uint64
}

// clone copies the slices so a cached statement never shares them with a caller.
func (st Statement) clone() Statement {
	st.Totals.AccountBalances = slices.Clone(st.Totals.AccountBalances)
	st.Warnings = slices.Clone(st.Warnings)
	return st
}

// Service computes reports. It is safe for concurrent use: every call works
// on its own snapshot and the cache is internally locked.
type Service struct {
	catalog     CatalogSource
	journal     JournalSource
	reportCache *cache.Cache
	logger      *zap.Logger
	tolerance   decimal.Decimal
}

// NewCache returns a report cache with the given default expiration.
func NewCache(ttl time.Duration) *cache.Cache {
	if ttl <= 0 {
		ttl = DefaultCacheExpiration
	}
	return cache.New(ttl, CacheCleanupInterval)
}

// NewService creates a Service. A nil reportCache disables caching.
func NewService(
	catalog CatalogSource,
	journal JournalSource,
	reportCache *cache.Cache,
	logger *zap.Logger,
	tolerance decimal.Decimal,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:     catalog,
		journal:     journal,
		reportCache: reportCache,
		logger:      logger,
		tolerance:   tolerance,
	}
}

type snapshot struct {
	accounts []model.Account
	txns     []model.Transaction
}

// load reads the catalog and the journal: in one read when the source offers
// a snapshot, otherwise concurrently.
func (s *Service) load(ctx context.Context) (snapshot, error) {
	if src, ok := s.catalog.(SnapshotSource); ok {
		accts, txns, err := src.LoadSnapshot(ctx)
		if err != nil {
			return snapshot{}, fmt.Errorf("loading books: %w", err)
		}
		return snapshot{accounts: accts, txns: txns}, nil
	}

	var snap snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		accts, err := s.catalog.LoadAccounts(ctx)
		if err != nil {
			return fmt.Errorf("loading accounts: %w", err)
		}
		snap.accounts = accts
		return nil
	})
	g.Go(func() error {
		txns, err := s.journal.LoadTransactions(ctx)
		if err != nil {
			return fmt.Errorf("loading transactions: %w", err)
		}
		snap.txns = txns
		return nil
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

// Accounts returns the chart of accounts in catalog order.
func (s *Service) Accounts(ctx context.Context) ([]model.Account, error) {
	accts, err := s.catalog.LoadAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	return accounts.NewService(accts).All(), nil
}

// Statement aggregates the transactions dated within p.
func (s *Service) Statement(ctx context.Context, p ledger.Period) (Statement, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return Statement{}, err
	}

	digest := Digest(snap.accounts, snap.txns, p)
	key := fmt.Sprintf(ckStatement, digest)
	if s.reportCache != nil {
		if cached, found := s.reportCache.Get(key); found {
			s.logger.Debug("statement cache hit", zap.String("period", p.String()), zap.Uint64("snapshot", digest))
			return cached.(Statement).clone(), nil
		}
	}

	catalog := accounts.NewService(snap.accounts)
	warnings := accounts.CheckConventions(catalog.All())
	for _, w := range warnings {
		s.logger.Warn("account normal balance differs from its type",
			zap.String("account_id", w.AccountID),
			zap.String("type", string(w.Type)),
			zap.String("declared", string(w.Declared)),
			zap.String("expected", string(w.Expected)),
		)
	}

	inPeriod := p.Filter(snap.txns)
	totals, err := ledger.AggregateWithTolerance(catalog, inPeriod, s.tolerance)
	if err != nil {
		return Statement{}, fmt.Errorf("aggregating %s: %w", p, err)
	}
	if !totals.IsBalanced {
		s.logger.Warn("books are not balanced",
			zap.String("period", p.String()),
			zap.Stringer("difference", totals.Difference),
		)
	}

	st := Statement{Period: p, Totals: totals, Warnings: warnings, Snapshot: digest}
	if s.reportCache != nil {
		s.reportCache.Set(key, st.clone(), cache.DefaultExpiration)
	}
	s.logger.Debug("statement computed",
		zap.String("period", p.String()),
		zap.Int("transactions", len(inPeriod)),
		zap.Int("accounts", catalog.Len()),
	)
	return st, nil
}

// Balance resolves one account over p.
func (s *Service) Balance(ctx context.Context, accountID string, p ledger.Period) (model.AccountBalance, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return model.AccountBalance{}, err
	}
	b, err := ledger.ResolveByID(accounts.NewService(snap.accounts), accountID, p.Filter(snap.txns))
	if err != nil {
		return model.AccountBalance{}, fmt.Errorf("resolving account %s: %w", accountID, err)
	}
	return b, nil
}

// TrialBalance lays out the nonzero balances over p in debit and credit columns.
func (s *Service) TrialBalance(ctx context.Context, p ledger.Period) (ledger.TrialBalanceTotals, error) {
	st, err := s.Statement(ctx, p)
	if err != nil {
		return ledger.TrialBalanceTotals{}, err
	}
	return ledger.TrialBalance(st.Totals.AccountBalances), nil
}
