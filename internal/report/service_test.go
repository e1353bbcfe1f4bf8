package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

type fakeCatalog struct {
	mu    sync.Mutex
	accts []model.Account
	err   error
}

func (f *fakeCatalog) LoadAccounts(ctx context.Context) ([]model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Account(nil), f.accts...), nil
}

type fakeJournal struct {
	mu   sync.Mutex
	txns []model.Transaction
	err  error
}

func (f *fakeJournal) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Transaction(nil), f.txns...), nil
}

func (f *fakeJournal) add(txn model.Transaction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txns = append(f.txns, txn)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

func txn(id string, d time.Time, debit, credit, amount string) model.Transaction {
	return model.Transaction{ID: id, Date: d, Description: id, Amount: dec(amount), DebitAccountID: debit, CreditAccountID: credit}
}

func fixture() (*fakeCatalog, *fakeJournal) {
	cat := &fakeCatalog{accts: []model.Account{
		{ID: "1010", Name: "Cash", Type: model.AccountTypeAsset, NormalBalance: model.SideDebit},
		{ID: "3010", Name: "Owner's Capital", Type: model.AccountTypeEquity, NormalBalance: model.SideCredit},
		{ID: "3030", Name: "Drawings", Type: model.AccountTypeEquity, Category: "Contra Equity", NormalBalance: model.SideDebit},
		{ID: "4010", Name: "Sales Revenue", Type: model.AccountTypeRevenue, NormalBalance: model.SideCredit},
		{ID: "5200", Name: "Rent Expense", Type: model.AccountTypeExpense, NormalBalance: model.SideDebit},
	}}
	jnl := &fakeJournal{txns: []model.Transaction{
		txn("2025-01-001", day(2025, 1, 2), "1010", "3010", "5000.00"),
		txn("2025-01-002", day(2025, 1, 15), "1010", "4010", "1000.00"),
		txn("2025-01-003", day(2025, 1, 31), "5200", "1010", "300.00"),
		txn("2025-02-001", day(2025, 2, 3), "3030", "1010", "200.00"),
	}}
	return cat, jnl
}

func newService(t *testing.T, cat CatalogSource, jnl JournalSource) (*Service, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewService(cat, jnl, NewCache(time.Minute), zap.New(core), ledger.Epsilon), logs
}

func TestStatement_AllTime(t *testing.T) {
	cat, jnl := fixture()
	svc, _ := newService(t, cat, jnl)

	st, err := svc.Statement(context.Background(), ledger.Period{})
	require.NoError(t, err)

	tot := st.Totals
	assert.True(t, tot.Assets.Equal(dec("5500")), "assets %s", tot.Assets)
	assert.True(t, tot.Equity.Equal(dec("4800")), "equity %s", tot.Equity)
	assert.True(t, tot.NetProfit.Equal(dec("700")), "net profit %s", tot.NetProfit)
	assert.True(t, tot.IsBalanced)
	assert.Len(t, tot.AccountBalances, 5)
	assert.NotZero(t, st.Snapshot)
}

func TestStatement_FiltersByPeriod(t *testing.T) {
	cat, jnl := fixture()
	svc, _ := newService(t, cat, jnl)

	st, err := svc.Statement(context.Background(), ledger.Period{Start: day(2025, 1, 10), End: day(2025, 1, 31)})
	require.NoError(t, err)

	assert.True(t, st.Totals.Revenue.Equal(dec("1000")))
	assert.True(t, st.Totals.Expenses.Equal(dec("300")))
	assert.True(t, st.Totals.Assets.Equal(dec("700")))
	assert.True(t, st.Totals.Equity.IsZero())
}

func TestStatement_LogsConventionWarnings(t *testing.T) {
	cat, jnl := fixture()
	svc, logs := newService(t, cat, jnl)

	st, err := svc.Statement(context.Background(), ledger.Period{})
	require.NoError(t, err)

	require.Len(t, st.Warnings, 1)
	assert.Equal(t, "3030", st.Warnings[0].AccountID)

	warned := logs.FilterMessage("account normal balance differs from its type").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "3030", warned[0].ContextMap()["account_id"])
	assert.Equal(t, zapcore.WarnLevel, warned[0].Level)
}

func TestStatement_CachesPerSnapshot(t *testing.T) {
	cat, jnl := fixture()
	svc, logs := newService(t, cat, jnl)
	ctx := context.Background()

	first, err := svc.Statement(ctx, ledger.Period{})
	require.NoError(t, err)
	second, err := svc.Statement(ctx, ledger.Period{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, logs.FilterMessage("statement cache hit").Len())

	// New data is a new snapshot, so the cached result is not reused.
	jnl.add(txn("2025-02-002", day(2025, 2, 4), "1010", "4010", "50.00"))
	third, err := svc.Statement(ctx, ledger.Period{})
	require.NoError(t, err)
	assert.NotEqual(t, first.Snapshot, third.Snapshot)
	assert.True(t, third.Totals.Revenue.Equal(dec("1050")))
	assert.Equal(t, 1, logs.FilterMessage("statement cache hit").Len())
}

func TestStatement_CallersCannotCorruptCache(t *testing.T) {
	cat, jnl := fixture()
	svc, _ := newService(t, cat, jnl)
	ctx := context.Background()

	first, err := svc.Statement(ctx, ledger.Period{})
	require.NoError(t, err)
	first.Totals.AccountBalances[0].Amount = dec("1")
	first.Warnings[0].AccountID = "changed"

	second, err := svc.Statement(ctx, ledger.Period{})
	require.NoError(t, err)
	second.Totals.AccountBalances[1].Amount = dec("2")

	third, err := svc.Statement(ctx, ledger.Period{})
	require.NoError(t, err)
	assert.True(t, third.Totals.AccountBalances[0].Amount.Equal(dec("5500")))
	assert.True(t, third.Totals.AccountBalances[1].Amount.Equal(dec("5000")))
	assert.Equal(t, "3030", third.Warnings[0].AccountID)
}

func TestStatement_DescriptionEditIsNotServedStale(t *testing.T) {
	cat, jnl := fixture()
	svc, _ := newService(t, cat, jnl)
	ctx := context.Background()

	_, err := svc.Statement(ctx, ledger.Period{})
	require.NoError(t, err)

	cat.mu.Lock()
	cat.accts[0].Description = "Petty cash tin"
	cat.mu.Unlock()

	st, err := svc.Statement(ctx, ledger.Period{})
	require.NoError(t, err)
	assert.Equal(t, "Petty cash tin", st.Totals.AccountBalances[0].Account.Description)
}

// snapshotBooks serves both halves of the books from one read and fails the
// separate ports, so any use of them shows up as an error.
type snapshotBooks struct {
	accts []model.Account
	txns  []model.Transaction
	calls int
}

func (b *snapshotBooks) LoadSnapshot(ctx context.Context) ([]model.Account, []model.Transaction, error) {
	b.calls++
	return b.accts, b.txns, nil
}

func (b *snapshotBooks) LoadAccounts(ctx context.Context) ([]model.Account, error) {
	return nil, errors.New("separate catalog read")
}

func (b *snapshotBooks) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	return nil, errors.New("separate journal read")
}

func TestStatement_PrefersSnapshotSource(t *testing.T) {
	cat, jnl := fixture()
	books := &snapshotBooks{accts: cat.accts, txns: jnl.txns}
	svc := NewService(books, books, nil, nil, ledger.Epsilon)
	ctx := context.Background()

	st, err := svc.Statement(ctx, ledger.Period{})
	require.NoError(t, err)
	assert.True(t, st.Totals.Assets.Equal(dec("5500")))

	b, err := svc.Balance(ctx, "4010", ledger.Period{})
	require.NoError(t, err)
	assert.True(t, b.Amount.Equal(dec("1000")))
	assert.Equal(t, 2, books.calls)
}

func TestBalance_DanglingReference(t *testing.T) {
	cat, jnl := fixture()
	jnl.add(txn("2025-02-009", day(2025, 2, 9), "1010", "9999", "50.00"))
	svc, _ := newService(t, cat, jnl)

	_, err := svc.Balance(context.Background(), "1010", ledger.Period{})
	var refErr *ledger.ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "2025-02-009", refErr.TransactionID)
	assert.Equal(t, model.SideCredit, refErr.Leg)
}

func TestStatement_WithoutCache(t *testing.T) {
	cat, jnl := fixture()
	svc := NewService(cat, jnl, nil, nil, ledger.Epsilon)

	st, err := svc.Statement(context.Background(), ledger.Period{})
	require.NoError(t, err)
	assert.True(t, st.Totals.IsBalanced)
}

func TestStatement_ReferenceError(t *testing.T) {
	cat, jnl := fixture()
	jnl.add(txn("2025-02-009", day(2025, 2, 9), "1010", "9999", "1.00"))
	svc, _ := newService(t, cat, jnl)

	_, err := svc.Statement(context.Background(), ledger.Period{})
	require.Error(t, err)

	var refErr *ledger.ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "2025-02-009", refErr.TransactionID)
	assert.ErrorIs(t, err, ledger.ErrUnknownAccount)
}

func TestStatement_DanglingOutsidePeriodIsIgnored(t *testing.T) {
	cat, jnl := fixture()
	jnl.add(txn("2024-12-001", day(2024, 12, 9), "1010", "9999", "1.00"))
	svc, _ := newService(t, cat, jnl)

	_, err := svc.Statement(context.Background(), ledger.Period{Start: day(2025, 1, 1)})
	assert.NoError(t, err)
}

func TestStatement_SourceErrors(t *testing.T) {
	boom := errors.New("disk on fire")

	cat, jnl := fixture()
	cat.err = boom
	svc, _ := newService(t, cat, jnl)
	_, err := svc.Statement(context.Background(), ledger.Period{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "loading accounts")

	cat, jnl = fixture()
	jnl.err = boom
	svc, _ = newService(t, cat, jnl)
	_, err = svc.Statement(context.Background(), ledger.Period{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "loading transactions")
}

func TestBalance(t *testing.T) {
	cat, jnl := fixture()
	svc, _ := newService(t, cat, jnl)
	ctx := context.Background()

	b, err := svc.Balance(ctx, "1010", ledger.Period{})
	require.NoError(t, err)
	assert.Equal(t, model.SideDebit, b.Side)
	assert.True(t, b.Amount.Equal(dec("5500")))

	b, err = svc.Balance(ctx, "1010", ledger.Period{End: day(2025, 1, 2)})
	require.NoError(t, err)
	assert.True(t, b.Amount.Equal(dec("5000")))

	_, err = svc.Balance(ctx, "7777", ledger.Period{})
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestTrialBalance(t *testing.T) {
	cat, jnl := fixture()
	svc, _ := newService(t, cat, jnl)

	tb, err := svc.TrialBalance(context.Background(), ledger.Period{})
	require.NoError(t, err)
	assert.True(t, tb.Balanced())
	assert.True(t, tb.TotalDebit.Equal(dec("6000")), "debit %s", tb.TotalDebit)
	require.Len(t, tb.Rows, 5)
	assert.Equal(t, "1010", tb.Rows[0].Account.ID)
}

func TestAccounts(t *testing.T) {
	cat, jnl := fixture()
	cat.accts = append(cat.accts, model.Account{ID: "1010", Name: "Duplicate Cash", Type: model.AccountTypeAsset, NormalBalance: model.SideDebit})
	svc, _ := newService(t, cat, jnl)

	got, err := svc.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "Cash", got[0].Name)
}

func TestStatement_Concurrent(t *testing.T) {
	cat, jnl := fixture()
	svc, _ := newService(t, cat, jnl)

	var wg sync.WaitGroup
	results := make([]Statement, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Statement(context.Background(), ledger.Period{})
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.True(t, results[i].Totals.Assets.Equal(results[0].Totals.Assets))
	}
}
