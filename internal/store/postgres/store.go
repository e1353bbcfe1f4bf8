// Package postgres reads the chart of accounts and the journal from
// PostgreSQL. It satisfies the report service's catalog and journal ports.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Schema creates the tables the store reads. Transactions carry no foreign
// key to accounts: a dangling reference is reported by the aggregator.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	position       INTEGER NOT NULL,
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	type           TEXT NOT NULL,
	category       TEXT NOT NULL DEFAULT '',
	normal_balance TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS transactions (
	id                TEXT PRIMARY KEY,
	date              DATE NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	amount            NUMERIC(20, 4) NOT NULL,
	debit_account_id  TEXT NOT NULL,
	credit_account_id TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS transactions_date_idx ON transactions (date);
`

const (
	selectAccounts = `
		SELECT id, name, type, category, normal_balance, description
		FROM accounts
		ORDER BY position, id`

	selectTransactions = `
		SELECT id, date, description, amount::text, debit_account_id, credit_account_id
		FROM transactions
		ORDER BY date, id`

	insertAccount = `
		INSERT INTO accounts (position, id, name, type, category, normal_balance, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	insertTransaction = `
		INSERT INTO transactions (id, date, description, amount, debit_account_id, credit_account_id)
		VALUES ($1, $2, $3, $4::text::numeric, $5, $6)`
)

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store is a pgxpool-backed account and transaction source.
type Store struct {
	db *pgxpool.Pool
}

// New wraps an existing pool.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return New(pool), nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.db.Close()
}

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// LoadAccounts returns the chart of accounts in catalog order.
func (s *Store) LoadAccounts(ctx context.Context) ([]model.Account, error) {
	return loadAccounts(ctx, s.db)
}

// LoadTransactions returns every posted transaction ordered by date.
func (s *Store) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	return loadTransactions(ctx, s.db)
}

// LoadSnapshot reads the catalog and the journal inside one read-only
// repeatable-read transaction, so a concurrent Replace is seen entirely or
// not at all.
func (s *Store) LoadSnapshot(ctx context.Context) ([]model.Account, []model.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, nil, fmt.Errorf("beginning snapshot: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	accts, err := loadAccounts(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	txns, err := loadTransactions(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("closing snapshot: %w", err)
	}
	return accts, txns, nil
}

func loadAccounts(ctx context.Context, q querier) ([]model.Account, error) {
	rows, err := q.Query(ctx, selectAccounts)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accts []model.Account
	for rows.Next() {
		var a model.Account
		var typ, side string
		if err := rows.Scan(&a.ID, &a.Name, &typ, &a.Category, &side, &a.Description); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.Type = model.AccountType(typ)
		a.NormalBalance = model.Side(side)
		accts = append(accts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}
	return accts, nil
}

func loadTransactions(ctx context.Context, q querier) ([]model.Transaction, error) {
	rows, err := q.Query(ctx, selectTransactions)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var amount string
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &amount, &t.DebitAccountID, &t.CreditAccountID); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: parsing amount %q: %w", t.ID, amount, err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	return txns, nil
}

// Replace swaps the stored books for the given accounts and transactions in
// one database transaction.
func (s *Store) Replace(ctx context.Context, accts []model.Account, txns []model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, "DELETE FROM transactions"); err != nil {
		return fmt.Errorf("clearing transactions: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM accounts"); err != nil {
		return fmt.Errorf("clearing accounts: %w", err)
	}

	batch := &pgx.Batch{}
	for i, a := range accts {
		batch.Queue(insertAccount, i, a.ID, a.Name, string(a.Type), a.Category, string(a.NormalBalance), a.Description)
	}
	for _, t := range txns {
		batch.Queue(insertTransaction, t.ID, t.Date, t.Description, t.Amount.String(), t.DebitAccountID, t.CreditAccountID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting books: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing books: %w", err)
	}
	return nil
}
