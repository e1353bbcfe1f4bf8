package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_NewMonth(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, newMockAccounts("1010", "4010"))

	txnID, err := svc.Post(PostParams{
		Date:          date(2025, 1, 15),
		Description:   "Cash sale",
		DebitAccount:  "1010",
		CreditAccount: "4010",
		Amount:        dec("1000.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-001", txnID)

	// Verify file was created.
	_, err = os.Stat(filepath.Join(dir, "journal", "2025", "01", "journal.csv"))
	require.NoError(t, err)

	txns, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Amount.Equal(dec("1000.00")))
	assert.Equal(t, "1010", txns[0].DebitAccountID)
	assert.Equal(t, "4010", txns[0].CreditAccountID)
}

func TestPost_ExistingMonth(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, newMockAccounts("1010", "5200"))

	_, err := svc.Post(PostParams{Date: date(2025, 1, 10), DebitAccount: "5200", CreditAccount: "1010", Amount: dec("10.00")})
	require.NoError(t, err)

	txnID, err := svc.Post(PostParams{Date: date(2025, 1, 20), DebitAccount: "5200", CreditAccount: "1010", Amount: dec("20.00")})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-002", txnID)

	txns, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestPost_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, newMockAccounts("1010")) // 5200 does NOT exist

	_, err := svc.Post(PostParams{
		Date:          date(2025, 1, 15),
		Description:   "Bad entry",
		DebitAccount:  "5200",
		CreditAccount: "1010",
		Amount:        dec("50.00"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	// Verify nothing was written.
	txns, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestPost_RejectsSameAccount(t *testing.T) {
	svc := NewService(t.TempDir(), newMockAccounts("1010"))
	_, err := svc.Post(PostParams{Date: date(2025, 1, 15), DebitAccount: "1010", CreditAccount: "1010", Amount: dec("5.00")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both post to account")
}

func TestReadAll_Chronological(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, newMockAccounts("1010", "4010"))

	for _, d := range []struct{ y, m, day int }{{2025, 3, 1}, {2024, 12, 31}, {2025, 1, 5}} {
		_, err := svc.Post(PostParams{Date: date(d.y, d.m, d.day), DebitAccount: "1010", CreditAccount: "4010", Amount: dec("1.00")})
		require.NoError(t, err)
	}

	// Stray files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "journal", "README"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "journal", "drafts"), 0o755))

	txns, err := svc.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "2024-12-001", txns[0].ID)
	assert.Equal(t, "2025-01-001", txns[1].ID)
	assert.Equal(t, "2025-03-001", txns[2].ID)

	viaPort, err := svc.LoadTransactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, txns, viaPort)
}

func TestReadAll_NoJournal(t *testing.T) {
	svc := NewService(t.TempDir(), newMockAccounts())
	txns, err := svc.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestReadAll_Canceled(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, newMockAccounts("1010", "4010"))
	_, err := svc.Post(PostParams{Date: date(2025, 1, 5), DebitAccount: "1010", CreditAccount: "4010", Amount: dec("1.00")})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.ReadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNextSeq(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, newMockAccounts("1010", "5200"))

	seq, err := svc.NextSeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	_, err = svc.Post(PostParams{Date: date(2025, 1, 1), DebitAccount: "5200", CreditAccount: "1010", Amount: dec("1.00")})
	require.NoError(t, err)

	seq, err = svc.NextSeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, seq)
}

func TestReadMonth_NonExistent(t *testing.T) {
	svc := NewService(t.TempDir(), newMockAccounts())
	txns, err := svc.ReadMonth(2025, 6)
	require.NoError(t, err)
	assert.Empty(t, txns)
}
