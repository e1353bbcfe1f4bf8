package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/model"
)

func TestResolve_SingleTransactionBalancesBothLegs(t *testing.T) {
	txns := []model.Transaction{post("t1", date(2025, 1, 2), cash, sale, "250.75")}

	debitSide, err := Resolve(cash, txns)
	require.NoError(t, err)
	assert.Equal(t, model.SideDebit, debitSide.Side)
	assert.True(t, debitSide.Amount.Equal(dec("250.75")))

	creditSide, err := Resolve(sale, txns)
	require.NoError(t, err)
	assert.Equal(t, model.SideCredit, creditSide.Side)
	assert.True(t, creditSide.Amount.Equal(dec("250.75")))
}

func TestResolve_DebitOnlyAccountStaysOnDebit(t *testing.T) {
	tests := []struct {
		name    string
		amounts []string
		want    string
	}{
		{"one", []string{"10.00"}, "10.00"},
		{"several", []string{"10.00", "0.01", "999.99"}, "1010.00"},
		{"fractional cents add exactly", []string{"0.10", "0.20"}, "0.30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txns []model.Transaction
			for _, a := range tt.amounts {
				txns = append(txns, post("t", date(2025, 1, 2), rent, cash, a))
			}
			b, err := Resolve(rent, txns)
			require.NoError(t, err)
			assert.Equal(t, model.SideDebit, b.Side)
			assert.True(t, b.Amount.Equal(dec(tt.want)), "got %s", b.Amount)
		})
	}
}

func TestResolve_OverdrawnAssetSitsOnCredit(t *testing.T) {
	txns := []model.Transaction{
		post("t1", date(2025, 1, 2), bank, capital, "100.00"),
		post("t2", date(2025, 1, 3), rent, bank, "150.00"),
	}
	b, err := Resolve(bank, txns)
	require.NoError(t, err)
	assert.Equal(t, model.SideCredit, b.Side)
	assert.True(t, b.Amount.Equal(dec("50.00")))
	assert.False(t, b.OnNormalSide())
	assert.True(t, b.Signed().Equal(dec("-50.00")))
}

func TestResolve_UntouchedAccountIsZeroDebit(t *testing.T) {
	b, err := Resolve(loan, []model.Transaction{post("t1", date(2025, 1, 2), cash, sale, "1.00")})
	require.NoError(t, err)
	assert.True(t, b.Amount.IsZero())
	assert.Equal(t, model.SideDebit, b.Side)
	assert.Equal(t, loan, b.Account)

	b, err = Resolve(loan, nil)
	require.NoError(t, err)
	assert.True(t, b.Amount.IsZero())
}

func TestResolve_SameAccountOnBothLegsNetsToZero(t *testing.T) {
	txns := []model.Transaction{
		post("t1", date(2025, 1, 2), cash, sale, "40.00"),
		post("bad", date(2025, 1, 3), cash, cash, "500.00"),
	}
	b, err := Resolve(cash, txns)
	require.NoError(t, err)
	assert.Equal(t, model.SideDebit, b.Side)
	assert.True(t, b.Amount.Equal(dec("40.00")))
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	txns := []model.Transaction{
		post("t1", date(2025, 1, 2), cash, sale, "40.00"),
		post("t2", date(2025, 1, 3), rent, cash, "10.00"),
	}
	before := make([]model.Transaction, len(txns))
	copy(before, txns)

	_, err := Resolve(cash, txns)
	require.NoError(t, err)
	assert.Equal(t, before, txns)
}

func TestResolve_InvalidAccount(t *testing.T) {
	tests := []struct {
		name    string
		account model.Account
	}{
		{"empty id", model.Account{Type: model.AccountTypeAsset, NormalBalance: model.SideDebit}},
		{"bad type", model.Account{ID: "x", Type: "income", NormalBalance: model.SideCredit}},
		{"bad side", model.Account{ID: "x", Type: model.AccountTypeAsset}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.account, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidAccount)
		})
	}
}

func TestResolveByID(t *testing.T) {
	cat := catalog(cash, sale)
	txns := []model.Transaction{post("t1", date(2025, 1, 2), cash, sale, "12.00")}

	b, err := ResolveByID(cat, "4010", txns)
	require.NoError(t, err)
	assert.Equal(t, model.SideCredit, b.Side)
	assert.True(t, b.Amount.Equal(dec("12.00")))

	_, err = ResolveByID(cat, "9999", txns)
	require.Error(t, err)
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestResolveByID_DanglingReference(t *testing.T) {
	cat := catalog(cash, sale)
	txns := []model.Transaction{
		post("t1", date(2025, 1, 2), cash, sale, "12.00"),
		{ID: "t2", Date: date(2025, 1, 3), Amount: dec("50.00"), DebitAccountID: "1010", CreditAccountID: "9999"},
	}

	// The bad leg does not touch 4010, but the journal is still invalid.
	for _, id := range []string{"1010", "4010"} {
		_, err := ResolveByID(cat, id, txns)
		var refErr *ReferenceError
		require.True(t, errors.As(err, &refErr), id)
		assert.Equal(t, "t2", refErr.TransactionID)
		assert.Equal(t, "9999", refErr.AccountID)
		assert.Equal(t, model.SideCredit, refErr.Leg)
		assert.ErrorIs(t, err, ErrUnknownAccount)
	}

	// An unknown target account is still a plain lookup failure.
	_, err := ResolveByID(cat, "7777", txns)
	assert.ErrorIs(t, err, accounts.ErrNotFound)
	var refErr *ReferenceError
	assert.False(t, errors.As(err, &refErr))
}
