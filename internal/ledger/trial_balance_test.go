package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestTrialBalance_Columns(t *testing.T) {
	tb := TrialBalance([]model.AccountBalance{
		{Account: cash, Amount: dec("700"), Side: model.SideDebit},
		{Account: sale, Amount: dec("1000"), Side: model.SideCredit},
		{Account: rent, Amount: dec("300"), Side: model.SideDebit},
	})
	require.Len(t, tb.Rows, 3)
	assertDec(t, "700", tb.Rows[0].Debit, "cash debit")
	assertDec(t, "0", tb.Rows[0].Credit, "cash credit")
	assertDec(t, "1000", tb.Rows[1].Credit, "sales credit")
	assertDec(t, "1000", tb.TotalDebit, "total debit")
	assertDec(t, "1000", tb.TotalCredit, "total credit")
	assert.True(t, tb.Balanced())

	empty := TrialBalance(nil)
	assert.True(t, empty.Balanced())
	assert.Empty(t, empty.Rows)
}

func TestTrialBalance_AbnormalBalanceUsesActualSide(t *testing.T) {
	// An overdrawn bank account sits in the credit column.
	tb := TrialBalance([]model.AccountBalance{
		{Account: bank, Amount: dec("50"), Side: model.SideCredit},
		{Account: rent, Amount: dec("50"), Side: model.SideDebit},
	})
	assertDec(t, "50", tb.Rows[0].Credit, "bank credit")
	assert.True(t, tb.Rows[0].Debit.IsZero())
	assert.True(t, tb.Balanced())
}
