package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// TrialBalanceRow places one account's balance in its debit or credit column.
type TrialBalanceRow struct {
	Account model.Account
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// TrialBalanceTotals is a two-column listing of account balances.
type TrialBalanceTotals struct {
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Balanced reports whether the debit and credit columns agree.
func (t TrialBalanceTotals) Balanced() bool {
	return t.TotalDebit.Equal(t.TotalCredit)
}

// TrialBalance lays out balances in debit and credit columns, keeping their order.
func TrialBalance(balances []model.AccountBalance) TrialBalanceTotals {
	tb := TrialBalanceTotals{
		Rows:        make([]TrialBalanceRow, 0, len(balances)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, b := range balances {
		row := TrialBalanceRow{Account: b.Account, Debit: decimal.Zero, Credit: decimal.Zero}
		if b.Side == model.SideCredit {
			row.Credit = b.Amount
			tb.TotalCredit = tb.TotalCredit.Add(b.Amount)
		} else {
			row.Debit = b.Amount
			tb.TotalDebit = tb.TotalDebit.Add(b.Amount)
		}
		tb.Rows = append(tb.Rows, row)
	}
	return tb
}
