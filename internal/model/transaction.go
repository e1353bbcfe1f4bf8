package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one posted journal line: a single amount moved from the
// credit account to the debit account.
type Transaction struct {
	ID              string
	Date            time.Time
	Description     string
	Amount          decimal.Decimal // strictly positive
	DebitAccountID  string
	CreditAccountID string
}

// Touches reports whether either leg references accountID.
func (t Transaction) Touches(accountID string) bool {
	return t.DebitAccountID == accountID || t.CreditAccountID == accountID
}

// AccountBalance is the derived net balance of one account. It is never stored.
type AccountBalance struct {
	Account Account
	Amount  decimal.Decimal // never negative
	Side    Side            // side the net balance currently sits on
}

// OnNormalSide reports whether the balance sits on the account's declared normal side.
// A zero balance counts as normal.
func (b AccountBalance) OnNormalSide() bool {
	return b.Amount.IsZero() || b.Side == b.Account.NormalBalance
}

// Signed returns the amount signed against the account's declared normal side:
// positive on the normal side, negative otherwise.
func (b AccountBalance) Signed() decimal.Decimal {
	if b.OnNormalSide() {
		return b.Amount
	}
	return b.Amount.Neg()
}
