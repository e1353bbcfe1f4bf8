// Package ledger derives account balances and statement totals from a chart of
// accounts and a list of posted transactions. Everything here is a pure
// function of its arguments: no I/O, no shared state, inputs are never mutated.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Resolve computes the net balance of one account over txns, which the caller
// has already narrowed to the reporting period.
//
// The returned side is where the balance actually sits, independent of the
// account's declared normal balance: an overdrawn bank account resolves to
// credit. A zero balance resolves to debit.
//
// A transaction that debits and credits the same account is counted on both
// legs and therefore contributes nothing.
func Resolve(account model.Account, txns []model.Transaction) (model.AccountBalance, error) {
	if err := checkAccount(account); err != nil {
		return model.AccountBalance{}, err
	}

	debit, credit := decimal.Zero, decimal.Zero
	for _, txn := range txns {
		if txn.DebitAccountID == account.ID {
			debit = debit.Add(txn.Amount)
		}
		if txn.CreditAccountID == account.ID {
			credit = credit.Add(txn.Amount)
		}
	}
	return balanceOf(account, debit, credit), nil
}

// ResolveByID looks the account up in the catalog before resolving it. Every
// leg of txns must name a catalog account, as with Aggregate; otherwise a
// *ReferenceError is returned.
func ResolveByID(catalog Catalog, accountID string, txns []model.Transaction) (model.AccountBalance, error) {
	account, err := catalog.Lookup(accountID)
	if err != nil {
		return model.AccountBalance{}, err
	}
	if err := checkReferences(catalog, txns); err != nil {
		return model.AccountBalance{}, err
	}
	return Resolve(account, txns)
}

func balanceOf(account model.Account, debit, credit decimal.Decimal) model.AccountBalance {
	net := debit.Sub(credit)
	if net.Sign() >= 0 {
		return model.AccountBalance{Account: account, Amount: net, Side: model.SideDebit}
	}
	return model.AccountBalance{Account: account, Amount: net.Neg(), Side: model.SideCredit}
}
