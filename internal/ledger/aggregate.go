package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Epsilon is the default tolerance of the balanced-books check, one cent.
var Epsilon = decimal.New(1, -2)

// Catalog is the read side of the chart of accounts.
type Catalog interface {
	All() []model.Account
	Lookup(id string) (model.Account, error)
	ByType(t model.AccountType) []model.Account
}

// StatementTotals holds the report-level totals of one aggregation.
// Group totals are in the natural polarity of their type: positive when the
// group's accounts sit on their normal side. A contra account (Drawings, for
// instance) is signed against its declared normal balance and then subtracted
// from its group, so a debit balance on Drawings lowers Equity.
type StatementTotals struct {
	Revenue     decimal.Decimal
	Expenses    decimal.Decimal
	NetProfit   decimal.Decimal
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	Equity      decimal.Decimal

	// Difference is Assets - (Liabilities + Equity + NetProfit).
	Difference decimal.Decimal
	IsBalanced bool

	// AccountBalances lists every account with a nonzero balance, in catalog order.
	AccountBalances []model.AccountBalance
}

// Group returns the total for one account type.
func (s StatementTotals) Group(t model.AccountType) decimal.Decimal {
	switch t {
	case model.AccountTypeAsset:
		return s.Assets
	case model.AccountTypeLiability:
		return s.Liabilities
	case model.AccountTypeEquity:
		return s.Equity
	case model.AccountTypeRevenue:
		return s.Revenue
	case model.AccountTypeExpense:
		return s.Expenses
	}
	return decimal.Zero
}

// Aggregate computes statement totals with the default tolerance.
func Aggregate(catalog Catalog, txns []model.Transaction) (StatementTotals, error) {
	return AggregateWithTolerance(catalog, txns, Epsilon)
}

// AggregateWithTolerance resolves every catalog account against txns and rolls
// the balances up by type.
//
// A transaction leg that names an account missing from the catalog aborts with
// a *ReferenceError before anything is summed. An unbalanced ledger is not an
// error: it comes back with IsBalanced false.
func AggregateWithTolerance(catalog Catalog, txns []model.Transaction, tolerance decimal.Decimal) (StatementTotals, error) {
	all := catalog.All()
	for _, a := range all {
		if err := checkAccount(a); err != nil {
			return StatementTotals{}, err
		}
	}

	if err := checkReferences(catalog, txns); err != nil {
		return StatementTotals{}, err
	}

	debits := make(map[string]decimal.Decimal)
	credits := make(map[string]decimal.Decimal)
	for _, txn := range txns {
		debits[txn.DebitAccountID] = debits[txn.DebitAccountID].Add(txn.Amount)
		credits[txn.CreditAccountID] = credits[txn.CreditAccountID].Add(txn.Amount)
	}

	balances := make(map[string]model.AccountBalance, len(all))
	for _, a := range all {
		balances[a.ID] = balanceOf(a, debits[a.ID], credits[a.ID])
	}

	groups := make(map[model.AccountType]decimal.Decimal, len(model.AccountTypes))
	for _, t := range model.AccountTypes {
		total := decimal.Zero
		for _, a := range catalog.ByType(t) {
			total = total.Add(contribution(balances[a.ID]))
		}
		groups[t] = total
	}

	totals := StatementTotals{
		Revenue:     groups[model.AccountTypeRevenue],
		Expenses:    groups[model.AccountTypeExpense],
		Assets:      groups[model.AccountTypeAsset],
		Liabilities: groups[model.AccountTypeLiability],
		Equity:      groups[model.AccountTypeEquity],
	}
	totals.NetProfit = totals.Revenue.Sub(totals.Expenses)
	totals.Difference = totals.Assets.Sub(totals.Liabilities.Add(totals.Equity).Add(totals.NetProfit))
	totals.IsBalanced = totals.Difference.IsZero() || totals.Difference.Abs().LessThan(tolerance)

	totals.AccountBalances = make([]model.AccountBalance, 0, len(all))
	for _, a := range all {
		if b := balances[a.ID]; !b.Amount.IsZero() {
			totals.AccountBalances = append(totals.AccountBalances, b)
		}
	}
	return totals, nil
}

// checkReferences fails on the first transaction leg naming an account the
// catalog does not hold.
func checkReferences(catalog Catalog, txns []model.Transaction) error {
	for _, txn := range txns {
		if _, err := catalog.Lookup(txn.DebitAccountID); err != nil {
			return &ReferenceError{TransactionID: txn.ID, AccountID: txn.DebitAccountID, Leg: model.SideDebit, Err: err}
		}
		if _, err := catalog.Lookup(txn.CreditAccountID); err != nil {
			return &ReferenceError{TransactionID: txn.ID, AccountID: txn.CreditAccountID, Leg: model.SideCredit, Err: err}
		}
	}
	return nil
}

// contribution is the balance signed against the account's declared normal
// side. A contra account offsets its group, so its contribution is negated.
func contribution(b model.AccountBalance) decimal.Decimal {
	c := b.Signed()
	if b.Account.IsContra() {
		return c.Neg()
	}
	return c
}
