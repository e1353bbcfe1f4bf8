package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Rule numbers the posting invariants checked by ValidateTransactions.
type Rule int

const (
	RulePositiveAmount Rule = iota + 1
	RuleTwoDecimals
	RuleDistinctLegs
	RuleKnownAccount
	RuleUniqueID
	RuleDated
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Rule          Rule
	TransactionID string
	Description   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("rule %d [%s]: %s", e.Rule, e.TransactionID, e.Description)
}

// AccountChecker tests whether an account ID exists in the chart of accounts.
type AccountChecker interface {
	Exists(id string) bool
}

var hundred = decimal.NewFromInt(100)

// ValidateTransactions enforces the posting invariants on a set of transactions.
// Reports read the journal without calling this; it guards what gets written.
func ValidateTransactions(txns []model.Transaction, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(txns))

	for _, txn := range txns {
		add := func(rule Rule, format string, args ...any) {
			errs = append(errs, ValidationError{
				Rule:          rule,
				TransactionID: txn.ID,
				Description:   fmt.Sprintf(format, args...),
			})
		}

		if !txn.Amount.IsPositive() {
			add(RulePositiveAmount, "amount %s must be positive", txn.Amount)
		}

		// Exact decimals: no more than 2 decimal places.
		if !txn.Amount.Mul(hundred).Equal(txn.Amount.Mul(hundred).Floor()) {
			add(RuleTwoDecimals, "amount %s has more than 2 decimal places", txn.Amount)
		}

		if txn.DebitAccountID == txn.CreditAccountID {
			add(RuleDistinctLegs, "debit and credit both post to account %q", txn.DebitAccountID)
		}

		if !accounts.Exists(txn.DebitAccountID) {
			add(RuleKnownAccount, "unknown debit account %q", txn.DebitAccountID)
		}
		if !accounts.Exists(txn.CreditAccountID) {
			add(RuleKnownAccount, "unknown credit account %q", txn.CreditAccountID)
		}

		if txn.ID != "" {
			if seen[txn.ID] {
				add(RuleUniqueID, "duplicate transaction id")
			}
			seen[txn.ID] = true
		}

		if txn.Date.IsZero() {
			add(RuleDated, "missing date")
		}
	}

	return errs
}
