package ledger

import (
	"errors"
	"fmt"

	"github.com/cleared-dev/tally/internal/model"
)

var (
	// ErrInvalidAccount marks an account record the engine cannot compute with.
	ErrInvalidAccount = errors.New("invalid account")
	// ErrUnknownAccount marks a transaction leg that references no catalog account.
	ErrUnknownAccount = errors.New("unknown account")
)

// ReferenceError reports a transaction leg whose account is absent from the
// catalog. It aborts the whole computation.
type ReferenceError struct {
	TransactionID string
	AccountID     string
	Leg           model.Side
	Err           error // lookup failure from the catalog, may be nil
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("transaction %s: %s account %q not in chart of accounts", e.TransactionID, e.Leg, e.AccountID)
}

// Unwrap lets errors.Is match both ErrUnknownAccount and the catalog's own error.
func (e *ReferenceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnknownAccount}
	}
	return []error{ErrUnknownAccount, e.Err}
}

func checkAccount(a model.Account) error {
	switch {
	case a.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidAccount)
	case !a.Type.Valid():
		return fmt.Errorf("%w: account %s has type %q", ErrInvalidAccount, a.ID, a.Type)
	case !a.NormalBalance.Valid():
		return fmt.Errorf("%w: account %s has normal balance %q", ErrInvalidAccount, a.ID, a.NormalBalance)
	}
	return nil
}
