package accounts

import (
	"fmt"

	"github.com/cleared-dev/tally/internal/model"
)

// ConventionWarning flags an account whose declared normal balance differs from
// the convention for its type. Contra accounts such as Drawings are legitimate,
// so this is never an error.
type ConventionWarning struct {
	AccountID string
	Type      model.AccountType
	Declared  model.Side
	Expected  model.Side
}

func (w ConventionWarning) String() string {
	return fmt.Sprintf("account %s (%s) declares normal balance %s, convention is %s",
		w.AccountID, w.Type, w.Declared, w.Expected)
}

// CheckConventions returns one warning per account whose normal balance runs
// against its type's convention, in catalog order.
func CheckConventions(accounts []model.Account) []ConventionWarning {
	var warnings []ConventionWarning
	for _, a := range accounts {
		if !a.Type.Valid() || !a.NormalBalance.Valid() {
			continue
		}
		if a.IsContra() {
			warnings = append(warnings, ConventionWarning{
				AccountID: a.ID,
				Type:      a.Type,
				Declared:  a.NormalBalance,
				Expected:  a.Type.NormalSide(),
			})
		}
	}
	return warnings
}

// Validate checks the catalog itself: non-empty unique IDs, known types and
// sides. It returns one error per problem.
func Validate(accounts []model.Account) []error {
	var errs []error
	seen := make(map[string]bool, len(accounts))
	for i, a := range accounts {
		if a.ID == "" {
			errs = append(errs, fmt.Errorf("account %d: empty id", i+1))
			continue
		}
		if seen[a.ID] {
			errs = append(errs, fmt.Errorf("account %s: duplicate id", a.ID))
		}
		seen[a.ID] = true
		if !a.Type.Valid() {
			errs = append(errs, fmt.Errorf("account %s: unknown type %q", a.ID, a.Type))
		}
		if !a.NormalBalance.Valid() {
			errs = append(errs, fmt.Errorf("account %s: unknown normal balance %q", a.ID, a.NormalBalance))
		}
	}
	return errs
}
