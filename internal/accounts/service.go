package accounts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/tally/internal/model"
)

// ErrNotFound is returned when no account has the requested ID.
var ErrNotFound = errors.New("account not found")

// Service provides in-memory lookup over the chart of accounts.
// Catalog order is display and report order.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService creates a Service from a slice of accounts. When an ID repeats,
// the first occurrence wins; Validate reports the duplicate.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	kept := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		if _, dup := byID[a.ID]; dup {
			continue
		}
		byID[a.ID] = a
		kept = append(kept, a)
	}
	return &Service{accounts: kept, byID: byID}
}

// Path returns the chart of accounts location under a books root.
func Path(booksRoot string) string {
	return filepath.Join(booksRoot, "accounts", "chart-of-accounts.csv")
}

// Load reads chart-of-accounts.csv from a books root and returns a Service.
func Load(booksRoot string) (*Service, error) {
	accts, err := readFile(Path(booksRoot))
	if err != nil {
		return nil, err
	}
	return NewService(accts), nil
}

func readFile(path string) ([]model.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return accts, nil
}

// All returns all accounts in catalog order.
func (s *Service) All() []model.Account {
	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Len returns the number of accounts.
func (s *Service) Len() int {
	return len(s.accounts)
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Lookup returns an account by ID or an error wrapping ErrNotFound.
func (s *Service) Lookup(id string) (model.Account, error) {
	a, ok := s.byID[id]
	if !ok {
		return model.Account{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return a, nil
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByType returns all accounts of the given type, in catalog order.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(booksRoot string) error {
	path := Path(booksRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}

// FileSource reads the chart of accounts from a books root on every call, so a
// report always sees the current file.
type FileSource struct {
	Root string
}

// LoadAccounts implements the report catalog port.
func (f FileSource) LoadAccounts(ctx context.Context) ([]model.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readFile(Path(f.Root))
}
