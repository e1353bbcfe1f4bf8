package journal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/model"
)

const journalDir = "journal"

// Service stores posted transactions as one journal.csv per month under
// <root>/journal/YYYY/MM/.
type Service struct {
	root     string
	accounts AccountChecker
}

// NewService creates a journal Service.
func NewService(booksRoot string, accounts AccountChecker) *Service {
	return &Service{root: booksRoot, accounts: accounts}
}

// PostParams holds parameters for posting a transaction.
type PostParams struct {
	Date          time.Time
	Description   string
	DebitAccount  string
	CreditAccount string
	Amount        decimal.Decimal
}

// Post validates a transaction against the month it falls in and appends it to
// that month's journal.csv. Returns the transaction ID.
func (s *Service) Post(params PostParams) (string, error) {
	year := params.Date.Year()
	month := int(params.Date.Month())

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return "", err
	}

	txn := model.Transaction{
		ID:              id.FormatTransactionID(year, month, nextSeq(existing)),
		Date:            params.Date,
		Description:     params.Description,
		Amount:          params.Amount,
		DebitAccountID:  params.DebitAccount,
		CreditAccountID: params.CreditAccount,
	}

	// Validate ALL transactions of the month together.
	all := append(existing, txn)
	if verrs := ValidateTransactions(all, s.accounts); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	journalPath := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(journalPath), 0o755); err != nil {
		return "", fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(journalPath); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(journalPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendTransactions(f, []model.Transaction{txn}); err != nil {
		return "", fmt.Errorf("appending transaction: %w", err)
	}

	return txn.ID, nil
}

// ReadMonth reads all transactions for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.Transaction, error) {
	return readFile(s.monthPath(year, month))
}

// ReadAll reads every month's journal in chronological order.
func (s *Service) ReadAll(ctx context.Context) ([]model.Transaction, error) {
	base := filepath.Join(s.root, journalDir)
	years, err := os.ReadDir(base)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading journal dir: %w", err)
	}

	var all []model.Transaction
	for _, y := range years {
		if !isNumericDir(y, 4) {
			continue
		}
		months, err := os.ReadDir(filepath.Join(base, y.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading journal dir %s: %w", y.Name(), err)
		}
		for _, m := range months {
			if !isNumericDir(m, 2) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			txns, err := readFile(filepath.Join(base, y.Name(), m.Name(), "journal.csv"))
			if err != nil {
				return nil, err
			}
			all = append(all, txns...)
		}
	}
	return all, nil
}

// LoadTransactions implements the report journal port.
func (s *Service) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.ReadAll(ctx)
}

// NextSeq returns the next available sequence number for a month.
func (s *Service) NextSeq(year, month int) (int, error) {
	txns, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}
	return nextSeq(txns), nil
}

func nextSeq(txns []model.Transaction) int {
	maxSeq := 0
	for _, txn := range txns {
		_, _, seq, err := id.ParseTransactionID(txn.ID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.root, journalDir, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}

func readFile(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return txns, nil
}

func isNumericDir(e fs.DirEntry, width int) bool {
	if !e.IsDir() || len(e.Name()) != width {
		return false
	}
	_, err := strconv.Atoi(e.Name())
	return err == nil
}
