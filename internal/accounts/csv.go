package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header for chart-of-accounts.csv.
const Header = "account_id,account_name,account_type,category,normal_balance,description"

const (
	numFields   = 6
	colID       = 0
	colName     = 1
	colType     = 2
	colCategory = 3
	colNormal   = 4
	colDesc     = 5
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colCategory] = acct.Category
	row[colNormal] = string(acct.NormalBalance)
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row to an Account. An empty normal_balance
// falls back to the account type's convention.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	accountID := strings.TrimSpace(record[colID])
	if accountID == "" {
		return model.Account{}, fmt.Errorf("empty account_id")
	}

	accountType, err := model.ParseAccountType(record[colType])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing account_type: %w", err)
	}

	normal := accountType.NormalSide()
	if strings.TrimSpace(record[colNormal]) != "" {
		normal, err = model.ParseSide(record[colNormal])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing normal_balance: %w", err)
		}
	}

	return model.Account{
		ID:            accountID,
		Name:          record[colName],
		Type:          accountType,
		Category:      record[colCategory],
		NormalBalance: normal,
		Description:   record[colDesc],
	}, nil
}
