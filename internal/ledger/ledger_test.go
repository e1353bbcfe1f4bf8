package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

var (
	cash    = model.Account{ID: "1010", Name: "Cash", Type: model.AccountTypeAsset, NormalBalance: model.SideDebit}
	bank    = model.Account{ID: "1020", Name: "Bank Account", Type: model.AccountTypeAsset, NormalBalance: model.SideDebit}
	ap      = model.Account{ID: "2010", Name: "Accounts Payable", Type: model.AccountTypeLiability, NormalBalance: model.SideCredit}
	loan    = model.Account{ID: "2500", Name: "Bank Loan", Type: model.AccountTypeLiability, NormalBalance: model.SideCredit}
	capital = model.Account{ID: "3010", Name: "Owner's Capital", Type: model.AccountTypeEquity, NormalBalance: model.SideCredit}
	draw    = model.Account{ID: "3030", Name: "Drawings", Type: model.AccountTypeEquity, Category: "Contra Equity", NormalBalance: model.SideDebit}
	sale    = model.Account{ID: "4010", Name: "Sales Revenue", Type: model.AccountTypeRevenue, NormalBalance: model.SideCredit}
	rent    = model.Account{ID: "5200", Name: "Rent Expense", Type: model.AccountTypeExpense, NormalBalance: model.SideDebit}
	supp    = model.Account{ID: "5400", Name: "Office Supplies", Type: model.AccountTypeExpense, NormalBalance: model.SideDebit}
)

func post(id string, d time.Time, debit, credit model.Account, amount string) model.Transaction {
	return model.Transaction{
		ID:              id,
		Date:            d,
		Description:     debit.Name + " / " + credit.Name,
		Amount:          dec(amount),
		DebitAccountID:  debit.ID,
		CreditAccountID: credit.ID,
	}
}

func catalog(accts ...model.Account) *accounts.Service {
	return accounts.NewService(accts)
}
