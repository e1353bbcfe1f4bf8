package accounts

import "github.com/cleared-dev/tally/internal/model"

// DefaultChart returns the default chart of accounts for an entity type.
func DefaultChart(entityType string) []model.Account {
	switch entityType {
	case "sole_proprietor":
		return soleProprietorChart()
	default:
		return tradingCompanyChart()
	}
}

func tradingCompanyChart() []model.Account {
	return []model.Account{
		{ID: "1010", Name: "Cash", Type: model.AccountTypeAsset, Category: "Current Asset", NormalBalance: model.SideDebit, Description: "Cash on hand"},
		{ID: "1020", Name: "Bank Account", Type: model.AccountTypeAsset, Category: "Current Asset", NormalBalance: model.SideDebit, Description: "Operating bank account"},
		{ID: "1100", Name: "Accounts Receivable", Type: model.AccountTypeAsset, Category: "Current Asset", NormalBalance: model.SideDebit, Description: "Amounts owed by customers"},
		{ID: "1200", Name: "Inventory", Type: model.AccountTypeAsset, Category: "Current Asset", NormalBalance: model.SideDebit, Description: "Goods held for sale"},
		{ID: "1500", Name: "Equipment", Type: model.AccountTypeAsset, Category: "Fixed Asset", NormalBalance: model.SideDebit, Description: "Machinery, computers and furniture"},
		{ID: "2010", Name: "Accounts Payable", Type: model.AccountTypeLiability, Category: "Current Liability", NormalBalance: model.SideCredit, Description: "Amounts owed to vendors"},
		{ID: "2100", Name: "Accrued Salaries", Type: model.AccountTypeLiability, Category: "Current Liability", NormalBalance: model.SideCredit, Description: "Wages earned but not yet paid"},
		{ID: "2500", Name: "Bank Loan", Type: model.AccountTypeLiability, Category: "Long-term Liability", NormalBalance: model.SideCredit, Description: "Term loan"},
		{ID: "3010", Name: "Owner's Capital", Type: model.AccountTypeEquity, Category: "Equity", NormalBalance: model.SideCredit, Description: "Capital contributed by owners"},
		{ID: "3020", Name: "Retained Earnings", Type: model.AccountTypeEquity, Category: "Equity", NormalBalance: model.SideCredit, Description: "Accumulated profits"},
		{ID: "3030", Name: "Drawings", Type: model.AccountTypeEquity, Category: "Contra Equity", NormalBalance: model.SideDebit, Description: "Owner withdrawals"},
		{ID: "4010", Name: "Sales Revenue", Type: model.AccountTypeRevenue, Category: "Operating Revenue", NormalBalance: model.SideCredit, Description: "Product sales"},
		{ID: "4020", Name: "Service Revenue", Type: model.AccountTypeRevenue, Category: "Operating Revenue", NormalBalance: model.SideCredit, Description: "Services rendered"},
		{ID: "4900", Name: "Interest Income", Type: model.AccountTypeRevenue, Category: "Other Revenue", NormalBalance: model.SideCredit},
		{ID: "5010", Name: "Cost of Goods Sold", Type: model.AccountTypeExpense, Category: "Cost of Sales", NormalBalance: model.SideDebit},
		{ID: "5100", Name: "Salaries Expense", Type: model.AccountTypeExpense, Category: "Operating Expense", NormalBalance: model.SideDebit},
		{ID: "5200", Name: "Rent Expense", Type: model.AccountTypeExpense, Category: "Operating Expense", NormalBalance: model.SideDebit},
		{ID: "5300", Name: "Utilities Expense", Type: model.AccountTypeExpense, Category: "Operating Expense", NormalBalance: model.SideDebit},
		{ID: "5400", Name: "Office Supplies", Type: model.AccountTypeExpense, Category: "Operating Expense", NormalBalance: model.SideDebit},
		{ID: "5900", Name: "Depreciation Expense", Type: model.AccountTypeExpense, Category: "Non-cash Expense", NormalBalance: model.SideDebit},
	}
}

func soleProprietorChart() []model.Account {
	return []model.Account{
		{ID: "1010", Name: "Business Checking", Type: model.AccountTypeAsset, Category: "Current Asset", NormalBalance: model.SideDebit},
		{ID: "2010", Name: "Credit Card", Type: model.AccountTypeLiability, Category: "Current Liability", NormalBalance: model.SideCredit},
		{ID: "3010", Name: "Owner's Equity", Type: model.AccountTypeEquity, Category: "Equity", NormalBalance: model.SideCredit},
		{ID: "3030", Name: "Drawings", Type: model.AccountTypeEquity, Category: "Contra Equity", NormalBalance: model.SideDebit},
		{ID: "4010", Name: "Service Revenue", Type: model.AccountTypeRevenue, Category: "Operating Revenue", NormalBalance: model.SideCredit},
		{ID: "5010", Name: "Software & SaaS", Type: model.AccountTypeExpense, Category: "Operating Expense", NormalBalance: model.SideDebit},
		{ID: "5020", Name: "Office Supplies", Type: model.AccountTypeExpense, Category: "Operating Expense", NormalBalance: model.SideDebit},
	}
}
