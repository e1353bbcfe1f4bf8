package httpapi

import (
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/period"
	"github.com/cleared-dev/tally/internal/report"
)

// Amounts are rendered as decimal strings so no precision is lost in JSON.

type accountJSON struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Category      string `json:"category,omitempty"`
	NormalBalance string `json:"normal_balance"`
	Description   string `json:"description,omitempty"`
}

type balanceJSON struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Side      string `json:"side"`
	Normal    bool   `json:"on_normal_side"`
}

type periodJSON struct {
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	Label string `json:"label"`
}

type balanceResponse struct {
	Period   periodJSON  `json:"period"`
	Currency string      `json:"currency,omitempty"`
	Balance  balanceJSON `json:"balance"`
}

type statementJSON struct {
	Period          periodJSON    `json:"period"`
	Currency        string        `json:"currency,omitempty"`
	Revenue         string        `json:"revenue"`
	Expenses        string        `json:"expenses"`
	NetProfit       string        `json:"net_profit"`
	Assets          string        `json:"assets"`
	Liabilities     string        `json:"liabilities"`
	Equity          string        `json:"equity"`
	Difference      string        `json:"difference"`
	IsBalanced      bool          `json:"is_balanced"`
	AccountBalances []balanceJSON `json:"account_balances"`
	Warnings        []string      `json:"warnings,omitempty"`
}

type trialBalanceRowJSON struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Debit     string `json:"debit"`
	Credit    string `json:"credit"`
}

type trialBalanceJSON struct {
	Period      periodJSON            `json:"period"`
	Currency    string                `json:"currency,omitempty"`
	Rows        []trialBalanceRowJSON `json:"rows"`
	TotalDebit  string                `json:"total_debit"`
	TotalCredit string                `json:"total_credit"`
	Balanced    bool                  `json:"balanced"`
}

func toAccountJSON(a model.Account) accountJSON {
	return accountJSON{
		ID:            a.ID,
		Name:          a.Name,
		Type:          string(a.Type),
		Category:      a.Category,
		NormalBalance: string(a.NormalBalance),
		Description:   a.Description,
	}
}

func toBalanceJSON(b model.AccountBalance) balanceJSON {
	return balanceJSON{
		AccountID: b.Account.ID,
		Name:      b.Account.Name,
		Amount:    b.Amount.String(),
		Side:      string(b.Side),
		Normal:    b.OnNormalSide(),
	}
}

func toPeriodJSON(p ledger.Period) periodJSON {
	out := periodJSON{Label: p.String()}
	if !p.Start.IsZero() {
		out.From = p.Start.Format(period.DateFormat)
	}
	if !p.End.IsZero() {
		out.To = p.End.Format(period.DateFormat)
	}
	return out
}

func toStatementJSON(st report.Statement, currency string) statementJSON {
	t := st.Totals
	out := statementJSON{
		Period:          toPeriodJSON(st.Period),
		Currency:        currency,
		Revenue:         t.Revenue.String(),
		Expenses:        t.Expenses.String(),
		NetProfit:       t.NetProfit.String(),
		Assets:          t.Assets.String(),
		Liabilities:     t.Liabilities.String(),
		Equity:          t.Equity.String(),
		Difference:      t.Difference.String(),
		IsBalanced:      t.IsBalanced,
		AccountBalances: make([]balanceJSON, len(t.AccountBalances)),
	}
	for i, b := range t.AccountBalances {
		out.AccountBalances[i] = toBalanceJSON(b)
	}
	for _, w := range st.Warnings {
		out.Warnings = append(out.Warnings, w.String())
	}
	return out
}

func toTrialBalanceJSON(p ledger.Period, currency string, tb ledger.TrialBalanceTotals) trialBalanceJSON {
	out := trialBalanceJSON{
		Period:      toPeriodJSON(p),
		Currency:    currency,
		Rows:        make([]trialBalanceRowJSON, len(tb.Rows)),
		TotalDebit:  tb.TotalDebit.String(),
		TotalCredit: tb.TotalCredit.String(),
		Balanced:    tb.Balanced(),
	}
	for i, row := range tb.Rows {
		out.Rows[i] = trialBalanceRowJSON{
			AccountID: row.Account.ID,
			Name:      row.Account.Name,
			Debit:     row.Debit.String(),
			Credit:    row.Credit.String(),
		}
	}
	return out
}
