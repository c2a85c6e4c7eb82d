// Package coa holds the static chart of accounts and the transaction preset
// catalog. Both are immutable, process-wide data; there is nothing to load or
// configure at runtime.
package coa

import "github.com/aarlazuardi/erp-ledger/internal/ledger"

// Account codes referenced by the selection heuristic and the presets.
const (
	CodeCash                = "1000"
	CodeAccountsReceivable  = "1100"
	CodeInventory           = "1200"
	CodeFixedAssets         = "1500"
	CodeAccumDepreciation   = "1510"
	CodeAccountsPayable     = "2000"
	CodeLoansPayable        = "2100"
	CodeOwnersEquity        = "3000"
	CodeRetainedEarnings    = "3100"
	CodeSalesRevenue        = "4000"
	CodeOtherRevenue        = "4900"
	CodeCOGS                = "5000"
	CodeOperatingExpense    = "6000"
	CodeTaxExpense          = "6100"
	CodeDepreciationExpense = "6200"
)

var chart = []ledger.Account{
	// Assets (1xxx)
	{Code: CodeCash, Name: "Cash", Type: ledger.AccountTypeAsset, CashFlow: ledger.CashFlowOperating, IsCash: true},
	{Code: CodeAccountsReceivable, Name: "Accounts Receivable", Type: ledger.AccountTypeAsset, CashFlow: ledger.CashFlowOperating},
	{Code: CodeInventory, Name: "Inventory", Type: ledger.AccountTypeAsset, CashFlow: ledger.CashFlowOperating},
	{Code: CodeFixedAssets, Name: "Fixed Assets", Type: ledger.AccountTypeAsset, CashFlow: ledger.CashFlowInvesting},
	{Code: CodeAccumDepreciation, Name: "Accumulated Depreciation", Type: ledger.AccountTypeAsset, CashFlow: ledger.CashFlowNonCash},

	// Liabilities (2xxx)
	{Code: CodeAccountsPayable, Name: "Accounts Payable", Type: ledger.AccountTypeLiability, CashFlow: ledger.CashFlowOperating},
	{Code: CodeLoansPayable, Name: "Loans Payable", Type: ledger.AccountTypeLiability, CashFlow: ledger.CashFlowFinancing},

	// Equity (3xxx)
	{Code: CodeOwnersEquity, Name: "Owner's Equity", Type: ledger.AccountTypeEquity, CashFlow: ledger.CashFlowFinancing},
	{Code: CodeRetainedEarnings, Name: "Retained Earnings", Type: ledger.AccountTypeEquity, IsRetainedEarnings: true},

	// Revenue (4xxx)
	{Code: CodeSalesRevenue, Name: "Sales Revenue", Type: ledger.AccountTypeRevenue, CashFlow: ledger.CashFlowOperating},
	{Code: CodeOtherRevenue, Name: "Other Revenue", Type: ledger.AccountTypeRevenue, CashFlow: ledger.CashFlowOperating},

	// Expenses (5xxx-6xxx)
	{Code: CodeCOGS, Name: "Cost of Goods Sold", Type: ledger.AccountTypeExpense, CashFlow: ledger.CashFlowOperating},
	{Code: CodeOperatingExpense, Name: "Operating Expenses", Type: ledger.AccountTypeExpense, CashFlow: ledger.CashFlowOperating},
	{Code: CodeTaxExpense, Name: "Tax Expense", Type: ledger.AccountTypeExpense, CashFlow: ledger.CashFlowOperating},
	{Code: CodeDepreciationExpense, Name: "Depreciation Expense", Type: ledger.AccountTypeExpense, CashFlow: ledger.CashFlowNonCash},
}

var byCode = func() map[string]ledger.Account {
	m := make(map[string]ledger.Account, len(chart))
	for _, a := range chart {
		m[a.Code] = a
	}
	return m
}()

// Lookup finds a chart entry by account code.
func Lookup(code string) (ledger.Account, bool) {
	a, ok := byCode[code]
	return a, ok
}

// Exists reports whether an account code is registered.
func Exists(code string) bool {
	_, ok := byCode[code]
	return ok
}

// All returns the full chart in presentation order.
func All() []ledger.Account {
	out := make([]ledger.Account, len(chart))
	copy(out, chart)
	return out
}
