package coa

import "github.com/aarlazuardi/erp-ledger/internal/ledger"

// JournalTemplate is the fixed debit/credit pair a preset posts. Presets
// bypass heuristic account selection entirely.
type JournalTemplate struct {
	DebitAccount  string
	CreditAccount string
	// CashImpact marks templates that move the cash balance.
	CashImpact  bool
	Description string
}

// Preset is a named transaction shortcut bundling a finance type, category,
// cash-flow classification and a fixed journal template.
type Preset struct {
	Key                string
	Label              string
	FinanceType        ledger.FinanceType
	Category           string
	CashFlow           ledger.CashFlowCategory
	DefaultDescription string
	Template           JournalTemplate
}

var presets = []Preset{
	{
		Key: "cash-sale", Label: "Cash Sale",
		FinanceType: ledger.FinanceIncome, Category: "Sales", CashFlow: ledger.CashFlowOperating,
		DefaultDescription: "Cash sale of goods",
		Template:           JournalTemplate{DebitAccount: CodeCash, CreditAccount: CodeSalesRevenue, CashImpact: true, Description: "Cash sale"},
	},
	{
		Key: "credit-sale", Label: "Credit Sale",
		FinanceType: ledger.FinanceIncome, Category: "Sales", CashFlow: ledger.CashFlowOperating,
		DefaultDescription: "Sale on customer credit",
		Template:           JournalTemplate{DebitAccount: CodeAccountsReceivable, CreditAccount: CodeSalesRevenue, Description: "Credit sale"},
	},
	{
		Key: "service-income", Label: "Service Income",
		FinanceType: ledger.FinanceIncome, Category: "Pendapatan Jasa", CashFlow: ledger.CashFlowOperating,
		DefaultDescription: "Income from services rendered",
		Template:           JournalTemplate{DebitAccount: CodeCash, CreditAccount: CodeOtherRevenue, CashImpact: true, Description: "Service income"},
	},
	{
		Key: "cogs", Label: "COGS",
		FinanceType: ledger.FinanceExpense, Category: "HPP", CashFlow: ledger.CashFlowOperating,
		DefaultDescription: "Cost of goods sold",
		Template:           JournalTemplate{DebitAccount: CodeCOGS, CreditAccount: CodeCash, CashImpact: true, Description: "Cost of goods sold"},
	},
	{
		Key: "operating-expense", Label: "Operating Expense",
		FinanceType: ledger.FinanceExpense, Category: "Beban Operasional", CashFlow: ledger.CashFlowOperating,
		DefaultDescription: "General operating expense",
		Template:           JournalTemplate{DebitAccount: CodeOperatingExpense, CreditAccount: CodeCash, CashImpact: true, Description: "Operating expense"},
	},
	{
		Key: "tax-payment", Label: "Tax Payment",
		FinanceType: ledger.FinanceExpense, Category: "Pajak", CashFlow: ledger.CashFlowOperating,
		DefaultDescription: "Tax paid",
		Template:           JournalTemplate{DebitAccount: CodeTaxExpense, CreditAccount: CodeCash, CashImpact: true, Description: "Tax payment"},
	},
	{
		Key: "depreciation", Label: "Depreciation",
		FinanceType: ledger.FinanceExpense, Category: "Penyusutan", CashFlow: ledger.CashFlowNonCash,
		DefaultDescription: "Periodic depreciation charge",
		Template:           JournalTemplate{DebitAccount: CodeDepreciationExpense, CreditAccount: CodeAccumDepreciation, Description: "Depreciation"},
	},
	{
		Key: "purchase", Label: "Purchase",
		FinanceType: ledger.FinanceAsset, Category: "Persediaan", CashFlow: ledger.CashFlowOperating,
		DefaultDescription: "Inventory purchase",
		Template:           JournalTemplate{DebitAccount: CodeInventory, CreditAccount: CodeCash, CashImpact: true, Description: "Inventory purchase"},
	},
	{
		Key: "asset-purchase", Label: "Asset Purchase",
		FinanceType: ledger.FinanceAsset, Category: "Aset Tetap", CashFlow: ledger.CashFlowInvesting,
		DefaultDescription: "Fixed asset purchase",
		Template:           JournalTemplate{DebitAccount: CodeFixedAssets, CreditAccount: CodeCash, CashImpact: true, Description: "Fixed asset purchase"},
	},
	{
		Key: "loan-proceeds", Label: "Loan Proceeds",
		FinanceType: ledger.FinanceLiability, Category: "Pinjaman", CashFlow: ledger.CashFlowFinancing,
		DefaultDescription: "Loan drawn down",
		Template:           JournalTemplate{DebitAccount: CodeCash, CreditAccount: CodeLoansPayable, CashImpact: true, Description: "Loan proceeds"},
	},
	{
		Key: "owner-contribution", Label: "Owner Contribution",
		FinanceType: ledger.FinanceEquity, Category: "Modal", CashFlow: ledger.CashFlowFinancing,
		DefaultDescription: "Capital contributed by owner",
		Template:           JournalTemplate{DebitAccount: CodeCash, CreditAccount: CodeOwnersEquity, CashImpact: true, Description: "Owner contribution"},
	},
}

var presetByKey = func() map[string]Preset {
	m := make(map[string]Preset, len(presets))
	for _, p := range presets {
		m[p.Key] = p
	}
	return m
}()

// LookupPreset resolves a preset by key.
func LookupPreset(key string) (Preset, bool) {
	p, ok := presetByKey[key]
	return p, ok
}

// Presets returns the catalog in presentation order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}
