package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarlazuardi/erp-ledger/internal/ledger"
)

var (
	mayStart = time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	junStart = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
)

func mkTx(ft ledger.FinanceType, category string, amount int64, date time.Time) ledger.Transaction {
	return ledger.Transaction{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		FinanceType: ft,
		Amount:      decimal.NewFromInt(amount),
		Date:        date,
		Category:    category,
		Status:      ledger.StatusPosted,
		CashFlow:    ledger.CashFlowOperating,
	}
}

func amountOf(t *testing.T, rows []Row, label string) decimal.Decimal {
	t.Helper()
	for _, r := range rows {
		if r.Label == label {
			return r.Amount
		}
	}
	t.Fatalf("no row labelled %q in %v", label, rows)
	return decimal.Zero
}

func TestBuildIncomeStatement(t *testing.T) {
	inMay := mayStart.AddDate(0, 0, 9)
	txs := []ledger.Transaction{
		mkTx(ledger.FinanceIncome, "Penjualan", 10000000, inMay),
		mkTx(ledger.FinanceIncome, "Jasa Konsultasi", 2000000, inMay),
		mkTx(ledger.FinanceExpense, "HPP Bahan Baku", 4000000, inMay),
		mkTx(ledger.FinanceExpense, "Beban Gaji", 3000000, inMay),
		// Out of period and non-P&L types stay off the statement
		mkTx(ledger.FinanceIncome, "Penjualan", 999999, mayStart.AddDate(0, -1, 0)),
		mkTx(ledger.FinanceAsset, "Peralatan", 5000000, inMay),
	}
	adjs := map[string][]ledger.ReportAdjustment{
		ledger.SectionRevenues: {{
			ID: uuid.New(), Label: "Unbilled retainer",
			Amount: decimal.NewFromInt(500000),
		}},
		ledger.SectionExpenses: {{
			ID: uuid.New(), Label: "Over-accrued rent",
			Amount: decimal.NewFromInt(-200000),
		}},
	}

	st := buildIncomeStatement(txs, mayStart, junStart, adjs)

	assert.True(t, st.TotalRevenue.Equal(decimal.NewFromInt(12500000)), "revenue %s", st.TotalRevenue)
	assert.True(t, st.TotalCOGS.Equal(decimal.NewFromInt(4000000)))
	assert.True(t, st.GrossProfit.Equal(decimal.NewFromInt(8500000)))
	assert.True(t, st.TotalOperating.Equal(decimal.NewFromInt(2800000)))
	assert.True(t, st.NetIncome.Equal(decimal.NewFromInt(5700000)))

	// HPP lands under cost of goods, not operating expenses
	assert.Len(t, st.COGS, 1)
	amountOf(t, st.COGS, "HPP Bahan Baku")

	for _, r := range st.Revenues {
		if r.Label == "Unbilled retainer" {
			assert.True(t, r.IsManual)
			return
		}
	}
	t.Fatal("manual adjustment row missing from revenues")
}

func TestIncomeStatement_PeriodsAreAdditive(t *testing.T) {
	janStart := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	marStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	var txs []ledger.Transaction
	for m := 0; m < 5; m++ {
		date := janStart.AddDate(0, m, 14)
		txs = append(txs,
			mkTx(ledger.FinanceIncome, "Penjualan", int64(1000000*(m+1)), date),
			mkTx(ledger.FinanceExpense, "Beban Operasional", int64(300000*(m+1)), date),
		)
	}

	whole := buildIncomeStatement(txs, janStart, junStart, nil)
	first := buildIncomeStatement(txs, janStart, marStart, nil)
	second := buildIncomeStatement(txs, marStart, junStart, nil)

	sum := first.NetIncome.Add(second.NetIncome)
	assert.True(t, whole.NetIncome.Equal(sum), "whole %s vs %s", whole.NetIncome, sum)
}

func TestBuildBalanceSheet_SyntheticRows(t *testing.T) {
	inMay := mayStart.AddDate(0, 0, 4)
	pendingIncome := mkTx(ledger.FinanceIncome, "Penjualan", 1000000, inMay)
	pendingIncome.Status = ledger.StatusPending
	pendingExpense := mkTx(ledger.FinanceExpense, "Beban Sewa", 400000, inMay)
	pendingExpense.Status = ledger.StatusPending

	txs := []ledger.Transaction{
		mkTx(ledger.FinanceIncome, "Penjualan", 5000000, inMay),
		mkTx(ledger.FinanceExpense, "Beban Gaji", 2000000, inMay),
		pendingIncome,
		pendingExpense,
	}

	bs := buildBalanceSheet(txs, junStart, nil)

	// Cash is derived because no asset transaction is labelled as cash,
	// and pending rows stay out of it.
	cash := amountOf(t, bs.Assets, "Cash & Cash Equivalents")
	assert.True(t, cash.Equal(decimal.NewFromInt(3000000)), "cash %s", cash)
	assert.True(t, amountOf(t, bs.Assets, "Accounts Receivable").Equal(decimal.NewFromInt(1000000)))
	assert.True(t, amountOf(t, bs.Liabilities, "Accounts Payable").Equal(decimal.NewFromInt(400000)))

	// Equity is plugged so the sheet balances
	assert.True(t, bs.TotalEquity.Equal(bs.TotalAssets.Sub(bs.TotalLiabilities)))
	re := amountOf(t, bs.Equity, "Retained Earnings")
	assert.True(t, re.Equal(decimal.NewFromInt(3600000)), "retained earnings %s", re)

	for _, r := range bs.Equity {
		assert.NotEqual(t, "Balance Sheet Adjustment", r.Label)
	}
}

func TestBuildBalanceSheet_ExplicitCashSuppressesSynthetic(t *testing.T) {
	inMay := mayStart.AddDate(0, 0, 4)
	txs := []ledger.Transaction{
		mkTx(ledger.FinanceAsset, "Kas Kecil", 2500000, inMay),
		mkTx(ledger.FinanceIncome, "Penjualan", 1000000, inMay),
	}

	bs := buildBalanceSheet(txs, junStart, nil)

	for _, r := range bs.Assets {
		assert.NotEqual(t, "Cash & Cash Equivalents", r.Label)
	}
	amountOf(t, bs.Assets, "Kas Kecil")
}

func TestBuildBalanceSheet_ExistingRetainedEarningsAdjustedInPlace(t *testing.T) {
	inMay := mayStart.AddDate(0, 0, 4)
	txs := []ledger.Transaction{
		mkTx(ledger.FinanceIncome, "Penjualan", 5000000, inMay),
		mkTx(ledger.FinanceEquity, "Retained Earnings", 1000000, inMay),
	}

	bs := buildBalanceSheet(txs, junStart, nil)

	count := 0
	for _, r := range bs.Equity {
		if r.Label == "Retained Earnings" {
			count++
		}
	}
	assert.Equal(t, 1, count, "correction must reuse the existing row")
	assert.True(t, bs.TotalEquity.Equal(bs.TotalAssets.Sub(bs.TotalLiabilities)))
}

func TestBuildBalanceSheet_CutoffIsEndExclusive(t *testing.T) {
	txs := []ledger.Transaction{
		mkTx(ledger.FinanceIncome, "Penjualan", 5000000, mayStart.AddDate(0, -3, 0)),
		mkTx(ledger.FinanceIncome, "Penjualan", 7000000, junStart),
	}

	bs := buildBalanceSheet(txs, junStart, nil)

	// Only the older transaction counts toward the position
	cash := amountOf(t, bs.Assets, "Cash & Cash Equivalents")
	assert.True(t, cash.Equal(decimal.NewFromInt(5000000)), "cash %s", cash)
}

func TestBuildCashFlow(t *testing.T) {
	inMay := mayStart.AddDate(0, 0, 19)

	equipment := mkTx(ledger.FinanceAsset, "Peralatan", 3000000, inMay)
	equipment.CashFlow = ledger.CashFlowInvesting
	loan := mkTx(ledger.FinanceLiability, "Pinjaman Bank", 4000000, inMay)
	loan.CashFlow = ledger.CashFlowFinancing
	depreciation := mkTx(ledger.FinanceExpense, "Penyusutan", 1000000, inMay)
	depreciation.CashFlow = ledger.CashFlowNonCash
	pettyCash := mkTx(ledger.FinanceAsset, "Kas Kecil", 500000, inMay)
	rounding := mkTx(ledger.FinanceExpense, "Rounding", 0, inMay)
	rounding.Amount = decimal.NewFromFloat(0.005)

	txs := []ledger.Transaction{
		mkTx(ledger.FinanceIncome, "Penjualan", 5000000, inMay),
		mkTx(ledger.FinanceExpense, "Beban Gaji", 2000000, inMay),
		equipment,
		loan,
		depreciation,
		pettyCash,
		rounding,
	}

	cf := buildCashFlow(txs, mayStart, junStart, nil)

	assert.True(t, cf.TotalOperating.Equal(decimal.NewFromInt(3000000)), "operating %s", cf.TotalOperating)
	assert.True(t, cf.TotalInvesting.Equal(decimal.NewFromInt(-3000000)))
	assert.True(t, cf.TotalFinancing.Equal(decimal.NewFromInt(4000000)))
	assert.True(t, cf.NetChange.Equal(decimal.NewFromInt(4000000)), "net change %s", cf.NetChange)

	// Depreciation never moves cash, cash-labelled assets are the position
	// itself, and sub-cent rows are noise.
	for _, r := range cf.Operating {
		assert.NotContains(t, []string{"Penyusutan", "Kas Kecil", "Rounding"}, r.Label)
	}

	// Outflows keep their sign on the row
	assert.True(t, amountOf(t, cf.Operating, "Beban Gaji").IsNegative())
	assert.True(t, amountOf(t, cf.Investing, "Peralatan").IsNegative())
}

func TestBuildCashFlow_AdjustmentsSkipRowFilter(t *testing.T) {
	adjs := map[string][]ledger.ReportAdjustment{
		ledger.SectionFinancing: {{
			ID: uuid.New(), Label: "Owner drawing",
			Amount: decimal.NewFromInt(-250000),
		}},
	}

	cf := buildCashFlow(nil, mayStart, junStart, adjs)

	require.Len(t, cf.Financing, 1)
	assert.True(t, cf.Financing[0].IsManual)
	assert.True(t, cf.NetChange.Equal(decimal.NewFromInt(-250000)))
}

func TestCashPosition(t *testing.T) {
	inMay := mayStart.AddDate(0, 0, 2)

	pendingIncome := mkTx(ledger.FinanceIncome, "Penjualan", 9000000, inMay)
	pendingIncome.Status = ledger.StatusPending
	nonCashExpense := mkTx(ledger.FinanceExpense, "Penyusutan", 700000, inMay)
	nonCashExpense.CashFlow = ledger.CashFlowNonCash
	cashAsset := mkTx(ledger.FinanceAsset, "Kas", 2000000, inMay)
	cashAsset.CashFlow = ledger.CashFlowNonCash // still counts: it IS cash

	txs := []ledger.Transaction{
		mkTx(ledger.FinanceIncome, "Penjualan", 5000000, inMay),    // +5.0M
		mkTx(ledger.FinanceExpense, "Beban Gaji", 1500000, inMay),  // -1.5M
		mkTx(ledger.FinanceAsset, "Peralatan", 1000000, inMay),     // -1.0M
		mkTx(ledger.FinanceLiability, "Pinjaman", 3000000, inMay),  // +3.0M
		mkTx(ledger.FinanceEquity, "Modal Awal", 10000000, inMay),  // +10.0M
		cashAsset,      // +2.0M
		pendingIncome,  // no cash received yet
		nonCashExpense, // no cash moved
	}

	got := cashPosition(txs)
	assert.True(t, got.Equal(decimal.NewFromInt(17500000)), "cash %s", got)
}

func TestSortRows(t *testing.T) {
	rows := []Row{
		{Label: "small", Amount: decimal.NewFromInt(10)},
		{Label: "big negative", Amount: decimal.NewFromInt(-500)},
		{Label: "medium", Amount: decimal.NewFromInt(200)},
	}
	sortRows(rows)
	assert.Equal(t, []string{"big negative", "medium", "small"},
		[]string{rows[0].Label, rows[1].Label, rows[2].Label})
}
