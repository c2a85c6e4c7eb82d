package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aarlazuardi/erp-ledger/internal/ledger"
)

// buildIncomeStatement aggregates in-period income and expense transactions
// by category, splitting expenses into cost-of-goods versus operating.
func buildIncomeStatement(txs []ledger.Transaction, start, end time.Time, adjs map[string][]ledger.ReportAdjustment) IncomeStatement {
	revenue := newBucket()
	cogs := newBucket()
	opex := newBucket()
	for _, tx := range txs {
		if !inPeriod(tx.Date, start, end) {
			continue
		}
		switch tx.FinanceType {
		case ledger.FinanceIncome:
			revenue.add(tx.Category, tx.Amount)
		case ledger.FinanceExpense:
			if isCOGSCategory(tx.Category) {
				cogs.add(tx.Category, tx.Amount)
			} else {
				opex.add(tx.Category, tx.Amount)
			}
		}
	}

	st := IncomeStatement{
		Revenues:          append(revenue.rows(), adjustmentRows(adjs[ledger.SectionRevenues])...),
		COGS:              cogs.rows(),
		OperatingExpenses: append(opex.rows(), adjustmentRows(adjs[ledger.SectionExpenses])...),
	}
	sortRows(st.Revenues)
	sortRows(st.COGS)
	sortRows(st.OperatingExpenses)
	st.TotalRevenue = sumRows(st.Revenues)
	st.TotalCOGS = sumRows(st.COGS)
	st.GrossProfit = st.TotalRevenue.Sub(st.TotalCOGS)
	st.TotalOperating = sumRows(st.OperatingExpenses)
	st.NetIncome = st.GrossProfit.Sub(st.TotalOperating)
	return st
}

// buildBalanceSheet classifies every transaction dated before end straight
// from its finance type. Balance-sheet rows respect the user's own
// categorization instead of re-deriving from journal balances, which would
// double-count the placeholder equity legs the account heuristic posts.
func buildBalanceSheet(txs []ledger.Transaction, end time.Time, adjs map[string][]ledger.ReportAdjustment) BalanceSheet {
	assets := newBucket()
	liabilities := newBucket()
	equity := newBucket()
	pendingReceivable := decimal.Zero
	pendingPayable := decimal.Zero
	hasExplicitCash := false

	upTo := make([]ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.Date.Before(end) {
			continue
		}
		upTo = append(upTo, tx)
		switch tx.FinanceType {
		case ledger.FinanceAsset:
			assets.add(tx.Category, tx.Amount)
			if isCashCategory(tx.Category) {
				hasExplicitCash = true
			}
		case ledger.FinanceLiability:
			liabilities.add(tx.Category, tx.Amount)
		case ledger.FinanceEquity:
			equity.add(tx.Category, tx.Amount)
		case ledger.FinanceIncome:
			if tx.Status == ledger.StatusPending {
				pendingReceivable = pendingReceivable.Add(tx.Amount)
			}
		case ledger.FinanceExpense:
			if tx.Status == ledger.StatusPending {
				pendingPayable = pendingPayable.Add(tx.Amount)
			}
		}
	}
	cash := cashPosition(upTo)

	bs := BalanceSheet{
		Assets:      assets.rows(),
		Liabilities: liabilities.rows(),
		Equity:      equity.rows(),
	}
	if !hasExplicitCash {
		bs.Assets = append(bs.Assets, Row{Label: "Cash & Cash Equivalents", Amount: cash})
	}
	if pendingReceivable.IsPositive() && !hasRowLike(bs.Assets, "receivable", "piutang") {
		bs.Assets = append(bs.Assets, Row{Label: "Accounts Receivable", Amount: pendingReceivable})
	}
	if pendingPayable.IsPositive() && !hasRowLike(bs.Liabilities, "payable", "hutang usaha") {
		bs.Liabilities = append(bs.Liabilities, Row{Label: "Accounts Payable", Amount: pendingPayable})
	}
	bs.Assets = append(bs.Assets, adjustmentRows(adjs[ledger.SectionAssets])...)
	bs.Liabilities = append(bs.Liabilities, adjustmentRows(adjs[ledger.SectionLiabilities])...)
	bs.Equity = append(bs.Equity, adjustmentRows(adjs[ledger.SectionEquity])...)

	bs.TotalAssets = sumRows(bs.Assets)
	bs.TotalLiabilities = sumRows(bs.Liabilities)
	bs.TotalEquity = sumRows(bs.Equity)

	// Reconcile: equity must equal assets minus liabilities. A disagreement
	// is absorbed into Retained Earnings so the statement always balances.
	// This masks misclassification rather than preventing it.
	required := bs.TotalAssets.Sub(bs.TotalLiabilities)
	if diff := required.Sub(bs.TotalEquity); diff.Abs().GreaterThan(equityTolerance) {
		if i := findRow(bs.Equity, "Retained Earnings"); i >= 0 {
			bs.Equity[i].Amount = bs.Equity[i].Amount.Add(diff)
		} else {
			bs.Equity = append(bs.Equity, Row{Label: "Retained Earnings", Amount: diff})
		}
		bs.TotalEquity = sumRows(bs.Equity)
	}
	if residual := required.Sub(bs.TotalEquity); residual.Abs().GreaterThan(residualTolerance) {
		bs.Equity = append(bs.Equity, Row{Label: "Balance Sheet Adjustment", Amount: residual})
		bs.TotalEquity = sumRows(bs.Equity)
	}

	sortRows(bs.Assets)
	sortRows(bs.Liabilities)
	sortRows(bs.Equity)
	return bs
}

// buildCashFlow buckets in-period cash movement by activity. Non-cash
// transactions never move cash, and assets labelled as cash are the opening
// position itself, so both are excluded.
func buildCashFlow(txs []ledger.Transaction, start, end time.Time, adjs map[string][]ledger.ReportAdjustment) CashFlow {
	buckets := map[ledger.CashFlowCategory]*bucket{
		ledger.CashFlowOperating: newBucket(),
		ledger.CashFlowInvesting: newBucket(),
		ledger.CashFlowFinancing: newBucket(),
	}
	for _, tx := range txs {
		if !inPeriod(tx.Date, start, end) {
			continue
		}
		if tx.CashFlow == ledger.CashFlowNonCash {
			continue
		}
		if tx.FinanceType == ledger.FinanceAsset && isCashCategory(tx.Category) {
			continue
		}
		b, ok := buckets[tx.CashFlow]
		if !ok {
			continue
		}
		amt := tx.Amount
		switch tx.FinanceType {
		case ledger.FinanceExpense, ledger.FinanceAsset:
			amt = amt.Neg()
		}
		b.add(tx.Category, amt)
	}

	cf := CashFlow{
		Operating: append(dropTiny(buckets[ledger.CashFlowOperating].rows()), adjustmentRows(adjs[ledger.SectionOperating])...),
		Investing: append(dropTiny(buckets[ledger.CashFlowInvesting].rows()), adjustmentRows(adjs[ledger.SectionInvesting])...),
		Financing: append(dropTiny(buckets[ledger.CashFlowFinancing].rows()), adjustmentRows(adjs[ledger.SectionFinancing])...),
	}
	sortRows(cf.Operating)
	sortRows(cf.Investing)
	sortRows(cf.Financing)
	cf.TotalOperating = sumRows(cf.Operating)
	cf.TotalInvesting = sumRows(cf.Investing)
	cf.TotalFinancing = sumRows(cf.Financing)
	cf.NetChange = cf.TotalOperating.Add(cf.TotalInvesting).Add(cf.TotalFinancing)
	return cf
}

// bucket aggregates amounts by category while remembering insertion order so
// row output is deterministic before the magnitude sort.
type bucket struct {
	order []string
	sums  map[string]decimal.Decimal
}

func newBucket() *bucket {
	return &bucket{sums: make(map[string]decimal.Decimal)}
}

func (b *bucket) add(category string, amount decimal.Decimal) {
	if _, ok := b.sums[category]; !ok {
		b.order = append(b.order, category)
	}
	b.sums[category] = b.sums[category].Add(amount)
}

func (b *bucket) rows() []Row {
	rows := make([]Row, 0, len(b.order))
	for _, category := range b.order {
		rows = append(rows, Row{Label: category, Amount: b.sums[category]})
	}
	return rows
}

func dropTiny(rows []Row) []Row {
	out := rows[:0]
	for _, r := range rows {
		if r.Amount.Abs().GreaterThanOrEqual(rowEpsilon) {
			out = append(out, r)
		}
	}
	return out
}

func findRow(rows []Row, label string) int {
	for i, r := range rows {
		if !r.IsManual && r.Label == label {
			return i
		}
	}
	return -1
}

func hasRowLike(rows []Row, needles ...string) bool {
	for _, r := range rows {
		label := strings.ToLower(r.Label)
		for _, n := range needles {
			if strings.Contains(label, n) {
				return true
			}
		}
	}
	return false
}

func isCOGSCategory(category string) bool {
	c := strings.ToLower(category)
	return strings.Contains(c, "cost of goods") || strings.Contains(c, "cogs") || strings.Contains(c, "hpp")
}

func isCashCategory(category string) bool {
	c := strings.ToLower(category)
	return strings.Contains(c, "kas") || strings.Contains(c, "cash")
}
