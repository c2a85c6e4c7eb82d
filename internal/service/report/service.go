// Package report aggregates transactions, journal balances and manual
// adjustments into the three financial statements, plus the dashboard and
// overview summaries built on top of them.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aarlazuardi/erp-ledger/internal/errs"
	"github.com/aarlazuardi/erp-ledger/internal/ledger"
	"github.com/aarlazuardi/erp-ledger/internal/service/adjustment"
	"github.com/aarlazuardi/erp-ledger/internal/service/transaction"
)

// Numeric policy for report reconciliation.
var (
	// rowEpsilon drops cash-flow rows too small to present.
	rowEpsilon = decimal.NewFromFloat(0.01)
	// equityTolerance is how far summed equity may drift from
	// assets-minus-liabilities before a Retained Earnings correction is made.
	equityTolerance = decimal.NewFromFloat(0.01)
	// residualTolerance is the final balance check after that correction.
	residualTolerance = decimal.NewFromFloat(0.02)
	// divergenceTolerance bounds the disagreement between the two net-income
	// paths (transaction categories vs journal account balances) before the
	// dashboard flags it as a data-quality problem.
	divergenceTolerance = decimal.NewFromFloat(0.005)
)

// Row is the unit of output in every statement section.
type Row struct {
	Label        string
	Amount       decimal.Decimal
	Description  string
	IsManual     bool
	AdjustmentID uuid.UUID
}

// IncomeStatement is the period's revenue and expense breakdown.
type IncomeStatement struct {
	Revenues          []Row
	COGS              []Row
	OperatingExpenses []Row
	TotalRevenue      decimal.Decimal
	TotalCOGS         decimal.Decimal
	GrossProfit       decimal.Decimal
	TotalOperating    decimal.Decimal
	NetIncome         decimal.Decimal
}

// BalanceSheet is the cumulative position up to the period end.
type BalanceSheet struct {
	Assets           []Row
	Liabilities      []Row
	Equity           []Row
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
}

// CashFlow is the period's cash movement by activity.
type CashFlow struct {
	Operating      []Row
	Investing      []Row
	Financing      []Row
	TotalOperating decimal.Decimal
	TotalInvesting decimal.Decimal
	TotalFinancing decimal.Decimal
	NetChange      decimal.Decimal
}

// ReportData bundles the three statements for one user and period.
type ReportData struct {
	Period          string
	Start           time.Time
	End             time.Time
	IncomeStatement IncomeStatement
	BalanceSheet    BalanceSheet
	CashFlow        CashFlow
}

// Metrics are the headline figures shown on the dashboard.
type Metrics struct {
	Revenue      decimal.Decimal
	Expenses     decimal.Decimal
	NetIncome    decimal.Decimal
	CashPosition decimal.Decimal
}

// TrendPoint is one month of the income/expense trend.
type TrendPoint struct {
	Month   string // YYYY-MM
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Notification is a data-quality or attention item surfaced alongside the
// dashboard metrics.
type Notification struct {
	Level   string // "info" or "warning"
	Message string
}

// DashboardSnapshot is the payload behind the dashboard endpoint.
type DashboardSnapshot struct {
	Period        string
	Metrics       Metrics
	MonthlyTrend  []TrendPoint
	Notifications []Notification
}

// FinanceOverview is the compact summary behind the overview endpoint.
type FinanceOverview struct {
	CashPosition       decimal.Decimal
	RevenueMTD         decimal.Decimal
	ExpenseMTD         decimal.Decimal
	NetIncomeMTD       decimal.Decimal
	RecentTransactions []ledger.Transaction
}

// NetIncomer is the slice of the journal service the aggregator needs: the
// independent net-income path computed from account-type balances.
type NetIncomer interface {
	NetIncome(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
}

// Service builds statements and summaries.
type Service interface {
	BuildReportData(ctx context.Context, userID uuid.UUID, periodKey string) (ReportData, error)
	BuildDashboardSnapshot(ctx context.Context, userID uuid.UUID, periodKey string) (DashboardSnapshot, error)
	BuildFinanceOverview(ctx context.Context, userID uuid.UUID) (FinanceOverview, error)
}

type service struct {
	txs     transaction.Service
	journal NetIncomer
	adjs    adjustment.Service
	now     func() time.Time
}

// New constructs the report service.
func New(txs transaction.Service, journal NetIncomer, adjs adjustment.Service) Service {
	return &service{txs: txs, journal: journal, adjs: adjs, now: time.Now}
}

// BuildReportData assembles the three statements for the period.
func (s *service) BuildReportData(ctx context.Context, userID uuid.UUID, periodKey string) (ReportData, error) {
	if userID == uuid.Nil {
		return ReportData{}, fmt.Errorf("%w: user id is required", errs.ErrInvalid)
	}
	start, end, err := Range(periodKey, s.now())
	if err != nil {
		return ReportData{}, err
	}
	txs, err := s.txs.ListAll(ctx, userID)
	if err != nil {
		return ReportData{}, err
	}
	adjs, err := s.adjs.FetchForPeriod(ctx, userID, start, end)
	if err != nil {
		return ReportData{}, err
	}
	return ReportData{
		Period:          periodKey,
		Start:           start,
		End:             end,
		IncomeStatement: buildIncomeStatement(txs, start, end, adjs.IncomeStatement),
		BalanceSheet:    buildBalanceSheet(txs, end, adjs.BalanceSheet),
		CashFlow:        buildCashFlow(txs, start, end, adjs.CashFlow),
	}, nil
}

func inPeriod(t time.Time, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// sortRows orders rows by descending absolute magnitude, the presentation
// order every statement uses.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.Abs().GreaterThan(rows[j].Amount.Abs())
	})
}

func adjustmentRows(adjs []ledger.ReportAdjustment) []Row {
	rows := make([]Row, 0, len(adjs))
	for _, adj := range adjs {
		rows = append(rows, Row{
			Label:        adj.Label,
			Amount:       adj.Amount,
			Description:  adj.Description,
			IsManual:     true,
			AdjustmentID: adj.ID,
		})
	}
	return rows
}

func sumRows(rows []Row) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	return total
}
