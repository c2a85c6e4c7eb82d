package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aarlazuardi/erp-ledger/internal/errs"
	"github.com/aarlazuardi/erp-ledger/internal/ledger"
)

const trendMonths = 6

// BuildDashboardSnapshot computes the period's headline metrics, the
// six-month income/expense trend and attention notifications. Net income is
// cross-checked against the journal-derived figure; a disagreement means the
// account heuristic and the category classification have drifted apart, and
// is surfaced as a warning instead of silently picking a side.
func (s *service) BuildDashboardSnapshot(ctx context.Context, userID uuid.UUID, periodKey string) (DashboardSnapshot, error) {
	if userID == uuid.Nil {
		return DashboardSnapshot{}, fmt.Errorf("%w: user id is required", errs.ErrInvalid)
	}
	now := s.now()
	start, end, err := Range(periodKey, now)
	if err != nil {
		return DashboardSnapshot{}, err
	}
	txs, err := s.txs.ListAll(ctx, userID)
	if err != nil {
		return DashboardSnapshot{}, err
	}

	var revenue, expenses decimal.Decimal
	var pendingIn, pendingOut decimal.Decimal
	for _, tx := range txs {
		if tx.Status == ledger.StatusPending {
			switch tx.FinanceType {
			case ledger.FinanceIncome:
				pendingIn = pendingIn.Add(tx.Amount)
			case ledger.FinanceExpense:
				pendingOut = pendingOut.Add(tx.Amount)
			}
		}
		if !inPeriod(tx.Date, start, end) {
			continue
		}
		switch tx.FinanceType {
		case ledger.FinanceIncome:
			revenue = revenue.Add(tx.Amount)
		case ledger.FinanceExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}
	netIncome := revenue.Sub(expenses)

	snap := DashboardSnapshot{
		Period: periodKey,
		Metrics: Metrics{
			Revenue:      revenue,
			Expenses:     expenses,
			NetIncome:    netIncome,
			CashPosition: cashPosition(txs),
		},
		MonthlyTrend: monthlyTrend(txs, now),
	}

	journalNet, err := s.journal.NetIncome(ctx, userID, start, end)
	if err != nil {
		return DashboardSnapshot{}, err
	}
	if diff := netIncome.Sub(journalNet); diff.Abs().GreaterThan(divergenceTolerance) {
		snap.Notifications = append(snap.Notifications, Notification{
			Level:   "warning",
			Message: fmt.Sprintf("net income from transactions (%s) disagrees with the journal (%s); some transactions may be miscategorized", netIncome.StringFixed(2), journalNet.StringFixed(2)),
		})
	}
	if pendingIn.IsPositive() {
		snap.Notifications = append(snap.Notifications, Notification{
			Level:   "info",
			Message: fmt.Sprintf("outstanding receivables of %s awaiting payment", pendingIn.StringFixed(2)),
		})
	}
	if pendingOut.IsPositive() {
		snap.Notifications = append(snap.Notifications, Notification{
			Level:   "info",
			Message: fmt.Sprintf("outstanding payables of %s due", pendingOut.StringFixed(2)),
		})
	}
	return snap, nil
}

// BuildFinanceOverview summarizes the all-time cash position, the
// month-to-date figures and the latest transactions. Unlike the dashboard,
// its net income comes from journal account balances.
func (s *service) BuildFinanceOverview(ctx context.Context, userID uuid.UUID) (FinanceOverview, error) {
	if userID == uuid.Nil {
		return FinanceOverview{}, fmt.Errorf("%w: user id is required", errs.ErrInvalid)
	}
	start, end, err := Range(PeriodCurrentMonth, s.now())
	if err != nil {
		return FinanceOverview{}, err
	}
	txs, err := s.txs.ListAll(ctx, userID)
	if err != nil {
		return FinanceOverview{}, err
	}

	var revenue, expenses decimal.Decimal
	for _, tx := range txs {
		if !inPeriod(tx.Date, start, end) {
			continue
		}
		switch tx.FinanceType {
		case ledger.FinanceIncome:
			revenue = revenue.Add(tx.Amount)
		case ledger.FinanceExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}
	netIncome, err := s.journal.NetIncome(ctx, userID, start, end)
	if err != nil {
		return FinanceOverview{}, err
	}

	recent := txs
	if len(recent) > 5 {
		recent = recent[:5]
	}
	return FinanceOverview{
		CashPosition:       cashPosition(txs),
		RevenueMTD:         revenue,
		ExpenseMTD:         expenses,
		NetIncomeMTD:       netIncome,
		RecentTransactions: recent,
	}, nil
}

// cashPosition is the signed all-time sum of cash-affecting transactions,
// the same arithmetic the balance sheet uses for its synthetic cash row.
func cashPosition(txs []ledger.Transaction) decimal.Decimal {
	cash := decimal.Zero
	for _, tx := range txs {
		cashLabelled := tx.FinanceType == ledger.FinanceAsset && isCashCategory(tx.Category)
		if tx.CashFlow == ledger.CashFlowNonCash && !cashLabelled {
			continue
		}
		switch tx.FinanceType {
		case ledger.FinanceIncome:
			if tx.Status == ledger.StatusPosted {
				cash = cash.Add(tx.Amount)
			}
		case ledger.FinanceExpense:
			if tx.Status == ledger.StatusPosted {
				cash = cash.Sub(tx.Amount)
			}
		case ledger.FinanceAsset:
			if cashLabelled {
				cash = cash.Add(tx.Amount)
			} else {
				cash = cash.Sub(tx.Amount)
			}
		case ledger.FinanceLiability, ledger.FinanceEquity:
			cash = cash.Add(tx.Amount)
		}
	}
	return cash
}

// monthlyTrend aggregates income and expense per calendar month for the
// last trendMonths months, current month included, oldest first.
func monthlyTrend(txs []ledger.Transaction, now time.Time) []TrendPoint {
	y, m, _ := now.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(trendMonths - 1), 0)

	points := make([]TrendPoint, trendMonths)
	index := make(map[string]int, trendMonths)
	for i := range points {
		key := first.AddDate(0, i, 0).Format("2006-01")
		points[i] = TrendPoint{Month: key}
		index[key] = i
	}
	for _, tx := range txs {
		i, ok := index[tx.Date.In(now.Location()).Format("2006-01")]
		if !ok {
			continue
		}
		switch tx.FinanceType {
		case ledger.FinanceIncome:
			points[i].Income = points[i].Income.Add(tx.Amount)
		case ledger.FinanceExpense:
			points[i].Expense = points[i].Expense.Add(tx.Amount)
		}
	}
	return points
}
