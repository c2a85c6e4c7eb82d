package httpapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aarlazuardi/erp-ledger/internal/coa"
	"github.com/aarlazuardi/erp-ledger/internal/ledger"
	"github.com/aarlazuardi/erp-ledger/internal/service/report"
	"github.com/aarlazuardi/erp-ledger/internal/service/transaction"
)

type postTransactionRequest struct {
	UserID       uuid.UUID       `json:"user_id"`
	FinanceType  string          `json:"finance_type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Status       string          `json:"status,omitempty"`
	CashFlowType string          `json:"cash_flow_type,omitempty"`
	Counterparty string          `json:"counterparty,omitempty"`
	PresetKey    string          `json:"preset_key,omitempty"`
}

type patchTransactionRequest struct {
	UserID       uuid.UUID        `json:"user_id"`
	FinanceType  *string          `json:"finance_type,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Date         *time.Time       `json:"date,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Status       *string          `json:"status,omitempty"`
	CashFlowType *string          `json:"cash_flow_type,omitempty"`
	Counterparty *string          `json:"counterparty,omitempty"`
	PresetKey    *string          `json:"preset_key,omitempty"`
}

type transactionResponse struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	FinanceType    string          `json:"finance_type"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description,omitempty"`
	Category       string          `json:"category"`
	Status         string          `json:"status"`
	CashFlowType   string          `json:"cash_flow_type"`
	Counterparty   string          `json:"counterparty,omitempty"`
	PresetKey      string          `json:"preset_key,omitempty"`
	PresetLabel    string          `json:"preset_label,omitempty"`
	JournalEntryID *uuid.UUID      `json:"journal_entry_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type listTransactionsResponse struct {
	Items []transactionResponse `json:"items"`
}

type accountResponse struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	Type               string `json:"type"`
	CashFlow           string `json:"cash_flow,omitempty"`
	IsCash             bool   `json:"is_cash,omitempty"`
	IsRetainedEarnings bool   `json:"is_retained_earnings,omitempty"`
}

type presetResponse struct {
	Key                string `json:"key"`
	Label              string `json:"label"`
	FinanceType        string `json:"finance_type"`
	Category           string `json:"category"`
	CashFlowType       string `json:"cash_flow_type"`
	DefaultDescription string `json:"default_description,omitempty"`
	DebitAccount       string `json:"debit_account"`
	CreditAccount      string `json:"credit_account"`
}

type journalLineResponse struct {
	AccountCode string          `json:"account_code"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

type journalEntryResponse struct {
	ID          uuid.UUID             `json:"id"`
	UserID      uuid.UUID             `json:"user_id"`
	ReferenceID *uuid.UUID            `json:"reference_id,omitempty"`
	Date        time.Time             `json:"date"`
	Memo        string                `json:"memo,omitempty"`
	Lines       []journalLineResponse `json:"lines"`
}

type listJournalResponse struct {
	Items []journalEntryResponse `json:"items"`
}

type postAdjustmentRequest struct {
	UserID        uuid.UUID       `json:"user_id"`
	ReportType    string          `json:"report_type"`
	Section       string          `json:"section"`
	Label         string          `json:"label"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	EffectiveDate time.Time       `json:"effective_date"`
}

type patchAdjustmentRequest struct {
	UserID        uuid.UUID        `json:"user_id"`
	Section       *string          `json:"section,omitempty"`
	Label         *string          `json:"label,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Description   *string          `json:"description,omitempty"`
	EffectiveDate *time.Time       `json:"effective_date,omitempty"`
}

type adjustmentResponse struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	ReportType    string          `json:"report_type"`
	Section       string          `json:"section"`
	Label         string          `json:"label"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	EffectiveDate time.Time       `json:"effective_date"`
}

type listAdjustmentsResponse struct {
	Items []adjustmentResponse `json:"items"`
}

type reportRowResponse struct {
	Label        string          `json:"label"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
	IsManual     bool            `json:"is_manual,omitempty"`
	AdjustmentID *uuid.UUID      `json:"adjustment_id,omitempty"`
}

type incomeStatementResponse struct {
	Revenues          []reportRowResponse `json:"revenues"`
	COGS              []reportRowResponse `json:"cogs"`
	OperatingExpenses []reportRowResponse `json:"operating_expenses"`
	TotalRevenue      decimal.Decimal     `json:"total_revenue"`
	TotalCOGS         decimal.Decimal     `json:"total_cogs"`
	GrossProfit       decimal.Decimal     `json:"gross_profit"`
	TotalOperating    decimal.Decimal     `json:"total_operating"`
	NetIncome         decimal.Decimal     `json:"net_income"`
}

type balanceSheetResponse struct {
	Assets           []reportRowResponse `json:"assets"`
	Liabilities      []reportRowResponse `json:"liabilities"`
	Equity           []reportRowResponse `json:"equity"`
	TotalAssets      decimal.Decimal     `json:"total_assets"`
	TotalLiabilities decimal.Decimal     `json:"total_liabilities"`
	TotalEquity      decimal.Decimal     `json:"total_equity"`
}

type cashFlowResponse struct {
	Operating      []reportRowResponse `json:"operating"`
	Investing      []reportRowResponse `json:"investing"`
	Financing      []reportRowResponse `json:"financing"`
	TotalOperating decimal.Decimal     `json:"total_operating"`
	TotalInvesting decimal.Decimal     `json:"total_investing"`
	TotalFinancing decimal.Decimal     `json:"total_financing"`
	NetChange      decimal.Decimal     `json:"net_change"`
}

type reportDataResponse struct {
	Period          string                  `json:"period"`
	Start           time.Time               `json:"start"`
	End             time.Time               `json:"end"`
	IncomeStatement incomeStatementResponse `json:"income_statement"`
	BalanceSheet    balanceSheetResponse    `json:"balance_sheet"`
	CashFlow        cashFlowResponse        `json:"cash_flow"`
}

type metricsResponse struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Expenses     decimal.Decimal `json:"expenses"`
	NetIncome    decimal.Decimal `json:"net_income"`
	CashPosition decimal.Decimal `json:"cash_position"`
}

type trendPointResponse struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type notificationResponse struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type dashboardResponse struct {
	Period        string                 `json:"period"`
	Metrics       metricsResponse        `json:"metrics"`
	MonthlyTrend  []trendPointResponse   `json:"monthly_trend"`
	Notifications []notificationResponse `json:"notifications"`
}

type overviewResponse struct {
	CashPosition       decimal.Decimal       `json:"cash_position"`
	RevenueMTD         decimal.Decimal       `json:"revenue_mtd"`
	ExpenseMTD         decimal.Decimal       `json:"expense_mtd"`
	NetIncomeMTD       decimal.Decimal       `json:"net_income_mtd"`
	RecentTransactions []transactionResponse `json:"recent_transactions"`
}

func toCreateInput(req postTransactionRequest) transaction.CreateInput {
	return transaction.CreateInput{
		FinanceType:  ledger.FinanceType(req.FinanceType),
		Amount:       req.Amount,
		Date:         req.Date,
		Description:  req.Description,
		Category:     req.Category,
		Status:       ledger.TransactionStatus(req.Status),
		CashFlow:     ledger.CashFlowCategory(req.CashFlowType),
		Counterparty: req.Counterparty,
		PresetKey:    req.PresetKey,
	}
}

func toPatch(req patchTransactionRequest) transaction.Patch {
	p := transaction.Patch{
		Amount:       req.Amount,
		Date:         req.Date,
		Description:  req.Description,
		Category:     req.Category,
		Counterparty: req.Counterparty,
		PresetKey:    req.PresetKey,
	}
	if req.FinanceType != nil {
		ft := ledger.FinanceType(*req.FinanceType)
		p.FinanceType = &ft
	}
	if req.Status != nil {
		st := ledger.TransactionStatus(*req.Status)
		p.Status = &st
	}
	if req.CashFlowType != nil {
		cf := ledger.CashFlowCategory(*req.CashFlowType)
		p.CashFlow = &cf
	}
	return p
}

func toTransactionResponse(tx ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:             tx.ID,
		UserID:         tx.UserID,
		FinanceType:    string(tx.FinanceType),
		Amount:         tx.Amount,
		Date:           tx.Date,
		Description:    tx.Description,
		Category:       tx.Category,
		Status:         string(tx.Status),
		CashFlowType:   string(tx.CashFlow),
		Counterparty:   tx.Counterparty,
		PresetKey:      tx.PresetKey,
		PresetLabel:    tx.PresetLabel,
		JournalEntryID: optionalID(tx.JournalEntryID),
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
}

func toTransactionResponses(txs []ledger.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out
}

func toAccountResponse(a ledger.Account) accountResponse {
	return accountResponse{
		Code:               a.Code,
		Name:               a.Name,
		Type:               string(a.Type),
		CashFlow:           string(a.CashFlow),
		IsCash:             a.IsCash,
		IsRetainedEarnings: a.IsRetainedEarnings,
	}
}

func toPresetResponse(p coa.Preset) presetResponse {
	return presetResponse{
		Key:                p.Key,
		Label:              p.Label,
		FinanceType:        string(p.FinanceType),
		Category:           p.Category,
		CashFlowType:       string(p.CashFlow),
		DefaultDescription: p.DefaultDescription,
		DebitAccount:       p.Template.DebitAccount,
		CreditAccount:      p.Template.CreditAccount,
	}
}

func toJournalEntryResponse(e ledger.JournalEntry) journalEntryResponse {
	lines := make([]journalLineResponse, 0, len(e.Lines))
	for _, ln := range e.Lines {
		lines = append(lines, journalLineResponse{
			AccountCode: ln.AccountCode,
			Debit:       ln.Debit,
			Credit:      ln.Credit,
			Description: ln.Description,
		})
	}
	return journalEntryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		ReferenceID: optionalID(e.ReferenceID),
		Date:        e.Date,
		Memo:        e.Memo,
		Lines:       lines,
	}
}

func toAdjustmentResponse(adj ledger.ReportAdjustment) adjustmentResponse {
	return adjustmentResponse{
		ID:            adj.ID,
		UserID:        adj.UserID,
		ReportType:    string(adj.ReportType),
		Section:       adj.Section,
		Label:         adj.Label,
		Amount:        adj.Amount,
		Description:   adj.Description,
		EffectiveDate: adj.EffectiveDate,
	}
}

func toRowResponses(rows []report.Row) []reportRowResponse {
	out := make([]reportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, reportRowResponse{
			Label:        r.Label,
			Amount:       r.Amount,
			Description:  r.Description,
			IsManual:     r.IsManual,
			AdjustmentID: optionalID(r.AdjustmentID),
		})
	}
	return out
}

func toReportDataResponse(data report.ReportData) reportDataResponse {
	return reportDataResponse{
		Period: data.Period,
		Start:  data.Start,
		End:    data.End,
		IncomeStatement: incomeStatementResponse{
			Revenues:          toRowResponses(data.IncomeStatement.Revenues),
			COGS:              toRowResponses(data.IncomeStatement.COGS),
			OperatingExpenses: toRowResponses(data.IncomeStatement.OperatingExpenses),
			TotalRevenue:      data.IncomeStatement.TotalRevenue,
			TotalCOGS:         data.IncomeStatement.TotalCOGS,
			GrossProfit:       data.IncomeStatement.GrossProfit,
			TotalOperating:    data.IncomeStatement.TotalOperating,
			NetIncome:         data.IncomeStatement.NetIncome,
		},
		BalanceSheet: balanceSheetResponse{
			Assets:           toRowResponses(data.BalanceSheet.Assets),
			Liabilities:      toRowResponses(data.BalanceSheet.Liabilities),
			Equity:           toRowResponses(data.BalanceSheet.Equity),
			TotalAssets:      data.BalanceSheet.TotalAssets,
			TotalLiabilities: data.BalanceSheet.TotalLiabilities,
			TotalEquity:      data.BalanceSheet.TotalEquity,
		},
		CashFlow: cashFlowResponse{
			Operating:      toRowResponses(data.CashFlow.Operating),
			Investing:      toRowResponses(data.CashFlow.Investing),
			Financing:      toRowResponses(data.CashFlow.Financing),
			TotalOperating: data.CashFlow.TotalOperating,
			TotalInvesting: data.CashFlow.TotalInvesting,
			TotalFinancing: data.CashFlow.TotalFinancing,
			NetChange:      data.CashFlow.NetChange,
		},
	}
}

func toDashboardResponse(snap report.DashboardSnapshot) dashboardResponse {
	trend := make([]trendPointResponse, 0, len(snap.MonthlyTrend))
	for _, p := range snap.MonthlyTrend {
		trend = append(trend, trendPointResponse{Month: p.Month, Income: p.Income, Expense: p.Expense})
	}
	notes := make([]notificationResponse, 0, len(snap.Notifications))
	for _, n := range snap.Notifications {
		notes = append(notes, notificationResponse{Level: n.Level, Message: n.Message})
	}
	return dashboardResponse{
		Period: snap.Period,
		Metrics: metricsResponse{
			Revenue:      snap.Metrics.Revenue,
			Expenses:     snap.Metrics.Expenses,
			NetIncome:    snap.Metrics.NetIncome,
			CashPosition: snap.Metrics.CashPosition,
		},
		MonthlyTrend:  trend,
		Notifications: notes,
	}
}

func toOverviewResponse(ov report.FinanceOverview) overviewResponse {
	return overviewResponse{
		CashPosition:       ov.CashPosition,
		RevenueMTD:         ov.RevenueMTD,
		ExpenseMTD:         ov.ExpenseMTD,
		NetIncomeMTD:       ov.NetIncomeMTD,
		RecentTransactions: toTransactionResponses(ov.RecentTransactions),
	}
}

func optionalID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
