package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType enumerates the broad classification of an account in the ledger.
type AccountType string

const (
	// AccountTypeAsset increases on the debit side and holds resources owned by the business.
	AccountTypeAsset AccountType = "asset"
	// AccountTypeLiability increases on the credit side and tracks obligations.
	AccountTypeLiability AccountType = "liability"
	// AccountTypeEquity captures the owner's residual interest in the entity.
	AccountTypeEquity AccountType = "equity"
	// AccountTypeRevenue represents inflows that increase equity.
	AccountTypeRevenue AccountType = "revenue"
	// AccountTypeExpense represents outflows that decrease equity.
	AccountTypeExpense AccountType = "expense"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// CashFlowCategory tags which cash-flow-statement bucket, if any, a
// transaction or account affects.
type CashFlowCategory string

const (
	CashFlowOperating CashFlowCategory = "operating"
	CashFlowInvesting CashFlowCategory = "investing"
	CashFlowFinancing CashFlowCategory = "financing"
	CashFlowNonCash   CashFlowCategory = "non-cash"
)

// Valid reports whether c is one of the known cash-flow categories.
func (c CashFlowCategory) Valid() bool {
	switch c {
	case CashFlowOperating, CashFlowInvesting, CashFlowFinancing, CashFlowNonCash:
		return true
	}
	return false
}

// FinanceType is the user-facing classification of a transaction.
type FinanceType string

const (
	FinanceIncome    FinanceType = "income"
	FinanceExpense   FinanceType = "expense"
	FinanceAsset     FinanceType = "asset"
	FinanceLiability FinanceType = "liability"
	FinanceEquity    FinanceType = "equity"
)

// Valid reports whether f is one of the known finance types.
func (f FinanceType) Valid() bool {
	switch f {
	case FinanceIncome, FinanceExpense, FinanceAsset, FinanceLiability, FinanceEquity:
		return true
	}
	return false
}

// TransactionStatus tracks whether a transaction has settled in cash.
type TransactionStatus string

const (
	StatusPosted  TransactionStatus = "posted"
	StatusPending TransactionStatus = "pending"
)

// Valid reports whether s is a known status.
func (s TransactionStatus) Valid() bool {
	return s == StatusPosted || s == StatusPending
}

// Account is a static chart-of-accounts entry. The registry is immutable and
// process-wide; every journal line and preset must reference an entry here.
type Account struct {
	Code string
	Name string
	Type AccountType
	// CashFlow is the default statement bucket for movements on this account.
	// Empty means the account has no direct cash-flow classification.
	CashFlow CashFlowCategory
	// IsCash marks cash and cash-equivalent asset accounts.
	IsCash bool
	// IsRetainedEarnings marks the equity account used by the balance-sheet
	// reconciliation step.
	IsRetainedEarnings bool
}

// Transaction is a user-entered financial record after the decode boundary:
// date parsed, defaults applied, preset label resolved.
type Transaction struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	FinanceType    FinanceType
	Amount         decimal.Decimal // unsigned magnitude; direction is contextual
	Date           time.Time
	Description    string
	Category       string
	Status         TransactionStatus
	CashFlow       CashFlowCategory
	Counterparty   string
	PresetKey      string
	PresetLabel    string
	JournalEntryID uuid.UUID // uuid.Nil when no entry is linked
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TransactionDocument is the raw storage shape of a transaction. Fields the
// user may have entered loosely (date, category, status, cash-flow tag) are
// stored as-is and only interpreted at the Normalize read boundary.
type TransactionDocument struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	FinanceType    string
	Amount         decimal.Decimal
	Date           string
	Description    string
	Category       string
	Status         string
	CashFlow       string
	Counterparty   string
	PresetKey      string
	PresetLabel    string
	JournalEntryID uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// JournalLine is one side of a double-entry posting. Exactly one of Debit or
// Credit is positive; both are non-negative magnitudes.
type JournalLine struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// JournalEntry captures a persisted double-entry posting for a user.
// When ReferenceID is set the entry is owned by that transaction and is only
// ever mutated by replacing its lines wholesale.
type JournalEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ReferenceID uuid.UUID // owning transaction id, uuid.Nil for standalone entries
	Date        time.Time
	Memo        string
	Lines       []JournalLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JournalDraft is an unvalidated, unpersisted posting produced by account
// selection. The journal service validates it before assigning identity.
type JournalDraft struct {
	Date        time.Time
	Memo        string
	ReferenceID uuid.UUID
	Lines       []JournalLine
}

// ReportType identifies which financial statement an adjustment targets.
type ReportType string

const (
	ReportIncomeStatement ReportType = "income-statement"
	ReportBalanceSheet    ReportType = "balance-sheet"
	ReportCashFlow        ReportType = "cash-flow"
)

// Sections valid per report type.
const (
	SectionRevenues    = "revenues"
	SectionExpenses    = "expenses"
	SectionAssets      = "assets"
	SectionLiabilities = "liabilities"
	SectionEquity      = "equity"
	SectionOperating   = "operating"
	SectionInvesting   = "investing"
	SectionFinancing   = "financing"
)

// SectionValid reports whether section belongs to the given report type.
func SectionValid(rt ReportType, section string) bool {
	switch rt {
	case ReportIncomeStatement:
		return section == SectionRevenues || section == SectionExpenses
	case ReportBalanceSheet:
		return section == SectionAssets || section == SectionLiabilities || section == SectionEquity
	case ReportCashFlow:
		return section == SectionOperating || section == SectionInvesting || section == SectionFinancing
	}
	return false
}

// ReportAdjustment is a user-entered report line not backed by any
// transaction or journal entry. It is merged into report rows at read time.
type ReportAdjustment struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ReportType    ReportType
	Section       string
	Label         string
	Amount        decimal.Decimal // signed
	Description   string
	EffectiveDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
