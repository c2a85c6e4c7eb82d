// Package journal implements the ledger rules: posting validation (the
// debits-equal-credits invariant, one side per line, known accounts only),
// replace-in-place updates, deletes, and account-type aggregation.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aarlazuardi/erp-ledger/internal/coa"
	"github.com/aarlazuardi/erp-ledger/internal/errs"
	"github.com/aarlazuardi/erp-ledger/internal/ledger"
)

// BalanceTolerance is the absolute difference allowed between total debits
// and total credits of a posting, in currency units. It absorbs rounding
// drift from user-entered amounts without admitting real imbalance.
var BalanceTolerance = decimal.NewFromFloat(0.005)

// Repo defines read operations needed by the service.
type Repo interface {
	EntryByID(ctx context.Context, userID, entryID uuid.UUID) (ledger.JournalEntry, error)
	EntriesByUserID(ctx context.Context, userID uuid.UUID) ([]ledger.JournalEntry, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
	CreateJournalEntry(ctx context.Context, entry ledger.JournalEntry) (ledger.JournalEntry, error)
	UpdateJournalEntry(ctx context.Context, entry ledger.JournalEntry) (ledger.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, userID, entryID uuid.UUID) error
}

// Service exposes validation, posting and aggregation over journal entries.
type Service interface {
	Post(ctx context.Context, userID uuid.UUID, draft ledger.JournalDraft) (ledger.JournalEntry, error)
	Replace(ctx context.Context, entryID, userID uuid.UUID, draft ledger.JournalDraft) (ledger.JournalEntry, error)
	Delete(ctx context.Context, entryID, userID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]ledger.JournalEntry, error)
	NetIncome(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
}

type service struct {
	repo   Repo
	writer Writer
	now    func() time.Time
}

// New constructs the journal service.
func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, now: time.Now}
}

// ValidateDraft checks a draft against the posting invariants without
// touching storage. Accounts are resolved against the static chart.
func ValidateDraft(draft ledger.JournalDraft) error {
	if len(draft.Lines) == 0 {
		return errs.ErrNoLines
	}
	sumDebit := decimal.Zero
	sumCredit := decimal.Zero
	for i, line := range draft.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line[%d]: %w", i, errs.ErrInvalidAmount)
		}
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if hasDebit == hasCredit {
			return fmt.Errorf("line[%d]: %w", i, errs.ErrOneSidePerLine)
		}
		if !coa.Exists(line.AccountCode) {
			return fmt.Errorf("line[%d]: %w %q", i, errs.ErrUnknownAccount, line.AccountCode)
		}
		sumDebit = sumDebit.Add(line.Debit)
		sumCredit = sumCredit.Add(line.Credit)
	}
	if sumDebit.Sub(sumCredit).Abs().GreaterThan(BalanceTolerance) {
		return fmt.Errorf("%w: debits %s, credits %s", errs.ErrUnbalanced, sumDebit.StringFixed(2), sumCredit.StringFixed(2))
	}
	return nil
}

// Post validates the draft and persists a new entry for the user. Nothing is
// written when validation fails.
func (s *service) Post(ctx context.Context, userID uuid.UUID, draft ledger.JournalDraft) (ledger.JournalEntry, error) {
	if userID == uuid.Nil {
		return ledger.JournalEntry{}, fmt.Errorf("%w: user id is required", errs.ErrInvalid)
	}
	if err := ValidateDraft(draft); err != nil {
		return ledger.JournalEntry{}, err
	}
	now := s.now().UTC()
	entry := ledger.JournalEntry{
		ID:          uuid.New(),
		UserID:      userID,
		ReferenceID: draft.ReferenceID,
		Date:        draft.Date,
		Memo:        draft.Memo,
		Lines:       copyLines(draft.Lines),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.writer.CreateJournalEntry(ctx, entry)
}

// Replace re-validates the draft, then overwrites lines, date, memo and
// reference on the existing entry scoped to (entryID, userID). The entry
// keeps its identity; no duplicate or orphaned history is left behind.
func (s *service) Replace(ctx context.Context, entryID, userID uuid.UUID, draft ledger.JournalDraft) (ledger.JournalEntry, error) {
	if entryID == uuid.Nil || userID == uuid.Nil {
		return ledger.JournalEntry{}, fmt.Errorf("%w: entry id and user id are required", errs.ErrInvalid)
	}
	if err := ValidateDraft(draft); err != nil {
		return ledger.JournalEntry{}, err
	}
	existing, err := s.repo.EntryByID(ctx, userID, entryID)
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	existing.Date = draft.Date
	existing.Memo = draft.Memo
	existing.ReferenceID = draft.ReferenceID
	existing.Lines = copyLines(draft.Lines)
	existing.UpdatedAt = s.now().UTC()
	return s.writer.UpdateJournalEntry(ctx, existing)
}

// Delete removes the entry scoped to (entryID, userID).
func (s *service) Delete(ctx context.Context, entryID, userID uuid.UUID) error {
	if entryID == uuid.Nil || userID == uuid.Nil {
		return fmt.Errorf("%w: entry id and user id are required", errs.ErrInvalid)
	}
	return s.writer.DeleteJournalEntry(ctx, userID, entryID)
}

// List returns all entries for a user.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]ledger.JournalEntry, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", errs.ErrInvalid)
	}
	return s.repo.EntriesByUserID(ctx, userID)
}

// NetIncome aggregates journal lines over [start, end) by account type:
// revenue accounts contribute credit minus debit, expense accounts debit
// minus credit. This is the ledger-side cross-check for the income
// statement's transaction-level figure.
func (s *service) NetIncome(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	if userID == uuid.Nil {
		return decimal.Zero, fmt.Errorf("%w: user id is required", errs.ErrInvalid)
	}
	entries, err := s.repo.EntriesByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	revenue := decimal.Zero
	expense := decimal.Zero
	for _, e := range entries {
		if e.Date.Before(start) || !e.Date.Before(end) {
			continue
		}
		for _, line := range e.Lines {
			acc, ok := coa.Lookup(line.AccountCode)
			if !ok {
				continue
			}
			switch acc.Type {
			case ledger.AccountTypeRevenue:
				revenue = revenue.Add(line.Credit).Sub(line.Debit)
			case ledger.AccountTypeExpense:
				expense = expense.Add(line.Debit).Sub(line.Credit)
			}
		}
	}
	return revenue.Sub(expense), nil
}

func copyLines(lines []ledger.JournalLine) []ledger.JournalLine {
	out := make([]ledger.JournalLine, len(lines))
	copy(out, lines)
	return out
}
