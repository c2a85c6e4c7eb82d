// Package transaction implements CRUD over user-entered financial records.
// Every write derives a balanced journal draft and keeps exactly one linked
// journal entry in sync: posted on create, replaced in place on update,
// deleted on delete.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aarlazuardi/erp-ledger/internal/coa"
	"github.com/aarlazuardi/erp-ledger/internal/errs"
	"github.com/aarlazuardi/erp-ledger/internal/ledger"
	"github.com/aarlazuardi/erp-ledger/internal/service/journal"
)

// Repo defines read operations needed by the service.
type Repo interface {
	TransactionByID(ctx context.Context, userID, id uuid.UUID) (ledger.TransactionDocument, error)
	TransactionsByUserID(ctx context.Context, userID uuid.UUID) ([]ledger.TransactionDocument, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
	CreateTransaction(ctx context.Context, doc ledger.TransactionDocument) (ledger.TransactionDocument, error)
	UpdateTransaction(ctx context.Context, doc ledger.TransactionDocument) (ledger.TransactionDocument, error)
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
}

// CreateInput carries the fields a caller may set when creating a transaction.
type CreateInput struct {
	FinanceType  ledger.FinanceType
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
	Category     string
	Status       ledger.TransactionStatus
	CashFlow     ledger.CashFlowCategory
	Counterparty string
	PresetKey    string
}

// Patch carries a partial update; nil fields are left unchanged.
type Patch struct {
	FinanceType  *ledger.FinanceType
	Amount       *decimal.Decimal
	Date         *time.Time
	Description  *string
	Category     *string
	Status       *ledger.TransactionStatus
	CashFlow     *ledger.CashFlowCategory
	Counterparty *string
	PresetKey    *string
}

// Service exposes transaction CRUD with journal synchronization.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateInput) (ledger.Transaction, error)
	Update(ctx context.Context, id, userID uuid.UUID, changes Patch) (ledger.Transaction, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]ledger.Transaction, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]ledger.Transaction, error)
}

type service struct {
	repo    Repo
	writer  Writer
	journal journal.Service
	now     func() time.Time
}

// New constructs the transaction service.
func New(repo Repo, writer Writer, jsvc journal.Service) Service {
	return &service{repo: repo, writer: writer, journal: jsvc, now: time.Now}
}

// Create validates the input, inserts the transaction, then derives and posts
// its journal entry and links the entry id back onto the document.
//
// The two writes cannot be made atomic on a plain document store. If posting
// fails after the transaction row was inserted, the row is deleted again so
// the operation is all-or-nothing from the caller's perspective.
func (s *service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (ledger.Transaction, error) {
	if userID == uuid.Nil {
		return ledger.Transaction{}, fmt.Errorf("%w: user id is required", errs.ErrInvalid)
	}
	if !in.Amount.IsPositive() {
		return ledger.Transaction{}, errs.ErrInvalidAmount
	}
	if in.Date.IsZero() {
		return ledger.Transaction{}, errs.ErrBadDate
	}

	// A known preset supplies type, category and cash-flow tag for any field
	// the caller left empty, and always supplies the label.
	var presetLabel string
	if preset, ok := coa.LookupPreset(in.PresetKey); ok {
		presetLabel = preset.Label
		if in.FinanceType == "" {
			in.FinanceType = preset.FinanceType
		}
		if in.Category == "" {
			in.Category = preset.Category
		}
		if in.CashFlow == "" {
			in.CashFlow = preset.CashFlow
		}
		if in.Description == "" {
			in.Description = preset.DefaultDescription
		}
	}
	if !in.FinanceType.Valid() {
		return ledger.Transaction{}, fmt.Errorf("%w: finance type %q", errs.ErrInvalid, in.FinanceType)
	}
	if in.Status != "" && !in.Status.Valid() {
		return ledger.Transaction{}, fmt.Errorf("%w: status %q", errs.ErrInvalid, in.Status)
	}
	if in.CashFlow != "" && !in.CashFlow.Valid() {
		return ledger.Transaction{}, fmt.Errorf("%w: cash flow type %q", errs.ErrInvalid, in.CashFlow)
	}

	now := s.now().UTC()
	doc := ledger.TransactionDocument{
		ID:           uuid.New(),
		UserID:       userID,
		FinanceType:  string(in.FinanceType),
		Amount:       in.Amount,
		Date:         in.Date.Format(time.RFC3339),
		Description:  in.Description,
		Category:     in.Category,
		Status:       string(in.Status),
		CashFlow:     string(in.CashFlow),
		Counterparty: in.Counterparty,
		PresetKey:    in.PresetKey,
		PresetLabel:  presetLabel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	doc, err := s.writer.CreateTransaction(ctx, doc)
	if err != nil {
		return ledger.Transaction{}, err
	}

	tx, ok := Normalize(doc)
	if !ok {
		// Cannot happen for a document we just built; treat as a bug.
		_ = s.writer.DeleteTransaction(ctx, userID, doc.ID)
		return ledger.Transaction{}, fmt.Errorf("%w: freshly written transaction failed to normalize", errs.ErrConfig)
	}
	entry, err := s.syncJournal(ctx, tx)
	if err != nil {
		// Compensating delete: never leave an un-journaled transaction behind.
		if delErr := s.writer.DeleteTransaction(ctx, userID, doc.ID); delErr != nil {
			return ledger.Transaction{}, errors.Join(err, delErr)
		}
		return ledger.Transaction{}, err
	}

	doc.JournalEntryID = entry.ID
	doc.UpdatedAt = s.now().UTC()
	if doc, err = s.writer.UpdateTransaction(ctx, doc); err != nil {
		return ledger.Transaction{}, err
	}
	tx, _ = Normalize(doc)
	return tx, nil
}

// Update applies the provided fields onto the stored document, re-derives a
// fresh journal draft from the merged state and replaces the linked entry in
// place. A transaction without a link (legacy data) gets a new entry posted
// and the link backfilled.
func (s *service) Update(ctx context.Context, id, userID uuid.UUID, changes Patch) (ledger.Transaction, error) {
	doc, err := s.repo.TransactionByID(ctx, userID, id)
	if err != nil {
		return ledger.Transaction{}, err
	}
	applyPatch(&doc, changes)
	if !doc.Amount.IsPositive() {
		return ledger.Transaction{}, errs.ErrInvalidAmount
	}
	if changes.PresetKey != nil {
		doc.PresetLabel = ""
		if preset, ok := coa.LookupPreset(doc.PresetKey); ok {
			doc.PresetLabel = preset.Label
		}
	}
	doc.UpdatedAt = s.now().UTC()

	tx, ok := Normalize(doc)
	if !ok {
		return ledger.Transaction{}, errs.ErrBadDate
	}
	if !tx.FinanceType.Valid() {
		return ledger.Transaction{}, fmt.Errorf("%w: finance type %q", errs.ErrInvalid, tx.FinanceType)
	}

	draft, err := DeriveDraft(tx)
	if err != nil {
		return ledger.Transaction{}, err
	}
	if doc.JournalEntryID != uuid.Nil {
		if _, err := s.journal.Replace(ctx, doc.JournalEntryID, userID, draft); err != nil {
			return ledger.Transaction{}, err
		}
	} else {
		entry, err := s.journal.Post(ctx, userID, draft)
		if err != nil {
			return ledger.Transaction{}, err
		}
		doc.JournalEntryID = entry.ID
	}

	if doc, err = s.writer.UpdateTransaction(ctx, doc); err != nil {
		return ledger.Transaction{}, err
	}
	tx, _ = Normalize(doc)
	return tx, nil
}

// Delete removes the transaction and cascades to its linked journal entry.
// A missing link (legacy or partially written data) is not an error.
func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	doc, err := s.repo.TransactionByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.writer.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}
	if doc.JournalEntryID == uuid.Nil {
		return nil
	}
	if err := s.journal.Delete(ctx, doc.JournalEntryID, userID); err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return nil
}

// ListRecent returns up to limit normalized transactions, newest first.
func (s *service) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]ledger.Transaction, error) {
	txs, err := s.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

// ListAll returns every normalized transaction for the user, newest first.
// Documents that fail to decode are filtered out, never surfaced as errors.
func (s *service) ListAll(ctx context.Context, userID uuid.UUID) ([]ledger.Transaction, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", errs.ErrInvalid)
	}
	docs, err := s.repo.TransactionsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.Transaction, 0, len(docs))
	for _, doc := range docs {
		if tx, ok := Normalize(doc); ok {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// syncJournal derives and posts the journal entry for a freshly created
// transaction.
func (s *service) syncJournal(ctx context.Context, tx ledger.Transaction) (ledger.JournalEntry, error) {
	draft, err := DeriveDraft(tx)
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	return s.journal.Post(ctx, tx.UserID, draft)
}

// Normalize is the strict decode boundary for raw transaction documents.
// It returns false when the date cannot be parsed; such rows disappear from
// read results rather than crashing reports. Missing category, status and
// cash-flow tags get defaults, and a resolvable preset key takes precedence
// over any stored label so the two cannot drift apart.
func Normalize(doc ledger.TransactionDocument) (ledger.Transaction, bool) {
	date, ok := parseDate(doc.Date)
	if !ok {
		return ledger.Transaction{}, false
	}
	ft := ledger.FinanceType(doc.FinanceType)
	category := doc.Category
	if category == "" {
		category = defaultCategory(ft)
	}
	status := ledger.TransactionStatus(doc.Status)
	if !status.Valid() {
		status = ledger.StatusPosted
	}
	cashFlow := ledger.CashFlowCategory(doc.CashFlow)
	if !cashFlow.Valid() {
		cashFlow = ledger.CashFlowOperating
	}
	presetLabel := doc.PresetLabel
	if preset, ok := coa.LookupPreset(doc.PresetKey); ok {
		presetLabel = preset.Label
	}
	return ledger.Transaction{
		ID:             doc.ID,
		UserID:         doc.UserID,
		FinanceType:    ft,
		Amount:         doc.Amount,
		Date:           date,
		Description:    doc.Description,
		Category:       category,
		Status:         status,
		CashFlow:       cashFlow,
		Counterparty:   doc.Counterparty,
		PresetKey:      doc.PresetKey,
		PresetLabel:    presetLabel,
		JournalEntryID: doc.JournalEntryID,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}, true
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func defaultCategory(ft ledger.FinanceType) string {
	switch ft {
	case ledger.FinanceIncome:
		return "Pendapatan Lainnya"
	case ledger.FinanceExpense:
		return "Beban Operasional"
	case ledger.FinanceAsset:
		return "Aset Tetap"
	case ledger.FinanceLiability:
		return "Hutang"
	default:
		return "Modal"
	}
}

func applyPatch(doc *ledger.TransactionDocument, p Patch) {
	if p.FinanceType != nil {
		doc.FinanceType = string(*p.FinanceType)
	}
	if p.Amount != nil {
		doc.Amount = *p.Amount
	}
	if p.Date != nil {
		doc.Date = p.Date.Format(time.RFC3339)
	}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	if p.Category != nil {
		doc.Category = *p.Category
	}
	if p.Status != nil {
		doc.Status = string(*p.Status)
	}
	if p.CashFlow != nil {
		doc.CashFlow = string(*p.CashFlow)
	}
	if p.Counterparty != nil {
		doc.Counterparty = *p.Counterparty
	}
	if p.PresetKey != nil {
		doc.PresetKey = *p.PresetKey
	}
}
