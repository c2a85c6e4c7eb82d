package postgres

// Package postgres provides a pgx-backed storage implementation that satisfies
// the repository and writer interfaces used by the services.
//
// It is intentionally small and explicit. Migrations that create the expected
// schema live under db/migrations. This package focuses on mapping between the
// domain entities and SQL rows and running the necessary statements/transactions.

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aarlazuardi/erp-ledger/internal/errs"
	"github.com/aarlazuardi/erp-ledger/internal/ledger"
)

// Store holds a pgx connection pool and implements the read/write interfaces
// used across the service layer. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// --- Transaction reads ---

const transactionColumns = `id, user_id, finance_type, amount::text, date, description, category,
	status, cash_flow, counterparty, preset_key, preset_label, journal_entry_id, created_at, updated_at`

// TransactionByID fetches a single transaction document for a user.
func (s *Store) TransactionByID(ctx context.Context, userID, id uuid.UUID) (ledger.TransactionDocument, error) {
	row := s.pool.QueryRow(ctx, `
		select `+transactionColumns+`
		from transactions
		where id = $1 and user_id = $2
	`, id, userID)
	doc, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.TransactionDocument{}, errs.ErrNotFound
	}
	return doc, err
}

// TransactionsByUserID returns all transaction documents for a user.
func (s *Store) TransactionsByUserID(ctx context.Context, userID uuid.UUID) ([]ledger.TransactionDocument, error) {
	rows, err := s.pool.Query(ctx, `
		select `+transactionColumns+`
		from transactions
		where user_id = $1
		order by created_at desc, id desc
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.TransactionDocument, 0)
	for rows.Next() {
		doc, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func scanTransaction(row pgx.Row) (ledger.TransactionDocument, error) {
	var doc ledger.TransactionDocument
	var amount string
	var entryID *uuid.UUID
	err := row.Scan(&doc.ID, &doc.UserID, &doc.FinanceType, &amount, &doc.Date, &doc.Description,
		&doc.Category, &doc.Status, &doc.CashFlow, &doc.Counterparty, &doc.PresetKey,
		&doc.PresetLabel, &entryID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return ledger.TransactionDocument{}, err
	}
	if doc.Amount, err = decimal.NewFromString(amount); err != nil {
		return ledger.TransactionDocument{}, fmt.Errorf("decode amount: %w", err)
	}
	if entryID != nil {
		doc.JournalEntryID = *entryID
	}
	return doc, nil
}

// --- Transaction writes ---

// CreateTransaction inserts a transaction row.
func (s *Store) CreateTransaction(ctx context.Context, doc ledger.TransactionDocument) (ledger.TransactionDocument, error) {
	_, err := s.pool.Exec(ctx, `
		insert into transactions (id, user_id, finance_type, amount, date, description, category,
			status, cash_flow, counterparty, preset_key, preset_label, journal_entry_id, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`, doc.ID, doc.UserID, doc.FinanceType, doc.Amount.String(), doc.Date, doc.Description, doc.Category,
		doc.Status, doc.CashFlow, doc.Counterparty, doc.PresetKey, doc.PresetLabel, nullableID(doc.JournalEntryID),
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return ledger.TransactionDocument{}, err
	}
	return doc, nil
}

// UpdateTransaction overwrites the mutable fields of a transaction row.
func (s *Store) UpdateTransaction(ctx context.Context, doc ledger.TransactionDocument) (ledger.TransactionDocument, error) {
	ct, err := s.pool.Exec(ctx, `
		update transactions
		set finance_type=$1, amount=$2, date=$3, description=$4, category=$5, status=$6,
			cash_flow=$7, counterparty=$8, preset_key=$9, preset_label=$10, journal_entry_id=$11, updated_at=$12
		where id=$13 and user_id=$14
	`, doc.FinanceType, doc.Amount.String(), doc.Date, doc.Description, doc.Category, doc.Status,
		doc.CashFlow, doc.Counterparty, doc.PresetKey, doc.PresetLabel, nullableID(doc.JournalEntryID),
		doc.UpdatedAt, doc.ID, doc.UserID)
	if err != nil {
		return ledger.TransactionDocument{}, err
	}
	if ct.RowsAffected() == 0 {
		return ledger.TransactionDocument{}, errs.ErrNotFound
	}
	return doc, nil
}

// DeleteTransaction removes a user's transaction row.
func (s *Store) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	ct, err := s.pool.Exec(ctx, `delete from transactions where id=$1 and user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// --- Entry reads ---

// EntriesByUserID returns entries for a user with lines populated.
func (s *Store) EntriesByUserID(ctx context.Context, userID uuid.UUID) ([]ledger.JournalEntry, error) {
	rows, err := s.pool.Query(ctx, `
		select id, user_id, reference_id, date, memo, created_at, updated_at
		from journal_entries
		where user_id = $1
		order by date asc, id asc
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]ledger.JournalEntry, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var e ledger.JournalEntry
		var refID *uuid.UUID
		if err := rows.Scan(&e.ID, &e.UserID, &refID, &e.Date, &e.Memo, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if refID != nil {
			e.ReferenceID = *refID
		}
		entries = append(entries, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}
	// Load lines for these entries
	lineRows, err := s.pool.Query(ctx, `
		select entry_id, account_code, debit::text, credit::text, description
		from journal_lines
		where entry_id = any($1)
		order by line_no asc
	`, ids)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()
	idx := make(map[uuid.UUID]*ledger.JournalEntry, len(entries))
	for i := range entries {
		idx[entries[i].ID] = &entries[i]
	}
	for lineRows.Next() {
		var entryID uuid.UUID
		line, err := scanLine(lineRows, &entryID)
		if err != nil {
			return nil, err
		}
		if e := idx[entryID]; e != nil {
			e.Lines = append(e.Lines, line)
		}
	}
	return entries, lineRows.Err()
}

// EntryByID returns an entry by id for a user with lines populated.
func (s *Store) EntryByID(ctx context.Context, userID, entryID uuid.UUID) (ledger.JournalEntry, error) {
	var e ledger.JournalEntry
	var refID *uuid.UUID
	err := s.pool.QueryRow(ctx, `
		select id, user_id, reference_id, date, memo, created_at, updated_at
		from journal_entries
		where id = $1 and user_id = $2
	`, entryID, userID).Scan(&e.ID, &e.UserID, &refID, &e.Date, &e.Memo, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.JournalEntry{}, errs.ErrNotFound
	}
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	if refID != nil {
		e.ReferenceID = *refID
	}
	rows, err := s.pool.Query(ctx, `
		select entry_id, account_code, debit::text, credit::text, description
		from journal_lines
		where entry_id = $1
		order by line_no asc
	`, entryID)
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		line, err := scanLine(rows, &id)
		if err != nil {
			return ledger.JournalEntry{}, err
		}
		e.Lines = append(e.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return ledger.JournalEntry{}, err
	}
	return e, nil
}

func scanLine(row pgx.Row, entryID *uuid.UUID) (ledger.JournalLine, error) {
	var line ledger.JournalLine
	var debit, credit string
	if err := row.Scan(entryID, &line.AccountCode, &debit, &credit, &line.Description); err != nil {
		return ledger.JournalLine{}, err
	}
	var err error
	if line.Debit, err = decimal.NewFromString(debit); err != nil {
		return ledger.JournalLine{}, fmt.Errorf("decode debit: %w", err)
	}
	if line.Credit, err = decimal.NewFromString(credit); err != nil {
		return ledger.JournalLine{}, fmt.Errorf("decode credit: %w", err)
	}
	return line, nil
}

// --- Entry writes ---

// CreateJournalEntry inserts an entry + its lines in a transaction.
func (s *Store) CreateJournalEntry(ctx context.Context, entry ledger.JournalEntry) (ledger.JournalEntry, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := insertEntry(ctx, tx, entry); err != nil {
		return ledger.JournalEntry{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return ledger.JournalEntry{}, err
	}
	return entry, nil
}

// UpdateJournalEntry replaces the entry header and its lines wholesale, in a
// transaction, preserving the entry id.
func (s *Store) UpdateJournalEntry(ctx context.Context, entry ledger.JournalEntry) (ledger.JournalEntry, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	ct, err := tx.Exec(ctx, `
		update journal_entries
		set reference_id=$1, date=$2, memo=$3, updated_at=$4
		where id=$5 and user_id=$6
	`, nullableID(entry.ReferenceID), entry.Date, entry.Memo, entry.UpdatedAt, entry.ID, entry.UserID)
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	if ct.RowsAffected() == 0 {
		return ledger.JournalEntry{}, errs.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `delete from journal_lines where entry_id=$1`, entry.ID); err != nil {
		return ledger.JournalEntry{}, err
	}
	if err := insertLines(ctx, tx, entry); err != nil {
		return ledger.JournalEntry{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return ledger.JournalEntry{}, err
	}
	return entry, nil
}

// DeleteJournalEntry removes an entry and its lines.
func (s *Store) DeleteJournalEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	ct, err := s.pool.Exec(ctx, `delete from journal_entries where id=$1 and user_id=$2`, entryID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// insertEntry inserts the entry header and its lines within the provided executor.
func insertEntry(ctx context.Context, tx pgx.Tx, e ledger.JournalEntry) error {
	if _, err := tx.Exec(ctx, `
		insert into journal_entries (id, user_id, reference_id, date, memo, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7)
	`, e.ID, e.UserID, nullableID(e.ReferenceID), e.Date, e.Memo, e.CreatedAt, e.UpdatedAt); err != nil {
		return err
	}
	return insertLines(ctx, tx, e)
}

func insertLines(ctx context.Context, tx pgx.Tx, e ledger.JournalEntry) error {
	for i, ln := range e.Lines {
		if _, err := tx.Exec(ctx, `
			insert into journal_lines (entry_id, line_no, account_code, debit, credit, description)
			values ($1,$2,$3,$4,$5,$6)
		`, e.ID, i, ln.AccountCode, ln.Debit.String(), ln.Credit.String(), ln.Description); err != nil {
			return fmt.Errorf("insert line: %w", err)
		}
	}
	return nil
}

// --- Adjustment reads ---

// AdjustmentByID returns a user's adjustment by id.
func (s *Store) AdjustmentByID(ctx context.Context, userID, id uuid.UUID) (ledger.ReportAdjustment, error) {
	row := s.pool.QueryRow(ctx, `
		select id, user_id, report_type, section, label, amount::text, description, effective_date, created_at, updated_at
		from report_adjustments
		where id = $1 and user_id = $2
	`, id, userID)
	adj, err := scanAdjustment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.ReportAdjustment{}, errs.ErrNotFound
	}
	return adj, err
}

// AdjustmentsByUserID returns all adjustments for a user.
func (s *Store) AdjustmentsByUserID(ctx context.Context, userID uuid.UUID) ([]ledger.ReportAdjustment, error) {
	rows, err := s.pool.Query(ctx, `
		select id, user_id, report_type, section, label, amount::text, description, effective_date, created_at, updated_at
		from report_adjustments
		where user_id = $1
		order by effective_date desc, id asc
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.ReportAdjustment, 0)
	for rows.Next() {
		adj, err := scanAdjustment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, adj)
	}
	return out, rows.Err()
}

func scanAdjustment(row pgx.Row) (ledger.ReportAdjustment, error) {
	var adj ledger.ReportAdjustment
	var amount string
	err := row.Scan(&adj.ID, &adj.UserID, &adj.ReportType, &adj.Section, &adj.Label, &amount,
		&adj.Description, &adj.EffectiveDate, &adj.CreatedAt, &adj.UpdatedAt)
	if err != nil {
		return ledger.ReportAdjustment{}, err
	}
	if adj.Amount, err = decimal.NewFromString(amount); err != nil {
		return ledger.ReportAdjustment{}, fmt.Errorf("decode amount: %w", err)
	}
	return adj, nil
}

// --- Adjustment writes ---

// CreateAdjustment inserts an adjustment row.
func (s *Store) CreateAdjustment(ctx context.Context, adj ledger.ReportAdjustment) (ledger.ReportAdjustment, error) {
	_, err := s.pool.Exec(ctx, `
		insert into report_adjustments (id, user_id, report_type, section, label, amount, description, effective_date, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, adj.ID, adj.UserID, adj.ReportType, adj.Section, adj.Label, adj.Amount.String(), adj.Description,
		adj.EffectiveDate, adj.CreatedAt, adj.UpdatedAt)
	if err != nil {
		return ledger.ReportAdjustment{}, err
	}
	return adj, nil
}

// UpdateAdjustment overwrites the mutable fields of an adjustment row.
func (s *Store) UpdateAdjustment(ctx context.Context, adj ledger.ReportAdjustment) (ledger.ReportAdjustment, error) {
	ct, err := s.pool.Exec(ctx, `
		update report_adjustments
		set section=$1, label=$2, amount=$3, description=$4, effective_date=$5, updated_at=$6
		where id=$7 and user_id=$8
	`, adj.Section, adj.Label, adj.Amount.String(), adj.Description, adj.EffectiveDate, adj.UpdatedAt, adj.ID, adj.UserID)
	if err != nil {
		return ledger.ReportAdjustment{}, err
	}
	if ct.RowsAffected() == 0 {
		return ledger.ReportAdjustment{}, errs.ErrNotFound
	}
	return adj, nil
}

// DeleteAdjustment removes a user's adjustment row.
func (s *Store) DeleteAdjustment(ctx context.Context, userID, id uuid.UUID) error {
	ct, err := s.pool.Exec(ctx, `delete from report_adjustments where id=$1 and user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// nullableID maps uuid.Nil to SQL null so unlinked references stay null
// instead of a zero uuid.
func nullableID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
