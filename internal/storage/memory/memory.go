package memory

// Package memory provides a simple in-memory implementation used for development and tests.
// It keeps code paths easy to follow while allowing us to plug in a real DB later.
import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aarlazuardi/erp-ledger/internal/errs"
	"github.com/aarlazuardi/erp-ledger/internal/ledger"
)

// entryKey tracks ordering for entries per user: sorted asc by (Date, ID)
type entryKey struct {
	Date time.Time
	ID   uuid.UUID
}

// Store is an in-memory implementation of the repositories and writers used
// by the services. It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]ledger.TransactionDocument
	entries      map[uuid.UUID]*ledger.JournalEntry
	adjustments  map[uuid.UUID]ledger.ReportAdjustment
	// Per-user sorted index of entries for efficient ordered scans
	entryKeysByUser map[uuid.UUID][]entryKey
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		transactions:    make(map[uuid.UUID]ledger.TransactionDocument),
		entries:         make(map[uuid.UUID]*ledger.JournalEntry),
		adjustments:     make(map[uuid.UUID]ledger.ReportAdjustment),
		entryKeysByUser: make(map[uuid.UUID][]entryKey),
	}
}

// Seed helpers for local dev/tests.
func (s *Store) SeedTransaction(doc ledger.TransactionDocument) {
	s.mu.Lock()
	s.transactions[doc.ID] = doc
	s.mu.Unlock()
}

func (s *Store) Reset() {
	s.mu.Lock()
	s.transactions = map[uuid.UUID]ledger.TransactionDocument{}
	s.entries = map[uuid.UUID]*ledger.JournalEntry{}
	s.adjustments = map[uuid.UUID]ledger.ReportAdjustment{}
	s.entryKeysByUser = map[uuid.UUID][]entryKey{}
	s.mu.Unlock()
}

// CreateTransaction implements transaction.Writer.
func (s *Store) CreateTransaction(_ context.Context, doc ledger.TransactionDocument) (ledger.TransactionDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[doc.ID] = doc
	return doc, nil
}

// UpdateTransaction updates an existing transaction document by ID.
func (s *Store) UpdateTransaction(_ context.Context, doc ledger.TransactionDocument) (ledger.TransactionDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.transactions[doc.ID]
	if !ok || existing.UserID != doc.UserID {
		return ledger.TransactionDocument{}, errs.ErrNotFound
	}
	s.transactions[doc.ID] = doc
	return doc, nil
}

// DeleteTransaction removes a user's transaction document.
func (s *Store) DeleteTransaction(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.transactions[id]
	if !ok || doc.UserID != userID {
		return errs.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

// TransactionByID returns a single transaction document for a user.
func (s *Store) TransactionByID(_ context.Context, userID, id uuid.UUID) (ledger.TransactionDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.transactions[id]
	if !ok || doc.UserID != userID {
		return ledger.TransactionDocument{}, errs.ErrNotFound
	}
	return doc, nil
}

// TransactionsByUserID returns all transaction documents for a user.
func (s *Store) TransactionsByUserID(_ context.Context, userID uuid.UUID) ([]ledger.TransactionDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.TransactionDocument, 0)
	for _, doc := range s.transactions {
		if doc.UserID == userID {
			out = append(out, doc)
		}
	}
	return out, nil
}

// CreateJournalEntry implements journal.Writer.
func (s *Store) CreateJournalEntry(_ context.Context, entry ledger.JournalEntry) (ledger.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// store shallow copy
	e := entry
	s.entries[e.ID] = &e
	s.insertEntryIndexLocked(e.UserID, entryKey{Date: e.Date, ID: e.ID})
	return e, nil
}

// UpdateJournalEntry updates an existing journal entry by ID.
func (s *Store) UpdateJournalEntry(_ context.Context, entry ledger.JournalEntry) (ledger.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.ID]; !ok {
		return ledger.JournalEntry{}, errs.ErrNotFound
	}
	e := entry
	s.entries[entry.ID] = &e
	return e, nil
}

// DeleteJournalEntry removes a user's journal entry.
func (s *Store) DeleteJournalEntry(_ context.Context, userID, entryID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[entryID]
	if !ok || e.UserID != userID {
		return errs.ErrNotFound
	}
	delete(s.entries, entryID)
	keys := s.entryKeysByUser[userID]
	for i, k := range keys {
		if k.ID == entryID {
			s.entryKeysByUser[userID] = append(keys[:i], keys[i+1:]...)
			break
		}
	}
	return nil
}

// EntriesByUserID returns all entries for a user, ordered asc by (Date, ID).
func (s *Store) EntriesByUserID(_ context.Context, userID uuid.UUID) ([]ledger.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := s.entryKeysByUser[userID]
	out := make([]ledger.JournalEntry, 0, len(keys))
	for _, k := range keys {
		if e, ok := s.entries[k.ID]; ok && e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

// EntryByID returns a single entry for a user.
func (s *Store) EntryByID(_ context.Context, userID, entryID uuid.UUID) (ledger.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[entryID]
	if !ok || e.UserID != userID {
		return ledger.JournalEntry{}, errs.ErrNotFound
	}
	return *e, nil
}

// CreateAdjustment implements adjustment.Writer.
func (s *Store) CreateAdjustment(_ context.Context, adj ledger.ReportAdjustment) (ledger.ReportAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjustments[adj.ID] = adj
	return adj, nil
}

// UpdateAdjustment persists changes to an adjustment.
func (s *Store) UpdateAdjustment(_ context.Context, adj ledger.ReportAdjustment) (ledger.ReportAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.adjustments[adj.ID]
	if !ok || existing.UserID != adj.UserID {
		return ledger.ReportAdjustment{}, errs.ErrNotFound
	}
	s.adjustments[adj.ID] = adj
	return adj, nil
}

// DeleteAdjustment removes a user's adjustment.
func (s *Store) DeleteAdjustment(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	adj, ok := s.adjustments[id]
	if !ok || adj.UserID != userID {
		return errs.ErrNotFound
	}
	delete(s.adjustments, id)
	return nil
}

// AdjustmentByID returns a user's adjustment by ID.
func (s *Store) AdjustmentByID(_ context.Context, userID, id uuid.UUID) (ledger.ReportAdjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	adj, ok := s.adjustments[id]
	if !ok || adj.UserID != userID {
		return ledger.ReportAdjustment{}, errs.ErrNotFound
	}
	return adj, nil
}

// AdjustmentsByUserID returns all adjustments for a user.
func (s *Store) AdjustmentsByUserID(_ context.Context, userID uuid.UUID) ([]ledger.ReportAdjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.ReportAdjustment, 0)
	for _, adj := range s.adjustments {
		if adj.UserID == userID {
			out = append(out, adj)
		}
	}
	return out, nil
}

// insertEntryIndexLocked inserts k into the per-user sorted index, keeping order asc by (Date, ID).
// Caller must hold s.mu (write lock).
func (s *Store) insertEntryIndexLocked(userID uuid.UUID, k entryKey) {
	keys := s.entryKeysByUser[userID]
	// binary search for first position > k (stable insert after equal)
	i := sort.Search(len(keys), func(i int) bool {
		if keys[i].Date.After(k.Date) {
			return true
		}
		if keys[i].Date.Equal(k.Date) {
			return keys[i].ID.String() > k.ID.String()
		}
		return false
	})
	if i == len(keys) {
		s.entryKeysByUser[userID] = append(keys, k)
		return
	}
	keys = append(keys, entryKey{})
	copy(keys[i+1:], keys[i:])
	keys[i] = k
	s.entryKeysByUser[userID] = keys
}
