package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/aarlazuardi/erp-ledger/internal/coa"
)

// listAccounts serves the static chart of accounts.
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := coa.All()
	items := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, toAccountResponse(a))
	}
	toJSON(w, http.StatusOK, map[string]any{"items": items})
}

// listPresets serves the static transaction preset catalog.
func (s *Server) listPresets(w http.ResponseWriter, r *http.Request) {
	presets := coa.Presets()
	items := make([]presetResponse, 0, len(presets))
	for _, p := range presets {
		items = append(items, toPresetResponse(p))
	}
	toJSON(w, http.StatusOK, map[string]any{"items": items})
}

// listJournal exposes a user's journal entries for inspection.
func (s *Server) listJournal(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxKeyListJournal).(uuid.UUID)
	entries, err := s.journalSvc.List(r.Context(), userID)
	if err != nil {
		respondErr(w, err)
		return
	}
	items := make([]journalEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toJournalEntryResponse(e))
	}
	toJSON(w, http.StatusOK, listJournalResponse{Items: items})
}
