package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// validatePostTransaction parses and validates the POST /v1/transactions body
// and stores the decoded request in the context for the handler.
func (s *Server) validatePostTransaction() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req postTransactionRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			if req.UserID == uuid.Nil {
				badRequest(w, "user_id is required")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyPostTransaction, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *Server) postTransaction(w http.ResponseWriter, r *http.Request) {
	req := r.Context().Value(ctxKeyPostTransaction).(postTransactionRequest)
	tx, err := s.txSvc.Create(r.Context(), req.UserID, toCreateInput(req))
	if err != nil {
		respondErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxKeyListTransactions).(uuid.UUID)
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(w, "invalid limit")
			return
		}
		limit = n
	}
	txs, err := s.txSvc.ListRecent(r.Context(), userID, limit)
	if err != nil {
		respondErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, listTransactionsResponse{Items: toTransactionResponses(txs)})
}

func (s *Server) patchTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	var req patchTransactionRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	userID := req.UserID
	if userID == uuid.Nil {
		if userID, err = uuid.Parse(r.URL.Query().Get("user_id")); err != nil {
			badRequest(w, "user_id is required")
			return
		}
	}
	tx, err := s.txSvc.Update(r.Context(), id, userID, toPatch(req))
	if err != nil {
		respondErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	userID, ok := userFromQuery(w, r)
	if !ok {
		return
	}
	if err := s.txSvc.Delete(r.Context(), id, userID); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
