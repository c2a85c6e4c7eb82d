package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aarlazuardi/erp-ledger/internal/ledger"
	"github.com/aarlazuardi/erp-ledger/internal/service/adjustment"
)

// validatePostAdjustment parses and validates the POST /v1/adjustments body.
func (s *Server) validatePostAdjustment() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req postAdjustmentRequest
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
			ctx := context.WithValue(r.Context(), ctxKeyPostAdjustment, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *Server) postAdjustment(w http.ResponseWriter, r *http.Request) {
	req := r.Context().Value(ctxKeyPostAdjustment).(postAdjustmentRequest)
	adj, err := s.adjSvc.Create(r.Context(), req.UserID, adjustment.CreateInput{
		ReportType:    ledger.ReportType(req.ReportType),
		Section:       req.Section,
		Label:         req.Label,
		Amount:        req.Amount,
		Description:   req.Description,
		EffectiveDate: req.EffectiveDate,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toAdjustmentResponse(adj))
}

func (s *Server) listAdjustments(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxKeyListAdjustments).(uuid.UUID)
	adjs, err := s.adjSvc.List(r.Context(), userID)
	if err != nil {
		respondErr(w, err)
		return
	}
	items := make([]adjustmentResponse, 0, len(adjs))
	for _, adj := range adjs {
		items = append(items, toAdjustmentResponse(adj))
	}
	toJSON(w, http.StatusOK, listAdjustmentsResponse{Items: items})
}

func (s *Server) patchAdjustment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	var req patchAdjustmentRequest
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
	adj, err := s.adjSvc.Update(r.Context(), id, userID, adjustment.Patch{
		Section:       req.Section,
		Label:         req.Label,
		Amount:        req.Amount,
		Description:   req.Description,
		EffectiveDate: req.EffectiveDate,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAdjustmentResponse(adj))
}

func (s *Server) deleteAdjustment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	userID, ok := userFromQuery(w, r)
	if !ok {
		return
	}
	if err := s.adjSvc.Delete(r.Context(), id, userID); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
