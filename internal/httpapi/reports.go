package httpapi

import (
	"net/http"

	"github.com/google/uuid"
)

func (s *Server) getReports(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromQuery(w, r)
	if !ok {
		return
	}
	period := r.URL.Query().Get("period")
	if period == "" {
		badRequest(w, "period is required")
		return
	}
	data, err := s.reportSvc.BuildReportData(r.Context(), userID, period)
	if err != nil {
		respondErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toReportDataResponse(data))
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromQuery(w, r)
	if !ok {
		return
	}
	period := r.URL.Query().Get("period")
	if period == "" {
		badRequest(w, "period is required")
		return
	}
	snap, err := s.reportSvc.BuildDashboardSnapshot(r.Context(), userID, period)
	if err != nil {
		respondErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toDashboardResponse(snap))
}

func (s *Server) getOverview(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxKeyOverview).(uuid.UUID)
	ov, err := s.reportSvc.BuildFinanceOverview(r.Context(), userID)
	if err != nil {
		respondErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toOverviewResponse(ov))
}
