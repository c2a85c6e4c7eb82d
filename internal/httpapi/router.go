// Package httpapi wires the HTTP surface of the ERP ledger service.
// It keeps handlers thin, delegating business rules to the service layer.
package httpapi

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aarlazuardi/erp-ledger/internal/service/adjustment"
	"github.com/aarlazuardi/erp-ledger/internal/service/journal"
	"github.com/aarlazuardi/erp-ledger/internal/service/report"
	"github.com/aarlazuardi/erp-ledger/internal/service/transaction"
)

// AuthConfig enables bearer-token auth when Secret is non-empty.
type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// Store is the combined storage surface the server wires into its services.
type Store interface {
	transaction.Repo
	transaction.Writer
	journal.Repo
	journal.Writer
	adjustment.Repo
	adjustment.Writer
}

// Server wires handlers and middleware using Chi.
// It composes read (repo) and write (writer) dependencies through services.
type Server struct {
	txSvc      transaction.Service
	journalSvc journal.Service
	adjSvc     adjustment.Service
	reportSvc  report.Service
	store      Store
	log        *slog.Logger
	rt         *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by basic request/response logging and panic recovery.
func New(store Store, logger *slog.Logger, auth AuthConfig) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)
	if mw := authJWT(auth); mw != nil {
		r.Use(mw)
	}

	jsvc := journal.New(store, store)
	adjSvc := adjustment.New(store, store)
	txSvc := transaction.New(store, store, jsvc)
	s := &Server{
		txSvc:      txSvc,
		journalSvc: jsvc,
		adjSvc:     adjSvc,
		reportSvc:  report.New(txSvc, jsvc, adjSvc),
		store:      store,
		rt:         r,
		log:        logger,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	// Transactions (v1)
	s.rt.With(s.validatePostTransaction()).Post("/v1/transactions", s.postTransaction)
	s.rt.With(s.validateUserQuery(ctxKeyListTransactions)).Get("/v1/transactions", s.listTransactions)
	s.rt.Patch("/v1/transactions/{id}", s.patchTransaction)
	s.rt.Delete("/v1/transactions/{id}", s.deleteTransaction)
	// Static catalogs (v1)
	s.rt.Get("/v1/accounts", s.listAccounts)
	s.rt.Get("/v1/presets", s.listPresets)
	// Journal inspection (v1)
	s.rt.With(s.validateUserQuery(ctxKeyListJournal)).Get("/v1/journal", s.listJournal)
	// Adjustments (v1)
	s.rt.With(s.validatePostAdjustment()).Post("/v1/adjustments", s.postAdjustment)
	s.rt.With(s.validateUserQuery(ctxKeyListAdjustments)).Get("/v1/adjustments", s.listAdjustments)
	s.rt.Patch("/v1/adjustments/{id}", s.patchAdjustment)
	s.rt.Delete("/v1/adjustments/{id}", s.deleteAdjustment)
	// Reports (v1)
	s.rt.Get("/v1/reports", s.getReports)
	s.rt.Get("/v1/dashboard", s.getDashboard)
	s.rt.With(s.validateUserQuery(ctxKeyOverview)).Get("/v1/overview", s.getOverview)
	// Health + metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
