// Package adjustment manages manual report adjustments: user-entered lines
// that live outside the journal and are merged into statements at read time.
package adjustment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aarlazuardi/erp-ledger/internal/errs"
	"github.com/aarlazuardi/erp-ledger/internal/ledger"
)

// Repo defines read operations needed by the service.
type Repo interface {
	AdjustmentByID(ctx context.Context, userID, id uuid.UUID) (ledger.ReportAdjustment, error)
	AdjustmentsByUserID(ctx context.Context, userID uuid.UUID) ([]ledger.ReportAdjustment, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
	CreateAdjustment(ctx context.Context, adj ledger.ReportAdjustment) (ledger.ReportAdjustment, error)
	UpdateAdjustment(ctx context.Context, adj ledger.ReportAdjustment) (ledger.ReportAdjustment, error)
	DeleteAdjustment(ctx context.Context, userID, id uuid.UUID) error
}

// CreateInput carries the fields for a new adjustment.
type CreateInput struct {
	ReportType    ledger.ReportType
	Section       string
	Label         string
	Amount        decimal.Decimal
	Description   string
	EffectiveDate time.Time
}

// Patch carries a partial update; nil fields are left unchanged.
type Patch struct {
	Section       *string
	Label         *string
	Amount        *decimal.Decimal
	Description   *string
	EffectiveDate *time.Time
}

// PeriodAdjustments groups a user's adjustments by the statement section they
// land in, pre-filtered for a reporting period.
type PeriodAdjustments struct {
	IncomeStatement map[string][]ledger.ReportAdjustment
	BalanceSheet    map[string][]ledger.ReportAdjustment
	CashFlow        map[string][]ledger.ReportAdjustment
}

// Service exposes adjustment CRUD and period lookup for the report builder.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateInput) (ledger.ReportAdjustment, error)
	Update(ctx context.Context, id, userID uuid.UUID, changes Patch) (ledger.ReportAdjustment, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]ledger.ReportAdjustment, error)
	FetchForPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) (PeriodAdjustments, error)
}

type service struct {
	repo   Repo
	writer Writer
	now    func() time.Time
}

// New constructs the adjustment service.
func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, now: time.Now}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (ledger.ReportAdjustment, error) {
	if userID == uuid.Nil {
		return ledger.ReportAdjustment{}, fmt.Errorf("%w: user id is required", errs.ErrInvalid)
	}
	in.Label = strings.TrimSpace(in.Label)
	if in.Label == "" {
		return ledger.ReportAdjustment{}, fmt.Errorf("%w: label is required", errs.ErrInvalid)
	}
	if in.Amount.IsZero() {
		return ledger.ReportAdjustment{}, fmt.Errorf("%w: amount must be non-zero", errs.ErrInvalid)
	}
	if !ledger.SectionValid(in.ReportType, in.Section) {
		return ledger.ReportAdjustment{}, fmt.Errorf("%w: section %q is not valid for report %q", errs.ErrInvalid, in.Section, in.ReportType)
	}
	if in.EffectiveDate.IsZero() {
		return ledger.ReportAdjustment{}, errs.ErrBadDate
	}

	now := s.now().UTC()
	adj := ledger.ReportAdjustment{
		ID:            uuid.New(),
		UserID:        userID,
		ReportType:    in.ReportType,
		Section:       in.Section,
		Label:         in.Label,
		Amount:        in.Amount,
		Description:   in.Description,
		EffectiveDate: in.EffectiveDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.writer.CreateAdjustment(ctx, adj)
}

func (s *service) Update(ctx context.Context, id, userID uuid.UUID, changes Patch) (ledger.ReportAdjustment, error) {
	adj, err := s.repo.AdjustmentByID(ctx, userID, id)
	if err != nil {
		return ledger.ReportAdjustment{}, err
	}
	if changes.Section != nil {
		adj.Section = *changes.Section
	}
	if changes.Label != nil {
		adj.Label = *changes.Label
	}
	if changes.Amount != nil {
		adj.Amount = *changes.Amount
	}
	if changes.Description != nil {
		adj.Description = *changes.Description
	}
	if changes.EffectiveDate != nil {
		adj.EffectiveDate = *changes.EffectiveDate
	}
	adj.Label = strings.TrimSpace(adj.Label)
	if adj.Label == "" {
		return ledger.ReportAdjustment{}, fmt.Errorf("%w: label is required", errs.ErrInvalid)
	}
	if adj.Amount.IsZero() {
		return ledger.ReportAdjustment{}, fmt.Errorf("%w: amount must be non-zero", errs.ErrInvalid)
	}
	if !ledger.SectionValid(adj.ReportType, adj.Section) {
		return ledger.ReportAdjustment{}, fmt.Errorf("%w: section %q is not valid for report %q", errs.ErrInvalid, adj.Section, adj.ReportType)
	}
	adj.UpdatedAt = s.now().UTC()
	return s.writer.UpdateAdjustment(ctx, adj)
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.writer.DeleteAdjustment(ctx, userID, id)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]ledger.ReportAdjustment, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", errs.ErrInvalid)
	}
	adjs, err := s.repo.AdjustmentsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(adjs, func(i, j int) bool {
		return adjs[i].EffectiveDate.After(adjs[j].EffectiveDate)
	})
	return adjs, nil
}

// FetchForPeriod returns the adjustments a statement for [start, end) must
// include. Flow statements (income statement, cash flow) take only
// adjustments effective inside the period; the balance sheet, being
// cumulative, takes everything effective before end.
func (s *service) FetchForPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) (PeriodAdjustments, error) {
	adjs, err := s.repo.AdjustmentsByUserID(ctx, userID)
	if err != nil {
		return PeriodAdjustments{}, err
	}
	out := PeriodAdjustments{
		IncomeStatement: make(map[string][]ledger.ReportAdjustment),
		BalanceSheet:    make(map[string][]ledger.ReportAdjustment),
		CashFlow:        make(map[string][]ledger.ReportAdjustment),
	}
	for _, adj := range adjs {
		if !adj.EffectiveDate.Before(end) {
			continue
		}
		switch adj.ReportType {
		case ledger.ReportBalanceSheet:
			out.BalanceSheet[adj.Section] = append(out.BalanceSheet[adj.Section], adj)
		case ledger.ReportIncomeStatement:
			if !adj.EffectiveDate.Before(start) {
				out.IncomeStatement[adj.Section] = append(out.IncomeStatement[adj.Section], adj)
			}
		case ledger.ReportCashFlow:
			if !adj.EffectiveDate.Before(start) {
				out.CashFlow[adj.Section] = append(out.CashFlow[adj.Section], adj)
			}
		}
	}
	return out, nil
}
