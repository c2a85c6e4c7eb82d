package coa

import (
	"fmt"

	"github.com/aarlazuardi/erp-ledger/internal/errs"
	"github.com/aarlazuardi/erp-ledger/internal/slug"
)

// Validate checks the static catalogs for internal consistency. It is meant
// to run once at startup: a failure is a build defect, not a runtime
// condition.
func Validate() error {
	seen := make(map[string]bool, len(chart))
	for _, a := range chart {
		if a.Code == "" || a.Name == "" {
			return fmt.Errorf("%w: account %q has an empty code or name", errs.ErrConfig, a.Code)
		}
		if !a.Type.Valid() {
			return fmt.Errorf("%w: account %s has unknown type %q", errs.ErrConfig, a.Code, a.Type)
		}
		if seen[a.Code] {
			return fmt.Errorf("%w: duplicate account code %s", errs.ErrConfig, a.Code)
		}
		seen[a.Code] = true
	}
	for _, p := range presets {
		if !slug.IsSlug(p.Key) {
			return fmt.Errorf("%w: preset key %q is not a valid slug", errs.ErrConfig, p.Key)
		}
		if !p.FinanceType.Valid() {
			return fmt.Errorf("%w: preset %s has unknown finance type %q", errs.ErrConfig, p.Key, p.FinanceType)
		}
		if !p.CashFlow.Valid() {
			return fmt.Errorf("%w: preset %s has unknown cash flow %q", errs.ErrConfig, p.Key, p.CashFlow)
		}
		if !seen[p.Template.DebitAccount] || !seen[p.Template.CreditAccount] {
			return fmt.Errorf("%w: preset %s references an unknown account", errs.ErrConfig, p.Key)
		}
	}
	return nil
}
