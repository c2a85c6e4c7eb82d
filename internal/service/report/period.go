package report

import (
	"fmt"
	"time"

	"github.com/aarlazuardi/erp-ledger/internal/errs"
)

// Period keys accepted by the report endpoints.
const (
	PeriodCurrentMonth   = "current-month"
	PeriodLastMonth      = "last-month"
	PeriodCurrentQuarter = "current-quarter"
	PeriodLastQuarter    = "last-quarter"
	PeriodYearToDate     = "year-to-date"
	PeriodLastYear       = "last-year"
	PeriodAllTime        = "all-time"
)

// Range resolves a period key into a half-open [start, end) interval on the
// calendar of now's location. All-time has a zero start and an end one month
// past now so nothing dated slightly in the future is dropped.
func Range(key string, now time.Time) (start, end time.Time, err error) {
	y, m, _ := now.Date()
	loc := now.Location()
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, loc)

	switch key {
	case PeriodCurrentMonth:
		return monthStart, monthStart.AddDate(0, 1, 0), nil
	case PeriodLastMonth:
		return monthStart.AddDate(0, -1, 0), monthStart, nil
	case PeriodCurrentQuarter:
		qs := quarterStart(now)
		return qs, qs.AddDate(0, 3, 0), nil
	case PeriodLastQuarter:
		qs := quarterStart(now)
		return qs.AddDate(0, -3, 0), qs, nil
	case PeriodYearToDate:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc), monthStart.AddDate(0, 1, 0), nil
	case PeriodLastYear:
		return time.Date(y-1, time.January, 1, 0, 0, 0, 0, loc), time.Date(y, time.January, 1, 0, 0, 0, 0, loc), nil
	case PeriodAllTime:
		return time.Time{}, monthStart.AddDate(0, 1, 0), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown period %q", errs.ErrInvalid, key)
}

func quarterStart(now time.Time) time.Time {
	y, m, _ := now.Date()
	qm := time.Month(((int(m)-1)/3)*3 + 1)
	return time.Date(y, qm, 1, 0, 0, 0, 0, now.Location())
}
