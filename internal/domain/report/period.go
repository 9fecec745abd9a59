// Package report groups saved bills by time window and produces the
// totals behind the dashboard, period summaries and the GST report.
package report

import (
	"time"

	"github.com/sangkips/jewelbill-api/internal/domain/enum"
)

// Predicate selects bills by their date
type Predicate func(time.Time) bool

// Period describes a reporting window. Year and Month are used by the
// month and year kinds; Start and End by custom, where both ends are
// inclusive.
type Period struct {
	Kind  enum.PeriodKind
	Year  int
	Month time.Month
	Start time.Time
	End   time.Time
}

// Predicate resolves the period relative to now. Calendar comparisons
// happen in now's location. A custom period ending before it starts and
// an unknown kind match nothing.
func (p Period) Predicate(now time.Time) Predicate {
	loc := now.Location()
	switch p.Kind {
	case enum.PeriodAll:
		return func(time.Time) bool { return true }
	case enum.PeriodToday:
		y, m, d := now.Date()
		return func(t time.Time) bool {
			ty, tm, td := t.In(loc).Date()
			return ty == y && tm == m && td == d
		}
	case enum.PeriodThisMonth:
		return monthOf(now.Year(), now.Month(), loc)
	case enum.PeriodThisYear:
		return yearOf(now.Year(), loc)
	case enum.PeriodMonth:
		return monthOf(p.Year, p.Month, loc)
	case enum.PeriodYear:
		return yearOf(p.Year, loc)
	case enum.PeriodCustom:
		return Between(p.Start, p.End)
	}
	return func(time.Time) bool { return false }
}

// Between matches instants in [start, end]
func Between(start, end time.Time) Predicate {
	if end.Before(start) {
		return func(time.Time) bool { return false }
	}
	return func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	}
}

func monthOf(year int, month time.Month, loc *time.Location) Predicate {
	return func(t time.Time) bool {
		t = t.In(loc)
		return t.Year() == year && t.Month() == month
	}
}

func yearOf(year int, loc *time.Location) Predicate {
	return func(t time.Time) bool {
		return t.In(loc).Year() == year
	}
}
