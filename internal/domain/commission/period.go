package commission

import (
	"fmt"
	"time"
)

const periodLayout = "2006-01"

// Period is a calendar month, the unit of commission computation.
type Period struct{ start time.Time }

// ParsePeriod accepts YYYY-MM only.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{start: t.UTC()}, nil
}

// PeriodOf returns the month containing t.
func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{start: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

func (p Period) String() string { return p.start.Format(periodLayout) }

func (p Period) IsZero() bool { return p.start.IsZero() }

// FirstDay is the first day of the month at 00:00 UTC.
func (p Period) FirstDay() time.Time { return p.start }

// LastDay is the last calendar day of the month at 00:00 UTC.
func (p Period) LastDay() time.Time { return p.start.AddDate(0, 1, -1) }

// Window covers the whole month as a half-open range, which matches
// "request date between first and last day" inclusive on both ends.
func (p Period) Window() Window {
	return Window{From: p.start, To: p.start.AddDate(0, 1, 0)}
}

func (p Period) Previous() Period { return Period{start: p.start.AddDate(0, -1, 0)} }

// Window is [From, To).
type Window struct {
	From time.Time
	To   time.Time
}
