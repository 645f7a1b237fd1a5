package domain

import (
	"fmt"
	"time"
)

// BillingPeriod is one calendar month.
type BillingPeriod struct {
	Year  int
	Month time.Month
}

func NewBillingPeriod(year int, month time.Month) (BillingPeriod, error) {
	if year < 1 || month < time.January || month > time.December {
		return BillingPeriod{}, ErrInvalidPeriod
	}
	return BillingPeriod{Year: year, Month: month}, nil
}

// ParseBillingPeriod parses "YYYY-MM".
func ParseBillingPeriod(value string) (BillingPeriod, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return BillingPeriod{}, ErrInvalidPeriod
	}
	return NewBillingPeriod(t.Year(), t.Month())
}

// Start is the first instant of the month, UTC.
func (p BillingPeriod) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the last instant of the month.
func (p BillingPeriod) End() time.Time {
	return p.Start().AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func (p BillingPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// ValidateCalculable is the business pre-check callers run before a
// calculation: future periods and periods more than two years past are
// rejected. Calculate itself never applies this policy.
func ValidateCalculable(p BillingPeriod, now time.Time) error {
	if p.Start().After(now) {
		return ErrPeriodInFuture
	}
	if p.End().Before(now.AddDate(-2, 0, 0)) {
		return ErrPeriodTooOld
	}
	return nil
}
