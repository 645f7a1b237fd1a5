// Package domain contains the carried-over unpaid balance value
// object.
package domain

import (
	"errors"

	"github.com/smallbiznis/tally/pkg/money"
)

// UnpaidAmount is a prior-period balance carried into the current
// statement, with its grace-adjusted overdue surcharge.
type UnpaidAmount struct {
	AmountCents int64
	OverdueDays int
	OverdueRate float64
}

func NewUnpaidAmount(amountCents int64, overdueDays int, overdueRate float64) (UnpaidAmount, error) {
	if amountCents < 0 {
		return UnpaidAmount{}, ErrInvalidAmount
	}
	if overdueDays < 0 {
		return UnpaidAmount{}, ErrInvalidOverdueDays
	}
	if overdueRate < 0 || overdueRate > 1 {
		return UnpaidAmount{}, ErrInvalidOverdueRate
	}
	return UnpaidAmount{
		AmountCents: amountCents,
		OverdueDays: overdueDays,
		OverdueRate: overdueRate,
	}, nil
}

// OverdueChargeCents is the surcharge portion alone.
func (u UnpaidAmount) OverdueChargeCents() int64 {
	return money.Round(float64(u.AmountCents) * u.OverdueRate)
}

// TotalWithCharges is the carried balance plus the overdue surcharge.
func (u UnpaidAmount) TotalWithCharges() int64 {
	return u.AmountCents + u.OverdueChargeCents()
}

var (
	ErrInvalidAmount      = errors.New("invalid_unpaid_amount")
	ErrInvalidOverdueDays = errors.New("invalid_overdue_days")
	ErrInvalidOverdueRate = errors.New("invalid_overdue_rate")
)
