package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Apply runs the ordered rule composition over amountCents.
	Apply(ctx context.Context, amountCents int64, adjustments []Adjustment) (Application, error)
	// ValidateTotalDiscount is the pre-application policy check for
	// the configured rate-discount cap.
	ValidateTotalDiscount(adjustments []Adjustment) error
}

var (
	ErrInvalidType         = errors.New("invalid_adjustment_type")
	ErrInvalidAmount       = errors.New("invalid_adjustment_amount")
	ErrInvalidRate         = errors.New("invalid_adjustment_rate")
	ErrInvalidTarget       = errors.New("invalid_adjustment_target")
	ErrDiscountCapExceeded = errors.New("discount_cap_exceeded")
)
