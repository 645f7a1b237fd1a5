package domain

import (
	"context"
	"errors"

	meteringdomain "github.com/smallbiznis/tally/internal/metering/domain"
)

type Service interface {
	// PriceUsage prices aggregated usage against the contract, or
	// against default rates when contract is nil or has no tiers for a
	// counter. The result is in cents.
	PriceUsage(ctx context.Context, usage *meteringdomain.UsageAggregation, contract *Contract) (int64, error)
}

var (
	ErrInvalidTierBounds     = errors.New("invalid_tier_bounds")
	ErrInvalidUnitPrice      = errors.New("invalid_unit_price")
	ErrTierOverlap           = errors.New("tier_overlap")
	ErrInvalidDiscountRate   = errors.New("invalid_discount_rate")
	ErrInvalidMinimumCharge  = errors.New("invalid_minimum_charge")
	ErrInvalidValidityWindow = errors.New("invalid_validity_window")
	ErrMissingUsage          = errors.New("missing_usage")
)
