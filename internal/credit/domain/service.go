package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// Grant creates a credit from a validated request.
	Grant(ctx context.Context, req GrantRequest) (*Credit, error)
	// Allocate consumes the user's credits against amountCents for the
	// billing period bounded by periodStart/periodEnd.
	Allocate(ctx context.Context, amountCents int64, credits []Credit, periodStart, periodEnd time.Time) (Application, error)
}

var (
	ErrInvalidUser          = errors.New("invalid_user")
	ErrInvalidCreditType    = errors.New("invalid_credit_type")
	ErrInvalidCreditAmount  = errors.New("invalid_credit_amount")
	ErrInvalidCreditBalance = errors.New("invalid_credit_balance")
	ErrInvalidCreditExpiry  = errors.New("invalid_credit_expiry")
	ErrInvalidUseAmount     = errors.New("invalid_use_amount")
	ErrCreditOverconsumed   = errors.New("credit_overconsumed")
	ErrOverApplied          = errors.New("credit_over_applied")
	ErrCreditExpired        = errors.New("credit_expired")
)
