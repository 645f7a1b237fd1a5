package domain

import (
	"context"
	"errors"
)

type CalculateRequest struct {
	UserID         string `json:"user_id"`
	BillingGroupID string `json:"billing_group_id"`
	ProjectID      string `json:"project_id"`
	Period         string `json:"period"`
}

type Service interface {
	// CalculateStatement gathers metering, contract, adjustment,
	// credit, and unpaid inputs for the request, computes the
	// statement, and persists its snapshot, replacing any earlier
	// snapshot for the same (user, period).
	CalculateStatement(ctx context.Context, req CalculateRequest) (*BillingStatement, error)
	// History lists the user's most recent statement snapshots.
	History(ctx context.Context, userID string, limit int) ([]StatementRecord, error)
}

var (
	ErrInvalidUser         = errors.New("invalid_user")
	ErrInvalidBillingGroup = errors.New("invalid_billing_group")
	ErrInvalidProject      = errors.New("invalid_project")
	ErrInvalidPeriod       = errors.New("invalid_period")
	ErrPeriodInFuture      = errors.New("period_in_future")
	ErrPeriodTooOld        = errors.New("period_too_old")
	ErrInvalidBaseAmount   = errors.New("invalid_base_amount")
)
