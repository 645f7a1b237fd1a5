package domain

import (
	"context"
	"errors"
	"time"
)

type CreateIngestRequest struct {
	UserID         string         `json:"user_id"`
	BillingGroupID string         `json:"billing_group_id"`
	CounterName    string         `json:"counter_name"`
	CounterKind    CounterKind    `json:"counter_kind"`
	Volume         float64        `json:"volume"`
	ResourceID     string         `json:"resource_id"`
	RecordedAt     time.Time      `json:"recorded_at"`
	IdempotencyKey *string        `json:"idempotency_key"`
	Metadata       map[string]any `json:"metadata"`
}

type Service interface {
	Ingest(context.Context, CreateIngestRequest) (*MeteringRecord, error)
	AggregateForPeriod(ctx context.Context, userID string, periodStart, periodEnd time.Time) (*UsageAggregation, error)
}

var (
	ErrInvalidUser         = errors.New("invalid_user")
	ErrInvalidBillingGroup = errors.New("invalid_billing_group")
	ErrInvalidCounterName  = errors.New("invalid_counter_name")
	ErrInvalidCounterKind  = errors.New("invalid_counter_kind")
	ErrInvalidVolume       = errors.New("invalid_volume")
	ErrInvalidRecordedAt   = errors.New("invalid_recorded_at")
	ErrInvalidPeriodBounds = errors.New("invalid_period_bounds")
	ErrMeteringOutOfPeriod = errors.New("metering_out_of_period")
)
