// Package domain contains the metering value objects and the
// per-period usage aggregation.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// CounterKind decides how readings for a counter reduce to one total.
type CounterKind string

const (
	// CounterKindDelta counters accumulate; readings are summed.
	CounterKindDelta CounterKind = "DELTA"
	// CounterKindGauge counters report current state; the latest
	// reading wins.
	CounterKindGauge CounterKind = "GAUGE"
	// CounterKindCumulative counters are monotonically increasing
	// running totals; the maximum reading wins.
	CounterKindCumulative CounterKind = "CUMULATIVE"
)

func (k CounterKind) Valid() bool {
	switch k {
	case CounterKindDelta, CounterKindGauge, CounterKindCumulative:
		return true
	}
	return false
}

// MeteringRecord stores a single usage reading. Records are immutable
// once written.
type MeteringRecord struct {
	ID             snowflake.ID      `gorm:"primaryKey"`
	UserID         snowflake.ID      `gorm:"not null;index"`
	BillingGroupID snowflake.ID      `gorm:"not null;index"`
	CounterName    string            `gorm:"type:text;not null"`
	CounterKind    CounterKind       `gorm:"type:text;not null"`
	Volume         float64           `gorm:"not null"`
	ResourceID     string            `gorm:"type:text"`
	RecordedAt     time.Time         `gorm:"not null;index"`
	IdempotencyKey *string           `gorm:"type:text;uniqueIndex"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (MeteringRecord) TableName() string { return "metering_records" }
