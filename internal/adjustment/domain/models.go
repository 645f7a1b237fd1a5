// Package domain contains discount/surcharge rules and their ordered
// application.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AdjustmentType combines the rule mechanism (fixed amount vs rate)
// with its direction (discount vs surcharge).
type AdjustmentType string

const (
	TypeFixedDiscount  AdjustmentType = "FIXED_DISCOUNT"
	TypeRateDiscount   AdjustmentType = "RATE_DISCOUNT"
	TypeFixedSurcharge AdjustmentType = "FIXED_SURCHARGE"
	TypeRateSurcharge  AdjustmentType = "RATE_SURCHARGE"
)

func (t AdjustmentType) Valid() bool {
	switch t {
	case TypeFixedDiscount, TypeRateDiscount, TypeFixedSurcharge, TypeRateSurcharge:
		return true
	}
	return false
}

func (t AdjustmentType) isRate() bool {
	return t == TypeRateDiscount || t == TypeRateSurcharge
}

// TargetType scopes a rule to a billing group or a single project.
type TargetType string

const (
	TargetBillingGroup TargetType = "BILLING_GROUP"
	TargetProject      TargetType = "PROJECT"
)

// Adjustment is one immutable discount/surcharge rule. Amount is cents
// for fixed rules and a percentage for rate rules. Lower priority is
// applied earlier.
type Adjustment struct {
	ID            snowflake.ID      `gorm:"primaryKey"`
	Name          string            `gorm:"type:text;not null"`
	Type          AdjustmentType    `gorm:"type:text;not null"`
	Amount        float64           `gorm:"type:numeric;not null"`
	TargetType    TargetType        `gorm:"type:text;not null"`
	TargetID      snowflake.ID      `gorm:"not null;index"`
	Priority      int               `gorm:"not null;default:0"`
	EffectiveFrom time.Time         `gorm:"not null"`
	EffectiveTo   *time.Time        `gorm:""`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Adjustment) TableName() string { return "adjustments" }

// Validate checks construction invariants.
func (a Adjustment) Validate() error {
	if !a.Type.Valid() {
		return ErrInvalidType
	}
	if a.Amount < 0 {
		return ErrInvalidAmount
	}
	if a.Type.isRate() && a.Amount > 100 {
		return ErrInvalidRate
	}
	switch a.TargetType {
	case TargetBillingGroup, TargetProject:
	default:
		return ErrInvalidTarget
	}
	return nil
}
