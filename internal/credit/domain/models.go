// Package domain contains credit grants and the priority-ordered
// allocation that consumes them.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type CreditType string

const (
	CreditTypeFree   CreditType = "FREE"
	CreditTypePaid   CreditType = "PAID"
	CreditTypeRefund CreditType = "REFUND"
)

func (t CreditType) Valid() bool {
	switch t {
	case CreditTypeFree, CreditTypePaid, CreditTypeRefund:
		return true
	}
	return false
}

// Consumption priorities; lower is consumed first. A credit close to
// expiry outranks every type.
const (
	priorityExpiringSoon = 1
	priorityFree         = 2
	priorityRefund       = 3
	priorityPaid         = 4
)

// Credit is one grant of usable balance. Instances are immutable;
// Use returns a reduced copy.
type Credit struct {
	ID           snowflake.ID      `gorm:"primaryKey"`
	UserID       snowflake.ID      `gorm:"not null;index"`
	Type         CreditType        `gorm:"type:text;not null"`
	AmountCents  int64             `gorm:"not null"`
	BalanceCents int64             `gorm:"not null"`
	CreatedAt    time.Time         `gorm:"not null"`
	ExpiresAt    *time.Time        `gorm:""`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb"`
}

// TableName sets the database table name.
func (Credit) TableName() string { return "credits" }

// Validate checks construction invariants.
func (c Credit) Validate() error {
	if !c.Type.Valid() {
		return ErrInvalidCreditType
	}
	if c.AmountCents < 0 {
		return ErrInvalidCreditAmount
	}
	if c.BalanceCents < 0 || c.BalanceCents > c.AmountCents {
		return ErrInvalidCreditBalance
	}
	if c.ExpiresAt != nil && !c.ExpiresAt.After(c.CreatedAt) {
		return ErrInvalidCreditExpiry
	}
	return nil
}

// Use returns a copy with the balance reduced by amountCents.
// Consuming more than the balance is a programming error, never
// silently clamped.
func (c Credit) Use(amountCents int64) (Credit, error) {
	if amountCents <= 0 {
		return Credit{}, ErrInvalidUseAmount
	}
	if amountCents > c.BalanceCents {
		return Credit{}, ErrCreditOverconsumed
	}
	used := c
	used.BalanceCents -= amountCents
	return used, nil
}

func (c Credit) IsExpired(asOf time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(asOf)
}

// IsAvailable reports whether the credit can cover anything as of the
// given instant.
func (c Credit) IsAvailable(asOf time.Time) bool {
	return c.BalanceCents > 0 && !c.IsExpired(asOf)
}

// ValidateUsable is the business pre-check for consuming a credit
// directly. A period-scoped allocation skips expired credits silently;
// direct use of one is an error.
func (c Credit) ValidateUsable(asOf time.Time) error {
	if c.IsExpired(asOf) {
		return ErrCreditExpired
	}
	return nil
}

// ConsumptionPriority derives the allocation rank relative to the
// billing period end: expiring-soon first, then FREE, REFUND, PAID.
func (c Credit) ConsumptionPriority(periodEnd time.Time, expiringSoonDays int) int {
	if c.ExpiresAt != nil {
		window := time.Duration(expiringSoonDays) * 24 * time.Hour
		if !c.ExpiresAt.After(periodEnd.Add(window)) {
			return priorityExpiringSoon
		}
	}
	switch c.Type {
	case CreditTypeFree:
		return priorityFree
	case CreditTypeRefund:
		return priorityRefund
	default:
		return priorityPaid
	}
}

// GrantRequest is the explicit, validated DTO for granting a credit.
type GrantRequest struct {
	UserID      string         `json:"user_id"`
	Type        CreditType     `json:"type"`
	AmountCents int64          `json:"amount_cents"`
	ExpiresAt   *time.Time     `json:"expires_at"`
	Metadata    map[string]any `json:"metadata"`
}

func (r GrantRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return ErrInvalidUser
	}
	if !r.Type.Valid() {
		return ErrInvalidCreditType
	}
	if r.AmountCents <= 0 {
		return ErrInvalidCreditAmount
	}
	return nil
}
