// Package domain contains the payment model and its status state
// machine.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PaymentStatus is one state of the payment lifecycle.
type PaymentStatus string

const (
	StatusPending    PaymentStatus = "PENDING"
	StatusRegistered PaymentStatus = "REGISTERED"
	StatusPaid       PaymentStatus = "PAID"
	StatusCancelled  PaymentStatus = "CANCELLED"
	StatusFailed     PaymentStatus = "FAILED"
	StatusUnknown    PaymentStatus = "UNKNOWN"
)

// Payment is one payable transaction tied to a billing statement.
type Payment struct {
	ID          snowflake.ID      `gorm:"primaryKey"`
	UserID      snowflake.ID      `gorm:"not null;index"`
	StatementID *snowflake.ID     `gorm:"index"`
	AmountCents int64             `gorm:"not null"`
	Status      PaymentStatus     `gorm:"type:text;not null;default:'PENDING'"`
	CreatedAt   time.Time         `gorm:"not null"`
	PaidAt      *time.Time        `gorm:""`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }

// Validate checks construction invariants.
func (p Payment) Validate() error {
	if p.AmountCents <= 0 {
		return ErrInvalidPaymentAmount
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusRegistered, StatusPaid, StatusCancelled, StatusFailed, StatusUnknown:
		return true
	}
	return false
}

var (
	ErrInvalidPaymentAmount = errors.New("invalid_payment_amount")
	ErrInvalidStatus        = errors.New("invalid_payment_status")
	ErrInvalidTransition    = errors.New("invalid_transition")
	ErrUnknownAction        = errors.New("unknown_action")
	ErrActionNotAllowed     = errors.New("action_not_allowed")
)
