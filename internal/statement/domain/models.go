package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// StatementRecord is the persisted snapshot of one calculated
// statement. Recalculating a period replaces the previous row, so one
// record per (user, period) survives.
type StatementRecord struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"not null;index"`
	BillingGroupID   snowflake.ID `gorm:"not null;index"`
	Period           string       `gorm:"type:text;not null"`
	BaseAmountCents  int64        `gorm:"not null"`
	UnpaidCents      int64        `gorm:"not null"`
	OverdueCents     int64        `gorm:"not null"`
	AdjustmentsCents int64        `gorm:"not null"`
	CreditsCents     int64        `gorm:"not null"`
	FinalAmountCents int64        `gorm:"not null"`
	Status           string       `gorm:"type:text;not null"`
	Checksum         string       `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (StatementRecord) TableName() string { return "statement_records" }

// NewStatementRecord snapshots a calculated statement.
func NewStatementRecord(id snowflake.ID, statement *BillingStatement, now time.Time) StatementRecord {
	var unpaidCents, overdueCents int64
	if statement.Unpaid != nil {
		unpaidCents = statement.Unpaid.AmountCents
		overdueCents = statement.Unpaid.OverdueChargeCents()
	}

	var adjustmentsCents int64
	if statement.AdjustmentResult != nil {
		adjustmentsCents = statement.AdjustmentResult.FinalAmount - statement.AdjustmentResult.OriginalAmount
	}

	var creditsCents int64
	if statement.CreditResult != nil {
		creditsCents = statement.CreditResult.TotalUsed()
	}

	return StatementRecord{
		ID:               id,
		UserID:           statement.UserID,
		BillingGroupID:   statement.BillingGroupID,
		Period:           statement.Period.String(),
		BaseAmountCents:  statement.BaseAmountCents,
		UnpaidCents:      unpaidCents,
		OverdueCents:     overdueCents,
		AdjustmentsCents: adjustmentsCents,
		CreditsCents:     creditsCents,
		FinalAmountCents: statement.FinalAmountCents,
		Status:           string(statement.Status),
		Checksum:         statementChecksum(statement.UserID, statement.Period),
		CreatedAt:        now,
	}
}

func statementChecksum(userID snowflake.ID, period BillingPeriod) string {
	payload := fmt.Sprintf("%s|%s", userID.String(), period.String())
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
