// Package seed bootstraps demo billing data so cmd/tally can run a
// calculation against an empty database.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	adjustmentdomain "github.com/smallbiznis/tally/internal/adjustment/domain"
	contractdomain "github.com/smallbiznis/tally/internal/contract/domain"
	creditdomain "github.com/smallbiznis/tally/internal/credit/domain"
	meteringdomain "github.com/smallbiznis/tally/internal/metering/domain"
	paymentdomain "github.com/smallbiznis/tally/internal/payment/domain"
	"gorm.io/gorm"
)

// DemoData identifies the seeded entities for the demo calculation.
type DemoData struct {
	UserID         snowflake.ID
	BillingGroupID snowflake.ID
	Period         string
}

// EnsureDemoData seeds one user's worth of billing inputs for the
// previous calendar month. Repeated runs reuse the existing data.
func EnsureDemoData(db *gorm.DB, node *snowflake.Node) (*DemoData, error) {
	if db == nil {
		return nil, errors.New("seed database handle is required")
	}

	ctx := context.Background()

	var existing meteringdomain.MeteringRecord
	err := db.WithContext(ctx).Order("id ASC").First(&existing).Error
	if err == nil {
		return &DemoData{
			UserID:         existing.UserID,
			BillingGroupID: existing.BillingGroupID,
			Period:         existing.RecordedAt.UTC().Format("2006-01"),
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	userID := node.Generate()
	groupID := node.Generate()

	now := time.Now().UTC()
	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	mid := periodStart.AddDate(0, 0, 14)

	seedErr := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records := []meteringdomain.MeteringRecord{
			{ID: node.Generate(), UserID: userID, BillingGroupID: groupID, CounterName: "compute.instance", CounterKind: meteringdomain.CounterKindDelta, Volume: 8, RecordedAt: periodStart.Add(6 * time.Hour), CreatedAt: now},
			{ID: node.Generate(), UserID: userID, BillingGroupID: groupID, CounterName: "compute.instance", CounterKind: meteringdomain.CounterKindDelta, Volume: 7, RecordedAt: mid, CreatedAt: now},
			{ID: node.Generate(), UserID: userID, BillingGroupID: groupID, CounterName: "storage.object", CounterKind: meteringdomain.CounterKindGauge, Volume: 120, RecordedAt: mid.Add(time.Hour), CreatedAt: now},
		}
		if err := tx.Create(&records).Error; err != nil {
			return err
		}

		contract := contractdomain.Contract{
			ID:             node.Generate(),
			BillingGroupID: groupID,
			Name:           "demo-standard",
			DiscountRate:   0,
			ValidFrom:      periodStart.AddDate(-1, 0, 0),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		ten := 10.0
		twenty := 20.0
		if err := contract.AddTier(contractdomain.PricingTier{ID: node.Generate(), CounterName: "compute.instance", MinVolume: 0, MaxVolume: &ten, UnitPriceCents: 10, CreatedAt: now}); err != nil {
			return err
		}
		if err := contract.AddTier(contractdomain.PricingTier{ID: node.Generate(), CounterName: "compute.instance", MinVolume: 10, MaxVolume: &twenty, UnitPriceCents: 8, CreatedAt: now}); err != nil {
			return err
		}
		if err := contract.AddTier(contractdomain.PricingTier{ID: node.Generate(), CounterName: "compute.instance", MinVolume: 20, UnitPriceCents: 6, CreatedAt: now}); err != nil {
			return err
		}
		if err := tx.Create(&contract).Error; err != nil {
			return err
		}

		adjustment := adjustmentdomain.Adjustment{
			ID:            node.Generate(),
			Name:          "demo-loyalty-discount",
			Type:          adjustmentdomain.TypeFixedDiscount,
			Amount:        25,
			TargetType:    adjustmentdomain.TargetBillingGroup,
			TargetID:      groupID,
			Priority:      100,
			EffectiveFrom: periodStart.AddDate(-1, 0, 0),
			CreatedAt:     now,
		}
		if err := tx.Create(&adjustment).Error; err != nil {
			return err
		}

		expiry := now.AddDate(0, 2, 0)
		credit := creditdomain.Credit{
			ID:           node.Generate(),
			UserID:       userID,
			Type:         creditdomain.CreditTypeFree,
			AmountCents:  50,
			BalanceCents: 50,
			CreatedAt:    periodStart.AddDate(0, -1, 0),
			ExpiresAt:    &expiry,
		}
		if err := tx.Create(&credit).Error; err != nil {
			return err
		}

		payment := paymentdomain.Payment{
			ID:          node.Generate(),
			UserID:      userID,
			AmountCents: 40,
			Status:      paymentdomain.StatusRegistered,
			CreatedAt:   periodStart.AddDate(0, -2, 0),
		}
		return tx.Create(&payment).Error
	})
	if seedErr != nil {
		return nil, seedErr
	}

	return &DemoData{
		UserID:         userID,
		BillingGroupID: groupID,
		Period:         periodStart.Format("2006-01"),
	}, nil
}
