package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, adjustment *Adjustment) error
	FindByBillingGroup(ctx context.Context, db *gorm.DB, billingGroupID snowflake.ID, effectiveAt time.Time) ([]Adjustment, error)
	FindByProject(ctx context.Context, db *gorm.DB, projectID snowflake.ID, effectiveAt time.Time) ([]Adjustment, error)
}
