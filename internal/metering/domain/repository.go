package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *MeteringRecord) error
	FindByUserAndPeriod(ctx context.Context, db *gorm.DB, userID snowflake.ID, periodStart, periodEnd time.Time) ([]MeteringRecord, error)
}
