package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tally/internal/metering/domain"
	"gorm.io/gorm"
)

type repositoryImpl struct{}

func NewRepository() domain.Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Insert(ctx context.Context, db *gorm.DB, record *domain.MeteringRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repositoryImpl) FindByUserAndPeriod(ctx context.Context, db *gorm.DB, userID snowflake.ID, periodStart, periodEnd time.Time) ([]domain.MeteringRecord, error) {
	var records []domain.MeteringRecord
	err := db.WithContext(ctx).
		Where("user_id = ? AND recorded_at >= ? AND recorded_at <= ?", userID, periodStart, periodEnd).
		Order("recorded_at ASC, id ASC").
		Find(&records).Error
	return records, err
}
