package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tally/internal/adjustment/domain"
	"gorm.io/gorm"
)

type repositoryImpl struct{}

func NewRepository() domain.Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Insert(ctx context.Context, db *gorm.DB, adjustment *domain.Adjustment) error {
	if err := adjustment.Validate(); err != nil {
		return err
	}
	return db.WithContext(ctx).Create(adjustment).Error
}

func (r *repositoryImpl) FindByBillingGroup(ctx context.Context, db *gorm.DB, billingGroupID snowflake.ID, effectiveAt time.Time) ([]domain.Adjustment, error) {
	return r.findByTarget(ctx, db, domain.TargetBillingGroup, billingGroupID, effectiveAt)
}

func (r *repositoryImpl) FindByProject(ctx context.Context, db *gorm.DB, projectID snowflake.ID, effectiveAt time.Time) ([]domain.Adjustment, error) {
	return r.findByTarget(ctx, db, domain.TargetProject, projectID, effectiveAt)
}

func (r *repositoryImpl) findByTarget(ctx context.Context, db *gorm.DB, targetType domain.TargetType, targetID snowflake.ID, effectiveAt time.Time) ([]domain.Adjustment, error) {
	var adjustments []domain.Adjustment
	err := db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Where("effective_from <= ? AND (effective_to IS NULL OR effective_to > ?)", effectiveAt, effectiveAt).
		Order("priority ASC, id ASC").
		Find(&adjustments).Error
	return adjustments, err
}
