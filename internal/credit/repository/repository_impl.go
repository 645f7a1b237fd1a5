package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tally/internal/credit/domain"
	"gorm.io/gorm"
)

type repositoryImpl struct{}

func NewRepository() domain.Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Insert(ctx context.Context, db *gorm.DB, credit *domain.Credit) error {
	if err := credit.Validate(); err != nil {
		return err
	}
	return db.WithContext(ctx).Create(credit).Error
}

func (r *repositoryImpl) FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.Credit, error) {
	var credits []domain.Credit
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&credits).Error
	return credits, err
}
