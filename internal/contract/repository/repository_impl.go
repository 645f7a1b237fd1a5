package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tally/internal/contract/domain"
	"gorm.io/gorm"
)

type repositoryImpl struct{}

func NewRepository() domain.Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Insert(ctx context.Context, db *gorm.DB, contract *domain.Contract) error {
	if err := contract.Validate(); err != nil {
		return err
	}
	return db.WithContext(ctx).Create(contract).Error
}

func (r *repositoryImpl) FindActiveContract(ctx context.Context, db *gorm.DB, billingGroupID snowflake.ID, asOf time.Time) (*domain.Contract, error) {
	var contract domain.Contract
	err := db.WithContext(ctx).
		Preload("Tiers").
		Where("billing_group_id = ? AND valid_from <= ? AND (valid_to IS NULL OR valid_to > ?)", billingGroupID, asOf, asOf).
		Order("valid_from DESC").
		First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}
