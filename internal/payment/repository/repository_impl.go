package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tally/internal/payment/domain"
	"gorm.io/gorm"
)

type repositoryImpl struct{}

func NewRepository() domain.Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repositoryImpl) FindUnpaidByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, before time.Time) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := db.WithContext(ctx).
		Where("user_id = ? AND created_at < ?", userID, before).
		Where("status IN ?", []domain.PaymentStatus{domain.StatusPending, domain.StatusRegistered, domain.StatusFailed}).
		Order("created_at ASC, id ASC").
		Find(&payments).Error
	return payments, err
}
