package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	// FindUnpaidByUser returns the user's non-settled payments created
	// strictly before the given instant, oldest first.
	FindUnpaidByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, before time.Time) ([]Payment, error)
}
