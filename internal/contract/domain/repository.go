package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, contract *Contract) error
	// FindActiveContract returns the contract whose validity window
	// covers asOf, or nil when the billing group has none.
	FindActiveContract(ctx context.Context, db *gorm.DB, billingGroupID snowflake.ID, asOf time.Time) (*Contract, error)
}
