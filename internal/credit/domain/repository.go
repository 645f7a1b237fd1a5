package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, credit *Credit) error
	FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]Credit, error)
}
