package persistence

import (
	"gorm.io/gorm"

	"github.com/sheeto/backend/internal/domain/catalog"
	"github.com/sheeto/backend/internal/domain/identity"
	"github.com/sheeto/backend/internal/domain/order"
)

// Migrate creates or updates the database schema for all aggregates
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Product{},
		&identity.User{},
		&order.Order{},
		&order.Item{},
	)
}
