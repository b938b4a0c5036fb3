package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/sheeto/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence. The
// generic base covers lookup, listing, save, delete and count.
type ProductRepository interface {
	shared.Repository[Product]

	// FindByCategory finds all products with the given category label
	FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// ListCategories returns the distinct category labels in the catalog
	ListCategories(ctx context.Context) ([]string, error)
}
