package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/sheeto/backend/internal/domain/shared"
)

// Repository defines the persistence interface for orders
type Repository interface {
	// FindByID finds an order by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumber finds an order by its human-shareable order number
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByUser finds orders placed by a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[*Order], error)

	// FindAll finds all orders (admin view), newest first. Filters supports
	// "status" for narrowing to a single fulfilment status.
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Order], error)

	// Save persists an order and its items
	Save(ctx context.Context, o *Order) error

	// Count returns the number of orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
