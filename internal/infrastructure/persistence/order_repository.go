package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sheeto/backend/internal/domain/order"
	"github.com/sheeto/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order and its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByNumber finds an order by its human-shareable order number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", strings.ToUpper(strings.TrimSpace(orderNumber))).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByUser finds orders placed by a user, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	return r.findPage(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ?", userID)
	})
}

// FindAll finds all orders, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	return r.findPage(ctx, filter, nil)
}

// Save persists an order and its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(o).Error
}

// Count returns the number of orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyStatusFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) findPage(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) (shared.Paginated[*order.Order], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	base := r.applyStatusFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	if scope != nil {
		base = scope(base)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[*order.Order]{}, err
	}

	var orders []*order.Order
	offset := (filter.Page - 1) * filter.PageSize
	if err := base.
		Preload("Items").
		Order("placed_at DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&orders).Error; err != nil {
		return shared.Paginated[*order.Order]{}, err
	}

	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

func (r *GormOrderRepository) applyStatusFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok && status != nil && status != "" {
		query = query.Where("status = ?", status)
	}
	return query
}
