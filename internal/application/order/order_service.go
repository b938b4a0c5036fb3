package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/sheeto/backend/internal/domain/order"
	"github.com/sheeto/backend/internal/domain/shared"
)

// OrderService handles order history and admin fulfilment
type OrderService struct {
	orderRepo order.Repository
	eventBus  shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository, eventBus shared.EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		eventBus:  eventBus,
	}
}

// ListByUser returns the user's own orders, newest first
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, req ListOrdersRequest) (*shared.Paginated[*OrderResponse], error) {
	page, err := s.orderRepo.FindByUser(ctx, userID, s.buildFilter(req))
	if err != nil {
		return nil, err
	}
	return ToOrderPage(page), nil
}

// ListAll returns all orders for the admin dashboard
func (s *OrderService) ListAll(ctx context.Context, req ListOrdersRequest) (*shared.Paginated[*OrderResponse], error) {
	page, err := s.orderRepo.FindAll(ctx, s.buildFilter(req))
	if err != nil {
		return nil, err
	}
	return ToOrderPage(page), nil
}

// GetByNumber returns one order looked up by its shareable number.
// Customers can only read their own orders; admins can read any.
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string, requesterID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != requesterID {
		// Hide the order's existence from other customers
		return nil, shared.ErrNotFound
	}

	return ToOrderResponse(o), nil
}

// UpdateStatus moves an order to a new fulfilment status (admin)
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := o.UpdateStatus(order.Status(req.Status)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	return ToOrderResponse(o), nil
}

func (s *OrderService) buildFilter(req ListOrdersRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	return filter
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventBus == nil {
		return
	}
	events := o.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventBus.Publish(ctx, events...)
	o.ClearDomainEvents()
}
