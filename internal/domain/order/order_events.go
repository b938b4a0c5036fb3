package order

import (
	"github.com/shopspring/decimal"
	"github.com/sheeto/backend/internal/domain/shared"
)

const AggregateTypeOrder = "Order"

const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderCreatedEvent is emitted when a checkout completes
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string          `json:"order_number"`
	UserID        string          `json:"user_id"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
}

// NewOrderCreatedEvent creates a new order created event
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID.String(),
		TotalPrice:      o.TotalPrice,
		PaymentMethod:   o.PaymentMethod,
		ItemCount:       len(o.Items),
	}
}

// OrderStatusChangedEvent is emitted when an admin moves an order between statuses
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	OldStatus   Status `json:"old_status"`
	NewStatus   Status `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new status changed event
func NewOrderStatusChangedEvent(o *Order, oldStatus, newStatus Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
