package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/sheeto/backend/internal/domain/catalog"
	"github.com/sheeto/backend/internal/domain/order"
	"github.com/sheeto/backend/internal/domain/shared"
)

// DefaultLowStockThreshold triggers a replenishment warning when a stock
// change leaves a product at or below this many units.
const DefaultLowStockThreshold = 5

// StockAuditHandler logs every stock movement and escalates to a warning
// once a product falls to the low-stock threshold.
type StockAuditHandler struct {
	logger    *zap.Logger
	threshold int
}

// NewStockAuditHandler creates a stock audit handler. A non-positive
// threshold falls back to DefaultLowStockThreshold.
func NewStockAuditHandler(logger *zap.Logger, threshold int) *StockAuditHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &StockAuditHandler{logger: logger, threshold: threshold}
}

// EventTypes returns the event types this handler subscribes to
func (h *StockAuditHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductStockChanged}
}

// Handle records the stock movement
func (h *StockAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*catalog.ProductStockChangedEvent)
	if !ok {
		return nil
	}

	fields := []zap.Field{
		zap.String("product_id", changed.ProductID.String()),
		zap.String("product_name", changed.Name),
		zap.Int("old_stock", changed.OldStock),
		zap.Int("new_stock", changed.NewStock),
	}

	if changed.NewStock <= h.threshold {
		h.logger.Warn("product stock low", fields...)
		return nil
	}
	h.logger.Info("product stock changed", fields...)
	return nil
}

// OrderAuditHandler writes a fulfilment audit trail for new orders and
// status transitions.
type OrderAuditHandler struct {
	logger *zap.Logger
}

// NewOrderAuditHandler creates an order audit handler
func NewOrderAuditHandler(logger *zap.Logger) *OrderAuditHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderAuditHandler{logger: logger}
}

// EventTypes returns the event types this handler subscribes to
func (h *OrderAuditHandler) EventTypes() []string {
	return []string{order.EventTypeOrderCreated, order.EventTypeOrderStatusChanged}
}

// Handle records the order lifecycle step
func (h *OrderAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderCreatedEvent:
		h.logger.Info("order placed",
			zap.String("order_number", e.OrderNumber),
			zap.String("user_id", e.UserID),
			zap.String("total_price", e.TotalPrice.String()),
			zap.String("payment_method", string(e.PaymentMethod)),
			zap.Int("item_count", e.ItemCount),
		)
	case *order.OrderStatusChangedEvent:
		h.logger.Info("order status changed",
			zap.String("order_number", e.OrderNumber),
			zap.String("old_status", string(e.OldStatus)),
			zap.String("new_status", string(e.NewStatus)),
		)
	}
	return nil
}

var (
	_ shared.EventHandler = (*StockAuditHandler)(nil)
	_ shared.EventHandler = (*OrderAuditHandler)(nil)
)
