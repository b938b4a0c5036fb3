package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogapp "github.com/sheeto/backend/internal/application/catalog"
	orderapp "github.com/sheeto/backend/internal/application/order"
	"github.com/sheeto/backend/internal/domain/cart"
	"github.com/sheeto/backend/internal/domain/order"
	"github.com/sheeto/backend/internal/domain/shared"
)

// CheckoutService turns the session cart into an order.
//
// Stock is decremented product by product, each decrement written through
// before the next, and decrements are not rolled back if a later step
// fails. Two concurrent checkouts of the last unit can both succeed; the
// floor-at-zero decrement absorbs the oversell and the shortfall surfaces
// as a warning on the receipt instead of a failed order.
type CheckoutService struct {
	cartStore      cart.Store
	catalogService *catalogapp.ProductService
	orderRepo      order.Repository
	eventBus       shared.EventPublisher
	shippingCost   decimal.Decimal
	logger         *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	cartStore cart.Store,
	catalogService *catalogapp.ProductService,
	orderRepo order.Repository,
	eventBus shared.EventPublisher,
	shippingCost decimal.Decimal,
	logger *zap.Logger,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		cartStore:      cartStore,
		catalogService: catalogService,
		orderRepo:      orderRepo,
		eventBus:       eventBus,
		shippingCost:   shippingCost,
		logger:         logger,
	}
}

// PlaceOrder validates the checkout form, decrements stock for every cart
// line, persists the order and clears the cart. Validation happens before
// any stock is touched; once decrementing starts the order will be placed.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, sessionID string, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	c, err := s.cartStore.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}

	items := make([]order.Item, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, order.Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
		})
	}

	info := order.CustomerInfo{
		FullName: req.CustomerInfo.FullName,
		Phone:    req.CustomerInfo.Phone,
		Province: req.CustomerInfo.Province,
		Address:  req.CustomerInfo.Address,
	}

	// Constructing the order runs all checkout validation without side
	// effects; stock is only touched once this succeeds.
	o, err := order.New(userID, items, s.shippingCost, order.PaymentMethod(req.PaymentMethod), info)
	if err != nil {
		return nil, err
	}

	warnings := s.decrementStock(ctx, o)

	if err := s.orderRepo.Save(ctx, o); err != nil {
		// Stock already moved and will not be restored here; the failed
		// order must be reconciled from the logged stock changes.
		s.logger.Error("order save failed after stock decrement",
			zap.String("order_number", o.OrderNumber),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.cartStore.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("session_id", sessionID),
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
	}

	s.publishEvents(ctx, o)

	s.logger.Info("order placed",
		zap.String("order_number", o.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.String("total_price", o.TotalPrice.String()),
		zap.Int("warnings", len(warnings)),
	)

	return &PlaceOrderResponse{
		Order:    orderapp.ToOrderResponse(o),
		Warnings: warnings,
	}, nil
}

// decrementStock writes through one decrement per order line via the
// catalog service. A vanished product or a failed write is logged and
// reported as a warning; it never aborts the checkout.
func (s *CheckoutService) decrementStock(ctx context.Context, o *order.Order) []string {
	var warnings []string

	for _, line := range o.Items {
		_, absorbed, err := s.catalogService.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				warnings = append(warnings, fmt.Sprintf("%s is no longer in the catalog; stock not adjusted", line.Name))
			} else {
				warnings = append(warnings, fmt.Sprintf("stock for %s could not be adjusted", line.Name))
			}
			s.logger.Warn("checkout stock decrement failed",
				zap.String("order_number", o.OrderNumber),
				zap.String("product_id", line.ProductID.String()),
				zap.Int("quantity", line.Quantity),
				zap.Error(err),
			)
			continue
		}

		if absorbed < line.Quantity {
			warnings = append(warnings, fmt.Sprintf("only %d of %d units of %s were in stock", absorbed, line.Quantity, line.Name))
			s.logger.Warn("checkout oversell absorbed",
				zap.String("order_number", o.OrderNumber),
				zap.String("product_id", line.ProductID.String()),
				zap.Int("requested", line.Quantity),
				zap.Int("absorbed", absorbed),
			)
		}
	}

	return warnings
}

func (s *CheckoutService) publishEvents(ctx context.Context, o *order.Order) {
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
