package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sheeto/backend/internal/domain/cart"
	"github.com/sheeto/backend/internal/domain/catalog"
	"github.com/sheeto/backend/internal/domain/shared"
)

// CartService handles the session cart. Every mutation revalidates against
// the live catalog before persisting, so a cart can never hold more of a
// product than the store currently has.
type CartService struct {
	store       cart.Store
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(store cart.Store, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
	}
}

// Get returns the session cart, synced against the live catalog
func (s *CartService) Get(ctx context.Context, sessionID string) (*CartResponse, error) {
	c, err := s.loadSynced(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// AddItem adds a product to the cart. An unknown product is an error; an
// out-of-stock product leaves the cart unchanged.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	c, err := s.loadSynced(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.AddItem(product, req.Quantity)

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// UpdateItem sets an item's quantity, clamped to available stock.
// Zero removes the item.
func (s *CartService) UpdateItem(ctx context.Context, sessionID string, productID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	c, err := s.loadSynced(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(productID, req.Quantity)

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// RemoveItem removes a product from the cart
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.loadSynced(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(productID)

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// Clear empties the session cart
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// loadSynced loads the cart and refreshes its snapshots from the catalog
func (s *CartService) loadSynced(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return c, nil
	}

	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	lookup := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		lookup[products[i].ID] = &products[i]
	}
	c.Sync(lookup)

	return c, nil
}
