package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheeto/backend/internal/domain/cart"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// UpdateItemRequest represents a request to change an item's quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// ItemResponse represents a cart line in API responses
type ItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	Items      []ItemResponse  `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// ToCartResponse converts a domain cart to its response form
func ToCartResponse(c *cart.Cart) *CartResponse {
	items := make([]ItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, ItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			Stock:     item.Stock,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}
	return &CartResponse{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}
