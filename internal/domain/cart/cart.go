package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sheeto/backend/internal/domain/catalog"
)

// Item is a product snapshot plus the requested quantity. The snapshot is
// taken at add time: later catalog edits (price, name, image) do not change
// an item already in the cart. Stock is snapshotted too and acts as the
// clamp ceiling for quantity updates.
type Item struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns price * quantity for this line
func (i *Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the pending purchase set for one browsing session. It is keyed by
// an anonymous session ID and lives independently of authentication. Items
// are ordered and unique per product.
type Cart struct {
	SessionID string    `json:"session_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an empty cart for the given session
func New(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		Items:     make([]Item, 0),
		UpdatedAt: time.Now(),
	}
}

// AddItem adds a product to the cart with the requested quantity.
// A product with no stock is ignored. If the product is already present the
// quantities are merged; in both cases the resulting quantity is silently
// capped at the product's available stock rather than rejected.
func (c *Cart) AddItem(product *catalog.Product, quantity int) {
	if product == nil || product.Stock <= 0 {
		return
	}
	if quantity < 1 {
		quantity = 1
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == product.ID {
			newQuantity := c.Items[idx].Quantity + quantity
			if newQuantity > product.Stock {
				newQuantity = product.Stock
			}
			c.Items[idx].Quantity = newQuantity
			c.Items[idx].Stock = product.Stock
			c.UpdatedAt = time.Now()
			return
		}
	}

	if quantity > product.Stock {
		quantity = product.Stock
	}
	c.Items = append(c.Items, Item{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Stock:     product.Stock,
		Quantity:  quantity,
	})
	c.UpdatedAt = time.Now()
}

// UpdateQuantity sets the quantity of an existing item, clamped to the
// snapshotted stock. A quantity of zero (or less) removes the item. Unknown
// product IDs are a no-op.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) {
	for idx := range c.Items {
		if c.Items[idx].ProductID != productID {
			continue
		}

		if quantity < 0 {
			quantity = 0
		}
		if quantity > c.Items[idx].Stock {
			quantity = c.Items[idx].Stock
		}

		if quantity <= 0 {
			c.RemoveItem(productID)
			return
		}

		c.Items[idx].Quantity = quantity
		c.UpdatedAt = time.Now()
		return
	}
}

// Sync refreshes every item's snapshot from the current catalog state.
// Items whose product was removed from the catalog (or lookup misses) are
// dropped; quantities are re-clamped against the fresh stock, removing
// items whose product is now out of stock.
func (c *Cart) Sync(products map[uuid.UUID]*catalog.Product) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		product, ok := products[item.ProductID]
		if !ok || product == nil || product.Stock <= 0 {
			continue
		}

		item.Name = product.Name
		item.Price = product.Price
		item.Image = product.Image
		item.Stock = product.Stock
		if item.Quantity > product.Stock {
			item.Quantity = product.Stock
		}
		kept = append(kept, item)
	}
	if len(kept) != len(c.Items) {
		c.UpdatedAt = time.Now()
	}
	c.Items = kept
}

// RemoveItem deletes the matching item; no-op if absent
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true if the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// GetItem returns the item for a product, or nil
func (c *Cart) GetItem(productID uuid.UUID) *Item {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			return &c.Items[idx]
		}
	}
	return nil
}

// TotalItems returns the sum of all quantities, recomputed on every call
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of all line subtotals, recomputed on every call
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
