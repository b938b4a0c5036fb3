package catalog

import (
	"encoding/json"
	"time"

	"github.com/sheeto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a purchasable item in the storefront catalog.
// It is the aggregate root for catalog operations and the sole owner of
// the stock quantity.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Image       string          `gorm:"type:text"`
	Gallery     string          `gorm:"type:text"` // JSON array of additional image URLs
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Rating      float64         `gorm:"not null;default:0"`
	RatingCount int             `gorm:"not null;default:0"`
	Stock       int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(name, description, category string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Category:          category,
		Price:             price,
		Gallery:           "[]",
		Stock:             stock,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, category string, price decimal.Decimal) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetImages sets the primary image and the gallery (a JSON array of URLs)
func (p *Product) SetImages(image, gallery string) {
	if gallery == "" {
		gallery = "[]"
	}
	p.Image = image
	p.Gallery = gallery
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetGalleryURLs replaces the gallery with the given image URLs
func (p *Product) SetGalleryURLs(urls []string) error {
	if urls == nil {
		urls = []string{}
	}
	encoded, err := json.Marshal(urls)
	if err != nil {
		return shared.NewDomainError("INVALID_GALLERY", "Gallery could not be encoded")
	}

	p.Gallery = string(encoded)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// GalleryURLs returns the gallery image URLs. An unparseable gallery column
// reads as empty rather than failing the caller.
func (p *Product) GalleryURLs() []string {
	if p.Gallery == "" {
		return []string{}
	}
	var urls []string
	if err := json.Unmarshal([]byte(p.Gallery), &urls); err != nil || urls == nil {
		return []string{}
	}
	return urls
}

// SetRating sets the display rating and vote count
func (p *Product) SetRating(rating float64, count int) error {
	if rating < 0 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}
	if count < 0 {
		return shared.NewDomainError("INVALID_RATING", "Rating count cannot be negative")
	}

	p.Rating = rating
	p.RatingCount = count
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetStock replaces the on-hand quantity (admin restock/correction)
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	oldStock := p.Stock
	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock, stock))

	return nil
}

// DecrementStock reduces the on-hand quantity by the purchased amount.
// The result is floored at zero: concurrent checkouts can both pass the
// sellability check, so the floor absorbs the oversell instead of letting
// the quantity go negative. Returns the quantity actually absorbed.
func (p *Product) DecrementStock(quantity int) (int, error) {
	if quantity <= 0 {
		return 0, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	oldStock := p.Stock
	newStock := oldStock - quantity
	if newStock < 0 {
		newStock = 0
	}

	p.Stock = newStock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock, newStock))

	return oldStock - newStock, nil
}

// IsSellable returns true if the product can be added to a cart.
// A product with zero stock stays visible in the catalog but cannot be sold.
func (p *Product) IsSellable() bool {
	return p.Stock > 0
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateCategory validates the category label
func validateCategory(category string) error {
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if len(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}
	return nil
}
