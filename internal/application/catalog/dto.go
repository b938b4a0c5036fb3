package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheeto/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	Image       string          `json:"image" binding:"max=2000"`
	Gallery     []string        `json:"gallery"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Category    *string          `json:"category" binding:"omitempty,min=1,max=100"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
	Image       *string          `json:"image" binding:"omitempty,max=2000"`
	Gallery     []string         `json:"gallery"`
}

// ListProductsRequest carries the browse filters for the catalog
type ListProductsRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Category string `form:"category"`
	Search   string `form:"search"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	InStock     bool            `json:"in_stock"`
	Image       string          `json:"image"`
	Gallery     []string        `json:"gallery"`
	Rating      float64         `json:"rating"`
	RatingCount int             `json:"rating_count"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		InStock:     p.IsSellable(),
		Image:       p.Image,
		Gallery:     p.GalleryURLs(),
		Rating:      p.Rating,
		RatingCount: p.RatingCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
