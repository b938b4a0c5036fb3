package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/sheeto/backend/internal/domain/catalog"
	"github.com/sheeto/backend/internal/domain/shared"
)

// AllCategoriesLabel is the pseudo-category shown first in the storefront
// category strip. It is never stored on a product.
const AllCategoriesLabel = "All"

// ProductService handles catalog browsing and admin product management
type ProductService struct {
	productRepo catalog.ProductRepository
	eventBus    shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, eventBus shared.EventPublisher) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		eventBus:    eventBus,
	}
}

// List returns a page of products. The pseudo-category "All" (or an empty
// category) means no category narrowing.
func (s *ProductService) List(ctx context.Context, req ListProductsRequest) (*shared.Paginated[*ProductResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search
	if req.Category != "" && req.Category != AllCategoriesLabel {
		filter.Filters["category"] = req.Category
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetByID returns a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// ListCategories returns the category strip: "All" followed by the distinct
// category labels present in the catalog.
func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{AllCategoriesLabel}, categories...), nil
}

// Create creates a new product (admin)
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Description, req.Category, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}

	if req.Image != "" {
		product.SetImages(req.Image, product.Gallery)
	}
	if req.Gallery != nil {
		if err := product.SetGalleryURLs(req.Gallery); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	return ToProductResponse(product), nil
}

// Update updates an existing product (admin). Stock changes go through
// SetStock so a stock-changed event is recorded.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	category := product.Category
	if req.Category != nil {
		category = *req.Category
	}
	price := product.Price
	if req.Price != nil {
		price = *req.Price
	}

	if err := product.Update(name, description, category, price); err != nil {
		return nil, err
	}

	if req.Image != nil {
		product.SetImages(*req.Image, product.Gallery)
	}
	if req.Gallery != nil {
		if err := product.SetGalleryURLs(req.Gallery); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	return ToProductResponse(product), nil
}

// Delete removes a product from the catalog (admin). Existing order items
// keep their snapshots, so history is unaffected.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	product.AddDomainEvent(catalog.NewProductDeletedEvent(product))
	s.publishEvents(ctx, product)

	return nil
}

// DecrementStock durably reduces a product's stock and returns the updated
// product along with the quantity actually absorbed. The write happens
// before the caller sees the new quantity, so a crash after this call
// cannot resurrect sold stock.
func (s *ProductService) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (*catalog.Product, int, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	absorbed, err := product.DecrementStock(quantity)
	if err != nil {
		return nil, 0, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, 0, err
	}

	s.publishEvents(ctx, product)

	return product, absorbed, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventBus == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventBus.Publish(ctx, events...)
	product.ClearDomainEvents()
}
