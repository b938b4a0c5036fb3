package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sheeto/backend/internal/domain/catalog"
	"github.com/sheeto/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, category, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newDomainProduct(t *testing.T, name string, price int64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", "Arms", decimal.NewFromInt(price), stock)
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("lists products with totals", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		products := []catalog.Product{*newDomainProduct(t, "Monitor Arm", 45000, 10)}
		repo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return(products, nil)
		repo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

		page, err := service.List(ctx, ListProductsRequest{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Monitor Arm", page.Items[0].Name)
		assert.True(t, page.Items[0].InStock)
		repo.AssertExpectations(t)
	})

	t.Run("category All does not narrow the query", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			_, narrowed := f.Filters["category"]
			return !narrowed
		})).Return([]catalog.Product{}, nil)
		repo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

		_, err := service.List(ctx, ListProductsRequest{Category: AllCategoriesLabel})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("a concrete category narrows the query", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["category"] == "Arms"
		})).Return([]catalog.Product{}, nil)
		repo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

		_, err := service.List(ctx, ListProductsRequest{Category: "Arms"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestProductService_ListCategories(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo, nil)

	repo.On("ListCategories", mock.Anything).Return([]string{"Arms", "Desk Mats"}, nil)

	categories, err := service.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "Arms", "Desk Mats"}, categories)
}

func TestProductService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		product := newDomainProduct(t, "Monitor Arm", 45000, 10)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		resp, err := service.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, resp.ID)
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.GetByID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and saves a product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			Name:     "Monitor Arm",
			Category: "Arms",
			Price:    decimal.NewFromInt(45000),
			Stock:    10,
			Image:    "https://cdn.example.com/arm.jpg",
			Gallery:  []string{"https://cdn.example.com/arm-side.jpg"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Monitor Arm", resp.Name)
		assert.Equal(t, 10, resp.Stock)
		assert.Equal(t, []string{"https://cdn.example.com/arm-side.jpg"}, resp.Gallery)
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:     "",
			Category: "Arms",
			Price:    decimal.NewFromInt(45000),
		})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies partial updates", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		product := newDomainProduct(t, "Monitor Arm", 45000, 10)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		newPrice := decimal.NewFromInt(48000)
		newStock := 4
		resp, err := service.Update(ctx, product.ID, UpdateProductRequest{
			Price: &newPrice,
			Stock: &newStock,
		})
		require.NoError(t, err)
		assert.Equal(t, "Monitor Arm", resp.Name, "unset fields keep their values")
		assert.True(t, resp.Price.Equal(newPrice))
		assert.Equal(t, 4, resp.Stock)
		repo.AssertExpectations(t)
	})
}

func TestProductService_DecrementStock(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the decrement through", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		product := newDomainProduct(t, "Monitor Arm", 45000, 10)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		updated, absorbed, err := service.DecrementStock(ctx, product.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 7, updated.Stock)
		assert.Equal(t, 3, absorbed)
		repo.AssertExpectations(t)
	})

	t.Run("does not save when the decrement is rejected", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		product := newDomainProduct(t, "Monitor Arm", 45000, 10)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, _, err := service.DecrementStock(ctx, product.ID, 0)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}
