package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/sheeto/backend/internal/application/catalog"
	"github.com/sheeto/backend/internal/domain/catalog"
	"github.com/sheeto/backend/internal/domain/shared"
	"github.com/sheeto/backend/internal/interfaces/http/dto"
)

func setupProductRouter(repo *MockProductRepository) *gin.Engine {
	service := catalogapp.NewProductService(repo, nil)
	h := NewProductHandler(service)

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api.Group("/catalog"))
	h.RegisterAdminRoutes(api.Group("/admin/catalog"))
	return engine
}

func TestProductHandler_List(t *testing.T) {
	t.Run("returns page with pagination meta", func(t *testing.T) {
		repo := new(MockProductRepository)
		products := []catalog.Product{
			*testProduct(t, "Desk Mat XL", 25000, 10),
			*testProduct(t, "Cable Tray", 15000, 5),
		}
		repo.On("FindAll", mock.Anything, mock.Anything).Return(products, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

		w := performJSON(setupProductRouter(repo), http.MethodGet, "/api/v1/catalog/products?page=1&page_size=20", nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(2), env.Meta.Total)
		assert.Equal(t, 1, env.Meta.Page)
		assert.Equal(t, 1, env.Meta.TotalPages)
	})

	t.Run("narrows by category", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["category"] == "Desks"
		})).Return([]catalog.Product{*testProduct(t, "Desk Mat XL", 25000, 10)}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

		w := performJSON(setupProductRouter(repo), http.MethodGet, "/api/v1/catalog/products?category=Desks", nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})
}

func TestProductHandler_Get(t *testing.T) {
	t.Run("returns product by id", func(t *testing.T) {
		repo := new(MockProductRepository)
		product := testProduct(t, "Monitor Arm", 45000, 8)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		w := performJSON(setupProductRouter(repo), http.MethodGet, "/api/v1/catalog/products/"+product.ID.String(), nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		repo := new(MockProductRepository)

		w := performJSON(setupProductRouter(repo), http.MethodGet, "/api/v1/catalog/products/not-a-uuid", nil, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps unknown product to 404", func(t *testing.T) {
		repo := new(MockProductRepository)
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		w := performJSON(setupProductRouter(repo), http.MethodGet, "/api/v1/catalog/products/"+id.String(), nil, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)
	})
}

func TestProductHandler_Categories(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("ListCategories", mock.Anything).Return([]string{"Desks", "Lighting"}, nil)

	w := performJSON(setupProductRouter(repo), http.MethodGet, "/api/v1/catalog/categories", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "All")
	assert.Contains(t, w.Body.String(), "Lighting")
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("creates product", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		body := map[string]any{
			"name":     "Headphone Hook",
			"category": "Organizers",
			"price":    "9000",
			"stock":    25,
		}
		w := performJSON(setupProductRouter(repo), http.MethodPost, "/api/v1/admin/catalog/products", body, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		repo.AssertCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		repo := new(MockProductRepository)

		body := map[string]any{
			"category": "Organizers",
			"price":    "9000",
		}
		w := performJSON(setupProductRouter(repo), http.MethodPost, "/api/v1/admin/catalog/products", body, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductHandler_Delete(t *testing.T) {
	repo := new(MockProductRepository)
	product := testProduct(t, "Desk Shelf", 30000, 4)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Delete", mock.Anything, product.ID).Return(nil)

	w := performJSON(setupProductRouter(repo), http.MethodDelete, "/api/v1/admin/catalog/products/"+product.ID.String(), nil, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
