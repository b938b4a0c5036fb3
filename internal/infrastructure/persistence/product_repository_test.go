package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheeto/backend/internal/domain/catalog"
	"github.com/sheeto/backend/internal/domain/shared"
)

func seedProduct(t *testing.T, repo *GormProductRepository, name, category string, price int64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", category, decimal.NewFromInt(price), stock)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), product))
	return product
}

func TestGormProductRepository_FindByID(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	t.Run("finds existing product", func(t *testing.T) {
		created := seedProduct(t, repo, "Monitor Arm", "Arms", 45000, 10)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Monitor Arm", found.Name)
		assert.Equal(t, 10, found.Stock)
		assert.True(t, found.Price.Equal(decimal.NewFromInt(45000)))
	})

	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	seedProduct(t, repo, "Monitor Arm", "Arms", 45000, 10)
	seedProduct(t, repo, "Desk Mat", "Desk Mats", 25000, 5)
	seedProduct(t, repo, "Cable Tray", "Cable Management", 15000, 0)

	t.Run("returns all products", func(t *testing.T) {
		products, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})

	t.Run("searches by name case insensitively", func(t *testing.T) {
		products, err := repo.FindAll(ctx, shared.Filter{Search: "desk"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Desk Mat", products[0].Name)
	})

	t.Run("filters by category", func(t *testing.T) {
		filter := shared.Filter{Filters: map[string]interface{}{"category": "Arms"}}
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Monitor Arm", products[0].Name)
	})

	t.Run("filters in-stock products", func(t *testing.T) {
		filter := shared.Filter{Filters: map[string]interface{}{"in_stock": true}}
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("paginates results", func(t *testing.T) {
		products, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})
}

func TestGormProductRepository_FindByCategory(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	seedProduct(t, repo, "Monitor Arm", "Arms", 45000, 10)
	seedProduct(t, repo, "Dual Monitor Arm", "Arms", 80000, 2)
	seedProduct(t, repo, "Desk Mat", "Desk Mats", 25000, 5)

	products, err := repo.FindByCategory(ctx, "Arms", shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestGormProductRepository_FindByIDs(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	first := seedProduct(t, repo, "Monitor Arm", "Arms", 45000, 10)
	seedProduct(t, repo, "Desk Mat", "Desk Mats", 25000, 5)
	third := seedProduct(t, repo, "Cable Tray", "Cable Management", 15000, 3)

	t.Run("returns matching products", func(t *testing.T) {
		products, err := repo.FindByIDs(ctx, []uuid.UUID{first.ID, third.ID})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("empty id list returns empty slice", func(t *testing.T) {
		products, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestGormProductRepository_ListCategories(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	seedProduct(t, repo, "Monitor Arm", "Arms", 45000, 10)
	seedProduct(t, repo, "Dual Monitor Arm", "Arms", 80000, 2)
	seedProduct(t, repo, "Desk Mat", "Desk Mats", 25000, 5)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Arms", "Desk Mats"}, categories)
}

func TestGormProductRepository_SaveUpdatesExisting(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	product := seedProduct(t, repo, "Monitor Arm", "Arms", 45000, 10)

	_, err := product.DecrementStock(4)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, found.Stock)

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormProductRepository_Delete(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	product := seedProduct(t, repo, "Monitor Arm", "Arms", 45000, 10)

	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, product.ID), shared.ErrNotFound)
}
