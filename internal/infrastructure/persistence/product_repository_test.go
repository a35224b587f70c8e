package persistence

import (
	"context"
	"testing"

	"github.com/chickenviken/backend/internal/domain/catalog"
	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPersistedProduct(t *testing.T, name string, orderCount int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "desc", decimal.NewFromInt(160), "starters")
	require.NoError(t, err)
	product.OrderCount = orderCount
	return product
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := newTestAdminDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newPersistedProduct(t, "Wings", 0)
	require.NoError(t, repo.Save(ctx, product))

	got, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wings", got.Name)
	assert.True(t, got.UnitPrice.Equal(decimal.NewFromInt(160)))
	assert.True(t, got.InStock)
}

func TestGormProductRepository_FindAll_Search(t *testing.T) {
	db := newTestAdminDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newPersistedProduct(t, "Chicken Wings", 0)))
	require.NoError(t, repo.Save(ctx, newPersistedProduct(t, "Chicken Lollipop", 0)))
	require.NoError(t, repo.Save(ctx, newPersistedProduct(t, "Fries", 0)))

	filter := shared.DefaultFilter()
	filter.Search = "Chicken"

	products, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestGormProductRepository_FindPopular(t *testing.T) {
	db := newTestAdminDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newPersistedProduct(t, "Wings", 5)))
	require.NoError(t, repo.Save(ctx, newPersistedProduct(t, "Lollipop", 12)))
	require.NoError(t, repo.Save(ctx, newPersistedProduct(t, "Fries", 1)))

	products, err := repo.FindPopular(ctx, 2)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Lollipop", products[0].Name)
	assert.Equal(t, "Wings", products[1].Name)
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := newTestAdminDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newPersistedProduct(t, "Wings", 0)
	require.NoError(t, repo.Save(ctx, product))
	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}
