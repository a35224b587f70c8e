package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	product, err := NewProduct("Wings", "Spicy chicken wings", decimal.NewFromInt(160), "starters")
	require.NoError(t, err)
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product := createTestProduct(t)
		assert.Equal(t, "Wings", product.Name)
		assert.Equal(t, "starters", product.Category)
		assert.True(t, product.InStock)
		assert.Zero(t, product.StockQuantity)
		assert.Zero(t, product.OrderCount)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", "desc", decimal.NewFromInt(1), "c")
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Wings", "desc", decimal.NewFromInt(-1), "c")
		assert.Error(t, err)
	})
}

func TestProduct_SetStock(t *testing.T) {
	product := createTestProduct(t)

	require.NoError(t, product.SetStock(10))
	assert.Equal(t, 10, product.StockQuantity)

	assert.Error(t, product.SetStock(-1))
	assert.Equal(t, 10, product.StockQuantity)
}

func TestProduct_AdjustStock(t *testing.T) {
	product := createTestProduct(t)
	require.NoError(t, product.SetStock(10))

	require.NoError(t, product.AdjustStock(-4))
	assert.Equal(t, 6, product.StockQuantity)

	assert.Error(t, product.AdjustStock(-7))
	assert.Equal(t, 6, product.StockQuantity)
}

func TestProduct_InStockIndependentOfStock(t *testing.T) {
	product := createTestProduct(t)
	require.NoError(t, product.SetStock(0))

	// the flag and the counter are allowed to disagree
	product.SetInStock(true)
	assert.True(t, product.InStock)
	assert.Zero(t, product.StockQuantity)
}

func TestProduct_Update(t *testing.T) {
	product := createTestProduct(t)

	require.NoError(t, product.Update("Tandoori Wings", "Smoky", decimal.NewFromInt(180), "grill"))
	assert.Equal(t, "Tandoori Wings", product.Name)
	assert.True(t, product.UnitPrice.Equal(decimal.NewFromInt(180)))

	assert.Error(t, product.Update("", "x", decimal.NewFromInt(1), "c"))
}
