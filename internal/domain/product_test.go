package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name    string
		product string
		price   float64
		stock   int
		wantErr string
	}{
		{name: "valid", product: "Laptop", price: 1500, stock: 10},
		{name: "empty name", product: "", price: 1500, stock: 10, wantErr: "Product name cannot be empty."},
		{name: "zero price", product: "Laptop", price: 0, stock: 10, wantErr: "Price must be greater than zero."},
		{name: "negative price", product: "Laptop", price: -5, stock: 10, wantErr: "Price must be greater than zero."},
		{name: "negative stock", product: "Laptop", price: 1500, stock: -1, wantErr: "Stock cannot be negative."},
		{name: "zero stock is fine", product: "Laptop", price: 1500, stock: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(tt.product, "Gaming Laptop", tt.price, tt.stock)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.product, p.Name)
			assert.Equal(t, tt.stock, p.Stock)
			assert.NotZero(t, p.ID)
		})
	}
}

func TestProduct_DecreaseStock(t *testing.T) {
	p, err := NewProduct("Laptop", "Gaming Laptop", 1500, 10)
	require.NoError(t, err)

	require.NoError(t, p.DecreaseStock(3))
	assert.Equal(t, 7, p.Stock)

	// More than available must be rejected without touching the stock.
	err = p.DecreaseStock(8)
	require.Error(t, err)
	var invalidOp *InvalidOperationError
	assert.ErrorAs(t, err, &invalidOp)
	assert.Equal(t, 7, p.Stock)

	err = p.DecreaseStock(0)
	require.Error(t, err)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, 7, p.Stock)

	// Draining the stock exactly is allowed; stock never goes negative.
	require.NoError(t, p.DecreaseStock(7))
	assert.Equal(t, 0, p.Stock)
	require.Error(t, p.DecreaseStock(1))
	assert.Equal(t, 0, p.Stock)
}

func TestProduct_UpdatePrice(t *testing.T) {
	p, err := NewProduct("Laptop", "Gaming Laptop", 1500, 10)
	require.NoError(t, err)

	before := p.UpdatedAt
	require.NoError(t, p.UpdatePrice(1750))
	assert.Equal(t, 1750.0, p.Price)
	assert.False(t, p.UpdatedAt.Before(before))

	require.Error(t, p.UpdatePrice(0))
	require.Error(t, p.UpdatePrice(-1))
	assert.Equal(t, 1750.0, p.Price)
}
