package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	productID := uuid.New()

	order, err := NewOrder(productID, 3, 125.50)
	require.NoError(t, err)
	assert.Equal(t, productID, order.ProductID)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, 3*125.50, order.TotalAmount)
	assert.Empty(t, order.PaymentTransactionID)

	_, err = NewOrder(productID, 0, 125.50)
	require.Error(t, err)

	_, err = NewOrder(productID, 3, 0)
	require.Error(t, err)
}

// The total amount is fixed at creation; it does not follow later price changes.
func TestOrder_TotalAmountIsSnapshot(t *testing.T) {
	p, err := NewProduct("Laptop", "Gaming Laptop", 100, 10)
	require.NoError(t, err)

	order, err := NewOrder(p.ID, 2, p.Price)
	require.NoError(t, err)
	require.NoError(t, p.UpdatePrice(999))

	assert.Equal(t, 200.0, order.TotalAmount)
	assert.Equal(t, 100.0, order.UnitPrice)
}

func TestOrder_MarkAsPaid(t *testing.T) {
	order, err := NewOrder(uuid.New(), 1, 50)
	require.NoError(t, err)

	require.NoError(t, order.MarkAsPaid("TXN_abc"))
	assert.Equal(t, OrderStatusPaid, order.Status)
	assert.Equal(t, "TXN_abc", order.PaymentTransactionID)

	// Paying twice fails and leaves the original transaction id in place.
	err = order.MarkAsPaid("TXN_other")
	require.Error(t, err)
	var invalidOp *InvalidOperationError
	assert.ErrorAs(t, err, &invalidOp)
	assert.Equal(t, "TXN_abc", order.PaymentTransactionID)
	assert.Equal(t, OrderStatusPaid, order.Status)

	require.Error(t, order.MarkAsPaid(""))
}

func TestOrder_Cancel(t *testing.T) {
	order, err := NewOrder(uuid.New(), 1, 50)
	require.NoError(t, err)

	require.NoError(t, order.Cancel())
	assert.Equal(t, OrderStatusCancelled, order.Status)

	paid, err := NewOrder(uuid.New(), 1, 50)
	require.NoError(t, err)
	require.NoError(t, paid.MarkAsPaid("TXN_abc"))

	err = paid.Cancel()
	require.Error(t, err)
	assert.Equal(t, OrderStatusPaid, paid.Status)
}

func TestOrderStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", OrderStatusPending.String())
	assert.Equal(t, "Paid", OrderStatusPaid.String())
	assert.Equal(t, "Cancelled", OrderStatusCancelled.String())
}
