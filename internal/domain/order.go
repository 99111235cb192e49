package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates the order lifecycle. Paid and Cancelled are terminal.
type OrderStatus int

const (
	OrderStatusPending OrderStatus = iota
	OrderStatusPaid
	OrderStatusCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusPaid:
		return "Paid"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Order represents a customer order. TotalAmount is computed once at creation
// from the quantity and the unit price snapshot and never changes afterwards,
// so later product price changes do not affect existing orders.
type Order struct {
	ID                   uuid.UUID   `json:"id" db:"id"`
	ProductID            uuid.UUID   `json:"product_id" db:"product_id"`
	Quantity             int         `json:"quantity" db:"quantity"`
	UnitPrice            float64     `json:"unit_price" db:"unit_price"`
	TotalAmount          float64     `json:"total_amount" db:"total_amount"`
	Status               OrderStatus `json:"status" db:"status"`
	PaymentTransactionID string      `json:"payment_transaction_id,omitempty" db:"payment_transaction_id"`
	CreatedAt            time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at" db:"updated_at"`
}

// NewOrder creates a pending order for the given product.
func NewOrder(productID uuid.UUID, quantity int, unitPrice float64) (*Order, error) {
	if quantity <= 0 {
		return nil, validationError("Quantity must be greater than zero.")
	}
	if unitPrice <= 0 {
		return nil, validationError("Unit price must be greater than zero.")
	}

	now := time.Now().UTC()
	return &Order{
		ID:          uuid.New(),
		ProductID:   productID,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: float64(quantity) * unitPrice,
		Status:      OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MarkAsPaid transitions a pending order to Paid and stamps the payment
// transaction id. Calling it on a non-pending order fails without side effects.
func (o *Order) MarkAsPaid(paymentTransactionID string) error {
	if paymentTransactionID == "" {
		return validationError("Payment transaction id cannot be empty.")
	}
	if o.Status != OrderStatusPending {
		return invalidOperation("Order is not in pending status")
	}

	o.PaymentTransactionID = paymentTransactionID
	o.Status = OrderStatusPaid
	o.markAsModified()
	return nil
}

// Cancel transitions the order to Cancelled. Paid orders cannot be cancelled.
func (o *Order) Cancel() error {
	if o.Status == OrderStatusPaid {
		return invalidOperation("Cannot cancel a paid order")
	}

	o.Status = OrderStatusCancelled
	o.markAsModified()
	return nil
}

func (o *Order) markAsModified() {
	o.UpdatedAt = time.Now().UTC()
}
