package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the catalog. All mutations go through
// methods that validate their input before touching state, so a Product can
// never be observed with a negative stock or a non-positive price.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// NewProduct creates a product, rejecting empty names, non-positive prices
// and negative stock.
func NewProduct(name, description string, price float64, stock int) (*Product, error) {
	if name == "" {
		return nil, validationError("Product name cannot be empty.")
	}
	if price <= 0 {
		return nil, validationError("Price must be greater than zero.")
	}
	if stock < 0 {
		return nil, validationError("Stock cannot be negative.")
	}

	now := time.Now().UTC()
	return &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdatePrice changes the price after validating the new value.
func (p *Product) UpdatePrice(newPrice float64) error {
	if newPrice <= 0 {
		return validationError("New price must be valid.")
	}

	p.Price = newPrice
	p.markAsModified()
	return nil
}

// DecreaseStock removes amount units from stock. Requesting more than is
// available is a business-rule violation; the stock is left untouched.
func (p *Product) DecreaseStock(amount int) error {
	if amount <= 0 {
		return validationError("Amount must be greater than zero.")
	}
	if amount > p.Stock {
		return invalidOperation("Insufficient stock.")
	}

	p.Stock -= amount
	p.markAsModified()
	return nil
}

func (p *Product) markAsModified() {
	p.UpdatedAt = time.Now().UTC()
}
