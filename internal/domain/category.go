package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category represents an article category.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// NewCategory creates a category with a non-empty name and description.
func NewCategory(name, description string) (*Category, error) {
	if name == "" {
		return nil, validationError("Category name cannot be empty.")
	}
	if description == "" {
		return nil, validationError("Category description cannot be empty.")
	}

	now := time.Now().UTC()
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateName renames the category.
func (c *Category) UpdateName(newName string) error {
	if newName == "" {
		return validationError("New category name cannot be empty.")
	}
	c.Name = newName
	c.markAsModified()
	return nil
}

// UpdateDescription replaces the category description.
func (c *Category) UpdateDescription(newDescription string) error {
	if newDescription == "" {
		return validationError("New category description cannot be empty.")
	}
	c.Description = newDescription
	c.markAsModified()
	return nil
}

func (c *Category) markAsModified() {
	c.UpdatedAt = time.Now().UTC()
}
