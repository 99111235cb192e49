package repository

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/query"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by GetByID when no row matches the id.
	ErrNotFound = errors.New("entity not found")

	// ErrNoTransaction is returned by Commit when Begin was never called.
	ErrNoTransaction = errors.New("transaction not started")
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories run against whichever the unit of work currently holds.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository is the generic CRUD contract satisfied by every entity
// repository. Add, Update and Delete only stage work; nothing reaches the
// store until the owning unit of work saves.
type Repository[T any] interface {
	// GetAll returns a read-only snapshot of every entity.
	GetAll(ctx context.Context) ([]*T, error)

	// GetByID returns the entity or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)

	// Add stages the entity for insertion at the next save.
	Add(ctx context.Context, entity *T) error

	// Update stages the entity's current field values for the next save.
	// The values are read when the save runs, not when Update is called.
	Update(ctx context.Context, entity *T) error

	// Delete stages removal of the entity. A missing id is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository extends the generic contract with the row lock the order
// workflow needs and a searchable, sortable, paginated view.
type ProductRepository interface {
	Repository[domain.Product]

	// GetByIDForUpdate locks the product row for the duration of the
	// surrounding transaction (SELECT ... FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	Page(ctx context.Context, params query.Params) (*query.Page[*domain.Product], error)
}

// OrderRepository persists orders.
type OrderRepository interface {
	Repository[domain.Order]
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Repository[domain.Category]
}

// ArticleRepository persists articles.
type ArticleRepository interface {
	Repository[domain.Article]

	Page(ctx context.Context, params query.Params) (*query.Page[*domain.Article], error)
}
