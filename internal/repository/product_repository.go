package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/query"

	"github.com/google/uuid"
)

const productColumns = "id, name, description, price, stock, created_at, updated_at"

// Sort fields exposed to callers, mapped to columns to prevent SQL injection.
// Unknown fields produce no ORDER BY clause at all.
var productSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
	"created_at": "created_at",
}

type productRepository struct {
	uow *unitOfWork
}

func (r *productRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	q := fmt.Sprintf(`SELECT %s FROM products ORDER BY created_at DESC`, productColumns)

	rows, err := r.uow.querier().QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	q := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	return r.getOne(ctx, q, id)
}

func (r *productRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	// The row lock serializes concurrent stock decrements on the same
	// product for the lifetime of the surrounding transaction.
	q := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1 FOR UPDATE`, productColumns)
	return r.getOne(ctx, q, id)
}

func (r *productRepository) getOne(ctx context.Context, q string, id uuid.UUID) (*domain.Product, error) {
	product := &domain.Product{}
	err := r.uow.querier().QueryRowContext(ctx, q, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

func (r *productRepository) Add(_ context.Context, product *domain.Product) error {
	r.uow.stage(func(ctx context.Context, q Querier) error {
		insert := `
			INSERT INTO products (id, name, description, price, stock, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := q.ExecContext(ctx, insert,
			product.ID,
			product.Name,
			product.Description,
			product.Price,
			product.Stock,
			product.CreatedAt,
			product.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	return nil
}

func (r *productRepository) Update(_ context.Context, product *domain.Product) error {
	r.uow.stage(func(ctx context.Context, q Querier) error {
		update := `
			UPDATE products
			SET name = $2, description = $3, price = $4, stock = $5, updated_at = $6
			WHERE id = $1
		`
		_, err := q.ExecContext(ctx, update,
			product.ID,
			product.Name,
			product.Description,
			product.Price,
			product.Stock,
			product.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return nil
	})
	return nil
}

func (r *productRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.uow.stage(func(ctx context.Context, q Querier) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	return nil
}

// Page returns one page of products with optional case-insensitive substring
// search over name and description, sorting and pagination metadata.
func (r *productRepository) Page(ctx context.Context, params query.Params) (*query.Page[*domain.Product], error) {
	params = params.Normalize()

	whereClause := ""
	args := []any{}
	argIndex := 1

	if strings.TrimSpace(params.SearchTerm) != "" {
		whereClause = fmt.Sprintf("WHERE name ILIKE $%d OR description ILIKE $%d", argIndex, argIndex)
		args = append(args, "%"+params.SearchTerm+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.uow.querier().QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	orderClause := ""
	if column, ok := productSortColumns[params.SortBy]; ok {
		orderClause = fmt.Sprintf("ORDER BY %s %s", column, strings.ToUpper(string(params.SortOrder)))
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, orderClause, argIndex, argIndex+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.uow.querier().QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to page products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return query.NewPage(products, total, params.PageNumber, params.PageSize), nil
}

func scanProduct(rows *sql.Rows) (*domain.Product, error) {
	product := &domain.Product{}
	err := rows.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return product, nil
}
