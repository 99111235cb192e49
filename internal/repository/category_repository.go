package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

const categoryColumns = "id, name, description, created_at, updated_at"

type categoryRepository struct {
	uow *unitOfWork
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	q := fmt.Sprintf(`SELECT %s FROM categories ORDER BY name ASC`, categoryColumns)

	rows, err := r.uow.querier().QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category := &domain.Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	q := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1`, categoryColumns)

	category := &domain.Category{}
	err := r.uow.querier().QueryRowContext(ctx, q, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) Add(_ context.Context, category *domain.Category) error {
	r.uow.stage(func(ctx context.Context, q Querier) error {
		insert := `
			INSERT INTO categories (id, name, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err := q.ExecContext(ctx, insert,
			category.ID,
			category.Name,
			category.Description,
			category.CreatedAt,
			category.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return nil
	})
	return nil
}

func (r *categoryRepository) Update(_ context.Context, category *domain.Category) error {
	r.uow.stage(func(ctx context.Context, q Querier) error {
		update := `
			UPDATE categories
			SET name = $2, description = $3, updated_at = $4
			WHERE id = $1
		`
		_, err := q.ExecContext(ctx, update,
			category.ID,
			category.Name,
			category.Description,
			category.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		return nil
	})
	return nil
}

func (r *categoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.uow.stage(func(ctx context.Context, q Querier) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	return nil
}
