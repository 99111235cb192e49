package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

const orderColumns = "id, product_id, quantity, unit_price, total_amount, status, payment_transaction_id, created_at, updated_at"

type orderRepository struct {
	uow *unitOfWork
}

func (r *orderRepository) GetAll(ctx context.Context) ([]*domain.Order, error) {
	q := fmt.Sprintf(`SELECT %s FROM orders ORDER BY created_at DESC`, orderColumns)

	rows, err := r.uow.querier().QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	q := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order := &domain.Order{}
	err := r.uow.querier().QueryRowContext(ctx, q, id).Scan(
		&order.ID,
		&order.ProductID,
		&order.Quantity,
		&order.UnitPrice,
		&order.TotalAmount,
		&order.Status,
		&order.PaymentTransactionID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	return order, nil
}

func (r *orderRepository) Add(_ context.Context, order *domain.Order) error {
	r.uow.stage(func(ctx context.Context, q Querier) error {
		insert := `
			INSERT INTO orders (id, product_id, quantity, unit_price, total_amount, status, payment_transaction_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := q.ExecContext(ctx, insert,
			order.ID,
			order.ProductID,
			order.Quantity,
			order.UnitPrice,
			order.TotalAmount,
			order.Status,
			order.PaymentTransactionID,
			order.CreatedAt,
			order.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	return nil
}

func (r *orderRepository) Update(_ context.Context, order *domain.Order) error {
	r.uow.stage(func(ctx context.Context, q Querier) error {
		update := `
			UPDATE orders
			SET status = $2, payment_transaction_id = $3, updated_at = $4
			WHERE id = $1
		`
		_, err := q.ExecContext(ctx, update,
			order.ID,
			order.Status,
			order.PaymentTransactionID,
			order.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return nil
	})
	return nil
}

func (r *orderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.uow.stage(func(ctx context.Context, q Querier) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
	return nil
}

func scanOrder(rows *sql.Rows) (*domain.Order, error) {
	order := &domain.Order{}
	err := rows.Scan(
		&order.ID,
		&order.ProductID,
		&order.Quantity,
		&order.UnitPrice,
		&order.TotalAmount,
		&order.Status,
		&order.PaymentTransactionID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return order, nil
}
