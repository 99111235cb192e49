package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UnitOfWork scopes one logical transaction over the shared connection pool.
// Repository accessors are memoized, so every repository obtained from the
// same unit of work observes the same pending changes and the same
// transaction. A unit of work must not be shared across concurrent workflows.
type UnitOfWork interface {
	Products() ProductRepository
	Orders() OrderRepository
	Categories() CategoryRepository
	Articles() ArticleRepository

	// Begin opens a transaction. Callers must pair it with exactly one
	// Commit or Rollback; calling Begin twice without a terminal call in
	// between is not guarded against.
	Begin(ctx context.Context) error

	// SaveChanges flushes staged repository operations without ending the
	// transaction, so a multi-step workflow can make intermediate writes
	// visible to its own subsequent reads.
	SaveChanges(ctx context.Context) error

	// Commit saves any remaining staged operations and commits. If either
	// step fails the transaction is rolled back and the failure returned.
	// The transaction handle is released either way.
	Commit(ctx context.Context) error

	// Rollback discards staged changes and aborts the transaction. It is a
	// no-op when no transaction is active.
	Rollback(ctx context.Context) error

	// Close releases any transaction still held. The shared *sql.DB pool
	// stays open. Safe to defer right after creation.
	Close() error
}

// Factory creates one unit of work per request or workflow.
type Factory interface {
	New() UnitOfWork
}

// SQLFactory builds units of work backed by a *sql.DB pool.
type SQLFactory struct {
	db *sql.DB
}

// NewFactory creates a unit-of-work factory over the given pool.
func NewFactory(db *sql.DB) *SQLFactory {
	return &SQLFactory{db: db}
}

func (f *SQLFactory) New() UnitOfWork {
	return &unitOfWork{db: f.db}
}

// operation is a staged write, executed against the current querier when the
// unit of work saves.
type operation func(ctx context.Context, q Querier) error

type unitOfWork struct {
	db      *sql.DB
	tx      *sql.Tx
	pending []operation

	products   *productRepository
	orders     *orderRepository
	categories *categoryRepository
	articles   *articleRepository
}

func (u *unitOfWork) Products() ProductRepository {
	if u.products == nil {
		u.products = &productRepository{uow: u}
	}
	return u.products
}

func (u *unitOfWork) Orders() OrderRepository {
	if u.orders == nil {
		u.orders = &orderRepository{uow: u}
	}
	return u.orders
}

func (u *unitOfWork) Categories() CategoryRepository {
	if u.categories == nil {
		u.categories = &categoryRepository{uow: u}
	}
	return u.categories
}

func (u *unitOfWork) Articles() ArticleRepository {
	if u.articles == nil {
		u.articles = &articleRepository{uow: u}
	}
	return u.articles
}

// querier returns the active transaction when one exists, otherwise the pool.
func (u *unitOfWork) querier() Querier {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *unitOfWork) stage(op operation) {
	u.pending = append(u.pending, op)
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	u.tx = tx
	return nil
}

func (u *unitOfWork) SaveChanges(ctx context.Context) error {
	q := u.querier()
	for _, op := range u.pending {
		if err := op(ctx, q); err != nil {
			return fmt.Errorf("failed to save changes: %w", err)
		}
	}
	u.pending = nil
	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}

	if err := u.SaveChanges(ctx); err != nil {
		_ = u.Rollback(ctx)
		return err
	}

	err := u.tx.Commit()
	u.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) Rollback(_ context.Context) error {
	u.pending = nil
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback()
	u.tx = nil
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) Close() error {
	return u.Rollback(context.Background())
}
