package service

import (
	"context"
	"sort"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/query"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

// mockStore is the in-memory state shared by every unit of work a
// mockFactory hands out. Maps hold values, not pointers, so mutations only
// land when a staged write is flushed and committed.
type mockStore struct {
	products   map[uuid.UUID]domain.Product
	orders     map[uuid.UUID]domain.Order
	categories map[uuid.UUID]domain.Category
	articles   map[uuid.UUID]domain.Article
}

func newMockStore() *mockStore {
	return &mockStore{
		products:   make(map[uuid.UUID]domain.Product),
		orders:     make(map[uuid.UUID]domain.Order),
		categories: make(map[uuid.UUID]domain.Category),
		articles:   make(map[uuid.UUID]domain.Article),
	}
}

func (s *mockStore) clone() *mockStore {
	c := newMockStore()
	for id, p := range s.products {
		c.products[id] = p
	}
	for id, o := range s.orders {
		c.orders[id] = o
	}
	for id, cat := range s.categories {
		c.categories[id] = cat
	}
	for id, a := range s.articles {
		c.articles[id] = a
	}
	return c
}

type mockFactory struct {
	store *mockStore
}

func newMockFactory() *mockFactory {
	return &mockFactory{store: newMockStore()}
}

func (f *mockFactory) New() repository.UnitOfWork {
	return &mockUnitOfWork{committed: f.store}
}

// mockUnitOfWork mirrors the transactional contract: Begin snapshots the
// committed state, staged writes flush into the snapshot, and only Commit
// publishes the snapshot back. Rollback or Close discards it.
type mockUnitOfWork struct {
	committed *mockStore
	working   *mockStore
	pending   []func(target *mockStore) error
}

func (u *mockUnitOfWork) target() *mockStore {
	if u.working != nil {
		return u.working
	}
	return u.committed
}

func (u *mockUnitOfWork) Products() repository.ProductRepository {
	return &mockProductRepository{uow: u}
}

func (u *mockUnitOfWork) Orders() repository.OrderRepository {
	return &mockOrderRepository{uow: u}
}

func (u *mockUnitOfWork) Categories() repository.CategoryRepository {
	return &mockCategoryRepository{uow: u}
}

func (u *mockUnitOfWork) Articles() repository.ArticleRepository {
	return &mockArticleRepository{uow: u}
}

func (u *mockUnitOfWork) Begin(context.Context) error {
	u.working = u.committed.clone()
	return nil
}

func (u *mockUnitOfWork) SaveChanges(context.Context) error {
	t := u.target()
	for _, op := range u.pending {
		if err := op(t); err != nil {
			return err
		}
	}
	u.pending = nil
	return nil
}

func (u *mockUnitOfWork) Commit(ctx context.Context) error {
	if u.working == nil {
		return repository.ErrNoTransaction
	}
	if err := u.SaveChanges(ctx); err != nil {
		_ = u.Rollback(ctx)
		return err
	}

	*u.committed = *u.working
	u.working = nil
	return nil
}

func (u *mockUnitOfWork) Rollback(context.Context) error {
	u.pending = nil
	u.working = nil
	return nil
}

func (u *mockUnitOfWork) Close() error {
	return u.Rollback(context.Background())
}

type mockProductRepository struct {
	uow *mockUnitOfWork
}

func (r *mockProductRepository) GetAll(context.Context) ([]*domain.Product, error) {
	t := r.uow.target()
	products := make([]*domain.Product, 0, len(t.products))
	for _, p := range t.products {
		clone := p
		products = append(products, &clone)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

func (r *mockProductRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := r.uow.target().products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := p
	return &clone, nil
}

func (r *mockProductRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *mockProductRepository) Add(_ context.Context, entity *domain.Product) error {
	r.uow.pending = append(r.uow.pending, func(t *mockStore) error {
		t.products[entity.ID] = *entity
		return nil
	})
	return nil
}

func (r *mockProductRepository) Update(_ context.Context, entity *domain.Product) error {
	r.uow.pending = append(r.uow.pending, func(t *mockStore) error {
		t.products[entity.ID] = *entity
		return nil
	})
	return nil
}

func (r *mockProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.uow.pending = append(r.uow.pending, func(t *mockStore) error {
		delete(t.products, id)
		return nil
	})
	return nil
}

func (r *mockProductRepository) Page(ctx context.Context, params query.Params) (*query.Page[*domain.Product], error) {
	params = params.Normalize()

	all, _ := r.GetAll(ctx)
	matched := make([]*domain.Product, 0, len(all))
	for _, p := range all {
		if params.SearchTerm == "" ||
			strings.Contains(strings.ToLower(p.Name), strings.ToLower(params.SearchTerm)) {
			matched = append(matched, p)
		}
	}

	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return query.NewPage(matched[start:end], len(matched), params.PageNumber, params.PageSize), nil
}

type mockOrderRepository struct {
	uow *mockUnitOfWork
}

func (r *mockOrderRepository) GetAll(context.Context) ([]*domain.Order, error) {
	t := r.uow.target()
	orders := make([]*domain.Order, 0, len(t.orders))
	for _, o := range t.orders {
		clone := o
		orders = append(orders, &clone)
	}
	return orders, nil
}

func (r *mockOrderRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := r.uow.target().orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := o
	return &clone, nil
}

func (r *mockOrderRepository) Add(_ context.Context, entity *domain.Order) error {
	r.uow.pending = append(r.uow.pending, func(t *mockStore) error {
		t.orders[entity.ID] = *entity
		return nil
	})
	return nil
}

func (r *mockOrderRepository) Update(_ context.Context, entity *domain.Order) error {
	r.uow.pending = append(r.uow.pending, func(t *mockStore) error {
		t.orders[entity.ID] = *entity
		return nil
	})
	return nil
}

func (r *mockOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.uow.pending = append(r.uow.pending, func(t *mockStore) error {
		delete(t.orders, id)
		return nil
	})
	return nil
}

type mockCategoryRepository struct {
	uow *mockUnitOfWork
}

func (r *mockCategoryRepository) GetAll(context.Context) ([]*domain.Category, error) {
	t := r.uow.target()
	categories := make([]*domain.Category, 0, len(t.categories))
	for _, c := range t.categories {
		clone := c
		categories = append(categories, &clone)
	}
	return categories, nil
}

func (r *mockCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	c, ok := r.uow.target().categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := c
	return &clone, nil
}

func (r *mockCategoryRepository) Add(_ context.Context, entity *domain.Category) error {
	r.uow.pending = append(r.uow.pending, func(t *mockStore) error {
		t.categories[entity.ID] = *entity
		return nil
	})
	return nil
}

func (r *mockCategoryRepository) Update(_ context.Context, entity *domain.Category) error {
	r.uow.pending = append(r.uow.pending, func(t *mockStore) error {
		t.categories[entity.ID] = *entity
		return nil
	})
	return nil
}

func (r *mockCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.uow.pending = append(r.uow.pending, func(t *mockStore) error {
		delete(t.categories, id)
		return nil
	})
	return nil
}

type mockArticleRepository struct {
	uow *mockUnitOfWork
}

func (r *mockArticleRepository) GetAll(context.Context) ([]*domain.Article, error) {
	t := r.uow.target()
	articles := make([]*domain.Article, 0, len(t.articles))
	for _, a := range t.articles {
		clone := a
		articles = append(articles, &clone)
	}
	return articles, nil
}

func (r *mockArticleRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Article, error) {
	a, ok := r.uow.target().articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := a
	return &clone, nil
}

func (r *mockArticleRepository) Add(_ context.Context, entity *domain.Article) error {
	r.uow.pending = append(r.uow.pending, func(t *mockStore) error {
		t.articles[entity.ID] = *entity
		return nil
	})
	return nil
}

func (r *mockArticleRepository) Update(_ context.Context, entity *domain.Article) error {
	r.uow.pending = append(r.uow.pending, func(t *mockStore) error {
		t.articles[entity.ID] = *entity
		return nil
	})
	return nil
}

func (r *mockArticleRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.uow.pending = append(r.uow.pending, func(t *mockStore) error {
		delete(t.articles, id)
		return nil
	})
	return nil
}

func (r *mockArticleRepository) Page(ctx context.Context, params query.Params) (*query.Page[*domain.Article], error) {
	params = params.Normalize()

	all, _ := r.GetAll(ctx)
	matched := make([]*domain.Article, 0, len(all))
	for _, a := range all {
		if params.SearchTerm == "" ||
			strings.Contains(strings.ToLower(a.Title), strings.ToLower(params.SearchTerm)) {
			matched = append(matched, a)
		}
	}

	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return query.NewPage(matched[start:end], len(matched), params.PageNumber, params.PageSize), nil
}
