package service

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/cache"
	"storefront/internal/domain"
	"storefront/internal/query"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	productsAllKey  = "products:all"
	productsPattern = "products:*"
)

// CreateProductRequest carries the fields for a new product.
type CreateProductRequest struct {
	Name        string
	Description string
	Price       float64
	Stock       int
}

// ProductService exposes catalog reads backed by the cache-aside layer and
// writes that invalidate every product key.
type ProductService interface {
	GetAllProducts(ctx context.Context) (Result[[]*domain.Product], error)
	GetProductsPaged(ctx context.Context, params query.Params) (Result[*query.Page[*domain.Product]], error)
	GetProductByID(ctx context.Context, id uuid.UUID) (Result[*domain.Product], error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (Result[uuid.UUID], error)
	UpdateProductPrice(ctx context.Context, id uuid.UUID, newPrice float64) (Result[*domain.Product], error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (Result[uuid.UUID], error)
}

type productService struct {
	uowFactory repository.Factory
	cache      cache.Cache
	logger     *zap.Logger
}

// NewProductService creates a new instance of ProductService.
func NewProductService(uowFactory repository.Factory, c cache.Cache, logger *zap.Logger) ProductService {
	return &productService{
		uowFactory: uowFactory,
		cache:      c,
		logger:     logger,
	}
}

// GetAllProducts serves the full catalog from cache when fresh, otherwise
// loads it and populates the cache for subsequent calls.
func (s *productService) GetAllProducts(ctx context.Context) (Result[[]*domain.Product], error) {
	cached, ok, err := cache.Get[[]*domain.Product](ctx, s.cache, productsAllKey)
	if err != nil {
		return Result[[]*domain.Product]{}, err
	}
	if ok {
		s.logger.Debug("Products served from cache", zap.Int("count", len(cached)))
		return Success(cached, http.StatusOK), nil
	}

	uow := s.uowFactory.New()
	defer uow.Close()

	products, err := uow.Products().GetAll(ctx)
	if err != nil {
		return Result[[]*domain.Product]{}, err
	}

	if err := cache.Set(ctx, s.cache, productsAllKey, products, cache.DefaultTTL); err != nil {
		return Result[[]*domain.Product]{}, err
	}

	return Success(products, http.StatusOK), nil
}

// GetProductsPaged searches and pages the catalog. Paged views are not
// cached; the key space over search terms and page numbers is unbounded.
func (s *productService) GetProductsPaged(ctx context.Context, params query.Params) (Result[*query.Page[*domain.Product]], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	page, err := uow.Products().Page(ctx, params)
	if err != nil {
		return Result[*query.Page[*domain.Product]]{}, err
	}

	return Success(page, http.StatusOK), nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (Result[*domain.Product], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[*domain.Product](http.StatusNotFound, "Product not found"), nil
		}
		return Result[*domain.Product]{}, err
	}

	return Success(product, http.StatusOK), nil
}

// CreateProduct persists a new product and evicts every cached product view
// so no reader observes a catalog missing the new entry past its TTL.
func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest) (Result[uuid.UUID], error) {
	product, err := domain.NewProduct(req.Name, req.Description, req.Price, req.Stock)
	if err != nil {
		if result, ok := failureFromDomain[uuid.UUID](err); ok {
			return result, nil
		}
		return Result[uuid.UUID]{}, err
	}

	uow := s.uowFactory.New()
	defer uow.Close()

	if err := uow.Products().Add(ctx, product); err != nil {
		return Result[uuid.UUID]{}, err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return Result[uuid.UUID]{}, err
	}

	if err := s.cache.RemoveByPattern(ctx, productsPattern); err != nil {
		return Result[uuid.UUID]{}, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	return Success(product.ID, http.StatusCreated), nil
}

func (s *productService) UpdateProductPrice(ctx context.Context, id uuid.UUID, newPrice float64) (Result[*domain.Product], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[*domain.Product](http.StatusNotFound, "Product not found"), nil
		}
		return Result[*domain.Product]{}, err
	}

	if err := product.UpdatePrice(newPrice); err != nil {
		if result, ok := failureFromDomain[*domain.Product](err); ok {
			return result, nil
		}
		return Result[*domain.Product]{}, err
	}

	if err := uow.Products().Update(ctx, product); err != nil {
		return Result[*domain.Product]{}, err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return Result[*domain.Product]{}, err
	}

	if err := s.cache.RemoveByPattern(ctx, productsPattern); err != nil {
		return Result[*domain.Product]{}, err
	}

	s.logger.Info("Product price updated",
		zap.String("product_id", product.ID.String()),
		zap.Float64("price", product.Price),
	)
	return Success(product, http.StatusOK), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) (Result[uuid.UUID], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	if _, err := uow.Products().GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[uuid.UUID](http.StatusNotFound, "Product not found"), nil
		}
		return Result[uuid.UUID]{}, err
	}

	if err := uow.Products().Delete(ctx, id); err != nil {
		return Result[uuid.UUID]{}, err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return Result[uuid.UUID]{}, err
	}

	if err := s.cache.RemoveByPattern(ctx, productsPattern); err != nil {
		return Result[uuid.UUID]{}, err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return Success(id, http.StatusOK), nil
}
