package service

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/cache"
	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	categoriesAllKey  = "categories:all"
	categoriesPattern = "categories:*"
)

// CreateCategoryRequest carries the fields for a new category.
type CreateCategoryRequest struct {
	Name        string
	Description string
}

// UpdateCategoryRequest carries the replacement fields for a category.
type UpdateCategoryRequest struct {
	Name        string
	Description string
}

// CategoryService manages categories with cached list reads.
type CategoryService interface {
	GetAllCategories(ctx context.Context) (Result[[]*domain.Category], error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (Result[*domain.Category], error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (Result[uuid.UUID], error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (Result[*domain.Category], error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (Result[uuid.UUID], error)
}

type categoryService struct {
	uowFactory repository.Factory
	cache      cache.Cache
	logger     *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(uowFactory repository.Factory, c cache.Cache, logger *zap.Logger) CategoryService {
	return &categoryService{
		uowFactory: uowFactory,
		cache:      c,
		logger:     logger,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) (Result[[]*domain.Category], error) {
	categories, err := cache.GetOrSet(ctx, s.cache, categoriesAllKey, cache.DefaultTTL,
		func(ctx context.Context) ([]*domain.Category, error) {
			uow := s.uowFactory.New()
			defer uow.Close()
			return uow.Categories().GetAll(ctx)
		})
	if err != nil {
		return Result[[]*domain.Category]{}, err
	}

	return Success(categories, http.StatusOK), nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (Result[*domain.Category], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	category, err := uow.Categories().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[*domain.Category](http.StatusNotFound, "Category not found"), nil
		}
		return Result[*domain.Category]{}, err
	}

	return Success(category, http.StatusOK), nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (Result[uuid.UUID], error) {
	category, err := domain.NewCategory(req.Name, req.Description)
	if err != nil {
		if result, ok := failureFromDomain[uuid.UUID](err); ok {
			return result, nil
		}
		return Result[uuid.UUID]{}, err
	}

	uow := s.uowFactory.New()
	defer uow.Close()

	if err := uow.Categories().Add(ctx, category); err != nil {
		return Result[uuid.UUID]{}, err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return Result[uuid.UUID]{}, err
	}

	if err := s.cache.RemoveByPattern(ctx, categoriesPattern); err != nil {
		return Result[uuid.UUID]{}, err
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name),
	)
	return Success(category.ID, http.StatusCreated), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (Result[*domain.Category], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	category, err := uow.Categories().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[*domain.Category](http.StatusNotFound, "Category not found"), nil
		}
		return Result[*domain.Category]{}, err
	}

	if err := category.UpdateName(req.Name); err != nil {
		if result, ok := failureFromDomain[*domain.Category](err); ok {
			return result, nil
		}
		return Result[*domain.Category]{}, err
	}
	if err := category.UpdateDescription(req.Description); err != nil {
		if result, ok := failureFromDomain[*domain.Category](err); ok {
			return result, nil
		}
		return Result[*domain.Category]{}, err
	}

	if err := uow.Categories().Update(ctx, category); err != nil {
		return Result[*domain.Category]{}, err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return Result[*domain.Category]{}, err
	}

	if err := s.cache.RemoveByPattern(ctx, categoriesPattern); err != nil {
		return Result[*domain.Category]{}, err
	}

	s.logger.Info("Category updated", zap.String("category_id", category.ID.String()))
	return Success(category, http.StatusOK), nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) (Result[uuid.UUID], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	if _, err := uow.Categories().GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[uuid.UUID](http.StatusNotFound, "Category not found"), nil
		}
		return Result[uuid.UUID]{}, err
	}

	if err := uow.Categories().Delete(ctx, id); err != nil {
		return Result[uuid.UUID]{}, err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return Result[uuid.UUID]{}, err
	}

	if err := s.cache.RemoveByPattern(ctx, categoriesPattern); err != nil {
		return Result[uuid.UUID]{}, err
	}

	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return Success(id, http.StatusOK), nil
}
