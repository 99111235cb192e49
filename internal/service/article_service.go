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
	articlesAllKey  = "articles:all"
	articlesPattern = "articles:*"
)

// CreateArticleRequest carries the fields for a new article.
type CreateArticleRequest struct {
	Title         string
	Content       string
	Slug          string
	CoverImageURL string
	CategoryID    uuid.UUID
}

// UpdateArticleRequest carries the replacement fields for an article.
type UpdateArticleRequest struct {
	Title         string
	Content       string
	Slug          string
	CoverImageURL string
	CategoryID    uuid.UUID
}

// ArticleService manages articles with cached list reads and a searchable
// paged view.
type ArticleService interface {
	GetAllArticles(ctx context.Context) (Result[[]*domain.Article], error)
	GetArticlesPaged(ctx context.Context, params query.Params) (Result[*query.Page[*domain.Article]], error)
	GetArticleByID(ctx context.Context, id uuid.UUID) (Result[*domain.Article], error)
	CreateArticle(ctx context.Context, req CreateArticleRequest) (Result[uuid.UUID], error)
	UpdateArticle(ctx context.Context, id uuid.UUID, req UpdateArticleRequest) (Result[*domain.Article], error)
	DeleteArticle(ctx context.Context, id uuid.UUID) (Result[uuid.UUID], error)
}

type articleService struct {
	uowFactory repository.Factory
	cache      cache.Cache
	logger     *zap.Logger
}

// NewArticleService creates a new instance of ArticleService.
func NewArticleService(uowFactory repository.Factory, c cache.Cache, logger *zap.Logger) ArticleService {
	return &articleService{
		uowFactory: uowFactory,
		cache:      c,
		logger:     logger,
	}
}

func (s *articleService) GetAllArticles(ctx context.Context) (Result[[]*domain.Article], error) {
	articles, err := cache.GetOrSet(ctx, s.cache, articlesAllKey, cache.DefaultTTL,
		func(ctx context.Context) ([]*domain.Article, error) {
			uow := s.uowFactory.New()
			defer uow.Close()
			return uow.Articles().GetAll(ctx)
		})
	if err != nil {
		return Result[[]*domain.Article]{}, err
	}

	return Success(articles, http.StatusOK), nil
}

func (s *articleService) GetArticlesPaged(ctx context.Context, params query.Params) (Result[*query.Page[*domain.Article]], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	page, err := uow.Articles().Page(ctx, params)
	if err != nil {
		return Result[*query.Page[*domain.Article]]{}, err
	}

	return Success(page, http.StatusOK), nil
}

func (s *articleService) GetArticleByID(ctx context.Context, id uuid.UUID) (Result[*domain.Article], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	article, err := uow.Articles().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[*domain.Article](http.StatusNotFound, "Article not found"), nil
		}
		return Result[*domain.Article]{}, err
	}

	return Success(article, http.StatusOK), nil
}

// CreateArticle validates the referenced category before persisting so an
// article can never point at a category that does not exist.
func (s *articleService) CreateArticle(ctx context.Context, req CreateArticleRequest) (Result[uuid.UUID], error) {
	article, err := domain.NewArticle(req.Title, req.Content, req.Slug, req.CoverImageURL, req.CategoryID)
	if err != nil {
		if result, ok := failureFromDomain[uuid.UUID](err); ok {
			return result, nil
		}
		return Result[uuid.UUID]{}, err
	}

	uow := s.uowFactory.New()
	defer uow.Close()

	if _, err := uow.Categories().GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[uuid.UUID](http.StatusBadRequest, "Category does not exist"), nil
		}
		return Result[uuid.UUID]{}, err
	}

	if err := uow.Articles().Add(ctx, article); err != nil {
		return Result[uuid.UUID]{}, err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return Result[uuid.UUID]{}, err
	}

	if err := s.cache.RemoveByPattern(ctx, articlesPattern); err != nil {
		return Result[uuid.UUID]{}, err
	}

	s.logger.Info("Article created",
		zap.String("article_id", article.ID.String()),
		zap.String("slug", article.Slug),
	)
	return Success(article.ID, http.StatusCreated), nil
}

func (s *articleService) UpdateArticle(ctx context.Context, id uuid.UUID, req UpdateArticleRequest) (Result[*domain.Article], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	article, err := uow.Articles().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[*domain.Article](http.StatusNotFound, "Article not found"), nil
		}
		return Result[*domain.Article]{}, err
	}

	for _, apply := range []func() error{
		func() error { return article.UpdateTitle(req.Title) },
		func() error { return article.UpdateContent(req.Content) },
		func() error { return article.UpdateSlug(req.Slug) },
		func() error { return article.UpdateCoverImageURL(req.CoverImageURL) },
		func() error { return article.UpdateCategoryID(req.CategoryID) },
	} {
		if err := apply(); err != nil {
			if result, ok := failureFromDomain[*domain.Article](err); ok {
				return result, nil
			}
			return Result[*domain.Article]{}, err
		}
	}

	if err := uow.Articles().Update(ctx, article); err != nil {
		return Result[*domain.Article]{}, err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return Result[*domain.Article]{}, err
	}

	if err := s.cache.RemoveByPattern(ctx, articlesPattern); err != nil {
		return Result[*domain.Article]{}, err
	}

	s.logger.Info("Article updated", zap.String("article_id", article.ID.String()))
	return Success(article, http.StatusOK), nil
}

func (s *articleService) DeleteArticle(ctx context.Context, id uuid.UUID) (Result[uuid.UUID], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	if _, err := uow.Articles().GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[uuid.UUID](http.StatusNotFound, "Article not found"), nil
		}
		return Result[uuid.UUID]{}, err
	}

	if err := uow.Articles().Delete(ctx, id); err != nil {
		return Result[uuid.UUID]{}, err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return Result[uuid.UUID]{}, err
	}

	if err := s.cache.RemoveByPattern(ctx, articlesPattern); err != nil {
		return Result[uuid.UUID]{}, err
	}

	s.logger.Info("Article deleted", zap.String("article_id", id.String()))
	return Success(id, http.StatusOK), nil
}
