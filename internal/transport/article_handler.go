package transport

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ArticleRequest represents the article create and update payload.
type ArticleRequest struct {
	Title         string    `json:"title" validate:"required"`
	Content       string    `json:"content" validate:"required"`
	Slug          string    `json:"slug" validate:"required"`
	CoverImageURL string    `json:"cover_image_url" validate:"required,url"`
	CategoryID    uuid.UUID `json:"category_id" validate:"required"`
}

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	articleService service.ArticleService
	logger         *zap.Logger
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService service.ArticleService, logger *zap.Logger) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		logger:         logger,
	}
}

// RegisterRoutes registers all article routes.
func (h *ArticleHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/articles", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.articleService.GetAllArticles(r.Context())
	respondResult(w, result, err)
}

func (h *ArticleHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.articleService.GetArticlesPaged(r.Context(), pageParamsFromQuery(r))
	respondResult(w, result, err)
}

func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.articleService.GetArticleByID(r.Context(), id)
	respondResult(w, result, err)
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Article creation validation failed", zap.Error(err))
		respondBadRequest(w, err)
		return
	}

	result, err := h.articleService.CreateArticle(r.Context(), service.CreateArticleRequest{
		Title:         req.Title,
		Content:       req.Content,
		Slug:          req.Slug,
		CoverImageURL: req.CoverImageURL,
		CategoryID:    req.CategoryID,
	})
	respondResult(w, result, err)
}

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req ArticleRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	result, err := h.articleService.UpdateArticle(r.Context(), id, service.UpdateArticleRequest{
		Title:         req.Title,
		Content:       req.Content,
		Slug:          req.Slug,
		CoverImageURL: req.CoverImageURL,
		CategoryID:    req.CategoryID,
	})
	respondResult(w, result, err)
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.articleService.DeleteArticle(r.Context(), id)
	respondResult(w, result, err)
}
