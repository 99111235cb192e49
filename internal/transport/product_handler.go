package transport

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/query"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// UpdateProductPriceRequest represents the price change payload.
type UpdateProductPriceRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}/price", h.UpdatePrice)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.productService.GetAllProducts(r.Context())
	respondResult(w, result, err)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.productService.GetProductsPaged(r.Context(), pageParamsFromQuery(r))
	respondResult(w, result, err)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.productService.GetProductByID(r.Context(), id)
	respondResult(w, result, err)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product creation validation failed", zap.Error(err))
		respondBadRequest(w, err)
		return
	}

	result, err := h.productService.CreateProduct(r.Context(), service.CreateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	respondResult(w, result, err)
}

func (h *ProductHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateProductPriceRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	result, err := h.productService.UpdateProductPrice(r.Context(), id, req.Price)
	respondResult(w, result, err)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.productService.DeleteProduct(r.Context(), id)
	respondResult(w, result, err)
}

// pageParamsFromQuery reads pagination, sorting and search input from the URL
// query string. Out-of-range values are normalized downstream.
func pageParamsFromQuery(r *http.Request) query.Params {
	q := r.URL.Query()

	pageNumber, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	return query.Params{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		SortBy:     q.Get("sort_by"),
		SortOrder:  query.SortOrder(q.Get("sort_order")),
		SearchTerm: q.Get("search"),
	}
}
