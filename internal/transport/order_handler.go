package transport

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProcessOrderRequest represents the order placement payload.
type ProcessOrderRequest struct {
	ProductID    uuid.UUID `json:"product_id" validate:"required"`
	Quantity     int       `json:"quantity" validate:"required,gt=0"`
	PaymentToken string    `json:"payment_token" validate:"required"`
}

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.Process)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/cancel", h.Cancel)
	})
}

func (h *OrderHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))
		respondBadRequest(w, err)
		return
	}

	result, err := h.orderService.ProcessOrder(r.Context(), service.ProcessOrderRequest{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		PaymentToken: req.PaymentToken,
	})
	if err != nil {
		h.logger.Error("Order processing failed", zap.Error(err))
	}
	respondResult(w, result, err)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.orderService.GetOrderByID(r.Context(), id)
	respondResult(w, result, err)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.orderService.CancelOrder(r.Context(), id)
	respondResult(w, result, err)
}
