package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/payment"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProcessOrderRequest is the input for the transactional order workflow.
type ProcessOrderRequest struct {
	ProductID    uuid.UUID
	Quantity     int
	PaymentToken string
}

// OrderService runs the transactional order workflow against the unit of
// work and the external payment gateway.
type OrderService interface {
	ProcessOrder(ctx context.Context, req ProcessOrderRequest) (Result[*domain.Order], error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (Result[*domain.Order], error)
	CancelOrder(ctx context.Context, id uuid.UUID) (Result[*domain.Order], error)
}

type orderService struct {
	uowFactory repository.Factory
	payments   payment.Processor
	logger     *zap.Logger
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(uowFactory repository.Factory, payments payment.Processor, logger *zap.Logger) OrderService {
	return &orderService{
		uowFactory: uowFactory,
		payments:   payments,
		logger:     logger,
	}
}

// ProcessOrder executes the order workflow inside one transaction:
//
//	begin → fetch product (row-locked) → check stock → decrease stock →
//	create order → save → charge gateway → mark paid → commit
//
// The payment call is the only step with non-transactional side effects, so
// it runs after the provisional persistence and inside the same transaction:
// a single rollback point undoes both the stock decrement and the order when
// the gateway declines or anything else fails. The caller never observes a
// half-applied state.
func (s *orderService) ProcessOrder(ctx context.Context, req ProcessOrderRequest) (Result[*domain.Order], error) {
	if req.Quantity <= 0 {
		return Failure[*domain.Order](http.StatusBadRequest, "Quantity must be greater than zero."), nil
	}

	s.logger.Info("Processing order",
		zap.String("product_id", req.ProductID.String()),
		zap.Int("quantity", req.Quantity),
	)

	uow := s.uowFactory.New()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return Result[*domain.Order]{}, err
	}

	product, err := uow.Products().GetByIDForUpdate(ctx, req.ProductID)
	if err != nil {
		rollbackErr := uow.Rollback(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[*domain.Order](http.StatusNotFound, "Product not found"), rollbackErr
		}
		return Result[*domain.Order]{}, err
	}

	if product.Stock < req.Quantity {
		_ = uow.Rollback(ctx)
		return Failure[*domain.Order](http.StatusBadRequest,
			fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", product.Stock, req.Quantity)), nil
	}

	// The entity guard re-verifies sufficiency; failing here after the
	// explicit check above is a programming error, not a user error.
	if err := product.DecreaseStock(req.Quantity); err != nil {
		_ = uow.Rollback(ctx)
		return Result[*domain.Order]{}, err
	}
	if err := uow.Products().Update(ctx, product); err != nil {
		_ = uow.Rollback(ctx)
		return Result[*domain.Order]{}, err
	}

	// Unit price is snapshotted from the product now; later price changes
	// never retroactively alter this order.
	order, err := domain.NewOrder(product.ID, req.Quantity, product.Price)
	if err != nil {
		_ = uow.Rollback(ctx)
		return Result[*domain.Order]{}, err
	}
	if err := uow.Orders().Add(ctx, order); err != nil {
		_ = uow.Rollback(ctx)
		return Result[*domain.Order]{}, err
	}

	// Flush so the order and stock update are visible to reads inside this
	// transaction; nothing is durable until commit.
	if err := uow.SaveChanges(ctx); err != nil {
		_ = uow.Rollback(ctx)
		return Result[*domain.Order]{}, err
	}

	s.logger.Info("Order created, attempting payment",
		zap.String("order_id", order.ID.String()),
		zap.Float64("total_amount", order.TotalAmount),
	)

	transactionID, err := s.payments.ProcessPayment(ctx, order.TotalAmount, req.PaymentToken)
	if err != nil {
		if rollbackErr := uow.Rollback(ctx); rollbackErr != nil {
			return Result[*domain.Order]{}, rollbackErr
		}

		var declined *payment.DeclinedError
		if errors.As(err, &declined) {
			s.logger.Warn("Payment declined, transaction rolled back",
				zap.String("order_id", order.ID.String()),
			)
			return Failure[*domain.Order](declined.StatusCode,
				"Payment failed: "+declined.Reason), nil
		}
		return Result[*domain.Order]{}, err
	}

	if err := order.MarkAsPaid(transactionID); err != nil {
		_ = uow.Rollback(ctx)
		return Result[*domain.Order]{}, err
	}
	if err := uow.Orders().Update(ctx, order); err != nil {
		_ = uow.Rollback(ctx)
		return Result[*domain.Order]{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return Result[*domain.Order]{}, err
	}

	s.logger.Info("Order processed successfully",
		zap.String("order_id", order.ID.String()),
		zap.String("transaction_id", transactionID),
	)

	return Success(order, http.StatusCreated), nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (Result[*domain.Order], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	order, err := uow.Orders().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[*domain.Order](http.StatusNotFound, "Order not found"), nil
		}
		return Result[*domain.Order]{}, err
	}

	return Success(order, http.StatusOK), nil
}

// CancelOrder cancels a pending order. Paid orders cannot be cancelled.
func (s *orderService) CancelOrder(ctx context.Context, id uuid.UUID) (Result[*domain.Order], error) {
	uow := s.uowFactory.New()
	defer uow.Close()

	order, err := uow.Orders().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Failure[*domain.Order](http.StatusNotFound, "Order not found"), nil
		}
		return Result[*domain.Order]{}, err
	}

	if err := order.Cancel(); err != nil {
		if result, ok := failureFromDomain[*domain.Order](err); ok {
			return result, nil
		}
		return Result[*domain.Order]{}, err
	}

	if err := uow.Orders().Update(ctx, order); err != nil {
		return Result[*domain.Order]{}, err
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return Result[*domain.Order]{}, err
	}

	s.logger.Info("Order cancelled", zap.String("order_id", order.ID.String()))
	return Success(order, http.StatusOK), nil
}
