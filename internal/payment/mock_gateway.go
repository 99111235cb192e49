package payment

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MockGateway simulates a payment provider. The tokens "FAIL" and "INVALID"
// are declined; anything else is approved with a generated transaction id.
// Replace with a real gateway integration in production.
type MockGateway struct {
	logger *zap.Logger
	delay  time.Duration
}

// NewMockGateway creates a mock gateway. delay simulates provider latency on
// every call; pass 0 in tests.
func NewMockGateway(logger *zap.Logger, delay time.Duration) *MockGateway {
	return &MockGateway{logger: logger, delay: delay}
}

func (g *MockGateway) ProcessPayment(ctx context.Context, amount float64, paymentToken string) (string, error) {
	if err := g.sleep(ctx); err != nil {
		return "", err
	}

	if paymentToken == "FAIL" || paymentToken == "INVALID" {
		g.logger.Warn("Payment declined",
			zap.Float64("amount", amount),
		)
		return "", &DeclinedError{
			Reason:     "Payment declined by bank",
			StatusCode: http.StatusPaymentRequired,
		}
	}

	transactionID := "TXN_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	g.logger.Info("Payment approved",
		zap.Float64("amount", amount),
		zap.String("transaction_id", transactionID),
	)
	return transactionID, nil
}

func (g *MockGateway) Refund(ctx context.Context, transactionID string) error {
	if err := g.sleep(ctx); err != nil {
		return err
	}

	g.logger.Info("Payment refunded", zap.String("transaction_id", transactionID))
	return nil
}

func (g *MockGateway) sleep(ctx context.Context) error {
	if g.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(g.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
