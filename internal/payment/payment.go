// Package payment defines the external payment collaborator. The gateway is
// treated as unreliable and never assumed idempotent; the order workflow
// sequences it so every database effect stays reversible until the gateway
// confirms.
package payment

import (
	"context"
	"fmt"
)

// Processor is the contract against a payment gateway.
type Processor interface {
	// ProcessPayment charges amount using the caller-supplied token and
	// returns the gateway transaction id. A decline is reported as a
	// *DeclinedError; any other error means the gateway misbehaved.
	ProcessPayment(ctx context.Context, amount float64, paymentToken string) (string, error)

	// Refund reverses a previously confirmed transaction.
	Refund(ctx context.Context, transactionID string) error
}

// DeclinedError is a business-normal payment rejection, carrying the
// gateway's reason and status classification.
type DeclinedError struct {
	Reason     string
	StatusCode int
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("payment declined (%d): %s", e.StatusCode, e.Reason)
}
