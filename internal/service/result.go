package service

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
)

// Result is the envelope every service operation returns. Success carries
// data and an empty error list; failure carries messages and a status
// classification (404 not-found, 400 validation or business rule, 402
// payment declined). Infrastructure failures are returned as plain Go errors
// alongside the envelope, never inside it, so callers only inspect Errors
// for expected business outcomes.
type Result[T any] struct {
	IsSuccess bool     `json:"isSuccess"`
	Data      T        `json:"data,omitempty"`
	Errors    []string `json:"errors"`

	// StatusCode classifies the outcome for the transport layer. It is
	// deliberately not serialized.
	StatusCode int `json:"-"`
}

// Success wraps data in a successful result.
func Success[T any](data T, statusCode int) Result[T] {
	return Result[T]{
		IsSuccess:  true,
		Data:       data,
		Errors:     []string{},
		StatusCode: statusCode,
	}
}

// Failure builds a failed result with one or more messages.
func Failure[T any](statusCode int, errs ...string) Result[T] {
	return Result[T]{
		IsSuccess:  false,
		Errors:     errs,
		StatusCode: statusCode,
	}
}

// failureFromDomain converts an entity guard violation into a 400-class
// failure result. ok is false when err is not a domain guard error, in which
// case the caller should treat it as unexpected.
func failureFromDomain[T any](err error) (Result[T], bool) {
	var validation *domain.ValidationError
	var invalidOp *domain.InvalidOperationError
	if errors.As(err, &validation) || errors.As(err, &invalidOp) {
		return Failure[T](http.StatusBadRequest, err.Error()), true
	}
	return Result[T]{}, false
}
