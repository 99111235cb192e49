package domain

// ValidationError reports malformed input caught by an entity guard before
// any state change is applied.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidOperationError reports a business-rule violation, such as an illegal
// state transition or decreasing stock below zero.
type InvalidOperationError struct {
	Message string
}

func (e *InvalidOperationError) Error() string {
	return e.Message
}

func validationError(message string) error {
	return &ValidationError{Message: message}
}

func invalidOperation(message string) error {
	return &InvalidOperationError{Message: message}
}
