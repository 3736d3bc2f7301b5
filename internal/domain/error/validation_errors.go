// Package error defines domain-specific errors for the SnapBill application.
package error

import "errors"

// Domain validation sentinel errors. Every core invariant failure wraps
// exactly one of these, so callers can match narrowly with errors.Is or
// broadly by unwrapping to *ValidationError.
var (
	// ErrInvalidAmount is returned when a monetary amount violates the
	// non-negative (or strictly positive, for transactions) invariant.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrMissingRequiredField is returned when a mandatory field is absent.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrCurrencyMismatch is returned when two monetary values, or a
	// transaction and its account, disagree on currency.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrFutureDebitDate is returned when a debit transaction is dated
	// after the current date.
	ErrFutureDebitDate = errors.New("debit transactions cannot have future dates")

	// ErrMixedCurrency is returned when an aggregation input spans more
	// than one currency.
	ErrMixedCurrency = errors.New("transactions contain multiple currencies")

	// ErrInvalidIdentifier is returned when a malformed identifier string
	// fails to parse.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// ValidationErrorCode defines error codes for domain validation errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type ValidationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount        ValidationErrorCode = "TXN-010001"
	ErrCodeMissingRequiredField ValidationErrorCode = "TXN-010002"
	ErrCodeCurrencyMismatch     ValidationErrorCode = "TXN-010003"
	ErrCodeFutureDebitDate      ValidationErrorCode = "TXN-010004"
	ErrCodeMixedCurrency        ValidationErrorCode = "TXN-010005"
	ErrCodeInvalidIdentifier    ValidationErrorCode = "TXN-010006"
)

// ValidationError represents a domain validation failure with code and message.
type ValidationError struct {
	Code    ValidationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError with the given code and message.
func NewValidationError(code ValidationErrorCode, message string, err error) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsValidation reports whether err is (or wraps) a domain validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
