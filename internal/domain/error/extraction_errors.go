package error

import "errors"

// Expense extraction domain errors.
var (
	// ErrEmailAccountNotFound is returned when a connected email account is not found.
	ErrEmailAccountNotFound = errors.New("email account not found")

	// ErrEmailAccountRevoked is returned when the email account connection was revoked.
	ErrEmailAccountRevoked = errors.New("email account connection revoked")

	// ErrEmailGatewayUnavailable is returned when the email provider cannot be reached.
	ErrEmailGatewayUnavailable = errors.New("email gateway unavailable")

	// ErrUnsupportedEmailProvider is returned for providers without a gateway implementation.
	ErrUnsupportedEmailProvider = errors.New("unsupported email provider")

	// ErrExtractionFailed is returned when the AI extractor fails to parse expenses.
	ErrExtractionFailed = errors.New("expense extraction failed")

	// ErrInvalidParsedExpense is returned when extracted data cannot form a valid transaction.
	ErrInvalidParsedExpense = errors.New("parsed expense is invalid")
)

// ExtractionErrorCode defines error codes for expense extraction errors.
// Format: EXT-XXYYYY where XX is category and YYYY is specific error.
type ExtractionErrorCode string

const (
	// Email account errors (01XXXX)
	ErrCodeEmailAccountNotFound ExtractionErrorCode = "EXT-010001"
	ErrCodeEmailAccountRevoked  ExtractionErrorCode = "EXT-010002"
	ErrCodeUnsupportedProvider  ExtractionErrorCode = "EXT-010003"

	// Gateway errors (02XXXX)
	ErrCodeGatewayUnavailable ExtractionErrorCode = "EXT-020001"
	ErrCodeGatewayAuth        ExtractionErrorCode = "EXT-020002"

	// Extraction errors (03XXXX)
	ErrCodeExtractionFailed     ExtractionErrorCode = "EXT-030001"
	ErrCodeInvalidParsedExpense ExtractionErrorCode = "EXT-030002"
)

// ExtractionError represents an expense extraction error with code and message.
type ExtractionError struct {
	Code    ExtractionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError with the given code and message.
func NewExtractionError(code ExtractionErrorCode, message string, err error) *ExtractionError {
	return &ExtractionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
