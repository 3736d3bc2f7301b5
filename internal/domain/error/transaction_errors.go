package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionForbidden is returned when a user accesses another user's transaction.
	ErrTransactionForbidden = errors.New("transaction does not belong to user")

	// ErrDuplicateTransaction is returned when importing an already imported transaction.
	ErrDuplicateTransaction = errors.New("transaction already imported")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound  TransactionErrorCode = "TXN-020001"
	ErrCodeTransactionForbidden TransactionErrorCode = "TXN-020002"

	// Import errors (03XXXX)
	ErrCodeDuplicateTransaction TransactionErrorCode = "TXN-030001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
