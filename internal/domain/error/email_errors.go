package error

import "errors"

// Email delivery domain errors.
var (
	// ErrEmailJobNotFound is returned when an email job is not found.
	ErrEmailJobNotFound = errors.New("email job not found")

	// ErrEmailSendFailed is returned when sending an email fails.
	ErrEmailSendFailed = errors.New("failed to send email")

	// ErrEmailMaxAttemptsReached is returned when an email job has exhausted its retries.
	ErrEmailMaxAttemptsReached = errors.New("email job reached maximum send attempts")

	// ErrInvalidEmailTemplate is returned when an unknown template type is requested.
	ErrInvalidEmailTemplate = errors.New("invalid email template type")
)

// EmailErrorCode defines error codes for email delivery errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeEmailJobNotFound EmailErrorCode = "EMAIL-010001"
	ErrCodeEmailEnqueue     EmailErrorCode = "EMAIL-010002"

	// Delivery errors (02XXXX)
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeEmailMaxAttempts      EmailErrorCode = "EMAIL-020003"

	// Template errors (03XXXX)
	ErrCodeInvalidTemplate EmailErrorCode = "EMAIL-030001"
	ErrCodeTemplateRender  EmailErrorCode = "EMAIL-030002"
)

// EmailError represents an email delivery error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
