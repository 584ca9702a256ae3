package error

import "errors"

// Settlement domain errors.
var (
	// ErrSettlementNotFound is returned when a settlement is not found in the store.
	ErrSettlementNotFound = errors.New("settlement not found")

	// ErrInvalidSettlementAmount is returned when the settlement amount is not positive.
	ErrInvalidSettlementAmount = errors.New("settlement amount must be a positive number")

	// ErrSettlementContractNotFound is returned when the referenced contract does not exist.
	ErrSettlementContractNotFound = errors.New("contract not found for settlement")

	// ErrMissingSettlementDate is returned when the settlement date is missing.
	ErrMissingSettlementDate = errors.New("settlement date is required")
)

// SettlementErrorCode defines error codes for settlement errors.
// Format: STL-XXYYYY where XX is category and YYYY is specific error.
type SettlementErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidSettlementAmount    SettlementErrorCode = "STL-010001"
	ErrCodeMissingSettlementDate      SettlementErrorCode = "STL-010002"
	ErrCodeSettlementContractNotFound SettlementErrorCode = "STL-010003"

	// Store errors (02XXXX)
	ErrCodeSettlementNotFound SettlementErrorCode = "STL-020001"
)

// SettlementError represents a settlement error with code and message.
type SettlementError struct {
	Code    SettlementErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SettlementError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SettlementError) Unwrap() error {
	return e.Err
}

// NewSettlementError creates a new SettlementError with the given code and message.
func NewSettlementError(code SettlementErrorCode, message string, err error) *SettlementError {
	return &SettlementError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
